package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-stats/internal/club"
	"github.com/mauv0809/padel-stats/internal/metrics"
	"github.com/mauv0809/padel-stats/internal/notifier"
	"github.com/mauv0809/padel-stats/internal/stats"
	"github.com/slack-go/slack"
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// StandingsCommandHandler answers the /standings slash command with both ranking tables.
func StandingsCommandHandler(store club.ClubStore, engine *stats.Engine, m metrics.Metrics, n notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.FromContext(r.Context())
		rankings, err := computeRankings(store, engine, m)
		if err != nil {
			http.Error(w, "Failed to compute rankings", http.StatusInternalServerError)
			logger.Error("Failed to load rankings snapshot", "error", err)
			return
		}

		msg, err := n.FormatStandingsResponse(rankings)
		if err != nil {
			http.Error(w, "Failed to format standings", http.StatusInternalServerError)
			logger.Error("Failed to format standings", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			logger.Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}
