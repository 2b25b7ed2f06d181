package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-stats/internal/club"
	"github.com/mauv0809/padel-stats/internal/metrics"
	"github.com/mauv0809/padel-stats/internal/notifier"
	"github.com/mauv0809/padel-stats/internal/pubsub"
	"github.com/mauv0809/padel-stats/internal/stats"
)

// pushMessage is the envelope Pub/Sub wraps around pushed messages.
type pushMessage struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data string `json:"data"`
	} `json:"message"`
}

// StandingsInvalidatedHandler consumes pushed standings-invalidated events. It
// recomputes the rankings and, when a match changed, posts the fresh standings.
func StandingsInvalidatedHandler(store club.ClubStore, engine *stats.Engine, m metrics.Metrics, n notifier.Notifier, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.FromContext(r.Context())
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			logger.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		logger.Debug("Received standings invalidated message", "body", string(bodyBytes))

		var pubsubMsg pushMessage
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			logger.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			logger.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		var inv pubsub.Invalidation
		if err := pubsubClient.ProcessMessage(rawData, &inv); err != nil {
			logger.Error("Failed to decode invalidation", "error", err)
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		logger.Info("Standings invalidated", "entity", inv.Entity, "id", inv.ID, "action", inv.Action)

		rankings, err := computeRankings(store, engine, m)
		if err != nil {
			// A non-2xx status makes Pub/Sub redeliver.
			http.Error(w, "Failed to compute rankings", http.StatusInternalServerError)
			logger.Error("Failed to load rankings snapshot", "error", err)
			return
		}
		if inv.Entity == entityMatch {
			if err := n.SendStandings(rankings, IsDryRunFromContext(r)); err != nil {
				logger.Error("Failed to post standings", "error", err, "matchID", inv.ID)
			}
		}
		w.Write([]byte("OK"))
	}
}
