package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/padel-stats/internal/club"
	"github.com/mauv0809/padel-stats/internal/metrics"
	"github.com/mauv0809/padel-stats/internal/notifier"
	"github.com/mauv0809/padel-stats/internal/pubsub"
)

const entityMatch = "match"

func ListMatchesHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := store.GetAllMatches()
		if err != nil {
			http.Error(w, "Failed to get matches", http.StatusInternalServerError)
			log.FromContext(r.Context()).Error("Failed to get matches from store", "error", err)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

// CreateMatchHandler records a match and posts the result to Slack. A failed
// notification is logged and does not undo the match.
func CreateMatchHandler(store club.ClubStore, m metrics.Metrics, ps pubsub.PubSubClient, n notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input club.MatchInput
		if err := decodeJSON(r, &input); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		match, err := store.CreateMatch(input)
		if err != nil {
			writeStoreError(w, r, err, "Failed to create match")
			return
		}
		log.FromContext(r.Context()).Info("Match recorded", "matchID", match.ID, "team1", match.Team1.DisplayName(), "team2", match.Team2.DisplayName())
		mutated(r, m, ps, entityMatch, match.ID, pubsub.ActionCreate)

		if err := n.SendMatchResult(match, IsDryRunFromContext(r)); err != nil {
			log.FromContext(r.Context()).Error("Failed to notify match result", "error", err, "matchID", match.ID)
		}
		writeJSON(w, http.StatusCreated, match)
	}
}

func DeleteMatchHandler(store club.ClubStore, m metrics.Metrics, ps pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := chi.URLParam(r, "matchID")
		if err := store.DeleteMatch(matchID); err != nil {
			writeStoreError(w, r, err, "Failed to delete match")
			return
		}
		log.FromContext(r.Context()).Info("Match deleted", "matchID", matchID)
		mutated(r, m, ps, entityMatch, matchID, pubsub.ActionDelete)
		w.WriteHeader(http.StatusNoContent)
	}
}
