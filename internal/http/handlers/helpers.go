package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-stats/internal/club"
	"github.com/mauv0809/padel-stats/internal/metrics"
	"github.com/mauv0809/padel-stats/internal/pubsub"
	"github.com/mauv0809/padel-stats/internal/stats"
	"github.com/prometheus/client_golang/prometheus"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// statusFor maps store errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, club.ErrEmptyName),
		errors.Is(err, club.ErrInvalidPair),
		errors.Is(err, club.ErrInvalidMatch):
		return http.StatusBadRequest
	case errors.Is(err, club.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, club.ErrPlayerInUse), errors.Is(err, club.ErrPairInUse):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeStoreError reports a store failure. Client errors carry the store's message,
// server errors only the generic one.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.FromContext(r.Context()).Error(msg, "error", err)
		http.Error(w, msg, status)
		return
	}
	log.FromContext(r.Context()).Warn(msg, "error", err, "status", status)
	http.Error(w, err.Error(), status)
}

// mutated records a successful write and tells downstream consumers that every
// standings view derived from it is stale. Publishing failures never fail the write.
func mutated(r *http.Request, m metrics.Metrics, ps pubsub.PubSubClient, entity string, id string, action pubsub.Action) {
	m.IncMutation(entity, string(action))
	inv := pubsub.Invalidation{Entity: entity, ID: id, Action: action}
	if err := ps.SendMessage(pubsub.EventStandingsInvalidated, inv); err != nil {
		log.FromContext(r.Context()).Error("Failed to publish standings invalidation", "error", err, "entity", entity, "id", id)
	}
}

// computeRankings loads one snapshot of players and matches and ranks it.
func computeRankings(store club.ClubStore, engine *stats.Engine, m metrics.Metrics) (stats.Rankings, error) {
	players, matches, err := snapshot(store)
	if err != nil {
		return stats.Rankings{}, err
	}
	timer := prometheus.NewTimer(prometheus.ObserverFunc(m.ObserveRankingDuration))
	rankings := engine.Compute(players, matches)
	timer.ObserveDuration()
	m.IncRankingsComputed()
	return rankings, nil
}

func snapshot(store club.ClubStore) ([]club.Player, []club.Match, error) {
	players, err := store.GetAllPlayers()
	if err != nil {
		return nil, nil, err
	}
	matches, err := store.GetAllMatches()
	if err != nil {
		return nil, nil, err
	}
	return players, matches, nil
}
