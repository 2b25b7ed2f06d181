package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-stats/internal/club"
	"github.com/mauv0809/padel-stats/internal/ledger"
	"github.com/mauv0809/padel-stats/internal/metrics"
	"github.com/mauv0809/padel-stats/internal/notifier"
	"github.com/mauv0809/padel-stats/internal/stats"
)

func RankingsHandler(store club.ClubStore, engine *stats.Engine, m metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rankings, err := computeRankings(store, engine, m)
		if err != nil {
			http.Error(w, "Failed to compute rankings", http.StatusInternalServerError)
			log.FromContext(r.Context()).Error("Failed to load rankings snapshot", "error", err)
			return
		}
		writeJSON(w, http.StatusOK, rankings)
	}
}

// AnnounceRankingsHandler posts the current standings to Slack.
func AnnounceRankingsHandler(store club.ClubStore, engine *stats.Engine, m metrics.Metrics, n notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rankings, err := computeRankings(store, engine, m)
		if err != nil {
			http.Error(w, "Failed to compute rankings", http.StatusInternalServerError)
			log.FromContext(r.Context()).Error("Failed to load rankings snapshot", "error", err)
			return
		}
		if err := n.SendStandings(rankings, IsDryRunFromContext(r)); err != nil {
			http.Error(w, "Failed to announce rankings", http.StatusBadGateway)
			return
		}
		w.Write([]byte("OK"))
	}
}

// MoneyHandler returns the per-player money ledger, best balance first.
func MoneyHandler(store club.ClubStore, engine *stats.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		balances, ok := moneyLedger(w, r, store, engine)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, balances)
	}
}

// MoneyTimelineHandler returns every player's running balance per match day.
func MoneyTimelineHandler(store club.ClubStore, engine *stats.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		balances, ok := moneyLedger(w, r, store, engine)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, ledger.Timeline(balances))
	}
}

func moneyLedger(w http.ResponseWriter, r *http.Request, store club.ClubStore, engine *stats.Engine) ([]ledger.PlayerBalance, bool) {
	players, matches, err := snapshot(store)
	if err != nil {
		http.Error(w, "Failed to compute money ledger", http.StatusInternalServerError)
		log.FromContext(r.Context()).Error("Failed to load ledger snapshot", "error", err)
		return nil, false
	}
	return ledger.Compute(engine.Scoring(), players, matches), true
}
