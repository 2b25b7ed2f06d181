package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/padel-stats/internal/club"
	"github.com/mauv0809/padel-stats/internal/matchmaking"
	"github.com/mauv0809/padel-stats/internal/metrics"
	"github.com/mauv0809/padel-stats/internal/notifier"
	"github.com/mauv0809/padel-stats/internal/pubsub"
)

const entityPair = "pair"

func ListPairsHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pairs, err := store.GetAllPairs()
		if err != nil {
			http.Error(w, "Failed to get pairs", http.StatusInternalServerError)
			log.FromContext(r.Context()).Error("Failed to get pairs from store", "error", err)
			return
		}
		writeJSON(w, http.StatusOK, pairs)
	}
}

type createPairRequest struct {
	Name      string `json:"name"`
	Player1ID string `json:"player1_id"`
	Player2ID string `json:"player2_id"`
}

func CreatePairHandler(store club.ClubStore, m metrics.Metrics, ps pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPairRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		pair, err := store.AddPair(req.Name, req.Player1ID, req.Player2ID)
		if err != nil {
			writeStoreError(w, r, err, "Failed to create pair")
			return
		}
		log.FromContext(r.Context()).Info("Pair created", "pairID", pair.ID, "name", pair.Name)
		mutated(r, m, ps, entityPair, pair.ID, pubsub.ActionCreate)
		writeJSON(w, http.StatusCreated, pair)
	}
}

func DeletePairHandler(store club.ClubStore, m metrics.Metrics, ps pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pairID := chi.URLParam(r, "pairID")
		if err := store.DeletePair(pairID); err != nil {
			writeStoreError(w, r, err, "Failed to delete pair")
			return
		}
		log.FromContext(r.Context()).Info("Pair deleted", "pairID", pairID)
		mutated(r, m, ps, entityPair, pairID, pubsub.ActionDelete)
		w.WriteHeader(http.StatusNoContent)
	}
}

type generatePairsRequest struct {
	PlayerIDs []string `json:"player_ids"`
}

// GeneratePairsHandler draws two random teams from four registered players.
// With ?announce=true the draw is posted to Slack as well.
func GeneratePairsHandler(store club.ClubStore, generator matchmaking.PairGenerator, n notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generatePairsRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if len(req.PlayerIDs) != 2*matchmaking.TeamSize {
			http.Error(w, "Exactly 4 players are required", http.StatusBadRequest)
			return
		}
		players, err := store.GetPlayers(req.PlayerIDs)
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.FromContext(r.Context()).Error("Failed to get players from store", "error", err, "playerIDs", req.PlayerIDs)
			return
		}
		teams, ok := generator.GeneratePairs(matchmaking.FromClub(players))
		if !ok {
			http.Error(w, "Exactly 4 distinct registered players are required", http.StatusBadRequest)
			return
		}
		if r.URL.Query().Get("announce") == "true" {
			if err := n.SendGeneratedPairs(teams, IsDryRunFromContext(r)); err != nil {
				log.FromContext(r.Context()).Error("Failed to announce generated pairs", "error", err)
			}
		}
		writeJSON(w, http.StatusOK, teams)
	}
}
