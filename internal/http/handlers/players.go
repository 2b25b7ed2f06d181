package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/padel-stats/internal/club"
	"github.com/mauv0809/padel-stats/internal/metrics"
	"github.com/mauv0809/padel-stats/internal/pubsub"
)

const entityPlayer = "player"

func ListPlayersHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := store.GetAllPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.FromContext(r.Context()).Error("Failed to get players from store", "error", err)
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

type createPlayerRequest struct {
	Name string `json:"name"`
}

func CreatePlayerHandler(store club.ClubStore, m metrics.Metrics, ps pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPlayerRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		player, err := store.AddPlayer(req.Name)
		if err != nil {
			writeStoreError(w, r, err, "Failed to create player")
			return
		}
		log.FromContext(r.Context()).Info("Player created", "playerID", player.ID, "name", player.Name)
		mutated(r, m, ps, entityPlayer, player.ID, pubsub.ActionCreate)
		writeJSON(w, http.StatusCreated, player)
	}
}

func DeletePlayerHandler(store club.ClubStore, m metrics.Metrics, ps pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := chi.URLParam(r, "playerID")
		if err := store.DeletePlayer(playerID); err != nil {
			writeStoreError(w, r, err, "Failed to delete player")
			return
		}
		log.FromContext(r.Context()).Info("Player deleted", "playerID", playerID)
		mutated(r, m, ps, entityPlayer, playerID, pubsub.ActionDelete)
		w.WriteHeader(http.StatusNoContent)
	}
}
