package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/padel-stats/internal/club"
	"github.com/mauv0809/padel-stats/internal/config"
	"github.com/mauv0809/padel-stats/internal/matchmaking"
	"github.com/mauv0809/padel-stats/internal/metrics"
	"github.com/mauv0809/padel-stats/internal/notifier"
	"github.com/mauv0809/padel-stats/internal/pubsub"
	"github.com/mauv0809/padel-stats/internal/stats"
)

type Server struct {
	Store          club.ClubStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Engine         *stats.Engine
	Notifier       notifier.Notifier
	PubSub         pubsub.PubSubClient
	Pairs          matchmaking.PairGenerator
	Router         chi.Router
}
