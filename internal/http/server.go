package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/padel-stats/internal/club"
	"github.com/mauv0809/padel-stats/internal/config"
	"github.com/mauv0809/padel-stats/internal/http/handlers"
	"github.com/mauv0809/padel-stats/internal/matchmaking"
	"github.com/mauv0809/padel-stats/internal/metrics"
	"github.com/mauv0809/padel-stats/internal/notifier"
	"github.com/mauv0809/padel-stats/internal/pubsub"
	"github.com/mauv0809/padel-stats/internal/stats"
)

func NewServer(store club.ClubStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient, generator matchmaking.PairGenerator) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Engine:         stats.NewEngine(cfg.ScoringMode, stats.ResolverFor(cfg.TeamMode)),
		Notifier:       notifier,
		PubSub:         pubsub,
		Pairs:          generator,
		Router:         chi.NewRouter(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(handler, paramsMiddleware, authMiddleware)
	r := s.Router
	r.Handle("/metrics", s.MetricsHandler)
	r.Method(http.MethodGet, "/health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))

	r.Method(http.MethodGet, "/players", Chain(handlers.ListPlayersHandler(s.Store), paramsMiddleware))
	r.Method(http.MethodPost, "/players", Chain(handlers.CreatePlayerHandler(s.Store, s.Metrics, s.PubSub), paramsMiddleware))
	r.Method(http.MethodDelete, "/players/{playerID}", Chain(handlers.DeletePlayerHandler(s.Store, s.Metrics, s.PubSub), paramsMiddleware))

	r.Method(http.MethodGet, "/pairs", Chain(handlers.ListPairsHandler(s.Store), paramsMiddleware))
	r.Method(http.MethodPost, "/pairs", Chain(handlers.CreatePairHandler(s.Store, s.Metrics, s.PubSub), paramsMiddleware))
	r.Method(http.MethodPost, "/pairs/generate", Chain(handlers.GeneratePairsHandler(s.Store, s.Pairs, s.Notifier), paramsMiddleware))
	r.Method(http.MethodDelete, "/pairs/{pairID}", Chain(handlers.DeletePairHandler(s.Store, s.Metrics, s.PubSub), paramsMiddleware))

	r.Method(http.MethodGet, "/matches", Chain(handlers.ListMatchesHandler(s.Store), paramsMiddleware))
	r.Method(http.MethodPost, "/matches", Chain(handlers.CreateMatchHandler(s.Store, s.Metrics, s.PubSub, s.Notifier), paramsMiddleware))
	r.Method(http.MethodDelete, "/matches/{matchID}", Chain(handlers.DeleteMatchHandler(s.Store, s.Metrics, s.PubSub), paramsMiddleware))

	r.Method(http.MethodGet, "/rankings", Chain(handlers.RankingsHandler(s.Store, s.Engine, s.Metrics), paramsMiddleware))
	r.Method(http.MethodPost, "/rankings/announce", Chain(handlers.AnnounceRankingsHandler(s.Store, s.Engine, s.Metrics, s.Notifier), paramsMiddleware))
	r.Method(http.MethodGet, "/money", Chain(handlers.MoneyHandler(s.Store, s.Engine), paramsMiddleware))
	r.Method(http.MethodGet, "/money/timeline", Chain(handlers.MoneyTimelineHandler(s.Store, s.Engine), paramsMiddleware))

	r.Method(http.MethodPost, "/pubsub/standings-invalidated", Chain(handlers.StandingsInvalidatedHandler(s.Store, s.Engine, s.Metrics, s.Notifier, s.PubSub), paramsMiddleware))
	r.Method(http.MethodPost, "/slack/command/standings", Chain(handlers.StandingsCommandHandler(s.Store, s.Engine, s.Metrics, s.Notifier), paramsMiddleware, slackVerificationMiddleware(s.Cfg.Slack.SigningSecret)))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
