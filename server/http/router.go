package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"pharma-match/internal/config"
	matchHnd "pharma-match/internal/match/handler"
	matchSvc "pharma-match/internal/match/service"
	"pharma-match/internal/middleware"
	"pharma-match/server/http/handlers"
)

func NewRouter(cfg config.Config, m *matchSvc.Matcher, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	r.Get("/health", handlers.Health)

	// inference demo surface
	r.Get("/lookup", matchHnd.Lookup(cfg, m, logger))
	r.Post("/match", matchHnd.Match(cfg, m, logger))

	return r
}
