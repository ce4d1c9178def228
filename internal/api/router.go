package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Siteline-Labs/Siteline/internal/analysis"
	"github.com/Siteline-Labs/Siteline/internal/analyze"
	"github.com/Siteline-Labs/Siteline/internal/config"
	"github.com/Siteline-Labs/Siteline/internal/engine"
	"github.com/Siteline-Labs/Siteline/internal/rules"
)

func NewRouter(svc *analyze.Service, eng *engine.Engine, ruleEngine *rules.Engine,
	planner *analysis.Planner, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	stats := newStats()

	analyses := NewAnalysesHandler(svc, stats)
	score := NewScoreHandler(eng, ruleEngine, cfg.Engine.WeightAdjustment, stats)
	scenarios := NewScenariosHandler(svc, planner, cfg.Engine, stats)
	catalog := NewCatalogHandler()
	admin := NewAdminHandler(stats)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyses", analyses.Create)

		r.Post("/score", score.Score)
		r.Post("/rules", score.Rules)
		r.Post("/sensitivity", score.Sensitivity)

		r.Post("/scenarios", scenarios.Scenarios)
		r.Post("/montecarlo", scenarios.MonteCarlo)

		r.Get("/catalog", catalog.Catalog)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.Server.AdminToken))
			r.Get("/stats", admin.Stats)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
