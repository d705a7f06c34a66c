package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/presentation/rest/middleware"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/auth"
)

// RouterConfig holds the cross-cutting HTTP settings.
type RouterConfig struct {
	// JWT enables bearer token authentication on /api routes when set.
	JWT            *auth.JWTService
	MetricsHandler http.Handler
	RateLimit      float64
	RequestTimeout time.Duration
}

// NewRouter assembles the chi router for the sentinel API.
func NewRouter(h *SentinelHandler, health *HealthHandler, cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", health.liveness)
	r.Get("/readyz", health.readiness)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimit, 0))
		if cfg.RequestTimeout > 0 {
			r.Use(chimw.Timeout(cfg.RequestTimeout))
		}
		if cfg.JWT != nil {
			r.Use(middleware.Auth(cfg.JWT, nil))
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleOperator, auth.RoleAPIClient))
			r.Post("/onboarding", h.runOnboarding)
			r.Post("/transactions/monitor", h.monitorTransaction)
			r.Post("/sim-swap/assess", h.assessSimSwap)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleOperator, auth.RoleAnalyst))
			r.Get("/decisions", h.listDecisions)
			r.Get("/decisions/{id}", h.getDecision)
			r.Get("/controls/{subject_id}", h.getControlState)
		})
	})

	return r
}
