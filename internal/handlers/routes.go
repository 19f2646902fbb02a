package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig carries the cross-cutting settings of the HTTP surface
type RouterConfig struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
	Limiter        *RateLimiter // nil disables rate limiting
}

// Routes builds the API router
func (h *Handler) Routes(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Admin-Token", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Limiter != nil {
			r.Use(cfg.Limiter.Middleware)
		}
		if cfg.RequestTimeout > 0 {
			r.Use(middleware.Timeout(cfg.RequestTimeout))
		}

		r.Get("/sports", h.ListSports)
		r.Get("/sports/{sport}", h.GetSport)

		r.Route("/players", func(r chi.Router) {
			r.Get("/compare", h.ComparePlayers)
			r.Get("/{id}/injury-risk", h.GetInjuryRisk)
			r.Get("/{id}/performance", h.GetPerformance)
			r.Get("/{id}/market-value", h.GetMarketValue)
		})

		r.Route("/teams/{id}", func(r chi.Router) {
			r.Get("/injury-risk", h.GetTeamInjuryRisk)
			r.Get("/performance", h.GetTeamPerformance)
			r.Get("/market-value", h.GetTeamMarketValue)
		})

		r.Post("/events/player-updated", h.PlayerUpdated)

		r.With(h.AdminAuthMiddleware).Post("/system/install", h.InstallDatabase)
	})

	return r
}

// RequestLogger logs one structured line per request
func (h *Handler) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		fields := []interface{}{
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"requestId", middleware.GetReqID(r.Context()),
		}
		if status >= http.StatusInternalServerError {
			h.logger.Warnw("Request failed", fields...)
			return
		}
		h.logger.Debugw("Request served", fields...)
	})
}
