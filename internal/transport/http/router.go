package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"formtrail/internal/platform/metrics"
	"formtrail/internal/platform/middleware"
	"formtrail/pkg/platform/httputil"
)

// Registrar is implemented by every module handler.
type Registrar interface {
	Register(r chi.Router)
}

// RouterConfig carries the cross-cutting dependencies of a router.
type RouterConfig struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	AllowedOrigins []string
	RequestTimeout time.Duration
	// HealthCheck, when set, backs GET /health with a dependency probe.
	HealthCheck func(ctx context.Context) error
}

// NewRouter wires the shared middleware chain, health and metrics endpoints,
// and every module's routes. Handlers stay free of transport concerns.
func NewRouter(cfg RouterConfig, modules ...Registrar) http.Handler {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(middleware.LatencyMiddleware(cfg.Metrics))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if cfg.HealthCheck != nil {
			if err := cfg.HealthCheck(req.Context()); err != nil {
				cfg.Logger.WarnContext(req.Context(), "health check failed",
					"request_id", middleware.GetRequestID(req.Context()),
					"error", err,
				)
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(api chi.Router) {
		api.Use(middleware.Timeout(timeout))
		api.Use(middleware.ContentTypeJSON)
		for _, m := range modules {
			m.Register(api)
		}
	})
	return r
}
