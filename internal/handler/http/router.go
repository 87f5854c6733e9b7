// Package http serves the daemon's diagnostics endpoints: health, metrics,
// and a live snapshot of initialized widgets.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Moazzam-Sonu/premier-whishList/internal/registry"
	"github.com/Moazzam-Sonu/premier-whishList/pkg/health"
	"github.com/Moazzam-Sonu/premier-whishList/pkg/middleware"
)

// NewRouter creates a chi router with the diagnostics routes registered.
func NewRouter(
	reg *registry.Registry,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))

	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	widgetHandler := NewWidgetHandler(reg, logger)
	r.Route("/api/v1/widgets", func(r chi.Router) {
		r.Get("/", widgetHandler.List)
	})

	return r
}
