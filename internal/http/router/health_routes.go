package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	ctrl "github.com/umdev/infoeste/internal/http/controllers/health"
)

// registerHealthRoutes registra las rutas operativas (todas públicas).
func registerHealthRoutes(r chi.Router, c *ctrl.Controllers, metrics http.Handler) {
	// GET /healthz - liveness
	r.Get("/healthz", c.Health.Healthz)

	// GET /readyz - storage + cache
	r.Get("/readyz", c.Health.Readyz)

	// GET /metrics - Prometheus
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}
}
