// Package httpapi assembles the HTTP surface: decision endpoints, management
// CRUD, health probes, and metrics. Handlers stay thin; business logic lives
// in the feature packages.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registrar is implemented by feature handlers that mount their own routes.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter wires all endpoints.
func NewRouter(health *Health, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)

	r.Get("/health/liveness", health.HandleLiveness)
	r.Get("/health/readiness", health.HandleReadiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	for _, h := range handlers {
		h.Register(r)
	}
	return r
}
