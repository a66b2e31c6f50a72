package httpapi

import (
	"net/http"
	"sync/atomic"

	"github.com/statisticsnorway/dataset-access-sub000/internal/readiness"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/platform/httputil"
)

// Health exposes the liveness and readiness probes consumed by the
// orchestrator. Readiness combines the cached store health sample with an
// "accepting connections" flag main flips once the listener is up.
type Health struct {
	monitor   *readiness.Monitor
	accepting *atomic.Bool
}

// NewHealth constructs the probe surface.
func NewHealth(monitor *readiness.Monitor, accepting *atomic.Bool) *Health {
	return &Health{monitor: monitor, accepting: accepting}
}

// livenessResponse and readinessResponse are the probe bodies.
type livenessResponse struct {
	Status string `json:"status"`
}

type readinessResponse struct {
	Ready  bool             `json:"ready"`
	Server bool             `json:"server"`
	Store  readiness.Sample `json:"store"`
}

// HandleLiveness answers as long as the process is able to serve requests at
// all; it deliberately ignores backing-store health.
func (h *Health) HandleLiveness(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, livenessResponse{Status: "alive"})
}

// HandleReadiness gates traffic on the cached store sample. The sample read
// never blocks on I/O; a stale sample triggers at most one background probe.
func (h *Health) HandleReadiness(w http.ResponseWriter, _ *http.Request) {
	sample := h.monitor.Current()
	ready := sample.Healthy && h.accepting.Load()
	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	httputil.WriteJSON(w, status, readinessResponse{
		Ready:  ready,
		Server: h.accepting.Load(),
		Store:  sample,
	})
}
