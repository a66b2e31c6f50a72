// Package readiness maintains a cached, asynchronously refreshed sample of
// backing-store health. The sample gates whether the process reports itself
// ready; it is refreshed passively by real store traffic and actively by a
// single-flight probe when readiness is queried while the sample is stale.
package readiness

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// Sample is the cached health verdict. It is process-wide, single-slot, and
// replaced atomically; a reader never observes a partial update.
type Sample struct {
	Healthy    bool      `json:"healthy"`
	ObservedAt time.Time `json:"observedAt"`
}

// Defaults for the monitor's timing knobs.
const (
	DefaultBootstrapAttempts = 10
	DefaultBootstrapBackoff  = time.Second
	DefaultIdleThreshold     = 5 * time.Second
	DefaultProbeTimeout      = 2 * time.Second
)

// Monitor owns the sample slot and the in-flight gate. The slot and the gate
// are the only mutable shared state; both are lock-free.
type Monitor struct {
	probe         func(ctx context.Context) error
	idleThreshold time.Duration
	probeTimeout  time.Duration
	logger        *slog.Logger

	sample   atomic.Pointer[Sample]
	inflight atomic.Bool
}

// Option configures the Monitor.
type Option func(*Monitor)

// WithIdleThreshold sets the sample age beyond which a readiness query
// triggers an active refresh.
func WithIdleThreshold(d time.Duration) Option {
	return func(m *Monitor) { m.idleThreshold = d }
}

// WithProbeTimeout bounds a single probe round trip.
func WithProbeTimeout(d time.Duration) Option {
	return func(m *Monitor) { m.probeTimeout = d }
}

// New creates a monitor around a connectivity probe. The probe must be a
// trivial round trip against the backing store (a ping), cheap enough to run
// on every refresh.
func New(probe func(ctx context.Context) error, logger *slog.Logger, opts ...Option) *Monitor {
	m := &Monitor{
		probe:         probe,
		idleThreshold: DefaultIdleThreshold,
		probeTimeout:  DefaultProbeTimeout,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.sample.Store(&Sample{Healthy: false, ObservedAt: time.Time{}})
	return m
}

// Bootstrap blocks until the backing store answers a probe, retrying up to
// attempts times with a fixed backoff. Connectivity at boot is a hard
// precondition: on exhaustion the caller must treat the error as fatal.
func (m *Monitor) Bootstrap(ctx context.Context, attempts int, backoff time.Duration) error {
	if attempts <= 0 {
		attempts = DefaultBootstrapAttempts
	}
	if backoff <= 0 {
		backoff = DefaultBootstrapBackoff
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		probeCtx, cancel := context.WithTimeout(ctx, m.probeTimeout)
		err := m.probe(probeCtx)
		cancel()
		if err == nil {
			m.store(true)
			return nil
		}
		lastErr = err
		m.logger.WarnContext(ctx, "backing store not reachable yet",
			"attempt", attempt,
			"attempts", attempts,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	m.store(false)
	return fmt.Errorf("backing store unreachable after %d attempts: %w", attempts, lastErr)
}

// Observe records the outcome of a store operation performed elsewhere in the
// system, overwriting the sample with a fresh verdict. Called on every store
// round trip via the observed store decorator.
func (m *Monitor) Observe(err error) {
	m.store(err == nil)
}

// Current returns the cached sample immediately. When the sample is older
// than the idle threshold, at most one caller wins the in-flight gate and
// triggers an asynchronous probe; everyone else returns the stale sample
// without blocking.
func (m *Monitor) Current() Sample {
	s := m.sample.Load()
	if time.Since(s.ObservedAt) > m.idleThreshold && m.inflight.CompareAndSwap(false, true) {
		go m.refresh()
	}
	return *s
}

func (m *Monitor) refresh() {
	defer m.inflight.Store(false)
	ctx, cancel := context.WithTimeout(context.Background(), m.probeTimeout)
	defer cancel()
	err := m.probe(ctx)
	if err != nil {
		m.logger.Warn("readiness probe failed", "error", err)
	}
	m.store(err == nil)
}

func (m *Monitor) store(healthy bool) {
	m.sample.Store(&Sample{Healthy: healthy, ObservedAt: time.Now()})
}
