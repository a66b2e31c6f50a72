package httpapi_test

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpapi "github.com/statisticsnorway/dataset-access-sub000/internal/http"
	"github.com/statisticsnorway/dataset-access-sub000/internal/readiness"
	"github.com/statisticsnorway/dataset-access-sub000/internal/platform/logger"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/testutil"
)

func newTestRouter(probeErr error, acceptingConns bool) http.Handler {
	monitor := readiness.New(func(context.Context) error { return probeErr }, logger.New())
	monitor.Observe(probeErr)
	accepting := &atomic.Bool{}
	accepting.Store(acceptingConns)
	return httpapi.NewRouter(httpapi.NewHealth(monitor, accepting))
}

func TestHandleLiveness(t *testing.T) {
	router := newTestRouter(errors.New("store down"), false)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/health/liveness", nil))
	// Liveness ignores store health and the accepting flag.
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"alive"}`, rr.Body.String())
}

func TestHandleReadiness(t *testing.T) {
	type response struct {
		Ready  bool             `json:"ready"`
		Server bool             `json:"server"`
		Store  readiness.Sample `json:"store"`
	}

	tests := []struct {
		name       string
		probeErr   error
		accepting  bool
		wantStatus int
		wantReady  bool
	}{
		{"healthy and accepting", nil, true, http.StatusOK, true},
		{"store unhealthy", errors.New("store down"), true, http.StatusServiceUnavailable, false},
		{"listener not up yet", nil, false, http.StatusServiceUnavailable, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(tt.probeErr, tt.accepting)
			rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/health/readiness", nil))

			require.Equal(t, tt.wantStatus, rr.Code)
			body := testutil.DecodeBody[response](t, rr)
			assert.Equal(t, tt.wantReady, body.Ready)
			assert.Equal(t, tt.accepting, body.Server)
			assert.Equal(t, tt.probeErr == nil, body.Store.Healthy)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(nil, true)
	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	router := newTestRouter(nil, true)

	t.Run("generates an id", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/health/liveness", nil))
		assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
	})

	t.Run("honors inbound id", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodGet, "/health/liveness", nil)
		req.Header.Set("X-Request-Id", "upstream-id")
		rr := testutil.DoRequest(router, req)
		assert.Equal(t, "upstream-id", rr.Header().Get("X-Request-Id"))
	})
}
