package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveUpstream(t *testing.T) {
	m := New()
	m.ObserveUpstream("memorials", "list", "ok", 20*time.Millisecond)
	m.ObserveUpstream("memorials", "list", "ok", 10*time.Millisecond)
	m.ObserveUpstream("memorials", "delete", "not_found", time.Millisecond)
	m.StaleResult("memorials")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.upstreamRequests.WithLabelValues("memorials", "list", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.upstreamRequests.WithLabelValues("memorials", "delete", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.staleResults.WithLabelValues("memorials")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "petalert_upstream_requests_total")
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveUpstream("k", "op", "ok", time.Second)
		m.StaleResult("k")
	})
}
