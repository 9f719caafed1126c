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

func TestObserveDAO(t *testing.T) {
	m := New()

	m.ObserveDAO("user", "get", "ok", 3*time.Millisecond)
	m.ObserveDAO("user", "get", "ok", 5*time.Millisecond)
	m.ObserveDAO("user", "get", "not_found", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.daoCalls.WithLabelValues("user", "get", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.daoCalls.WithLabelValues("user", "get", "not_found")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.daoDuration))
}

func TestObserveHTTP(t *testing.T) {
	m := New()

	m.ObserveHTTP(http.MethodGet, "/api/assets", http.StatusOK, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/assets", "200")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveDAO("asset", "get_all", "ok", time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `assettrack_dao_calls_total{entity="asset",operation="get_all",outcome="ok"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
