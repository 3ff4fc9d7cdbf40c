package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveLogin(t *testing.T) {
	m := NewMetrics()

	m.ObserveLogin(LoginSuccess)
	m.ObserveLogin(LoginSuccess)
	m.ObserveLogin(LoginPendingApproval)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.LoginAttemptsTotal.WithLabelValues(LoginSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginAttemptsTotal.WithLabelValues(LoginPendingApproval)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.LoginAttemptsTotal.WithLabelValues(LoginInvalidCredentials)))
}

func TestTokenIssuedAndCache(t *testing.T) {
	m := NewMetrics()

	m.TokenIssued()
	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveCache(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.TokensIssuedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProductCacheTotal.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ProductCacheTotal.WithLabelValues("miss")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveLogin(LoginSuccess)
		m.TokenIssued()
		m.ObserveCache(true)
		m.ObserveRequest("GET", "/x", "200", 0.1)
	})
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := NewMetrics()
	m.ObserveRequest(http.MethodGet, "/api/v1/products", "200", 0.01)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `pharmacy_http_requests_total{method="GET",route="/api/v1/products",status="200"} 1`)
}
