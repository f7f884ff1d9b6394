package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePath(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", "/"},
		{"/", "/"},
		{"/v1/products/3f1c2b4a-9d8e-4c7b-a6f5-0123456789ab", "/v1/products/:param"},
		{"/v1/products/store/3f1c2b4a-9d8e-4c7b-a6f5-0123456789ab", "/v1/products/store/:param"},
		{"/v1/stores/me", "/v1/stores/me"},
		{"/v1/stores/42?x=1", "/v1/stores/:param"},
		{"//v1//stores", "/v1/stores"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizePath(c.in), "in=%q", c.in)
	}
}

func TestRegister_IdempotentAndServes(t *testing.T) {
	reg := prometheus.NewRegistry()
	h, err := Register(reg, nil)
	require.NoError(t, err)
	_, err = Register(reg, nil)
	require.NoError(t, err)

	ObserveRequest("GET", "/v1/stores", 200, 10*time.Millisecond)
	TokenVerifications.WithLabelValues("ok").Inc()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "http_requests_total")
	assert.Contains(t, string(body), "auth_token_verifications_total")
}

func TestObserveRequest_DefaultsStatus(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("HEAD", "/x", "200"))
	ObserveRequest("HEAD", "/x", 0, time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("HEAD", "/x", "200")))
}
