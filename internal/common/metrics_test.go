package common

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	m.Observe("GET", "/api/public/feed", 200, 15*time.Millisecond)
	m.Observe("GET", "/api/public/feed", 200, 5*time.Millisecond)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `http_requests_total{method="GET",route="/api/public/feed",status="200"} 2`)
	assert.Contains(t, string(body), "http_request_duration_seconds_bucket")
}
