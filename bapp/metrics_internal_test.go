package bapp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/advdv/bpipe"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics(testEnv{})

	handler := m.instrument(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	for range 3 {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}

	assert.InDelta(t, 3, testutil.ToFloat64(m.requests.WithLabelValues("418", "get")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.inflight), 0)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	out, err := bpipe.NewChain(m.handler()).Run(bpipe.NewContext(req, nil, bpipe.NewStore()))
	require.NoError(t, err)
	require.True(t, out.Finished())

	resp := out.Response()
	assert.Equal(t, http.StatusOK, resp.Status())
	assert.Contains(t, string(resp.Body()), `http_requests_total{code="418",method="get",service="test"} 3`)
	assert.Contains(t, string(resp.Body()), "go_goroutines")
}
