package bapp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestNewHTTPTransport(t *testing.T) {
	rt := NewHTTPTransport(noop.NewTracerProvider(), propagation.TraceContext{})
	require.NotNil(t, rt)

	client := NewHTTPClient(rt)
	assert.Same(t, rt, client.Transport)
}

type countingTransport struct {
	n    int
	next http.RoundTripper
}

func (t *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	t.n++
	return t.next.RoundTrip(r)
}

func TestRuntimeNewRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"path":"` + r.URL.Path + `"}`))
	}))
	t.Cleanup(srv.Close)

	tr := &countingTransport{next: http.DefaultTransport}
	rt := &Runtime[testEnv]{transport: tr}

	var body struct {
		Path string `json:"path"`
	}

	err := rt.NewRequest().
		BaseURL(srv.URL).
		Path("/items/1").
		ToJSON(&body).
		Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/items/1", body.Path)
	assert.Equal(t, 1, tr.n)
}

func TestRuntimeNewRequestWithoutTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong"))
	}))
	t.Cleanup(srv.Close)

	var got string
	err := (&Runtime[testEnv]{}).NewRequest().
		BaseURL(srv.URL).
		ToString(&got).
		Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pong", got)
}
