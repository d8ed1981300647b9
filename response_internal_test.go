package bpipe

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResponse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var resp Response
		require.Equal(t, http.StatusOK, resp.Status())
		require.Empty(t, resp.Body())
	})

	t.Run("first write header wins", func(t *testing.T) {
		resp := NewResponse(0)
		resp.WriteHeader(http.StatusCreated)
		resp.WriteHeader(http.StatusTeapot)
		require.Equal(t, http.StatusCreated, resp.Status())
	})

	t.Run("write implies header", func(t *testing.T) {
		resp := NewResponse(http.StatusAccepted)
		fmt.Fprint(resp, "hello")
		resp.WriteHeader(http.StatusTeapot)

		require.Equal(t, http.StatusAccepted, resp.Status())
		require.Equal(t, "hello", string(resp.Body()))
		require.Equal(t, 5, resp.Len())
	})

	t.Run("std error rendering", func(t *testing.T) {
		resp := NewResponse(http.StatusOK)
		http.Error(resp, "custom error", http.StatusTeapot)

		require.Equal(t, http.StatusTeapot, resp.Status())
		require.Equal(t, "custom error\n", string(resp.Body()))
		require.Equal(t, "nosniff", resp.Header().Get("X-Content-Type-Options"))
	})

	t.Run("reset", func(t *testing.T) {
		resp := Text(http.StatusBadRequest, "bad").WithHeader("X-Foo", "bar")
		resp.Reset()

		require.Equal(t, http.StatusOK, resp.Status())
		require.Empty(t, resp.Header())
		require.Zero(t, resp.Len())

		resp.WriteHeader(http.StatusNotFound)
		require.Equal(t, http.StatusNotFound, resp.Status())
	})

	t.Run("flush", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rec.Header().Set("X-Foo", "old")

		resp := Text(http.StatusCreated, "first").WithHeader("X-Foo", "new").WithBody("body")
		require.NoError(t, resp.FlushTo(rec))

		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, "body", rec.Body.String())
		require.Equal(t, []string{"new"}, rec.Header().Values("X-Foo"))
		require.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	})

	t.Run("zero value headers", func(t *testing.T) {
		resp := &Response{}
		resp.Header().Set("X-Foo", "bar")
		resp.WithHeader("X-Bar", "baz")

		require.Equal(t, "bar", resp.Header().Get("X-Foo"))
		require.Equal(t, "baz", resp.Header().Get("X-Bar"))
	})

	t.Run("clone", func(t *testing.T) {
		orig := Text(http.StatusUnauthorized, "who").WithHeader("WWW-Authenticate", "Basic")

		cp := orig.clone()
		cp.Header().Set("X-Request-Id", "1")
		cp.Header().Add("WWW-Authenticate", "Bearer")
		fmt.Fprint(cp, " are you")

		require.Equal(t, http.StatusUnauthorized, cp.Status())
		require.Equal(t, "who are you", string(cp.Body()))
		require.Equal(t, "who", string(orig.Body()))
		require.Equal(t, []string{"Basic"}, orig.Header().Values("WWW-Authenticate"))
		require.Empty(t, orig.Header().Get("X-Request-Id"))

		require.NotNil(t, (&Response{}).clone().Header())
	})

	t.Run("flush empty body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, NewResponse(http.StatusNoContent).FlushTo(rec))
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Zero(t, rec.Body.Len())
	})
}
