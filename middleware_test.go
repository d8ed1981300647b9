package bpipe_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/advdv/bpipe"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) *bpipe.Context {
	t.Helper()

	return bpipe.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), nil, bpipe.NewStore())
}

func record(trace *[]string, name string) bpipe.MiddlewareFunc {
	return func(c *bpipe.Context) (bpipe.Outcome, error) {
		*trace = append(*trace, name)
		return bpipe.Continue(c), nil
	}
}

func TestChainRun(t *testing.T) {
	t.Run("runs stages in order", func(t *testing.T) {
		var trace []string
		ch := bpipe.NewChain(record(&trace, "a"), nil, record(&trace, "b"), text("done"))
		require.Len(t, ch, 3)

		out, err := ch.Run(newTestContext(t))
		require.NoError(t, err)
		require.True(t, out.Finished())
		require.Equal(t, []string{"a", "b"}, trace)
		require.Equal(t, "done", string(out.Response().Body()))
	})

	t.Run("finish skips the rest", func(t *testing.T) {
		var calls int
		counting := bpipe.MiddlewareFunc(func(c *bpipe.Context) (bpipe.Outcome, error) {
			calls++
			return bpipe.Continue(c), nil
		})

		resp := bpipe.Text(http.StatusAccepted, "early")
		ch := bpipe.NewChain(bpipe.MiddlewareFunc(func(*bpipe.Context) (bpipe.Outcome, error) {
			return bpipe.Finish(resp), nil
		}), counting, counting, text("never"))

		for range 3 {
			out, err := ch.Run(newTestContext(t))
			require.NoError(t, err)
			require.Same(t, resp, out.Response())
		}

		require.Zero(t, calls)
	})

	t.Run("error skips the rest", func(t *testing.T) {
		var trace []string
		ch := bpipe.NewChain(bpipe.HandlerFunc(func(*bpipe.Context) (*bpipe.Response, error) {
			return nil, errors.New("boom")
		}), record(&trace, "after"))

		_, err := ch.Run(newTestContext(t))
		require.EqualError(t, err, "boom")
		require.Empty(t, trace)
	})

	t.Run("continue passes the new context", func(t *testing.T) {
		ch := bpipe.NewChain(
			bpipe.MiddlewareFunc(func(c *bpipe.Context) (bpipe.Outcome, error) {
				c.Local().Set(greeting("from first"))
				return bpipe.Continue(c.WithRequest(c.Request().WithContext(
					context.WithValue(c, greeting("k"), "v")))), nil
			}),
			bpipe.HandlerFunc(func(c *bpipe.Context) (*bpipe.Response, error) {
				g, err := bpipe.Lookup[greeting](c.Local())
				if err != nil {
					return nil, err
				}

				return bpipe.Text(http.StatusOK, string(g)+" "+c.Value(greeting("k")).(string)), nil
			}),
		)

		out, err := ch.Run(newTestContext(t))
		require.NoError(t, err)
		require.Equal(t, "from first v", string(out.Response().Body()))
	})

	t.Run("unterminated", func(t *testing.T) {
		c := newTestContext(t)
		out, err := bpipe.NewChain(record(new([]string), "a")).Run(c)
		require.NoError(t, err)
		require.False(t, out.Finished())
		require.Same(t, c, out.Context())
	})

	t.Run("invalid outcomes", func(t *testing.T) {
		for name, stage := range map[string]bpipe.MiddlewareFunc{
			"zero":           func(*bpipe.Context) (bpipe.Outcome, error) { return bpipe.Outcome{}, nil },
			"continue nil":   func(*bpipe.Context) (bpipe.Outcome, error) { return bpipe.Continue(nil), nil },
			"finish nil":     func(*bpipe.Context) (bpipe.Outcome, error) { return bpipe.Finish(nil), nil },
			"panic":          func(*bpipe.Context) (bpipe.Outcome, error) { panic("oops") },
			"panic w/ error": func(*bpipe.Context) (bpipe.Outcome, error) { panic(errors.New("oops")) },
		} {
			t.Run(name, func(t *testing.T) {
				_, err := bpipe.NewChain(stage, text("never")).Run(newTestContext(t))
				require.Error(t, err)
			})
		}

		_, err := bpipe.NewChain(bpipe.HandlerFunc(func(*bpipe.Context) (*bpipe.Response, error) {
			return nil, nil
		})).Run(newTestContext(t))
		require.EqualError(t, err, "handler returned no response")
	})

	t.Run("abort handler panics through", func(t *testing.T) {
		ch := bpipe.NewChain(bpipe.MiddlewareFunc(func(*bpipe.Context) (bpipe.Outcome, error) {
			panic(http.ErrAbortHandler)
		}))

		require.PanicsWithValue(t, http.ErrAbortHandler, func() {
			_, _ = ch.Run(newTestContext(t))
		})
	})

	t.Run("cancelled request stops the chain", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
		c := bpipe.NewContext(req, nil, nil)

		var trace []string
		ch := bpipe.NewChain(
			bpipe.MiddlewareFunc(func(c *bpipe.Context) (bpipe.Outcome, error) {
				cancel()
				return bpipe.Continue(c), nil
			}),
			record(&trace, "after"))

		_, err := ch.Run(c)
		require.ErrorIs(t, err, context.Canceled)
		require.Empty(t, trace)
	})
}

func TestChainWith(t *testing.T) {
	var trace []string
	base := bpipe.NewChain(record(&trace, "a"))
	ext := base.With(record(&trace, "b"), nil)

	assert.Len(t, base, 1)
	assert.Len(t, ext, 2)
}

func TestStdHandler(t *testing.T) {
	h := bpipe.StdHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "custom error "+r.URL.Path, http.StatusTeapot)
	}))

	out, err := bpipe.NewChain(h).Run(newTestContext(t))
	require.NoError(t, err)
	require.Equal(t, http.StatusTeapot, out.Response().Status())
	require.Equal(t, "custom error /\n", string(out.Response().Body()))
}
