package bpipe

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

// Middleware is a single stage of the pipeline. It either continues with a (possibly new)
// context, finishes the pipeline with a response or fails it with an error.
type Middleware interface {
	ServePipe(c *Context) (Outcome, error)
}

// MiddlewareFunc allow casting a function to implement [Middleware].
type MiddlewareFunc func(c *Context) (Outcome, error)

// ServePipe implements the [Middleware] interface.
func (f MiddlewareFunc) ServePipe(c *Context) (Outcome, error) {
	return f(c)
}

// HandlerFunc is a terminal stage: it always finishes the pipeline with the response it
// returns.
type HandlerFunc func(c *Context) (*Response, error)

// ServePipe implements the [Middleware] interface.
func (f HandlerFunc) ServePipe(c *Context) (Outcome, error) {
	resp, err := f(c)
	if err != nil {
		return Outcome{}, err
	}

	if resp == nil {
		return Outcome{}, errors.New("handler returned no response")
	}

	return Finish(resp), nil
}

// StdHandler turns a standard library [http.Handler] into a terminal stage. The handler
// writes into a buffered [Response], it owns the status code so errors it renders itself
// are not seen by the pipeline.
func StdHandler(h http.Handler) HandlerFunc {
	return func(c *Context) (*Response, error) {
		resp := NewResponse(http.StatusOK)
		h.ServeHTTP(resp, c.Request())

		return resp, nil
	}
}

// Chain is an ordered list of stages.
type Chain []Middleware

// NewChain creates a chain from the given stages, nil stages are left out.
func NewChain(stages ...Middleware) Chain {
	ch := make(Chain, 0, len(stages))
	for _, s := range stages {
		if s != nil {
			ch = append(ch, s)
		}
	}

	return ch
}

// With returns a new chain with the stages appended, ch itself is not modified.
func (ch Chain) With(stages ...Middleware) Chain {
	return append(append(Chain{}, ch...), NewChain(stages...)...)
}

// Run executes the stages in order. The first stage that finishes or fails ends the run
// and later stages never execute. When every stage continues the result is a Continue
// outcome with the last context, which the caller should treat as a missing response.
func (ch Chain) Run(c *Context) (Outcome, error) {
	if c == nil {
		return Outcome{}, errors.New("cannot run chain without a context")
	}

	for i, stage := range ch {
		if err := c.Err(); err != nil {
			return Outcome{}, errors.Wrapf(err, "request done before stage %d", i)
		}

		out, err := serveStage(stage, c)
		if err != nil {
			return Outcome{}, err
		}

		if out.Finished() {
			if out.Response() == nil {
				return Outcome{}, errors.Newf("stage %d finished without a response", i)
			}

			return out, nil
		}

		if out.Context() == nil {
			return Outcome{}, errors.Newf("stage %d continued without a context", i)
		}

		c = out.Context()
	}

	return Continue(c), nil
}

func serveStage(stage Middleware, c *Context) (out Outcome, err error) {
	defer func() {
		switch r := recover().(type) {
		case nil:
		case error:
			if r == http.ErrAbortHandler { //nolint:errorlint
				panic(r)
			}

			err = errors.Wrap(r, "stage panicked")
		default:
			err = errors.Newf("stage panicked: %v", r)
		}
	}()

	return stage.ServePipe(c)
}
