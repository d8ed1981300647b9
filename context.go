package bpipe

import (
	"context"
	"net/http"
)

// Context is created once for every recognized request and handed from stage to stage. It
// embeds the request's context.Context so it can be passed directly to blocking calls and
// reports cancellation of the request.
//
// A stage that continues the pipeline passes its Context on through [Continue] and must
// not use it afterwards.
type Context struct {
	context.Context

	req    *http.Request
	caps   Captures
	local  *Store
	shared *Store
	hooks  *[]func(*Response)
}

// NewContext creates a Context with an empty request-local store.
func NewContext(r *http.Request, caps Captures, shared *Store) *Context {
	return &Context{
		Context: r.Context(),
		req:     r,
		caps:    caps,
		local:   NewStore(),
		shared:  shared,
		hooks:   new([]func(*Response)),
	}
}

// Request returns the inbound request.
func (c *Context) Request() *http.Request { return c.req }

// Captures returns the captures of the matched route pattern.
func (c *Context) Captures() Captures { return c.caps }

// Capture returns the value of the named capture group.
func (c *Context) Capture(name string) (string, bool) { return c.caps.Get(name) }

// Local returns the request-local store.
func (c *Context) Local() *Store { return c.local }

// Shared returns the server-wide store. It is frozen, attempts to modify it panic.
func (c *Context) Shared() *Store { return c.shared }

// WithRequest returns a new Context for r that keeps the captures, both stores and the
// response hooks of c. Use it to pass a request with a modified context.Context down the
// pipeline.
func (c *Context) WithRequest(r *http.Request) *Context {
	c2 := *c
	c2.Context, c2.req = r.Context(), r

	return &c2
}

// OnResponse registers fn to be called with the final response of the request, whichever
// stage produced it. Hooks run in reverse order of registration.
func (c *Context) OnResponse(fn func(*Response)) {
	*c.hooks = append(*c.hooks, fn)
}

func (c *Context) runHooks(resp *Response) {
	hooks := *c.hooks
	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i](resp)
	}
}
