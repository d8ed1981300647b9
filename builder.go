package bpipe

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

// Builder collects routes, global middleware and shared state before the [Server] is
// created. Registration errors are collected and returned by [Builder.Build] so routes can
// be declared fluently.
type Builder struct {
	router *Router
	global Chain
	shared *Store
	opts   []Option
	err    error
	built  bool
}

// NewBuilder inits an empty builder.
func NewBuilder() *Builder {
	return &Builder{router: NewRouter(), shared: NewStore()}
}

// Use appends global middleware that runs for every matched request, before the chain of
// the route.
func (b *Builder) Use(stages ...Middleware) *Builder {
	b.ensureNotBuilt()
	b.global = b.global.With(stages...)

	return b
}

// Route registers the stages for the method and pattern.
func (b *Builder) Route(method, pattern string, stages ...Middleware) *Builder {
	return b.Named("", method, pattern, stages...)
}

// Named registers a route that can be reversed by name.
func (b *Builder) Named(name, method, pattern string, stages ...Middleware) *Builder {
	b.ensureNotBuilt()

	if err := b.router.AddRoute(method, pattern, NewChain(stages...), name); err != nil && b.err == nil {
		b.err = errors.Wrapf(err, "failed to add route %s %q", method, pattern)
	}

	return b
}

// Get registers a GET route.
func (b *Builder) Get(pattern string, stages ...Middleware) *Builder {
	return b.Route(http.MethodGet, pattern, stages...)
}

// Post registers a POST route.
func (b *Builder) Post(pattern string, stages ...Middleware) *Builder {
	return b.Route(http.MethodPost, pattern, stages...)
}

// Put registers a PUT route.
func (b *Builder) Put(pattern string, stages ...Middleware) *Builder {
	return b.Route(http.MethodPut, pattern, stages...)
}

// Delete registers a DELETE route.
func (b *Builder) Delete(pattern string, stages ...Middleware) *Builder {
	return b.Route(http.MethodDelete, pattern, stages...)
}

// Head registers a HEAD route.
func (b *Builder) Head(pattern string, stages ...Middleware) *Builder {
	return b.Route(http.MethodHead, pattern, stages...)
}

// Options registers an OPTIONS route.
func (b *Builder) Options(pattern string, stages ...Middleware) *Builder {
	return b.Route(http.MethodOptions, pattern, stages...)
}

// WithState adds values to the shared store, each under its dynamic type.
func (b *Builder) WithState(vals ...any) *Builder {
	b.ensureNotBuilt()

	for _, v := range vals {
		b.shared.Set(v)
	}

	return b
}

// Shared returns the shared store so values can be stored under an interface type with
// [Put]. It must not be modified after [Builder.Build].
func (b *Builder) Shared() *Store { return b.shared }

// WithOptions adds server options.
func (b *Builder) WithOptions(opts ...Option) *Builder {
	b.ensureNotBuilt()
	b.opts = append(b.opts, opts...)

	return b
}

// Reverse returns the path of a named route given the capture values.
func (b *Builder) Reverse(name string, vals ...string) (string, error) {
	return b.router.Reverse(name, vals...)
}

// Build creates the server, or returns the first registration error.
func (b *Builder) Build() (*Server, error) {
	b.ensureNotBuilt()
	b.built = true

	if b.err != nil {
		return nil, b.err
	}

	return New(b.router, b.global, b.shared, b.opts...), nil
}

// MustBuild is like [Builder.Build] but panics on a registration error.
func (b *Builder) MustBuild() *Server {
	srv, err := b.Build()
	if err != nil {
		panic("bpipe: " + err.Error())
	}

	return srv
}

func (b *Builder) ensureNotBuilt() {
	if b.built {
		panic("bpipe: cannot modify the builder after calling Build")
	}
}
