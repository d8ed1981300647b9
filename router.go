package bpipe

import (
	"net/http"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// ErrNotFound is returned by [Router.Recognize] when no route matches the request.
var ErrNotFound = errors.New("no route matches")

type route struct {
	pat   *Pattern
	chain Chain
	name  string
}

// RouteInfo describes a registered route.
type RouteInfo struct {
	Method   string
	Pattern  string
	Expr     string
	Name     string
	Stages   int
	Optional bool
}

// Router maps a method and path to the chain of the first matching route. Routes are kept
// per method in registration order, there is no scoring of more specific patterns.
type Router struct {
	routes map[string][]route
	rev    *Reverser
	frozen bool
}

// NewRouter inits an empty router.
func NewRouter() *Router {
	return &Router{routes: make(map[string][]route), rev: NewReverser()}
}

// AddRoute compiles the pattern and registers the chain for the method. An invalid pattern
// results in a [*PatternError]. The optional name makes the route reversible.
func (rt *Router) AddRoute(method, pattern string, chain Chain, name ...string) error {
	if rt.frozen {
		panic("bpipe: cannot add routes after the server is built")
	}

	if method == "" {
		return errors.Newf("no method for route %q", pattern)
	}

	pat, err := CompilePattern(pattern)
	if err != nil {
		return err
	}

	rte := route{pat: pat, chain: chain}
	if len(name) > 0 && name[0] != "" {
		if err := rt.rev.Named(name[0], pat); err != nil {
			return errors.Wrapf(err, "failed to name route %s %q", method, pattern)
		}

		rte.name = name[0]
	}

	rt.routes[method] = append(rt.routes[method], rte)

	return nil
}

// Get registers a GET route and panics on an invalid pattern.
func (rt *Router) Get(pattern string, stages ...Middleware) *Router {
	return rt.must(http.MethodGet, pattern, stages)
}

// Post registers a POST route and panics on an invalid pattern.
func (rt *Router) Post(pattern string, stages ...Middleware) *Router {
	return rt.must(http.MethodPost, pattern, stages)
}

// Put registers a PUT route and panics on an invalid pattern.
func (rt *Router) Put(pattern string, stages ...Middleware) *Router {
	return rt.must(http.MethodPut, pattern, stages)
}

// Delete registers a DELETE route and panics on an invalid pattern.
func (rt *Router) Delete(pattern string, stages ...Middleware) *Router {
	return rt.must(http.MethodDelete, pattern, stages)
}

// Head registers a HEAD route and panics on an invalid pattern.
func (rt *Router) Head(pattern string, stages ...Middleware) *Router {
	return rt.must(http.MethodHead, pattern, stages)
}

// Options registers an OPTIONS route and panics on an invalid pattern.
func (rt *Router) Options(pattern string, stages ...Middleware) *Router {
	return rt.must(http.MethodOptions, pattern, stages)
}

func (rt *Router) must(method, pattern string, stages []Middleware) *Router {
	if err := rt.AddRoute(method, pattern, NewChain(stages...)); err != nil {
		panic("bpipe: " + err.Error())
	}

	return rt
}

// Recognize returns the chain and captures of the first route registered for the method
// whose pattern matches the path, or [ErrNotFound].
func (rt *Router) Recognize(method, path string) (Chain, Captures, error) {
	for _, rte := range rt.routes[method] {
		if caps, ok := rte.pat.Match(path); ok {
			return rte.chain, caps, nil
		}
	}

	return nil, nil, errors.Wrapf(ErrNotFound, "%s %s", method, path)
}

// Reverse builds the path of a named route from the capture values.
func (rt *Router) Reverse(name string, vals ...string) (string, error) {
	return rt.rev.Reverse(name, vals...)
}

// Routes lists the registered routes sorted by method, in registration order per method.
func (rt *Router) Routes() []RouteInfo {
	methods := lo.Keys(rt.routes)
	slices.Sort(methods)

	var infos []RouteInfo
	for _, method := range methods {
		infos = append(infos, lo.Map(rt.routes[method], func(rte route, _ int) RouteInfo {
			return RouteInfo{
				Method:   method,
				Pattern:  rte.pat.Source(),
				Expr:     rte.pat.String(),
				Name:     rte.name,
				Stages:   len(rte.chain),
				Optional: rte.pat.HasOptionalCaptures(),
			}
		})...)
	}

	return infos
}

func (rt *Router) freeze() { rt.frozen = true }
