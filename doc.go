// Package bpipe is a small HTTP server framework built around three parts: a regular
// expression router, a pipeline of middleware stages and a type-keyed state store.
//
// # Routing
//
// Routes are registered per method with a regular expression. Patterns are anchored at
// both ends and match with or without a trailing slash, the empty pattern and "/" only
// match the root:
//
//	b := bpipe.NewBuilder()
//	b.Get(`/echo/([^/]+)/(?P<hoge>[^/]+)/([^/]+)`, echo)
//	b.Get("/public", public)
//
// The routes of a method are tried in registration order and the first match wins. A
// request that matches nothing gets a 404 without running any stage. The capture groups
// of the matched pattern are available as [Captures] in group order, named groups can
// also be looked up by name.
//
// # Pipeline
//
// A route is served by a [Chain] of [Middleware] stages. Each stage returns an [Outcome]:
// [Continue] passes the [Context] to the next stage, [Finish] ends the pipeline with a
// response and skips every later stage. A [HandlerFunc] is a terminal stage that always
// finishes. Global stages registered with [Builder.Use] run before the stages of the
// route.
//
//	auth := bpipe.MiddlewareFunc(func(c *bpipe.Context) (bpipe.Outcome, error) {
//	    if c.Request().Header.Get("Authorization") == "" {
//	        return bpipe.Finish(bpipe.Text(http.StatusUnauthorized, "Unauthorized")), nil
//	    }
//	    return bpipe.Continue(c), nil
//	})
//
// A stage that returns an error fails the request. A [*Failure] created with [Fail] may
// carry the response to send, an [*Error] created with [NewError] selects the status code
// and any other error becomes a 500 whose body includes the error text (see
// [WithErrorDetails]). Panics in stages are recovered and handled as errors. A pipeline in
// which no stage finishes is answered with a 404.
//
// Responses are fully buffered in a [Response], which implements http.ResponseWriter, and
// written to the client once the pipeline is done. Middleware that wants to decorate the
// final response, whichever stage produced it, registers a hook with
// [Context.OnResponse].
//
// # State
//
// A [Store] holds at most one value per type. The shared store is filled while building
// the server and frozen afterwards so any number of requests can read it. Every request
// also gets its own local store that stages use to hand values down the pipeline:
//
//	b.WithState(users)
//	...
//	users, err := bpipe.Lookup[UserList](c.Shared())
//	c.Local().Set(user)
//
// Local values that implement io.Closer are closed when the request is done.
//
// # Named routes
//
// Routes registered with [Builder.Named] can be turned back into paths with
// [Server.Reverse], capture groups are substituted in order and optional parts are left
// out.
package bpipe
