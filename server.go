package bpipe

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
)

// Server dispatches requests to the routes of a frozen [Router]. Every request first runs
// through the global chain and then through the chain of the matched route.
type Server struct {
	router          *Router
	global          Chain
	shared          *Store
	logs            Logger
	bufLimit        int
	details         bool
	shutdownTimeout time.Duration
}

// Option configures a [Server].
type Option func(*Server)

// WithLogger sets the logger that is informed about failures. Defaults to the standard
// library logger.
func WithLogger(l Logger) Option {
	return func(s *Server) { s.logs = l }
}

// WithBufferLimit limits the size of response bodies, larger responses are replaced with
// a 507 Insufficient Storage response. A negative limit disables the check.
func WithBufferLimit(n int) Option {
	return func(s *Server) { s.bufLimit = n }
}

// WithErrorDetails configures whether synthesized error responses include the error text.
// It is enabled by default, production deployments usually want to turn it off.
func WithErrorDetails(v bool) Option {
	return func(s *Server) { s.details = v }
}

// WithShutdownTimeout sets how long [Server.Run] waits for in-flight requests when its
// context is done.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) { s.shutdownTimeout = d }
}

// New creates the server. The router and shared store are frozen: adding routes or
// modifying the shared store afterwards panics.
func New(router *Router, global Chain, shared *Store, opts ...Option) *Server {
	if router == nil {
		router = NewRouter()
	}

	if shared == nil {
		shared = NewStore()
	}

	srv := &Server{
		router:          router,
		global:          global,
		shared:          shared,
		logs:            NewStdLogger(log.Default()),
		bufLimit:        -1,
		details:         true,
		shutdownTimeout: 10 * time.Second,
	}

	for _, opt := range opts {
		opt(srv)
	}

	router.freeze()
	shared.freeze()

	for _, ri := range router.Routes() {
		if ri.Optional {
			srv.logs.LogPatternHazard(ri.Method + " " + ri.Pattern)
		}
	}

	return srv
}

// Router returns the server's router.
func (s *Server) Router() *Router { return s.router }

// Shared returns the read-only shared store.
func (s *Server) Shared() *Store { return s.shared }

// Reverse returns the path of a named route given the capture values.
func (s *Server) Reverse(name string, vals ...string) (string, error) {
	return s.router.Reverse(name, vals...)
}

// Handle serves the request and returns the complete response. Failures of the pipeline
// are turned into error responses, only a stage panicking with [http.ErrAbortHandler]
// panics through. Requests that match no route get a 404 without running any stage.
//
// Response hooks run on a copy of the final response, responses returned by stages may be
// shared between requests.
func (s *Server) Handle(r *http.Request) *Response {
	chain, caps, err := s.router.Recognize(r.Method, r.URL.Path)
	if err != nil {
		return Text(http.StatusNotFound, http.StatusText(http.StatusNotFound))
	}

	c := NewContext(r, caps, s.shared)
	defer func() {
		if err := c.local.closeAll(); err != nil {
			s.logs.LogUnhandledFailure(errors.Wrap(err, "failed to release request state"))
		}
	}()

	resp := s.run(c, chain)

	if s.bufLimit >= 0 && resp.Len() > s.bufLimit {
		s.logs.LogUnhandledFailure(errors.Newf("response body of %d bytes exceeds limit of %d", resp.Len(), s.bufLimit))
		resp = Text(http.StatusInsufficientStorage, http.StatusText(http.StatusInsufficientStorage))
	}

	resp = resp.clone()
	if err := safely(func() { c.runHooks(resp) }); err != nil {
		s.logs.LogUnhandledFailure(errors.Wrap(err, "response hook"))
	}

	return resp
}

// ServeHTTP makes the server implement the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := s.Handle(r).FlushTo(w); err != nil {
		s.logs.LogResponseWriteError(err)
	}
}

// Run listens on addr and serves until ctx is done, after which the server is shut down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	var lc net.ListenConfig

	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", addr)
	}

	return s.Serve(ctx, ln)
}

// Serve is like [Server.Run] but accepts connections on the given listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	hsrv := &http.Server{Handler: s, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- hsrv.Serve(ln) }()

	select {
	case err := <-errc:
		return errors.Wrap(err, "failed to serve")
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()

	if err := hsrv.Shutdown(sctx); err != nil {
		return errors.Wrap(err, "failed to shutdown")
	}

	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "failed to serve")
	}

	return nil
}

func (s *Server) run(c *Context, chain Chain) *Response {
	out, err := s.global.Run(c)
	if err == nil && !out.Finished() {
		out, err = chain.Run(out.Context())
	}

	switch {
	case err != nil:
		return s.failureResponse(err)
	case !out.Finished():
		s.logs.LogUnterminatedPipeline(c.Request().Method, c.Request().URL.Path)
		return Text(http.StatusNotFound, http.StatusText(http.StatusNotFound))
	default:
		return out.Response()
	}
}

func (s *Server) failureResponse(err error) *Response {
	s.logs.LogUnhandledFailure(err)

	if resp, ok := FailureResponse(err); ok {
		return resp
	}

	var herr *Error
	if errors.As(err, &herr) && http.StatusText(int(herr.Code())) != "" {
		if !s.details {
			return Text(int(herr.Code()), http.StatusText(int(herr.Code())))
		}

		return Text(int(herr.Code()), herr.Error())
	}

	status := http.StatusText(http.StatusInternalServerError)
	if !s.details {
		return Text(http.StatusInternalServerError, status)
	}

	return Text(http.StatusInternalServerError, status+": "+err.Error())
}

func safely(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("panic: %v", r)
		}
	}()

	fn()

	return nil
}
