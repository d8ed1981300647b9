package bapp

import (
	"context"
	"net"
	"net/http"
	"regexp"

	"github.com/advdv/bpipe"
	"github.com/advdv/bpipe/middleware"
	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// ServerConfig holds optional configuration for the HTTP server.
type ServerConfig struct {
	HealthHandler bpipe.HandlerFunc
}

// NewBuilder creates the route builder the routing function registers on. Every request
// gets a request id, a request-scoped logger and an access log line.
func NewBuilder(env Environment, logs *zap.Logger) *bpipe.Builder {
	return bpipe.NewBuilder().
		Use(
			middleware.AssignRequestID(""),
			middleware.Logger(logs),
			middleware.AccessLog(logs.Named("access")),
		).
		WithOptions(
			bpipe.WithLogger(newZapPipeLogger(logs)),
			bpipe.WithBufferLimit(env.responseBufferLimit()),
			bpipe.WithErrorDetails(!env.hideErrorDetails()),
		)
}

// PipeServerParams holds the dependencies for building the pipeline server.
type PipeServerParams struct {
	fx.In

	Env     Environment
	Builder *bpipe.Builder
	Metrics *Metrics
}

// NewPipeServer registers the health and metrics routes and builds the server. It must
// run after the routing function so all routes are known.
func NewPipeServer(params PipeServerParams, cfg ServerConfig) (*bpipe.Server, error) {
	health := cfg.HealthHandler
	if health == nil {
		health = defaultHealthHandler
	}

	b := params.Builder
	b.Named("health", http.MethodGet, regexp.QuoteMeta(params.Env.healthPath()), health)

	if path := params.Env.metricsPath(); path != "" {
		b.Named("metrics", http.MethodGet, regexp.QuoteMeta(path), params.Metrics.handler())
	}

	srv, err := b.Build()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build server")
	}

	return srv, nil
}

// ServerParams holds the dependencies for creating an HTTP server.
type ServerParams struct {
	fx.In

	Env        Environment
	Pipe       *bpipe.Server
	Metrics    *Metrics
	TracerProv trace.TracerProvider
	Propagator propagation.TextMapPropagator
}

// NewServer creates the HTTP server that serves the pipeline with tracing and metrics.
func NewServer(params ServerParams) *http.Server {
	var handler http.Handler = params.Pipe

	handler = params.Metrics.instrument(handler)

	// Tracing is disabled for the probes to avoid noisy orphan traces.
	handler = withTracing(params.TracerProv, params.Propagator, params.Env.serviceName(),
		params.Env.healthPath(), params.Env.metricsPath())(handler)

	if params.Env.h2c() {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}

	readHeaderTimeout, writeTimeout, idleTimeout := params.Env.serverTimeouts()

	return &http.Server{
		Addr:              params.Env.addr(),
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}

// startServerHook registers lifecycle hooks for the HTTP server. The listener is bound
// in OnStart so a port that is already taken fails the start.
func startServerHook(lc fx.Lifecycle, server *http.Server, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var lcfg net.ListenConfig

			ln, err := lcfg.Listen(ctx, "tcp", server.Addr)
			if err != nil {
				return errors.Wrapf(err, "failed to listen on %s", server.Addr)
			}

			logger.Info("starting server", zap.String("addr", ln.Addr().String()))

			go func() {
				if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server error", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping server")
			return server.Shutdown(ctx)
		},
	})
}

func defaultHealthHandler(*bpipe.Context) (*bpipe.Response, error) {
	return bpipe.Text(http.StatusOK, "OK"), nil
}
