// Package bapp provides a batteries-included framework for running bpipe servers.
//
// # Overview
//
// bapp handles the boilerplate of setting up an HTTP service: environment parsing,
// structured logging, OpenTelemetry tracing, prometheus metrics, AWS SDK clients and
// graceful shutdown. A complete application can be created in a single call:
//
//	bapp.NewApp[Env](func(b *bpipe.Builder, h *Handlers) {
//	    b.Get("/items", bpipe.HandlerFunc(h.ListItems))
//	    b.Named("get-item", http.MethodGet, `/items/(?P<id>[^/]+)`, bpipe.HandlerFunc(h.GetItem))
//	},
//	    bapp.WithAWSClient(dynamodb.NewFromConfig),
//	    bapp.WithFx(fx.Provide(NewHandlers)),
//	).Run()
//
// # Environment Configuration
//
// Define your environment by embedding [BaseEnvironment]:
//
//	type Env struct {
//	    bapp.BaseEnvironment
//	    MainTableName string `env:"MAIN_TABLE_NAME,required"`
//	}
//
// BaseEnvironment provides the following environment variables:
//
//	| Variable                 | Required | Default  | Description                                    |
//	|--------------------------|----------|----------|------------------------------------------------|
//	| BP_SERVICE_NAME          | Yes      | -        | Service name for logging, tracing and metrics  |
//	| BP_ADDR                  | No       | :4000    | Address the HTTP server listens on             |
//	| BP_LOG_LEVEL             | No       | info     | Log level (debug, info, warn, error)           |
//	| BP_OTEL_EXPORTER         | No       | stdout   | Trace exporter: "stdout", "xrayudp" or "none"  |
//	| BP_HEALTH_PATH           | No       | /healthz | Health check route                             |
//	| BP_METRICS_PATH          | No       | /metrics | Prometheus route, empty to disable             |
//	| BP_RESPONSE_BUFFER_LIMIT | No       | -1       | Max response body size, negative for no limit  |
//	| BP_HIDE_ERROR_DETAILS    | No       | false    | Leave error text out of 5xx response bodies    |
//	| BP_H2C                   | No       | false    | Serve cleartext HTTP/2                         |
//	| BP_READ_HEADER_TIMEOUT   | No       | 5s       | http.Server ReadHeaderTimeout                  |
//	| BP_WRITE_TIMEOUT         | No       | 30s      | http.Server WriteTimeout                       |
//	| BP_IDLE_TIMEOUT          | No       | 60s      | http.Server IdleTimeout                        |
//
// # Runtime
//
// [Runtime] provides access to app-scoped dependencies and should be injected into
// handler constructors via fx:
//   - [Runtime.Env] returns the typed environment configuration
//   - [Runtime.Reverse] generates paths for named routes
//   - [Runtime.Secret] retrieves secrets from AWS Secrets Manager
//   - [Runtime.NewRequest] builds traced outbound requests
//
// # Request scope
//
// Every request runs through middleware that assigns a request id, stores a
// request-scoped logger and writes an access log line. Inside stages use [Log] and
// [Span]:
//
//	func (h *Handlers) GetItem(c *bpipe.Context) (*bpipe.Response, error) {
//	    bapp.Log(c).Info("getting item")
//	    bapp.Span(c).AddEvent("lookup")
//	    // ...
//	}
package bapp
