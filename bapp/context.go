package bapp

import (
	"github.com/advdv/bpipe"
	"github.com/advdv/bpipe/middleware"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Log returns a trace-correlated zap logger for the request.
func Log(c *bpipe.Context) *zap.Logger {
	return middleware.Log(c)
}

// Span returns the current trace span of the request.
func Span(c *bpipe.Context) trace.Span {
	return trace.SpanFromContext(c)
}
