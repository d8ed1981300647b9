package middleware

import (
	"github.com/advdv/bpipe"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type requestLogger struct{ *zap.Logger }

// Logger stores a request-scoped logger in the local store. The logger carries the method,
// the path and, if [AssignRequestID] ran before it, the request id.
func Logger(logs *zap.Logger) bpipe.MiddlewareFunc {
	return func(c *bpipe.Context) (bpipe.Outcome, error) {
		r := c.Request()
		fields := []zap.Field{zap.String("method", r.Method), zap.String("path", r.URL.Path)}

		if id, ok := bpipe.Get[RequestID](c.Local()); ok {
			fields = append(fields, zap.String("request_id", string(id)))
		}

		c.Local().Set(requestLogger{logs.With(fields...)})

		return bpipe.Continue(c), nil
	}
}

// Log returns the request-scoped logger, correlated with the current trace span if there
// is one.
func Log(c *bpipe.Context) *zap.Logger {
	l, ok := bpipe.Get[requestLogger](c.Local())
	if !ok {
		panic("middleware: request logger not found; is the Logger middleware configured?")
	}

	return l.With(traceFields(c)...)
}

func traceFields(c *bpipe.Context) []zap.Field {
	sc := trace.SpanFromContext(c).SpanContext()
	if !sc.IsValid() {
		return nil
	}

	return []zap.Field{
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	}
}
