package middleware

import (
	"time"

	"github.com/advdv/bpipe"
	"go.uber.org/zap"
)

// AccessLog logs one line per request once the final response is known, including
// responses produced by failures.
func AccessLog(logs *zap.Logger) bpipe.MiddlewareFunc {
	return func(c *bpipe.Context) (bpipe.Outcome, error) {
		start, r := time.Now(), c.Request()

		c.OnResponse(func(resp *bpipe.Response) {
			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", resp.Status()),
				zap.Int("size", resp.Len()),
				zap.Duration("duration", time.Since(start)),
			}

			if id := GetRequestID(c); id != "" {
				fields = append(fields, zap.String("request_id", id))
			}

			logs.Info("request", append(fields, traceFields(c)...)...)
		})

		return bpipe.Continue(c), nil
	}
}
