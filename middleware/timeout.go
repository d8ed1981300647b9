package middleware

import (
	"context"
	"time"

	"github.com/advdv/bpipe"
)

// Timeout bounds the time later stages may take. The request's context gets a deadline
// that blocking calls in stages observe, and the pipeline stops before the next stage
// once it has passed.
func Timeout(d time.Duration) bpipe.MiddlewareFunc {
	return func(c *bpipe.Context) (bpipe.Outcome, error) {
		ctx, cancel := context.WithTimeout(c.Request().Context(), d)
		c.OnResponse(func(*bpipe.Response) { cancel() })

		return bpipe.Continue(c.WithRequest(c.Request().WithContext(ctx))), nil
	}
}
