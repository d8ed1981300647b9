package middleware

import (
	"github.com/advdv/bpipe"
	"github.com/google/uuid"
)

// DefaultRequestIDHeader is the header used when no header is given to [AssignRequestID].
const DefaultRequestIDHeader = "X-Request-Id"

const maxRequestIDLen = 128

// RequestID identifies a single request.
type RequestID string

// AssignRequestID gives every request an id. An id in the inbound header is reused,
// otherwise a random UUID is generated. The id is stored in the local store and echoed on
// the response.
func AssignRequestID(header string) bpipe.MiddlewareFunc {
	if header == "" {
		header = DefaultRequestIDHeader
	}

	return func(c *bpipe.Context) (bpipe.Outcome, error) {
		id := c.Request().Header.Get(header)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}

		c.Local().Set(RequestID(id))
		c.OnResponse(func(resp *bpipe.Response) {
			resp.Header().Set(header, id)
		})

		return bpipe.Continue(c), nil
	}
}

// GetRequestID returns the id assigned to the request, or an empty string.
func GetRequestID(c *bpipe.Context) string {
	id, _ := bpipe.Get[RequestID](c.Local())
	return string(id)
}
