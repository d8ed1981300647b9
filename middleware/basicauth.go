package middleware

import (
	"net/http"
	"strconv"

	"github.com/advdv/bpipe"
)

// VerifyFunc checks credentials and returns the identity they belong to. It returns false
// for unknown credentials, an error fails the request.
type VerifyFunc[U any] func(c *bpipe.Context, username, password string) (U, bool, error)

// BasicAuth protects the rest of the pipeline with HTTP basic authentication. Requests
// without valid credentials are finished with a 401 challenge for the realm. On success
// the identity is stored in the local store under type U.
func BasicAuth[U any](realm string, verify VerifyFunc[U]) bpipe.MiddlewareFunc {
	challenge := "Basic realm=" + strconv.Quote(realm)

	return func(c *bpipe.Context) (bpipe.Outcome, error) {
		username, password, ok := c.Request().BasicAuth()
		if !ok {
			return bpipe.Finish(Unauthorized(challenge)), nil
		}

		user, ok, err := verify(c, username, password)
		if err != nil {
			return bpipe.Outcome{}, err
		}

		if !ok {
			return bpipe.Finish(Unauthorized(challenge)), nil
		}

		bpipe.Put(c.Local(), user)

		return bpipe.Continue(c), nil
	}
}

// Unauthorized creates a 401 response with the given WWW-Authenticate challenge.
func Unauthorized(challenge string) *bpipe.Response {
	return bpipe.Text(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized)).
		WithHeader("WWW-Authenticate", challenge)
}
