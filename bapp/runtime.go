package bapp

import (
	"context"
	"net/http"

	"github.com/advdv/bpipe"
	"github.com/carlmjohnson/requests"
	"github.com/cockroachdb/errors"
)

// Runtime provides access to app-scoped dependencies.
// Inject this into handler constructors via fx instead of pulling from the shared store.
//
// Example:
//
//	type Handlers struct {
//	    rt     *bapp.Runtime[Env]
//	    dynamo *dynamodb.Client
//	}
//
//	func (h *Handlers) GetItem(c *bpipe.Context) (*bpipe.Response, error) {
//	    id, _ := c.Capture("id")
//	    url, _ := h.rt.Reverse("get-item", id)
//	    h.dynamo.GetItem(c, ...)
//	    // ...
//	}
type Runtime[E Environment] struct {
	env          E
	builder      *bpipe.Builder
	secretReader SecretReader
	transport    http.RoundTripper
}

// RuntimeParams holds optional dependencies for Runtime.
type RuntimeParams struct {
	SecretReader SecretReader
	Transport    http.RoundTripper
}

// NewRuntime creates a new Runtime with the given dependencies.
func NewRuntime[E Environment](env E, builder *bpipe.Builder, params RuntimeParams) *Runtime[E] {
	return &Runtime[E]{
		env:          env,
		builder:      builder,
		secretReader: params.SecretReader,
		transport:    params.Transport,
	}
}

// Env returns the environment configuration.
func (r *Runtime[E]) Env() E {
	return r.env
}

// Reverse returns the path for a named route with the given capture values.
func (r *Runtime[E]) Reverse(name string, vals ...string) (string, error) {
	return r.builder.Reverse(name, vals...)
}

// Secret retrieves a secret value from AWS Secrets Manager.
//
// If jsonPath is provided, the secret is parsed as JSON and the path is extracted
// using gjson syntax (e.g., "database.password", "users.#.name").
// Secrets are cached but fetched per call to support rotation without redeployment.
func (r *Runtime[E]) Secret(ctx context.Context, secretID string, jsonPath ...string) (string, error) {
	if r.secretReader == nil {
		return "", errors.New("bapp: secret reader not configured")
	}

	return SecretFrom(ctx, r.secretReader, secretID, jsonPath...)
}

// NewRequest returns a request builder for outbound calls that uses the traced transport.
func (r *Runtime[E]) NewRequest() *requests.Builder {
	if r.transport == nil {
		return requests.New()
	}

	return newRequestBuilder(r.transport)
}
