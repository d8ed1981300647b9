package bpipe

import (
	"bytes"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Response is a fully buffered HTTP response. It implements http.ResponseWriter so handlers
// can render into it with the usual tools (fmt.Fprintf, json.NewEncoder, http.Error) and
// nothing reaches the client before the pipeline is done.
type Response struct {
	status      int
	wroteHeader bool
	header      http.Header
	body        bytes.Buffer
}

// NewResponse inits an empty response with the given status code.
func NewResponse(status int) *Response {
	return &Response{status: status, header: make(http.Header)}
}

// Text inits a plain text response.
func Text(status int, body string) *Response {
	resp := NewResponse(status)
	resp.header.Set("Content-Type", "text/plain; charset=utf-8")
	resp.body.WriteString(body)

	return resp
}

// Header returns the response headers.
func (r *Response) Header() http.Header {
	if r.header == nil {
		r.header = make(http.Header)
	}

	return r.header
}

// WriteHeader sets the status code. As with net/http only the first call counts, a
// response created with [NewResponse] has not been written to yet.
func (r *Response) WriteHeader(status int) {
	if r.wroteHeader {
		return
	}

	r.status, r.wroteHeader = status, true
}

// Write appends to the buffered body.
func (r *Response) Write(p []byte) (int, error) {
	if !r.wroteHeader {
		r.wroteHeader = true
	}

	n, err := r.body.Write(p)
	if err != nil {
		return n, errors.Wrap(err, "failed to buffer response body")
	}

	return n, nil
}

// WithHeader sets a header and returns the response for chaining.
func (r *Response) WithHeader(key, value string) *Response {
	r.Header().Set(key, value)
	return r
}

// WithBody replaces the body and returns the response for chaining.
func (r *Response) WithBody(body string) *Response {
	r.body.Reset()
	r.body.WriteString(body)

	return r
}

// Status returns the status code, defaulting to 200.
func (r *Response) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}

	return r.status
}

// Body returns the buffered body.
func (r *Response) Body() []byte { return r.body.Bytes() }

// Len returns the size of the buffered body.
func (r *Response) Len() int { return r.body.Len() }

// Reset clears the status, headers and body for a completely new response.
func (r *Response) Reset() {
	r.status, r.wroteHeader = 0, false
	r.body.Reset()
	clear(r.header)
}

// clone returns a deep copy that can be modified without affecting r.
func (r *Response) clone() *Response {
	c := &Response{status: r.status, wroteHeader: r.wroteHeader, header: r.header.Clone()}
	if c.header == nil {
		c.header = make(http.Header)
	}

	c.body.Write(r.body.Bytes())

	return c
}

// FlushTo copies the response to w in one go.
func (r *Response) FlushTo(w http.ResponseWriter) error {
	dst := w.Header()
	for k, vs := range r.header {
		dst[k] = append(dst[k][:0:0], vs...)
	}

	w.WriteHeader(r.Status())

	if r.body.Len() == 0 {
		return nil
	}

	if _, err := w.Write(r.body.Bytes()); err != nil {
		return errors.Wrap(err, "failed to write response body")
	}

	return nil
}
