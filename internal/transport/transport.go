// Package transport sends requests to the REST API and turns every outcome
// into a domain.Result.
package transport

import (
	"context"
	"net/http"
	"net/url"
)

// Request describes a single API call. Path is relative to the base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

// Response is a fully-read HTTP response. Every status code produces a
// Response; mapping statuses to failures is Classify's job.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport sends a request and returns the raw outcome.
//
// A non-nil error is one of: the context's own error (cancellation), an
// error wrapping ErrAddressUnresolvable, or an error wrapping ErrTransport.
type Transport interface {
	Do(ctx context.Context, req Request) (*Response, error)
}

// TransportFunc adapts a function to the Transport interface
type TransportFunc func(ctx context.Context, req Request) (*Response, error)

// Do calls f(ctx, req)
func (f TransportFunc) Do(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}
