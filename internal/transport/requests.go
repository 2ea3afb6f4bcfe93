package transport

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-json-experiment/json"

	"github.com/mmcdole/roster/internal/domain"
)

// Get issues a GET and classifies the response as V
func Get[V any](ctx context.Context, t Transport, route string, query url.Values) (domain.Result[V], error) {
	resp, err := t.Do(ctx, Request{Method: http.MethodGet, Path: route, Query: query})
	return Classify[V](resp, err)
}

// Post encodes body as JSON, issues a POST and classifies the response as V.
// An unencodable body is a defect and is returned as the error.
func Post[V any](ctx context.Context, t Transport, route string, body any) (domain.Result[V], error) {
	data, err := json.Marshal(body)
	if err != nil {
		return domain.Result[V]{}, fmt.Errorf("failed to encode request body: %w", err)
	}
	resp, err := t.Do(ctx, Request{Method: http.MethodPost, Path: route, Body: data})
	return Classify[V](resp, err)
}

// Delete issues a DELETE and classifies the response as V
func Delete[V any](ctx context.Context, t Transport, route string) (domain.Result[V], error) {
	resp, err := t.Do(ctx, Request{Method: http.MethodDelete, Path: route})
	return Classify[V](resp, err)
}
