package transport

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/roster/internal/domain"
)

// recordingTransport answers from handle and remembers every request
type recordingTransport struct {
	mu     sync.Mutex
	calls  []Request
	handle func(req Request) (*Response, error)
}

func (r *recordingTransport) Do(_ context.Context, req Request) (*Response, error) {
	r.mu.Lock()
	r.calls = append(r.calls, req)
	r.mu.Unlock()
	return r.handle(req)
}

func (r *recordingTransport) pages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	pages := make([]string, len(r.calls))
	for i, c := range r.calls {
		pages[i] = c.Query.Get(PageParam)
	}
	return pages
}

func TestFetchLastPageFollowsHeader(t *testing.T) {
	rt := &recordingTransport{handle: func(req Request) (*Response, error) {
		switch req.Query.Get(PageParam) {
		case "1":
			resp := respond(http.StatusOK, `[{"id":1,"name":"first"}]`)
			resp.Header.Set(PagesHeader, "3")
			return resp, nil
		case "3":
			return respond(http.StatusOK, `[{"id":42,"name":"last"}]`), nil
		}
		t.Fatalf("unexpected page %q", req.Query.Get(PageParam))
		return nil, nil
	}}

	result, err := FetchLastPage[[]item](context.Background(), rt, "users")
	require.NoError(t, err)

	items, ok := result.Value()
	require.True(t, ok)
	assert.Equal(t, []item{{ID: 42, Name: "last"}}, items)

	assert.Equal(t, []string{"1", "3"}, rt.pages())
	for _, c := range rt.calls {
		assert.Equal(t, http.MethodGet, c.Method)
		assert.Equal(t, "users", c.Path)
	}
}

func TestFetchLastPageDefaultsToOnePage(t *testing.T) {
	for _, header := range []string{"", "abc", "0", "-4"} {
		t.Run("header "+header, func(t *testing.T) {
			rt := &recordingTransport{handle: func(req Request) (*Response, error) {
				resp := respond(http.StatusOK, `[]`)
				if header != "" {
					resp.Header.Set(PagesHeader, header)
				}
				return resp, nil
			}}

			result, err := FetchLastPage[[]item](context.Background(), rt, "users")
			require.NoError(t, err)
			assert.True(t, result.IsSuccess())
			assert.Equal(t, []string{"1", "1"}, rt.pages())
		})
	}
}

func TestFetchLastPageStopsOnFirstFailure(t *testing.T) {
	tests := []struct {
		name string
		resp *Response
		err  error
		want domain.ErrorKind
	}{
		{"unauthorized", respond(http.StatusUnauthorized, ""), nil, domain.KindUnauthorized},
		{"server error", respond(http.StatusBadGateway, ""), nil, domain.KindServerError},
		{"no internet", nil, ErrAddressUnresolvable, domain.KindNoInternet},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rt := &recordingTransport{handle: func(Request) (*Response, error) {
				return tc.resp, tc.err
			}}

			result, err := FetchLastPage[[]item](context.Background(), rt, "users")
			require.NoError(t, err)

			kind, ok := result.Kind()
			require.True(t, ok)
			assert.Equal(t, tc.want, kind)
			assert.Len(t, rt.calls, 1)
		})
	}
}

func TestFetchLastPageSecondRequestFailure(t *testing.T) {
	rt := &recordingTransport{handle: func(req Request) (*Response, error) {
		if req.Query.Get(PageParam) == "1" {
			resp := respond(http.StatusOK, `[]`)
			resp.Header.Set(PagesHeader, "2")
			return resp, nil
		}
		return respond(http.StatusTooManyRequests, ""), nil
	}}

	result, err := FetchLastPage[[]item](context.Background(), rt, "users")
	require.NoError(t, err)

	kind, ok := result.Kind()
	require.True(t, ok)
	assert.Equal(t, domain.KindTooManyRequests, kind)
	assert.Equal(t, []string{"1", "2"}, rt.pages())
}

func TestFetchLastPagePropagatesCancellation(t *testing.T) {
	rt := &recordingTransport{handle: func(Request) (*Response, error) {
		return nil, context.Canceled
	}}

	_, err := FetchLastPage[[]item](context.Background(), rt, "users")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, rt.calls, 1)
}
