package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPTransportValidatesBaseURL(t *testing.T) {
	_, err := NewHTTPTransport("not a url", "", 0, nil)
	assert.Error(t, err)

	_, err = NewHTTPTransport("/relative/only", "", 0, nil)
	assert.Error(t, err)

	tr, err := NewHTTPTransport("https://gorest.co.in/public/v2", "", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://gorest.co.in/public/v2/", tr.BaseURL())
}

func TestHTTPTransportSendsAuthenticatedRequests(t *testing.T) {
	var gotMethod, gotPath, gotQuery, gotAuth, gotAccept, gotType, gotRequestID, gotBody string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get(headerRequestID)
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)

		w.Header().Set(PagesHeader, "5")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":1}`))
	}))
	defer srv.Close()

	tr, err := NewHTTPTransport(srv.URL+"/public/v2/", "secret", time.Second, nil)
	require.NoError(t, err)

	resp, err := tr.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "users",
		Query:  pageQuery(2),
		Body:   []byte(`{"name":"a"}`),
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "5", resp.Header.Get(PagesHeader))
	assert.Equal(t, `{"id":1}`, string(resp.Body))

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/public/v2/users", gotPath)
	assert.Equal(t, "page=2", gotQuery)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "application/json", gotType)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, `{"name":"a"}`, gotBody)
}

func TestHTTPTransportOmitsEmptyToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	tr, err := NewHTTPTransport(srv.URL, "", time.Second, nil)
	require.NoError(t, err)

	resp, err := tr.Do(context.Background(), Request{Method: http.MethodDelete, Path: "/users/9"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, gotAuth)
}

func TestHTTPTransportReturnsErrorStatuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	tr, err := NewHTTPTransport(srv.URL, "t", time.Second, nil)
	require.NoError(t, err)

	resp, err := tr.Do(context.Background(), Request{Method: http.MethodGet, Path: "users"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHTTPTransportCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	tr, err := NewHTTPTransport(srv.URL, "t", 10*time.Second, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err = tr.Do(ctx, Request{Method: http.MethodGet, Path: "users"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, IsCancellation(err))
}

func TestHTTPTransportClientTimeoutIsNotCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	tr, err := NewHTTPTransport(srv.URL, "t", 50*time.Millisecond, nil)
	require.NoError(t, err)

	_, err = tr.Do(context.Background(), Request{Method: http.MethodGet, Path: "users"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.False(t, IsCancellation(err))
}

func TestHTTPTransportConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	tr, err := NewHTTPTransport(addr, "t", time.Second, nil)
	require.NoError(t, err)

	result, err := Get[[]item](context.Background(), tr, "users", nil)
	require.NoError(t, err)

	_, failed := result.Kind()
	assert.True(t, failed)
}
