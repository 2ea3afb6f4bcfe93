package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultTimeout  = 30 * time.Second
	headerRequestID = "X-Request-ID"
)

// UserAgent is sent with every request. cmd/roster sets the version.
var UserAgent = "roster/dev"

// HTTPTransport implements Transport over net/http with bearer-token auth
type HTTPTransport struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPTransport creates a transport rooted at baseURL. An empty token
// sends no Authorization header; timeout <= 0 uses the default.
func NewHTTPTransport(baseURL, token string, timeout time.Duration, logger *slog.Logger) (*HTTPTransport, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", baseURL)
	}
	// Paths resolve relative to the base, so it must end in a slash
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	return &HTTPTransport{
		baseURL: u,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}, nil
}

// BaseURL returns the normalised base URL
func (t *HTTPTransport) BaseURL() string {
	return t.baseURL.String()
}

func (t *HTTPTransport) resolve(path string, query url.Values) string {
	u := t.baseURL.ResolveReference(&url.URL{Path: strings.TrimLeft(path, "/")})
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// Do performs an authenticated HTTP request and reads the whole body
func (t *HTTPTransport) Do(ctx context.Context, r Request) (*Response, error) {
	reqURL := t.resolve(r.Path, r.Query)

	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrTransport, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set(headerRequestID, requestID)
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}

	t.logger.Debug("http request", "method", r.Method, "url", reqURL, "request_id", requestID)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		t.logger.Error("http request failed", "error", err, "url", reqURL, "request_id", requestID)

		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) {
			return nil, fmt.Errorf("%w: %v", ErrAddressUnresolvable, err)
		}
		// %v, not %w: a client timeout must not look like caller cancellation
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrTransport, err)
	}

	t.logger.Debug("http response",
		"status", resp.StatusCode,
		"bytes", len(data),
		"request_id", requestID,
	)

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}
