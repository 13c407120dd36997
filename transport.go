package passaporteweb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Response is a transport-level HTTP response: status, raw body, and headers.
type Response struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

// Transport issues HTTP calls against the service. Client-fault and
// server-fault statuses are returned as ordinary responses for the resource
// layer to inspect; Do errors only when no response was obtained at all
// (network failure, context cancellation, encoding failure). Timeouts and
// retries belong here, never in the resource layer.
type Transport interface {
	Do(ctx context.Context, method, path string, query url.Values, body any, creds Credentials) (*Response, error)
}

// netTransport is the default Transport over net/http.
type netTransport struct {
	base   *url.URL
	client *http.Client
	logger *slog.Logger
}

// NewHTTPTransport creates the default net/http-backed Transport, e.g. to
// wrap it with WithRetry before handing it to NewWithTransport. A zero
// timeout means 10 seconds; a nil logger means slog.Default().
func NewHTTPTransport(baseURL string, timeout time.Duration, logger *slog.Logger) (Transport, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL %q: %w", baseURL, err)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &netTransport{
		base:   base,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}, nil
}

// Do implements Transport.
func (t *netTransport) Do(ctx context.Context, method, path string, query url.Values, body any, creds Credentials) (*Response, error) {
	u := *t.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if creds != nil {
		creds.apply(req)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		t.logger.Warn("client fault", "method", method, "path", path, "status", resp.StatusCode)
	} else {
		t.logger.Debug("request", "method", method, "path", path, "status", resp.StatusCode)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		Header:     resp.Header,
	}, nil
}
