package gemini

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"time"

	"github.com/tessero/ragdesk/ai"
)

const maxRetries = 3

// client is the shared HTTP layer for all gemini services. It owns one pooled
// http.Client reused across calls.
type client struct {
	config *ai.Config
	http   *http.Client
	logger *slog.Logger
}

func newClient(config *ai.Config, logger *slog.Logger) *client {
	return &client{
		config: config,
		http:   newHTTPClient(config.HTTPTimeout),
		logger: logger,
	}
}

// newHTTPClient returns a pooled HTTP client. One instance is shared by all
// services of a provider.
func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	transport := &http.Transport{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini: HTTP %d: %s", e.StatusCode, e.Body)
}

// retryable reports whether the status indicates a transient server-side
// condition worth retrying.
func retryable(status int) bool {
	return status >= 500 || status == http.StatusTooManyRequests
}

type requestSpec struct {
	method      string
	url         string
	body        []byte
	contentType string
	// header carries upload-protocol headers for media requests.
	header map[string]string
}

// do executes a request with exponential backoff on network failures, 5xx and
// 429. The request body is rebuilt per attempt. On a non-retryable non-2xx
// status it returns *APIError; otherwise the raw response body.
func (c *client) do(ctx context.Context, spec requestSpec) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			base := time.Duration(attempt*attempt) * time.Second
			jitter := time.Duration(rand.Int64N(int64(base/2 + 1)))
			backoff := base + jitter
			c.logger.Warn("retrying request", "url", spec.url, "attempt", attempt+1, "backoff", backoff)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, spec.method, spec.url, bytes.NewReader(spec.body))
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("x-goog-api-key", c.config.APIKey)
		if spec.contentType != "" {
			req.Header.Set("Content-Type", spec.contentType)
		}
		for k, v := range spec.header {
			req.Header.Set(k, v)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			if attempt < maxRetries {
				c.logger.Warn("request failed, will retry", "url", spec.url, "error", err)
				continue
			}
			return nil, fmt.Errorf("request failed after %d retries: %w", maxRetries, err)
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			if attempt < maxRetries {
				continue
			}
			return nil, fmt.Errorf("read response after %d retries: %w", maxRetries, readErr)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(body)}
			if retryable(resp.StatusCode) {
				lastErr = apiErr
				if attempt < maxRetries {
					c.logger.Warn("server error, will retry",
						"url", spec.url, "status", resp.StatusCode)
					continue
				}
				return nil, fmt.Errorf("server error after %d retries: %w", maxRetries, apiErr)
			}
			return nil, apiErr
		}

		return body, nil
	}

	return nil, lastErr
}

// endpoint joins the base URL with an API path.
func (c *client) endpoint(path string) string {
	return c.config.BaseURL + path
}
