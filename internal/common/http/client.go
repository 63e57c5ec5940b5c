// internal/common/http/client.go
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxResponseBytes caps how much of a response body is read.
const MaxResponseBytes = 4 << 20

// StatusError is returned by PostJSON for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// Logger receives a warning when a response body is cut at MaxResponseBytes.
type Logger interface {
	Warn(msg string, fields map[string]interface{})
}

type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	logger     Logger
}

// NewClient builds a client whose every call is bounded by timeout. The bound is
// applied through the request context so a caller's cancellation also applies.
func NewClient(timeout time.Duration) *Client {
	return NewClientWithTransport(timeout, nil)
}

// NewClientWithTransport is NewClient with a custom RoundTripper. A nil rt uses
// http.DefaultTransport.
func NewClientWithTransport(timeout time.Duration, rt http.RoundTripper) *Client {
	return &Client{
		httpClient: &http.Client{Transport: rt},
		timeout:    timeout,
	}
}

// WithLogger sets the logger used for truncation warnings.
func (c *Client) WithLogger(l Logger) *Client {
	c.logger = l
	return c
}

// PostJSON marshals payload, POSTs it to url and returns the raw response body.
// Transport errors, timeouts and non-2xx statuses are returned as errors.
func (c *Client) PostJSON(ctx context.Context, url string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) > MaxResponseBytes {
		data = data[:MaxResponseBytes]
		if c.logger != nil {
			c.logger.Warn("response body truncated", map[string]interface{}{
				"url":        url,
				"status":     resp.StatusCode,
				"limitBytes": MaxResponseBytes,
			})
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	return data, nil
}
