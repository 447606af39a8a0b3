// internal/common/http/client.go
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "project-analyzer/internal/common/errors"
)

type Client struct {
	httpClient   *http.Client
	userAgent    string
	maxBodyBytes int64
}

type Option func(*Client)

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithMaxBodyBytes caps how much of a response body is read.
func WithMaxBodyBytes(n int64) Option {
	return func(c *Client) { c.maxBodyBytes = n }
}

func NewClient(timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxBodyBytes: 2 << 20,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DoWithContext sends req bound to ctx.
func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	return c.httpClient.Do(req)
}

// GetBody performs one GET and returns the (capped) body of a 200 response.
// Failures come back as FETCH_TIMEOUT, FETCH_BAD_STATUS or FETCH_FAILED.
func (c *Client) GetBody(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.NewFetchFailedError(url, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := c.DoWithContext(ctx, req)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, apperrors.NewFetchTimeoutError(url, err)
		}
		return nil, apperrors.NewFetchFailedError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, apperrors.NewFetchBadStatusError(url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes))
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, apperrors.NewFetchTimeoutError(url, err)
		}
		return nil, apperrors.NewFetchFailedError(url, err)
	}
	return body, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return strings.Contains(err.Error(), "Client.Timeout")
}
