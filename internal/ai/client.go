package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const (
	defaultRequestTimeout = 45 * time.Second
	defaultRetries        = 2
	defaultBackoffUnit    = 2 * time.Second
)

// Client wraps a Provider with the outbound call policy: a hard
// per-request timeout and bounded retries with linear backoff. Only
// transient failures (5xx, timeout, network) are retried; client-class
// errors propagate immediately.
type Client struct {
	provider Provider
	timeout  time.Duration
	retries  int
	backoff  time.Duration // multiplied by the attempt number
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the per-attempt request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = d }
}

// WithRetries sets the number of retries after the first attempt.
func WithRetries(n int) ClientOption {
	return func(c *Client) { c.retries = n }
}

// WithBackoff sets the backoff unit; attempt n waits n times this long.
func WithBackoff(d time.Duration) ClientOption {
	return func(c *Client) { c.backoff = d }
}

// NewClient creates a retrying client over a provider (typically a
// Router).
func NewClient(provider Provider, opts ...ClientOption) *Client {
	c := &Client{
		provider: provider,
		timeout:  defaultRequestTimeout,
		retries:  defaultRetries,
		backoff:  defaultBackoffUnit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete runs one completion with the call policy applied. Retries are
// sequential, never speculative.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	var lastErr error

	for attempt := 1; attempt <= c.retries+1; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.provider.Complete(attemptCtx, req)
		cancel()

		if err == nil {
			return resp, nil
		}
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		lastErr = err

		if !IsRetryable(err) || attempt > c.retries {
			break
		}

		slog.Warn("AI request failed, backing off",
			"task", req.Task.String(),
			"attempt", attempt,
			"error", err,
		)
		wait := time.Duration(attempt) * c.backoff
		select {
		case <-ctx.Done():
			return CompletionResponse{}, ctx.Err()
		case <-time.After(wait):
		}
	}

	return CompletionResponse{}, lastErr
}

// HealthCheck delegates to the underlying provider.
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.provider.HealthCheck(ctx)
}
