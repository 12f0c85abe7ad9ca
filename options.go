package adminctl

import (
	"log/slog"
	"net/http"
	"time"
)

// ClientOption configures a Client.
type ClientOption func(*Client) error

// WithHTTPClient overrides the HTTP client used for transfers. Timeouts are
// the transport's responsibility; the orchestrator adds none of its own.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) error {
		c.httpClient = hc
		return nil
	}
}

// WithHoldDelay sets how long the 100%-complete state is held before the
// next transfer starts. Zero disables the pause.
func WithHoldDelay(d time.Duration) ClientOption {
	return func(c *Client) error {
		c.holdDelay = d
		return nil
	}
}

// WithLogger sets a logger for the client. By default, logging is disabled.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// WithRefreshInterval sets the display refresh interval for the smoother.
func WithRefreshInterval(d time.Duration) ClientOption {
	return func(c *Client) error {
		c.refreshInterval = d
		return nil
	}
}

// WithSink sets the presentation sink that receives progress updates.
func WithSink(sink Sink) ClientOption {
	return func(c *Client) error {
		c.sink = sink
		return nil
	}
}
