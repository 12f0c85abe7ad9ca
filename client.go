package adminctl

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tgstore/adminctl/internal/api"
	"github.com/tgstore/adminctl/internal/progress"
)

// DefaultHoldDelay is how long the 100%-complete state stays visible before
// the next transfer starts. A deliberate pause so the finished bar registers
// with the user, not a correctness requirement.
const DefaultHoldDelay = 400 * time.Millisecond

// Client uploads product media through the storefront admin API.
type Client struct {
	transport mediaTransport
	sink      Sink
	logger    *slog.Logger

	httpClient      *http.Client
	refreshInterval time.Duration
	holdDelay       time.Duration
	newTicker       progress.TickerFunc
	sleep           func(time.Duration)

	// jobGen invalidates callbacks from superseded jobs. A stale job's
	// in-flight transfer keeps running (cancellation is not supported) but
	// its late progress and completion effects are discarded.
	jobGen atomic.Uint64
}

// NewClient creates a client for the admin API at baseURL. The token is
// sent as X-Admin-Token on every request.
func NewClient(baseURL, token string, opts ...ClientOption) (*Client, error) {
	c := &Client{
		sink:            NopSink{},
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		refreshInterval: progress.DefaultInterval,
		holdDelay:       DefaultHoldDelay,
		sleep:           time.Sleep,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.transport == nil {
		apiOpts := []api.Option{api.WithLogger(c.logger)}
		if c.httpClient != nil {
			apiOpts = append(apiOpts, api.WithHTTPClient(c.httpClient))
		}
		t, err := api.New(baseURL, token, apiOpts...)
		if err != nil {
			return nil, fmt.Errorf("create transport: %w", err)
		}
		c.transport = t
	}

	return c, nil
}
