package beacon

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/bft-labs/fairdraw/pkg/log"
)

const (
	// DefaultBaseURL is the public drand HTTP API endpoint.
	DefaultBaseURL = "https://api.drand.sh"

	// DefaultChain is the well-known drand mainnet chain hash.
	DefaultChain = "8990e7a9aaed2ffed73dbd7092123d6f289930540d7651336225dc172e51b2ce"

	// DefaultTimeout bounds a single fetch attempt.
	DefaultTimeout = 10 * time.Second

	// DefaultRetries is the number of times a transient failure is retried
	// before the fetch is reported as unavailable.
	DefaultRetries = 3
)

// Errors returned by the client. Check with errors.Is.
var (
	// ErrRoundRequired is returned when a fetch is attempted with an empty round.
	ErrRoundRequired = errors.New("beacon: round is required")

	// ErrProtocol is returned when the beacon answered but the response is
	// malformed: undecodable JSON, a missing randomness field, or invalid
	// hex. Protocol errors are never retried.
	ErrProtocol = errors.New("beacon: malformed beacon response")

	// ErrUnavailable is returned when every attempt failed with a transient
	// error. It wraps the last underlying cause and names the failing URL.
	ErrUnavailable = errors.New("beacon: beacon unavailable")
)

// HTTPClient abstracts HTTP request execution for testing and custom
// transports. The standard *http.Client satisfies this interface.
type HTTPClient interface {
	// Do sends an HTTP request and returns an HTTP response.
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches round randomness from a drand-style HTTP beacon.
//
// The underlying HTTP client is shared across all calls from one Client
// and is never rebuilt per request. A Client is safe for concurrent use;
// retry state is per call.
type Client struct {
	baseURL    string
	chain      string
	httpClient HTTPClient
	retries    int
	newBackOff func() backoff.BackOff
	logger     log.Logger
}

// Option configures optional behavior of a Client.
type Option func(*Client)

// WithChain sets the chain identifier used as a URL path segment.
// An empty chain means requests go directly under the base URL.
func WithChain(chain string) Option {
	return func(c *Client) {
		c.chain = chain
	}
}

// WithHTTPClient sets a custom HTTP client.
// If not provided, a default client with DefaultTimeout is used.
func WithHTTPClient(hc HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRetries sets how many times a transient failure is retried.
// Zero disables retrying; negative values are treated as zero.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n < 0 {
			n = 0
		}
		c.retries = n
	}
}

// WithBackOffFactory sets the factory producing the backoff policy for a
// single fetch. The default is exponential, 1s doubling per attempt with
// randomization disabled. Tests inject a zero backoff here.
func WithBackOffFactory(f func() backoff.BackOff) Option {
	return func(c *Client) {
		c.newBackOff = f
	}
}

// WithLogger sets a logger for retry diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a beacon client for the given base URL.
// An empty baseURL selects DefaultBaseURL. The chain defaults to
// DefaultChain; pass WithChain("") to query the base URL as-is.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		chain:      DefaultChain,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		retries:    DefaultRetries,
		newBackOff: defaultBackOff,
		logger:     log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// defaultBackOff returns the production retry schedule: 1s, 2s, 4s, ...
// between attempts, no jitter, bounded only by the retry count.
func defaultBackOff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxInterval = 64 * time.Second
	bo.MaxElapsedTime = 0
	return bo
}

// Randomness fetches the hex-decoded randomness bytes for the given round.
//
// Transient failures (transport errors, timeouts, non-2xx statuses) are
// retried per the configured policy; once retries are exhausted the last
// cause is wrapped in ErrUnavailable. Malformed responses fail immediately
// with ErrProtocol. The context is observed before the request is issued
// and while waiting for the response.
func (c *Client) Randomness(ctx context.Context, round Round) ([]byte, error) {
	if round.IsZero() {
		return nil, ErrRoundRequired
	}
	url := c.endpoint(round.String())

	var raw []byte
	op := func() error {
		b, err := c.fetchRound(ctx, url)
		if err != nil {
			return err
		}
		raw = b
		return nil
	}
	notify := func(err error, delay time.Duration) {
		c.logger.Warn("beacon fetch failed, retrying",
			log.String("url", url),
			log.Duration("backoff", delay),
			log.Err(err))
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), uint64(c.retries)), ctx)
	if err := backoff.RetryNotify(op, bo, notify); err != nil {
		if errors.Is(err, ErrProtocol) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: GET %s: %w", ErrUnavailable, url, err)
	}
	return raw, nil
}

// roundResponse is the beacon's round payload. Only randomness is
// consumed; signature verification is out of scope for this client.
type roundResponse struct {
	Round      uint64 `json:"round"`
	Randomness string `json:"randomness"`
	Signature  string `json:"signature"`
}

// fetchRound performs a single attempt. Errors in the protocol class are
// marked permanent so the retry loop surfaces them immediately.
func (c *Client) fetchRound(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("create request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch round: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("server returned %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var rr roundResponse
	if err := json.Unmarshal(body, &rr); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("%w: decode %s: %v", ErrProtocol, url, err))
	}
	if rr.Randomness == "" {
		return nil, backoff.Permanent(fmt.Errorf("%w: missing randomness field in %s", ErrProtocol, url))
	}

	raw, err := hex.DecodeString(rr.Randomness)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("%w: invalid randomness hex in %s: %v", ErrProtocol, url, err))
	}
	return raw, nil
}

// endpoint joins the base URL, the optional chain segment, and the final
// path segment.
func (c *Client) endpoint(last string) string {
	if c.chain == "" {
		return c.baseURL + "/" + last
	}
	return c.baseURL + "/" + c.chain + "/" + last
}
