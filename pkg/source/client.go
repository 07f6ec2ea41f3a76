package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sony/gobreaker"

	"github.com/matzehuels/constellation/pkg/cache"
	cerrors "github.com/matzehuels/constellation/pkg/errors"
	"github.com/matzehuels/constellation/pkg/graph"
	"github.com/matzehuels/constellation/pkg/httputil"
	"github.com/matzehuels/constellation/pkg/observability"
)

// TopicsPath is the content API endpoint serving the topic graph.
const TopicsPath = "/analytics/thoughts/topics"

const (
	httpTimeout     = 10 * time.Second
	maxBodyBytes    = 8 << 20
	defaultAttempts = 3
	defaultDelay    = time.Second
)

// Client fetches the topic graph from the content API.
// It handles caching, retries with backoff and circuit breaking.
type Client struct {
	endpoint string
	http     *http.Client
	cache    cache.Cache
	keyer    cache.Keyer
	ttl      time.Duration
	headers  map[string]string
	breaker  *gobreaker.CircuitBreaker
	attempts int
	delay    time.Duration
	logger   *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client (10s timeout).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithHeaders sets headers sent with every request.
func WithHeaders(h map[string]string) Option {
	return func(c *Client) { c.headers = h }
}

// WithTTL overrides cache.TTLHTTP for cached responses.
func WithTTL(ttl time.Duration) Option {
	return func(c *Client) { c.ttl = ttl }
}

// WithKeyer overrides the default cache keyer.
func WithKeyer(k cache.Keyer) Option {
	return func(c *Client) { c.keyer = k }
}

// WithRetry sets the number of attempts and the initial backoff delay.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.delay = delay
	}
}

// WithBreaker replaces the circuit breaker settings. Name, ReadyToTrip and
// IsSuccessful are filled in when left empty.
func WithBreaker(s gobreaker.Settings) Option {
	return func(c *Client) { c.breaker = newBreaker(s, c.logger) }
}

// WithLogger sets the logger used for breaker state changes and retries.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the content API rooted at baseURL.
// A nil cache disables caching.
func NewClient(baseURL string, c cache.Cache, opts ...Option) (*Client, error) {
	if err := cerrors.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	endpoint, err := url.JoinPath(baseURL, TopicsPath)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidURL, err, "invalid base URL %q", baseURL)
	}
	if c == nil {
		c = cache.NewNullCache()
	}

	client := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: httpTimeout},
		cache:    c,
		keyer:    cache.NewDefaultKeyer(),
		ttl:      cache.TTLHTTP,
		attempts: defaultAttempts,
		delay:    defaultDelay,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.breaker == nil {
		client.breaker = newBreaker(gobreaker.Settings{}, client.logger)
	}
	return client, nil
}

// Endpoint returns the full topics URL.
func (c *Client) Endpoint() string { return c.endpoint }

// Name identifies the provider in logs and metrics.
func (c *Client) Name() string { return c.endpoint }

// FetchTopics returns the topic graph. Unless refresh is set, a cached
// response is used when available; the second result reports a cache hit.
func (c *Client) FetchTopics(ctx context.Context, refresh bool) (graph.Graph, bool, error) {
	key := c.keyer.HTTPKey("topics", c.endpoint)

	if !refresh {
		if data, ok, _ := c.cache.Get(ctx, key); ok {
			if g, err := graph.UnmarshalGraph(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "http")
				return g, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "http")
	}

	body, err := c.breaker.Execute(func() (any, error) {
		var data []byte
		err := httputil.Retry(ctx, c.attempts, c.delay, func() error {
			var err error
			data, err = c.get(ctx)
			if err != nil && httputil.IsRetryable(err) {
				c.logger.Debug("retrying topic fetch", "url", c.endpoint, "err", err)
			}
			return err
		})
		return data, err
	})
	if err != nil {
		return graph.Graph{}, false, classify(c.endpoint, err)
	}

	data := body.([]byte)
	g, err := graph.UnmarshalGraph(data)
	if err != nil {
		return graph.Graph{}, false, cerrors.Wrap(cerrors.ErrCodeNetwork, err, "decode topics from %s", c.endpoint)
	}

	if err := c.cache.Set(ctx, key, data, c.ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, "http", len(data))
	}
	return g, false, nil
}

func (c *Client) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, httputil.Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := httputil.CheckStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, httputil.Retryable(fmt.Errorf("%w: read body: %v", ErrNetwork, err))
	}
	if len(data) > maxBodyBytes {
		return nil, fmt.Errorf("%w: body exceeds %d MiB", ErrTooLarge, maxBodyBytes>>20)
	}
	return data, nil
}

// classify maps transport, status and breaker errors to coded errors.
func classify(endpoint string, err error) error {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return cerrors.Wrap(cerrors.ErrCodeUnavailable, fmt.Errorf("%w: %v", ErrUnavailable, err), "topic provider unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		return cerrors.Wrap(cerrors.ErrCodeTimeout, err, "fetch topics from %s", endpoint)
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, ErrTooLarge):
		return cerrors.Wrap(cerrors.ErrCodeNetwork, err, "topics response from %s is too large", endpoint)
	case errors.Is(err, httputil.ErrNotFound):
		return cerrors.Wrap(cerrors.ErrCodeNotFound, fmt.Errorf("%w: %v", ErrNotFound, err), "no topics endpoint at %s", endpoint)
	default:
		if !errors.Is(err, ErrNetwork) {
			err = fmt.Errorf("%w: %v", ErrNetwork, err)
		}
		return cerrors.Wrap(cerrors.ErrCodeNetwork, err, "fetch topics from %s", endpoint)
	}
}

func newBreaker(s gobreaker.Settings, logger *log.Logger) *gobreaker.CircuitBreaker {
	if s.Name == "" {
		s.Name = "topic-provider"
	}
	if s.Timeout == 0 {
		s.Timeout = 30 * time.Second
	}
	if s.ReadyToTrip == nil {
		s.ReadyToTrip = func(counts gobreaker.Counts) bool {
			if counts.Requests < 3 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		}
	}
	if s.IsSuccessful == nil {
		s.IsSuccessful = func(err error) bool {
			// A missing endpoint or a caller giving up says nothing about
			// provider health.
			return err == nil ||
				errors.Is(err, httputil.ErrNotFound) ||
				errors.Is(err, context.Canceled)
		}
	}
	if s.OnStateChange == nil && logger != nil {
		s.OnStateChange = func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		}
	}
	return gobreaker.NewCircuitBreaker(s)
}
