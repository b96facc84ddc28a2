package httpclient

import (
	"context"
	"maps"
	"net/http"
	"sync"
	"time"
)

// Defaults of a new Client.
const (
	// DefaultConnectTimeout is deliberately short; asynchronous calls can
	// afford to grow it through backoff.
	DefaultConnectTimeout = 2 * time.Second
	// DefaultReadTimeout is the per-read inactivity timeout.
	DefaultReadTimeout = 8 * time.Second
	// DefaultMaxRetries is the default attempt budget of the retry loop.
	DefaultMaxRetries = 3
	// DefaultCacheTTL applies when WithResponseCache is given a TTL <= 0.
	DefaultCacheTTL = time.Minute
)

// attemptFunc runs a single request attempt with the given timeouts.
type attemptFunc func(ctx context.Context, req *Request, tm timeouts) (*Response, error)

// Client executes [Request] values against a base URL. It is safe for
// concurrent use: retry backoff state is kept per call, and the extra
// header set is guarded by a mutex.
//
// Pattern: Functional Options - configures Client via composable option
// functions passed to [NewClient].
type Client struct {
	logger  RequestLogger
	clock   Clock
	backoff TimeoutBackoff
	factory ExecutorFactory
	cache   Cache[string, *Response]
	jar     http.CookieJar
	hc      *http.Client
	attempt attemptFunc
	retryIf func(error) bool
	headers map[string]string
	hooks   Hooks

	baseURL         string
	requestIDHeader string

	connectTimeout    time.Duration
	readTimeout       time.Duration
	maxConnectTimeout time.Duration
	cacheTTL          time.Duration
	maxRetries        int

	mu           sync.RWMutex
	jarSet       bool
	elapsedCheck bool
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the base URL every request path is appended to. It may
// be empty, in which case paths must be complete URLs.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithConnectTimeout sets the initial connect timeout of every request.
func WithConnectTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.connectTimeout = d
	}
}

// WithReadTimeout sets the per-read inactivity timeout.
func WithReadTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.readTimeout = d
	}
}

// WithMaxRetries sets the attempt budget of the retry loop. Values below 1
// mean a single attempt.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(name, value string) Option {
	return func(c *Client) {
		c.headers[name] = value
	}
}

// WithRequestLogger sets the logger that observes every attempt.
func WithRequestLogger(l RequestLogger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithHooks sets the lifecycle hooks.
func WithHooks(h Hooks) Option {
	return func(c *Client) {
		c.hooks = h
	}
}

// WithClock sets the clock used to measure attempt durations.
func WithClock(clk Clock) Option {
	return func(c *Client) {
		c.clock = clk
	}
}

// WithTimeoutBackoff sets how the connect timeout grows after a
// timeout-class failure. The default is [DoublingBackoff].
func WithTimeoutBackoff(b TimeoutBackoff) Option {
	return func(c *Client) {
		c.backoff = b
	}
}

// WithMaxConnectTimeout caps the connect timeout reached through backoff.
func WithMaxConnectTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.maxConnectTimeout = d
	}
}

// WithRetryIf replaces timeout classification with a custom predicate that
// decides whether a failed attempt is retried.
func WithRetryIf(fn func(error) bool) Option {
	return func(c *Client) {
		c.retryIf = fn
	}
}

// WithElapsedTimeoutCheck makes a timeout-class failure retryable only if
// the attempt actually ran for the timeout it is blamed on.
func WithElapsedTimeoutCheck() Option {
	return func(c *Client) {
		c.elapsedCheck = true
	}
}

// WithExecutorFactory sets the factory used by [Client.ExecuteAsync]. The
// default is [GoroutineFactory].
func WithExecutorFactory(f ExecutorFactory) Option {
	return func(c *Client) {
		c.factory = f
	}
}

// WithCookieJar sets the cookie jar. A nil jar disables cookie handling.
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *Client) {
		c.jar = jar
		c.jarSet = true
	}
}

// WithResponseCache serves GET requests from cache and stores successful
// GET responses for ttl. A ttl <= 0 means [DefaultCacheTTL].
func WithResponseCache(cache Cache[string, *Response], ttl time.Duration) Option {
	return func(c *Client) {
		if ttl <= 0 {
			ttl = DefaultCacheTTL
		}

		c.cache = cache
		c.cacheTTL = ttl
	}
}

// WithRequestID sends a unique request ID in the named header. All attempts
// of one logical request share the ID.
func WithRequestID(header string) Option {
	return func(c *Client) {
		c.requestIDHeader = header
	}
}

// NewClient creates a Client for baseURL with the given options.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:        baseURL,
		connectTimeout: DefaultConnectTimeout,
		readTimeout:    DefaultReadTimeout,
		maxRetries:     DefaultMaxRetries,
		headers:        make(map[string]string),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = NopLogger{}
	}

	if c.clock == nil {
		c.clock = RealClock{}
	}

	if c.backoff == nil {
		c.backoff = DoublingBackoff()
	}

	if c.factory == nil {
		c.factory = GoroutineFactory{}
	}

	if !c.jarSet {
		c.jar = NewCookieJar()
	}

	c.hc = &http.Client{
		Transport: newTransport(),
		Jar:       c.jar,
	}
	c.attempt = c.roundTrip

	return c
}

// BaseURL returns the base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// ConnectTimeout returns the configured initial connect timeout. Backoff
// never changes it.
func (c *Client) ConnectTimeout() time.Duration { return c.connectTimeout }

// ReadTimeout returns the configured read timeout.
func (c *Client) ReadTimeout() time.Duration { return c.readTimeout }

// MaxRetries returns the attempt budget of the retry loop.
func (c *Client) MaxRetries() int { return c.maxRetries }

// AddHeader adds a header sent with every subsequent request. Headers added
// this way are applied after the defaults, so they may replace them.
// Calls may be chained.
func (c *Client) AddHeader(name, value string) *Client {
	c.mu.Lock()
	c.headers[name] = value
	c.mu.Unlock()

	return c
}

// ClearHeaders removes all headers added with [Client.AddHeader] or
// [WithHeader].
func (c *Client) ClearHeaders() {
	c.mu.Lock()
	clear(c.headers)
	c.mu.Unlock()
}

// Headers returns a snapshot of the extra headers.
func (c *Client) Headers() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return maps.Clone(c.headers)
}

// CookieJar returns the client's cookie jar, or nil.
func (c *Client) CookieJar() http.CookieJar { return c.jar }

func (c *Client) initialTimeouts() timeouts {
	return timeouts{connect: c.connectTimeout, read: c.readTimeout}
}
