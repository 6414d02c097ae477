package recruitsdk

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultTimeout is the transport-level cutoff applied to every request.
const DefaultTimeout = 10 * time.Second

// TokenSource supplies the bearer token for outgoing requests. It is read
// synchronously at dispatch time, never captured at construction.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a plain function to a TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// Observer receives one call per finished request. Outcome is one of
// "ok", "server_error", "auth_expired", "network_error" or "client_error".
type Observer interface {
	ObserveRequest(method, route, outcome string, elapsed time.Duration)
}

// AuthExpiredEvent is emitted when the backend answers 401. Token is the
// bearer value that was sent with the rejected request ("" if none).
type AuthExpiredEvent struct {
	Token  string
	Method string
	URL    string
}

// Client is the single gateway for every call to the Dental Recruit API.
// It is configured once and safe for concurrent use.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	timeout  time.Duration
	tokens   TokenSource
	logger   *slog.Logger
	limiter  *rate.Limiter
	observer Observer

	mu          sync.RWMutex
	nextSubID   int
	subscribers map[int]func(AuthExpiredEvent)
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient uses a copy of hc for transport. The copy's Timeout is
// set from WithTimeout (or DefaultTimeout) regardless of option order.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			cp := *hc
			c.HTTPClient = &cp
		}
	}
}

// WithTokenSource sets where the bearer token is read from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger sets the logger used for failure diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRateLimit throttles outgoing requests. rps <= 0 disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithObserver registers a request observer (metrics).
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// NewClient creates a gateway for baseURL with a 10 second timeout.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL:     strings.TrimSuffix(baseURL, "/"),
		HTTPClient:  &http.Client{},
		timeout:     DefaultTimeout,
		logger:      slog.Default(),
		subscribers: make(map[int]func(AuthExpiredEvent)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.HTTPClient.Timeout = c.timeout
	return c
}

// OnAuthExpired subscribes fn to 401 responses. fn runs synchronously on the
// goroutine that received the 401, before the caller sees the error.
func (c *Client) OnAuthExpired(fn func(AuthExpiredEvent)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subscribers, id)
			c.mu.Unlock()
		})
	}
}

func (c *Client) emitAuthExpired(ev AuthExpiredEvent) {
	c.mu.RLock()
	subs := make([]func(AuthExpiredEvent), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	c.mu.RUnlock()

	for _, fn := range subs {
		fn(ev)
	}
}

// currentToken reads the token source at call time.
func (c *Client) currentToken() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}
