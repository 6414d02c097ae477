package recruitsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// requestOptions are the per-call knobs of Do and Download.
type requestOptions struct {
	token    string
	tokenSet bool
	noAuth   bool
	query    url.Values
	headers  map[string]string
	route    string
}

// RequestOption customises a single call.
type RequestOption func(*requestOptions)

// WithToken sends token instead of the token source's value.
func WithToken(token string) RequestOption {
	return func(o *requestOptions) {
		o.token = token
		o.tokenSet = true
	}
}

// WithoutAuth sends no Authorization header.
func WithoutAuth() RequestOption {
	return func(o *requestOptions) { o.noAuth = true }
}

// WithQuery appends query parameters to the path.
func WithQuery(q url.Values) RequestOption {
	return func(o *requestOptions) { o.query = q }
}

// WithHeader sets an extra request header.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if o.headers == nil {
			o.headers = make(map[string]string)
		}
		o.headers[key] = value
	}
}

// withRoute labels the call for metrics with a low-cardinality template.
func withRoute(tmpl string) RequestOption {
	return func(o *requestOptions) { o.route = tmpl }
}

// url builds a complete URL by appending the path to the base URL.
func (c *Client) url(path string, q url.Values) string {
	u := c.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// Do sends one request and decodes a 2xx JSON body into out (if non-nil).
// Failures are classified as *ServerError, *AuthExpiredError, *NetworkError
// or *ClientError and logged before being returned. Nothing is retried.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	ro := applyOptions(opts)
	start := time.Now()

	resp, err := c.send(ctx, method, path, body, ro)
	if err == nil {
		err = c.decodeJSON(resp, out, method, path)
	}

	c.observe(method, path, ro, err, time.Since(start))
	return err
}

// Download streams a 2xx body into w, for opaque payloads such as CSV exports.
func (c *Client) Download(ctx context.Context, path string, w io.Writer, opts ...RequestOption) (int64, error) {
	ro := applyOptions(opts)
	start := time.Now()

	resp, err := c.send(ctx, http.MethodGet, path, nil, ro)
	var n int64
	if err == nil {
		defer resp.Body.Close()
		n, err = io.Copy(w, resp.Body)
		if err != nil {
			err = c.networkFailure(http.MethodGet, c.url(path, ro.query), err)
		}
	}

	c.observe(http.MethodGet, path, ro, err, time.Since(start))
	return n, err
}

func applyOptions(opts []RequestOption) *requestOptions {
	ro := &requestOptions{}
	for _, opt := range opts {
		opt(ro)
	}
	return ro
}

// send performs the HTTP exchange and classifies non-2xx responses. On
// success the caller owns resp.Body.
func (c *Client) send(ctx context.Context, method, path string, body any, ro *requestOptions) (*http.Response, error) {
	target := c.url(path, ro.query)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, c.clientFailure(method, target, "failed to encode request body", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, c.clientFailure(method, target, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range ro.headers {
		req.Header.Set(key, value)
	}

	// Read the session at dispatch time, not when the caller was built.
	token := ro.token
	if !ro.tokenSet && !ro.noAuth {
		token = c.currentToken()
	}
	if ro.noAuth {
		token = ""
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, c.clientFailure(method, target, "request throttled", err)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, c.networkFailure(method, target, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer resp.Body.Close()
	bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	se := parseServerError(resp.StatusCode, bodyBytes)

	c.logger.ErrorContext(ctx, "api error response",
		"status", se.Status,
		"message", se.Message,
		"method", method,
		"url", target,
		"base_url", c.BaseURL,
	)

	if resp.StatusCode == http.StatusUnauthorized {
		c.emitAuthExpired(AuthExpiredEvent{Token: token, Method: method, URL: target})
		return nil, &AuthExpiredError{Server: se}
	}
	return nil, se
}

// decodeJSON decodes a successful response into target and closes the body.
func (c *Client) decodeJSON(resp *http.Response, target any, method, path string) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.networkFailure(method, c.url(path, nil), err)
	}
	if target == nil || len(bytes.TrimSpace(bodyBytes)) == 0 {
		return nil
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return c.clientFailure(method, c.url(path, nil), "failed to decode response", err)
	}
	return nil
}

func (c *Client) networkFailure(method, target string, err error) error {
	msg := err.Error()
	if errors.Is(err, context.DeadlineExceeded) {
		msg = fmt.Sprintf("request timed out after %s", c.HTTPClient.Timeout)
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		msg = fmt.Sprintf("request timed out after %s", c.HTTPClient.Timeout)
	}

	c.logger.Error("api network error",
		"message", msg,
		"method", method,
		"url", target,
		"base_url", c.BaseURL,
	)
	return &NetworkError{Message: msg, Hint: NetworkHint, Err: err}
}

func (c *Client) clientFailure(method, target, msg string, err error) error {
	c.logger.Error("api request error",
		"message", msg,
		"error", err,
		"method", method,
		"url", target,
	)
	return &ClientError{Message: fmt.Sprintf("%s: %v", msg, err), Err: err}
}

func (c *Client) observe(method, path string, ro *requestOptions, err error, elapsed time.Duration) {
	if c.observer == nil {
		return
	}
	route := ro.route
	if route == "" {
		route = path
	}
	c.observer.ObserveRequest(method, route, Outcome(err), elapsed)
}

// Outcome maps an error returned by the client to its taxonomy label.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var (
		ae *AuthExpiredError
		se *ServerError
		ne *NetworkError
	)
	switch {
	case errors.As(err, &ae):
		return "auth_expired"
	case errors.As(err, &se):
		return "server_error"
	case errors.As(err, &ne):
		return "network_error"
	default:
		return "client_error"
	}
}
