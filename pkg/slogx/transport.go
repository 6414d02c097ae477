package slogx

import (
	"log/slog"
	"net/http"
	"time"
)

// RequestIDHeader carries the id stamped on every outbound request.
const RequestIDHeader = "X-Request-ID"

// Transport is an http.RoundTripper that tags each request with a request id
// and logs the exchange at debug level. Failures are left to the caller to log.
// A logger attached to the request context takes precedence over Logger.
type Transport struct {
	Base   http.RoundTripper
	Logger *slog.Logger
}

// NewTransport wraps base (http.DefaultTransport when nil).
func NewTransport(base http.RoundTripper, logger *slog.Logger) *Transport {
	return &Transport{Base: base, Logger: logger}
}

func (t *Transport) RoundTrip(r *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	logger, ok := attached(r.Context())
	if !ok {
		logger = t.Logger
	}
	if logger == nil {
		logger = slog.Default()
	}

	reqID := r.Header.Get(RequestIDHeader)
	if reqID == "" {
		reqID = NewRequestID()
		// RoundTrippers must not mutate the caller's request.
		r = r.Clone(r.Context())
		r.Header.Set(RequestIDHeader, reqID)
	}

	logger = logger.With(
		"req_id", reqID,
		"method", r.Method,
		"url", r.URL.Redacted(),
	)

	start := time.Now()
	resp, err := base.RoundTrip(r)
	duration := time.Since(start).Milliseconds()

	if err != nil {
		logger.Debug("http_call_failed", "duration_ms", duration, "error", err)
		return nil, err
	}

	logger.Debug("http_call",
		"status", resp.StatusCode,
		"duration_ms", duration,
	)
	return resp, nil
}
