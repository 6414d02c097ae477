package slogx

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransportStampsRequestID(t *testing.T) {
	t.Parallel()

	var (
		mu   sync.Mutex
		seen []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Header.Get(RequestIDHeader))
		mu.Unlock()
		w.WriteHeader(http.StatusTeapot)
	}))
	t.Cleanup(srv.Close)

	var buf bytes.Buffer
	logger := New(Config{Service: "test", Level: "debug", Format: "json", Output: &buf})
	client := &http.Client{Transport: NewTransport(nil, logger)}

	for range 2 {
		req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL+"/jobs", nil)
		require.NoError(t, err)
		resp, err := client.Do(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.Empty(t, req.Header.Get(RequestIDHeader), "caller request must not be mutated")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 2)
	require.Len(t, seen[0], 26)
	require.NotEqual(t, seen[0], seen[1])
	require.Less(t, seen[0], seen[1])

	logs := buf.String()
	require.Equal(t, 2, strings.Count(logs, `"msg":"http_call"`))
	require.Contains(t, logs, `"status":418`)
	require.Contains(t, logs, `"req_id":"`+seen[0]+`"`)
}

func TestTransportKeepsCallerRequestID(t *testing.T) {
	t.Parallel()

	got := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got <- r.Header.Get(RequestIDHeader)
	}))
	t.Cleanup(srv.Close)

	client := &http.Client{Transport: NewTransport(nil, Discard())}
	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "caller-id")

	resp, err := client.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, "caller-id", <-got)
}

func TestTransportPrefersContextLogger(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	t.Cleanup(srv.Close)

	var own, scoped bytes.Buffer
	fallback := New(Config{Service: "test", Level: "debug", Format: "json", Output: &own})
	client := &http.Client{Transport: NewTransport(nil, fallback)}

	logger := New(Config{Service: "test", Level: "debug", Format: "json", Output: &scoped}).With("command", "recruit jobs list")
	ctx := WithContext(context.Background(), logger)
	require.Same(t, logger, FromContext(ctx))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	require.Contains(t, scoped.String(), `"command":"recruit jobs list"`)
	require.Contains(t, scoped.String(), `"msg":"http_call"`)
	require.Empty(t, own.String())

	// Without one the transport's own logger is used.
	req, err = http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err = client.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Contains(t, own.String(), `"msg":"http_call"`)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, "DEBUG", ParseLevel("debug").String())
	require.Equal(t, "WARN", ParseLevel("Warning").String())
	require.Equal(t, "ERROR", ParseLevel("error").String())
	require.Equal(t, "INFO", ParseLevel("").String())
}
