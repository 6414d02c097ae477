package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	t.Parallel()

	r := New()
	r.ObserveRequest("GET", "/jobs", "ok", 20*time.Millisecond)
	r.ObserveRequest("GET", "/jobs", "ok", 30*time.Millisecond)
	r.ObserveRequest("GET", "/auth/me", "auth_expired", time.Millisecond)
	r.SessionExpiredTotal.Inc()

	families, err := r.Registry().Gather()
	require.NoError(t, err)
	require.Len(t, families, 3)

	path := filepath.Join(t.TempDir(), "recruit.prom")
	require.NoError(t, r.WriteTextfile(path))

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(body), `recruit_api_requests_total{method="GET",outcome="auth_expired",route="/auth/me"} 1`)
	require.Contains(t, string(body), `recruit_api_requests_total{method="GET",outcome="ok",route="/jobs"} 2`)
	require.Contains(t, string(body), "recruit_session_expired_total 1")
}
