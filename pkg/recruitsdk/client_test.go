package recruitsdk_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/dentalrecruit/pkg/recruitsdk"
	"github.com/aussiebroadwan/dentalrecruit/pkg/recruitsdk/recruittest"
)

type tokenBox struct {
	mu  sync.Mutex
	tok string
}

func (b *tokenBox) Set(t string) { b.mu.Lock(); b.tok = t; b.mu.Unlock() }

func (b *tokenBox) Token() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tok
}

type outcomeRecorder struct {
	mu   sync.Mutex
	seen []string
}

func (o *outcomeRecorder) ObserveRequest(method, route, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seen = append(o.seen, method+" "+route+" "+outcome)
}

func TestClientReadsTokenAtDispatch(t *testing.T) {
	t.Parallel()

	srv := recruittest.New(t)
	box := &tokenBox{tok: "first"}
	client := recruitsdk.NewClient(srv.BaseURL(), recruitsdk.WithTokenSource(box))

	// The token changes after the client is built and before the call.
	box.Set("second")
	_, err := client.ListJobs(context.Background(), recruitsdk.JobFilter{})
	require.NoError(t, err)

	box.Set("")
	_, err = client.ListJobs(context.Background(), recruitsdk.JobFilter{})
	require.NoError(t, err)

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	require.Equal(t, "Bearer second", reqs[0].Authorization)
	require.Empty(t, reqs[1].Authorization)
}

func TestClientRequestOptionsOverrideToken(t *testing.T) {
	t.Parallel()

	srv := recruittest.New(t)
	id := srv.SeedUser("doc@x.com", "secret", "Doc", recruitsdk.RoleDoctor)
	tok := srv.IssueToken(id)

	client := recruitsdk.NewClient(srv.BaseURL(), recruitsdk.WithTokenSource(recruitsdk.TokenFunc(func() string { return "ambient" })))

	user, err := client.Me(context.Background(), recruitsdk.WithToken(tok))
	require.NoError(t, err)
	require.Equal(t, id, user.ID)
	require.Equal(t, recruitsdk.RoleDoctor, user.Role)

	_, err = client.Login(context.Background(), recruitsdk.LoginRequest{Email: "doc@x.com", Password: "secret"})
	require.NoError(t, err)

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	require.Equal(t, "Bearer "+tok, reqs[0].Authorization)
	require.Empty(t, reqs[1].Authorization, "login is always anonymous")
}

func TestClientUnauthorizedEmitsEvent(t *testing.T) {
	t.Parallel()

	srv := recruittest.New(t)
	id := srv.SeedUser("doc@x.com", "secret", "Doc", recruitsdk.RoleDoctor)
	tok := srv.IssueToken(id)
	srv.RevokeToken(tok)

	client := recruitsdk.NewClient(srv.BaseURL(), recruitsdk.WithTokenSource(recruitsdk.TokenFunc(func() string { return tok })))

	var events []recruitsdk.AuthExpiredEvent
	unsubscribe := client.OnAuthExpired(func(ev recruitsdk.AuthExpiredEvent) {
		events = append(events, ev)
	})

	_, err := client.Me(context.Background())
	require.Error(t, err)
	require.True(t, recruitsdk.IsAuthExpired(err))

	var se *recruitsdk.ServerError
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusUnauthorized, se.Status)
	require.Equal(t, "token verification failed", recruitsdk.Message(err))
	require.Equal(t, "auth_expired", recruitsdk.Outcome(err))

	require.Len(t, events, 1)
	require.Equal(t, tok, events[0].Token)
	require.Equal(t, http.MethodGet, events[0].Method)
	require.True(t, strings.HasSuffix(events[0].URL, "/auth/me"))

	unsubscribe()
	unsubscribe()
	_, err = client.Me(context.Background())
	require.True(t, recruitsdk.IsAuthExpired(err))
	require.Len(t, events, 1)
}

func TestClientClassifiesServerErrors(t *testing.T) {
	t.Parallel()

	t.Run("error field", func(t *testing.T) {
		srv := recruittest.New(t)
		srv.Fail(http.MethodGet, "/jobs", http.StatusInternalServerError)
		client := recruitsdk.NewClient(srv.BaseURL())

		_, err := client.ListJobs(context.Background(), recruitsdk.JobFilter{})
		var se *recruitsdk.ServerError
		require.True(t, errors.As(err, &se))
		require.Equal(t, http.StatusInternalServerError, se.Status)
		require.Equal(t, "injected failure", recruitsdk.Message(err))
		require.False(t, recruitsdk.IsAuthExpired(err))
	})

	bodies := []struct {
		name string
		code int
		body string
		want string
	}{
		{"message field", http.StatusBadRequest, `{"message":"Title is required"}`, "Title is required"},
		{"error wins over message", http.StatusConflict, `{"error":"Already applied","message":"ignored"}`, "Already applied"},
		{"non-json body", http.StatusBadGateway, `<html>bad gateway</html>`, "Request failed with status 502 (Bad Gateway)"},
		{"empty error", http.StatusNotFound, `{"error":""}`, "Request failed with status 404 (Not Found)"},
	}
	for _, tc := range bodies {
		t.Run(tc.name, func(t *testing.T) {
			raw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.code)
				_, _ = w.Write([]byte(tc.body))
			}))
			t.Cleanup(raw.Close)

			client := recruitsdk.NewClient(raw.URL)
			_, err := client.GetJob(context.Background(), "j1")
			var se *recruitsdk.ServerError
			require.True(t, errors.As(err, &se))
			require.Equal(t, tc.code, se.Status)
			require.Equal(t, tc.want, se.Message)
		})
	}
}

func TestClientNetworkErrors(t *testing.T) {
	t.Parallel()

	t.Run("unreachable", func(t *testing.T) {
		dead := httptest.NewServer(http.NotFoundHandler())
		base := dead.URL
		dead.Close()

		client := recruitsdk.NewClient(base)
		_, err := client.ListJobs(context.Background(), recruitsdk.JobFilter{})

		var ne *recruitsdk.NetworkError
		require.True(t, errors.As(err, &ne))
		require.Equal(t, recruitsdk.NetworkHint, recruitsdk.Message(err))
		require.Equal(t, "network_error", recruitsdk.Outcome(err))
	})

	t.Run("timeout", func(t *testing.T) {
		slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		t.Cleanup(slow.Close)

		timeout := recruitsdk.WithTimeout(50 * time.Millisecond)
		custom := recruitsdk.WithHTTPClient(&http.Client{Transport: http.DefaultTransport})
		for name, opts := range map[string][]recruitsdk.Option{
			"timeout only":           {timeout},
			"timeout then transport": {timeout, custom},
			"transport then timeout": {custom, timeout},
		} {
			client := recruitsdk.NewClient(slow.URL, opts...)
			require.Equal(t, 50*time.Millisecond, client.HTTPClient.Timeout, name)

			_, err := client.ListJobs(context.Background(), recruitsdk.JobFilter{})
			var ne *recruitsdk.NetworkError
			require.True(t, errors.As(err, &ne), name)
			require.Contains(t, ne.Message, "timed out", name)
		}
	})

	t.Run("custom client keeps default timeout", func(t *testing.T) {
		hc := &http.Client{}
		client := recruitsdk.NewClient("http://example.invalid", recruitsdk.WithHTTPClient(hc))
		require.Equal(t, recruitsdk.DefaultTimeout, client.HTTPClient.Timeout)
		require.Zero(t, hc.Timeout, "caller's client is not modified")
	})
}

func TestClientValidatesBeforeSending(t *testing.T) {
	t.Parallel()

	srv := recruittest.New(t)
	client := recruitsdk.NewClient(srv.BaseURL())

	_, err := client.RegisterDoctor(context.Background(), recruitsdk.RegisterDoctorRequest{
		Email:         "not-an-email",
		Password:      "123",
		Name:          "Doc",
		FullName:      "Dr Doc",
		Qualification: "PhD",
	})
	var ce *recruitsdk.ClientError
	require.True(t, errors.As(err, &ce))
	require.Contains(t, ce.Message, "email must be a valid email")
	require.Contains(t, ce.Message, "qualification must be one of: BDS, MDS, Other")
	require.Empty(t, srv.Requests())

	_, err = client.CreateJob(context.Background(), recruitsdk.JobPosting{
		Title:                 "Associate",
		QualificationRequired: "BDS",
		JobType:               recruitsdk.JobTypeFullTime,
		SalaryRange:           recruitsdk.SalaryRange{Min: 50000, Max: 10000},
		City:                  "Pune",
		State:                 "MH",
		Description:           "Chairside",
	})
	require.True(t, errors.As(err, &ce))
	require.Contains(t, ce.Message, "max must not be less than min")
	require.Empty(t, srv.Requests())
}

func TestClientLeavesPolicyChecksToBackend(t *testing.T) {
	t.Parallel()

	srv := recruittest.New(t)
	clinicID := srv.SeedUser("smile@example.com", "secret1", "Smile Dental", recruitsdk.RoleClinic)
	tok := srv.IssueToken(clinicID)
	client := recruitsdk.NewClient(srv.BaseURL(),
		recruitsdk.WithTokenSource(recruitsdk.TokenFunc(func() string { return tok })),
	)
	ctx := context.Background()

	// Password length is the backend's call.
	resp, err := recruitsdk.NewClient(srv.BaseURL()).RegisterDoctor(ctx, recruitsdk.RegisterDoctorRequest{
		Email:         "short@example.com",
		Password:      "abc12",
		Name:          "Doc",
		FullName:      "Dr Doc",
		Qualification: "BDS",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	// A salary with only a lower bound is open-ended.
	job, err := client.CreateJob(ctx, recruitsdk.JobPosting{
		Title:                 "Associate",
		QualificationRequired: "BDS",
		JobType:               recruitsdk.JobTypeFullTime,
		SalaryRange:           recruitsdk.SalaryRange{Min: 50},
		City:                  "Pune",
		State:                 "MH",
		Description:           "Chairside",
	})
	require.NoError(t, err)
	require.NotNil(t, job.SalaryRange)
	require.Equal(t, 50, job.SalaryRange.Min)
	require.Equal(t, 0, job.SalaryRange.Max)

	var posted bool
	for _, r := range srv.Requests() {
		posted = posted || (r.Method == http.MethodPost && r.Path == "/jobs")
	}
	require.True(t, posted)
}

func TestClientObserverAndExport(t *testing.T) {
	t.Parallel()

	srv := recruittest.New(t)
	admin := srv.SeedUser("root@x.com", "secret", "Root", recruitsdk.RoleSuperadmin)
	clinic := srv.SeedUser("clinic@x.com", "secret", "Smile", recruitsdk.RoleClinic)
	srv.SeedJob(clinic, recruitsdk.JobPosting{Title: "Associate", City: "Pune", State: "MH", JobType: recruitsdk.JobTypeLocum})
	tok := srv.IssueToken(admin)

	obs := &outcomeRecorder{}
	client := recruitsdk.NewClient(srv.BaseURL(),
		recruitsdk.WithTokenSource(recruitsdk.TokenFunc(func() string { return tok })),
		recruitsdk.WithObserver(obs),
	)

	var buf bytes.Buffer
	n, err := client.Export(context.Background(), recruitsdk.ExportJobs, &buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)
	require.True(t, strings.HasPrefix(buf.String(), "id,title,city,state,jobType,isActive\n"))
	require.Contains(t, buf.String(), "Associate,Pune,MH,locum,true")

	_, err = client.Export(context.Background(), recruitsdk.ExportKind("secrets"), &buf)
	var ce *recruitsdk.ClientError
	require.True(t, errors.As(err, &ce))

	_, err = client.GetJob(context.Background(), "missing")
	require.Error(t, err)

	require.Equal(t, []string{
		"GET /admin/export/{kind} ok",
		"GET /jobs/{id} server_error",
	}, obs.seen)
}
