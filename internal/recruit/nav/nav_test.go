package nav

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/dentalrecruit/internal/recruit/domain"
	"github.com/aussiebroadwan/dentalrecruit/internal/recruit/service"
	"github.com/aussiebroadwan/dentalrecruit/internal/recruit/store/drivers/memory"
	"github.com/aussiebroadwan/dentalrecruit/pkg/recruitsdk"
	"github.com/aussiebroadwan/dentalrecruit/pkg/recruitsdk/recruittest"
	"github.com/aussiebroadwan/dentalrecruit/pkg/slogx"
)

type staticSession struct {
	cur      *domain.Session
	resolved bool
}

func (s staticSession) CurrentUser() *domain.Session { return s.cur }
func (s staticSession) Resolved() bool               { return s.resolved }

type app struct {
	srv      *recruittest.Server
	client   *recruitsdk.Client
	sessions *service.SessionService
	history  *History
	router   *Router
}

func newApp(t *testing.T) *app {
	t.Helper()

	srv := recruittest.New(t)
	sessions := service.NewSessionService(memory.NewStore(), slogx.Discard())
	client := recruitsdk.NewClient(srv.BaseURL(),
		recruitsdk.WithTokenSource(sessions),
		recruitsdk.WithLogger(slogx.Discard()),
	)
	sessions.Client = client

	history := NewHistory(PathHome)
	router := NewRouter(sessions, history, slogx.Discard())
	coord := &Coordinator{Sessions: sessions, Navigator: history, Logger: slogx.Discard()}
	t.Cleanup(coord.Attach(client))
	t.Cleanup(router.Watch())

	require.NoError(t, sessions.Initialize(context.Background()))
	return &app{srv: srv, client: client, sessions: sessions, history: history, router: router}
}

func countOf(entries []string, path string) int {
	n := 0
	for _, e := range entries {
		if e == path {
			n++
		}
	}
	return n
}

func TestDashboardPath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		session *domain.Session
		want    string
	}{
		{nil, PathLogin},
		{&domain.Session{Role: domain.RoleDoctor}, PathDoctorDashboard},
		{&domain.Session{Role: domain.RoleClinic}, PathClinicDashboard},
		{&domain.Session{Role: domain.RoleSuperadmin}, PathAdminDashboard},
		{&domain.Session{Role: "janitor"}, PathLogin},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, DashboardPath(tc.session))
	}
}

func TestSectionFor(t *testing.T) {
	t.Parallel()

	sec, ok := SectionFor("/clinic/jobs/123/applicants")
	require.True(t, ok)
	require.Equal(t, domain.RoleClinic, sec.Guard.Role)

	_, ok = SectionFor("/doctors-list")
	require.False(t, ok)
	_, ok = SectionFor(PathJobs)
	require.False(t, ok)
}

func TestGuardWaitsForResolution(t *testing.T) {
	t.Parallel()

	g := Guard{Role: domain.RoleDoctor}
	doctor := &domain.Session{Role: domain.RoleDoctor}

	require.Equal(t, Decision{Kind: Checking}, g.Evaluate(staticSession{cur: doctor}))
	require.Equal(t, Decision{Kind: Allowed}, g.Evaluate(staticSession{cur: doctor, resolved: true}))
	require.Equal(t, Decision{Kind: Redirecting, Target: PathDashboard}, g.Evaluate(staticSession{resolved: true}))
}

func TestLoginAsDoctorThenGuards(t *testing.T) {
	t.Parallel()

	a := newApp(t)
	a.srv.SeedUser("doc@x.com", "secret", "Dr Who", recruitsdk.RoleDoctor)
	require.NoError(t, a.sessions.Login(context.Background(), "doc@x.com", "secret"))

	require.Equal(t, domain.StateAuthenticated, a.sessions.State())
	require.Equal(t, Redirecting, Guard{Role: domain.RoleClinic}.Evaluate(a.sessions).Kind)
	require.Equal(t, Allowed, Guard{Role: domain.RoleDoctor}.Evaluate(a.sessions).Kind)

	d := a.router.Enter(PathClinicDashboard)
	require.Equal(t, Decision{Kind: Redirecting, Target: PathDoctorDashboard}, d)
	require.Equal(t, PathDoctorDashboard, a.history.Location())

	d = a.router.Enter(PathDoctorProfile)
	require.Equal(t, Decision{Kind: Allowed}, d)
	require.Equal(t, PathDoctorProfile, a.history.Location())
}

func TestRouterSendsAnonymousToLogin(t *testing.T) {
	t.Parallel()

	a := newApp(t)

	require.Equal(t, Decision{Kind: Redirecting, Target: PathLogin}, a.router.Enter(PathAdminDashboard))
	require.Equal(t, Decision{Kind: Redirecting, Target: PathLogin}, a.router.Enter(PathDashboard))
	require.Equal(t, Decision{Kind: Allowed}, a.router.Enter(PathJobs))
	require.Equal(t, PathJobs, a.history.Location())
}

func TestLogoutOnProtectedPageRedirectsImmediately(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	a := newApp(t)
	a.srv.SeedUser("clinic@x.com", "secret", "Smile Dental", recruitsdk.RoleClinic)
	require.NoError(t, a.sessions.Login(ctx, "clinic@x.com", "secret"))
	require.Equal(t, Allowed, a.router.Enter(PathClinicProfile).Kind)

	a.sessions.Logout(ctx)

	require.Equal(t, PathLogin, a.history.Location())
}

func TestConcurrentUnauthorizedRedirectsOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	a := newApp(t)
	a.srv.SeedUser("doc@x.com", "secret", "Dr Who", recruitsdk.RoleDoctor)
	require.NoError(t, a.sessions.Login(ctx, "doc@x.com", "secret"))
	require.Equal(t, Allowed, a.router.Enter(PathDoctorDashboard).Kind)

	a.srv.RevokeToken(a.sessions.Token())

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = a.client.MyApplications(ctx)
		}()
	}
	wg.Wait()

	require.Nil(t, a.sessions.CurrentUser())
	require.Equal(t, PathLogin, a.history.Location())
	require.Equal(t, 1, countOf(a.history.Entries(), PathLogin))
}

func TestFailedLoginDoesNotRedirect(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	a := newApp(t)
	a.srv.SeedUser("doc@x.com", "secret", "Dr Who", recruitsdk.RoleDoctor)
	a.history.Navigate(PathLogin)

	err := a.sessions.Login(ctx, "doc@x.com", "wrong")
	require.Error(t, err)
	require.Equal(t, []string{PathHome, PathLogin}, a.history.Entries())
}
