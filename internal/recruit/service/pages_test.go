package service

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/dentalrecruit/pkg/recruitsdk"
	"github.com/aussiebroadwan/dentalrecruit/pkg/slogx"
)

func TestClinicDashboardSkipsFailingJob(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness(t)
	clinic := h.srv.SeedUser("clinic@x.com", "secret", "Smile Dental", recruitsdk.RoleClinic)
	doc1 := h.srv.SeedUser("d1@x.com", "secret", "Dr One", recruitsdk.RoleDoctor)
	doc2 := h.srv.SeedUser("d2@x.com", "secret", "Dr Two", recruitsdk.RoleDoctor)

	j1 := h.srv.SeedJob(clinic, posting("Associate", "Pune"))
	j2 := h.srv.SeedJob(clinic, posting("Locum", "Mumbai"))
	h.srv.SeedApplication(j1, doc1, recruitsdk.StatusApplied)
	h.srv.SeedApplication(j1, doc2, recruitsdk.StatusShortlisted)
	h.srv.SeedApplication(j2, doc1, recruitsdk.StatusApplied)
	h.srv.Fail(http.MethodGet, "/applications/job/"+j2+"/applications", http.StatusInternalServerError)

	require.NoError(t, h.sessions.Initialize(ctx))
	require.NoError(t, h.sessions.Login(ctx, "clinic@x.com", "secret"))

	svc := &ClinicService{Client: h.client, Logger: slogx.Discard()}
	d, err := svc.Dashboard(ctx)
	require.NoError(t, err)

	require.Equal(t, 2, d.Stats.TotalJobs)
	require.Equal(t, 2, d.Stats.TotalApplications)
	require.Equal(t, 1, d.Stats.Applied)
	require.Equal(t, 1, d.Stats.Shortlisted)
	require.Equal(t, []string{j2}, d.SkippedJobs)
	require.Len(t, d.RecentJobs, 2)
	require.Equal(t, j2, d.RecentJobs[0].ID)
}

func TestClinicDashboardRecentJobs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness(t)
	clinic := h.srv.SeedUser("clinic@x.com", "secret", "Smile Dental", recruitsdk.RoleClinic)
	var ids []string
	for i := range 7 {
		ids = append(ids, h.srv.SeedJob(clinic, posting("Job "+string(rune('A'+i)), "Pune")))
	}

	require.NoError(t, h.sessions.Initialize(ctx))
	require.NoError(t, h.sessions.Login(ctx, "clinic@x.com", "secret"))

	svc := &ClinicService{Client: h.client}
	d, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, 7, d.Stats.TotalJobs)
	require.Zero(t, d.Stats.TotalApplications)
	require.Len(t, d.RecentJobs, RecentJobsLimit)
	require.Equal(t, ids[6], d.RecentJobs[0].ID)
	require.Equal(t, ids[2], d.RecentJobs[4].ID)
}

func TestClinicManagesJobsAndApplicants(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness(t)
	h.srv.SeedUser("clinic@x.com", "secret", "Smile Dental", recruitsdk.RoleClinic)
	doc := h.srv.SeedUser("doc@x.com", "secret", "Dr Who", recruitsdk.RoleDoctor)
	require.NoError(t, h.sessions.Initialize(ctx))
	require.NoError(t, h.sessions.Login(ctx, "clinic@x.com", "secret"))

	svc := &ClinicService{Client: h.client}

	p := posting("Associate Dentist", "Pune")
	p.SalaryRange = recruitsdk.SalaryRange{Min: 40000, Max: 60000}
	job, err := svc.CreateJob(ctx, p)
	require.NoError(t, err)
	require.True(t, job.IsActive)

	toggled, err := svc.ToggleJob(ctx, job.ID)
	require.NoError(t, err)
	require.False(t, toggled.IsActive)

	appID := h.srv.SeedApplication(job.ID, doc, recruitsdk.StatusApplied)
	apps, err := svc.Applicants(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	require.Equal(t, "Dr Who", apps[0].Doctor.Name)

	updated, err := svc.UpdateStatus(ctx, appID, recruitsdk.StatusShortlisted, "call back Monday")
	require.NoError(t, err)
	require.Equal(t, recruitsdk.StatusShortlisted, updated.Status)
	require.Equal(t, "call back Monday", updated.InternalNotes)

	_, err = svc.UpdateStatus(ctx, appID, "maybe", "")
	require.Error(t, err)

	require.NoError(t, svc.DeleteJob(ctx, job.ID))
	jobs, err := svc.Jobs(ctx)
	require.NoError(t, err)
	require.Empty(t, jobs)

	prof, err := svc.UpdateProfile(ctx, func(p *recruitsdk.ClinicProfile) { p.City = "Pune" })
	require.NoError(t, err)
	require.Equal(t, "Pune", prof.City)
	require.Equal(t, "Smile Dental", prof.ClinicName)
}

func TestDoctorDashboardCounts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness(t)
	clinic := h.srv.SeedUser("clinic@x.com", "secret", "Smile Dental", recruitsdk.RoleClinic)
	doc := h.srv.SeedUser("doc@x.com", "secret", "Dr Who", recruitsdk.RoleDoctor)
	for i, st := range []string{recruitsdk.StatusApplied, recruitsdk.StatusApplied, recruitsdk.StatusRejected, recruitsdk.StatusHired} {
		job := h.srv.SeedJob(clinic, posting("Job "+string(rune('A'+i)), "Pune"))
		h.srv.SeedApplication(job, doc, st)
	}

	require.NoError(t, h.sessions.Initialize(ctx))
	require.NoError(t, h.sessions.Login(ctx, "doc@x.com", "secret"))

	svc := &DoctorService{Client: h.client}
	d, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	require.Len(t, d.Applications, 4)
	require.Equal(t, StatusCounts{Applied: 2, Rejected: 1, Hired: 1}, d.Counts)
	require.NotEmpty(t, d.Applications[0].Job.Title)

	prof, err := svc.UpdateProfile(ctx, func(p *recruitsdk.DoctorProfile) {
		p.ExperienceYears = 4
		p.PreferredLocations = []string{"Pune", "Goa"}
	})
	require.NoError(t, err)
	require.Equal(t, 4, prof.ExperienceYears)
	require.Equal(t, "Dr Who", prof.FullName)
}

func TestJobsBrowseFilters(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness(t)
	clinic := h.srv.SeedUser("clinic@x.com", "secret", "Smile Dental", recruitsdk.RoleClinic)
	pune := h.srv.SeedJob(clinic, posting("Associate", "Pune"))
	h.srv.SeedJob(clinic, posting("Locum", "Mumbai"))

	svc := &JobsService{Client: h.client}
	all, err := svc.Browse(ctx, recruitsdk.JobFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	filtered, err := svc.Browse(ctx, recruitsdk.JobFilter{City: "pune"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, pune, filtered[0].ID)
	require.Equal(t, "Smile Dental", filtered[0].Clinic.Name)

	job, err := svc.Get(ctx, pune)
	require.NoError(t, err)
	require.Equal(t, "Associate", job.Title)
}

func TestAdminDashboardAndExport(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness(t)
	h.srv.SeedUser("root@x.com", "secret", "Root", recruitsdk.RoleSuperadmin)
	clinic := h.srv.SeedUser("clinic@x.com", "secret", "Smile Dental", recruitsdk.RoleClinic)
	doc := h.srv.SeedUser("doc@x.com", "secret", "Dr Who", recruitsdk.RoleDoctor)
	job := h.srv.SeedJob(clinic, posting("Associate", "Pune"))
	h.srv.SeedJob(clinic, posting("Locum", "Pune"))
	h.srv.SeedApplication(job, doc, recruitsdk.StatusHired)

	require.NoError(t, h.sessions.Initialize(ctx))
	require.NoError(t, h.sessions.Login(ctx, "root@x.com", "secret"))

	svc := &AdminService{Client: h.client, Logger: slogx.Discard()}
	d, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, recruitsdk.StatsOverview{TotalDoctors: 1, TotalClinics: 1, TotalJobs: 2, TotalApplications: 1}, d.Overview)
	require.Equal(t, []recruitsdk.Bucket{{Key: "Pune", Count: 2}}, d.JobsByCity)
	require.Equal(t, []recruitsdk.Bucket{{Key: recruitsdk.StatusHired, Count: 1}}, d.ApplicationsByStatus)

	doctors, err := svc.Doctors(ctx)
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	require.Equal(t, "doc@x.com", doctors[0].User.Email)

	dir := t.TempDir()
	path, err := svc.Export(ctx, recruitsdk.ExportJobs, dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "jobs.csv"), path)
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(body), "Associate")

	h.srv.Fail(http.MethodGet, "/admin/export/users", http.StatusInternalServerError)
	_, err = svc.Export(ctx, recruitsdk.ExportUsers, dir)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "a failed export leaves nothing behind")
}

func TestAdminDashboardFailsAsAWhole(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness(t)
	h.srv.SeedUser("root@x.com", "secret", "Root", recruitsdk.RoleSuperadmin)
	h.srv.Fail(http.MethodGet, "/admin/stats/jobs-by-city", http.StatusInternalServerError)
	require.NoError(t, h.sessions.Initialize(ctx))
	require.NoError(t, h.sessions.Login(ctx, "root@x.com", "secret"))

	svc := &AdminService{Client: h.client}
	_, err := svc.Dashboard(ctx)
	require.Error(t, err)
	require.Equal(t, "injected failure", recruitsdk.Message(err))
}
