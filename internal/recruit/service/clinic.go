package service

import (
	"context"
	"log/slog"
	"slices"

	"github.com/aussiebroadwan/dentalrecruit/pkg/recruitsdk"
)

// RecentJobsLimit is how many postings the clinic dashboard lists.
const RecentJobsLimit = 5

// ClinicStats are the clinic dashboard's headline numbers.
type ClinicStats struct {
	TotalJobs         int
	TotalApplications int
	Applied           int
	Shortlisted       int
}

// ClinicDashboard is the clinic's landing page. SkippedJobs lists the jobs
// whose applications could not be fetched and are missing from Stats.
type ClinicDashboard struct {
	Stats       ClinicStats
	RecentJobs  []recruitsdk.Job
	SkippedJobs []string
}

// ClinicService backs the clinic section.
type ClinicService struct {
	Client *recruitsdk.Client
	Logger *slog.Logger
}

// Dashboard fetches the clinic's jobs, then each job's applications one
// after another. A job whose applications fail to load is logged and left
// out of the totals; it does not fail the dashboard.
func (s *ClinicService) Dashboard(ctx context.Context) (*ClinicDashboard, error) {
	jobs, err := s.Client.MyJobs(ctx)
	if err != nil {
		return nil, err
	}

	d := &ClinicDashboard{Stats: ClinicStats{TotalJobs: len(jobs)}}
	for _, job := range jobs {
		apps, err := s.Client.JobApplications(ctx, job.ID)
		if err != nil {
			s.logger().Warn("skipping job in dashboard totals",
				"job_id", job.ID,
				"error", recruitsdk.Message(err),
			)
			d.SkippedJobs = append(d.SkippedJobs, job.ID)
			continue
		}
		d.Stats.TotalApplications += len(apps)
		for _, a := range apps {
			switch a.Status {
			case recruitsdk.StatusApplied:
				d.Stats.Applied++
			case recruitsdk.StatusShortlisted:
				d.Stats.Shortlisted++
			}
		}
	}

	recent := slices.Clone(jobs)
	slices.SortStableFunc(recent, func(a, b recruitsdk.Job) int { return b.CreatedAt.Compare(a.CreatedAt) })
	if len(recent) > RecentJobsLimit {
		recent = recent[:RecentJobsLimit]
	}
	d.RecentJobs = recent
	return d, nil
}

func (s *ClinicService) Jobs(ctx context.Context) ([]recruitsdk.Job, error) {
	return s.Client.MyJobs(ctx)
}

func (s *ClinicService) CreateJob(ctx context.Context, posting recruitsdk.JobPosting) (*recruitsdk.Job, error) {
	return s.Client.CreateJob(ctx, posting)
}

func (s *ClinicService) ToggleJob(ctx context.Context, id string) (*recruitsdk.Job, error) {
	return s.Client.ToggleJob(ctx, id)
}

func (s *ClinicService) DeleteJob(ctx context.Context, id string) error {
	return s.Client.DeleteJob(ctx, id)
}

// Applicants lists the applications received for one of the clinic's jobs.
func (s *ClinicService) Applicants(ctx context.Context, jobID string) ([]recruitsdk.Application, error) {
	return s.Client.JobApplications(ctx, jobID)
}

// UpdateStatus moves an application along and records the clinic's notes.
func (s *ClinicService) UpdateStatus(ctx context.Context, appID, status, notes string) (*recruitsdk.Application, error) {
	return s.Client.UpdateApplicationStatus(ctx, appID, recruitsdk.StatusUpdate{
		Status:        status,
		InternalNotes: notes,
	})
}

func (s *ClinicService) Profile(ctx context.Context) (*recruitsdk.ClinicProfile, error) {
	return s.Client.ClinicProfile(ctx)
}

// UpdateProfile applies edit to the current profile and saves the result.
func (s *ClinicService) UpdateProfile(ctx context.Context, edit func(*recruitsdk.ClinicProfile)) (*recruitsdk.ClinicProfile, error) {
	p, err := s.Client.ClinicProfile(ctx)
	if err != nil {
		return nil, err
	}
	edit(p)
	return s.Client.UpdateClinicProfile(ctx, *p)
}

func (s *ClinicService) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
