package recruitsdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Admin operations - superadmin only

// AdminDoctors lists every doctor account with its profile.
func (c *Client) AdminDoctors(ctx context.Context) ([]DoctorListing, error) {
	var rows []DoctorListing
	if err := c.adminGet(ctx, "/admin/users/doctors", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// AdminClinics lists every clinic account with its profile.
func (c *Client) AdminClinics(ctx context.Context) ([]ClinicListing, error) {
	var rows []ClinicListing
	if err := c.adminGet(ctx, "/admin/users/clinics", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// AdminJobs lists every job posting.
func (c *Client) AdminJobs(ctx context.Context) ([]Job, error) {
	var rows []Job
	if err := c.adminGet(ctx, "/admin/jobs", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// AdminApplications lists every application.
func (c *Client) AdminApplications(ctx context.Context) ([]Application, error) {
	var rows []Application
	if err := c.adminGet(ctx, "/admin/applications", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// StatsOverview returns platform-wide totals.
func (c *Client) StatsOverview(ctx context.Context) (*StatsOverview, error) {
	var s StatsOverview
	if err := c.adminGet(ctx, "/admin/stats/overview", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// JobsByCity returns job counts grouped by city.
func (c *Client) JobsByCity(ctx context.Context) ([]Bucket, error) {
	var b []Bucket
	if err := c.adminGet(ctx, "/admin/stats/jobs-by-city", &b); err != nil {
		return nil, err
	}
	return b, nil
}

// ApplicationsByStatus returns application counts grouped by status.
func (c *Client) ApplicationsByStatus(ctx context.Context) ([]Bucket, error) {
	var b []Bucket
	if err := c.adminGet(ctx, "/admin/stats/applications-by-status", &b); err != nil {
		return nil, err
	}
	return b, nil
}

// Export streams one of the server-generated CSV exports into w.
func (c *Client) Export(ctx context.Context, kind ExportKind, w io.Writer) (int64, error) {
	if !kind.Valid() {
		err := &ClientError{Message: fmt.Sprintf("unknown export %q", kind)}
		c.logger.Error("api request error", "message", err.Message)
		return 0, err
	}
	return c.Download(ctx, "/admin/export/"+string(kind), w,
		WithHeader("Accept", "text/csv"), withRoute("/admin/export/{kind}"))
}

func (c *Client) adminGet(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out, withRoute(path))
}
