package recruitsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ListJobs returns the public job board, narrowed by filter.
func (c *Client) ListJobs(ctx context.Context, filter JobFilter) ([]Job, error) {
	var jobs []Job
	err := c.Do(ctx, http.MethodGet, "/jobs", nil, &jobs,
		WithQuery(filter.Query()), withRoute("/jobs"))
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetJob returns a single job posting.
func (c *Client) GetJob(ctx context.Context, id string) (*Job, error) {
	var job Job
	if err := c.Do(ctx, http.MethodGet, "/jobs/"+url.PathEscape(id), nil, &job, withRoute("/jobs/{id}")); err != nil {
		return nil, err
	}
	return &job, nil
}

// MyJobs returns the signed-in clinic's postings.
func (c *Client) MyJobs(ctx context.Context) ([]Job, error) {
	var jobs []Job
	if err := c.Do(ctx, http.MethodGet, "/jobs/my-jobs", nil, &jobs, withRoute("/jobs/my-jobs")); err != nil {
		return nil, err
	}
	return jobs, nil
}

// CreateJob publishes a new posting for the signed-in clinic.
func (c *Client) CreateJob(ctx context.Context, posting JobPosting) (*Job, error) {
	if err := c.validateBody(http.MethodPost, "/jobs", posting); err != nil {
		return nil, err
	}

	var job Job
	if err := c.Do(ctx, http.MethodPost, "/jobs", posting, &job, withRoute("/jobs")); err != nil {
		return nil, err
	}
	return &job, nil
}

// ToggleJob flips a posting between active and inactive.
func (c *Client) ToggleJob(ctx context.Context, id string) (*Job, error) {
	var job Job
	path := "/jobs/" + url.PathEscape(id) + "/toggle"
	if err := c.Do(ctx, http.MethodPatch, path, nil, &job, withRoute("/jobs/{id}/toggle")); err != nil {
		return nil, err
	}
	return &job, nil
}

// DeleteJob removes a posting.
func (c *Client) DeleteJob(ctx context.Context, id string) error {
	return c.Do(ctx, http.MethodDelete, "/jobs/"+url.PathEscape(id), nil, nil, withRoute("/jobs/{id}"))
}
