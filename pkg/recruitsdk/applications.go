package recruitsdk

import (
	"context"
	"net/http"
	"net/url"
)

// MyApplications returns the signed-in doctor's applications.
func (c *Client) MyApplications(ctx context.Context) ([]Application, error) {
	var apps []Application
	err := c.Do(ctx, http.MethodGet, "/applications/my-applications", nil, &apps,
		withRoute("/applications/my-applications"))
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// JobApplications returns the applications received for one of the
// signed-in clinic's jobs.
func (c *Client) JobApplications(ctx context.Context, jobID string) ([]Application, error) {
	var apps []Application
	path := "/applications/job/" + url.PathEscape(jobID) + "/applications"
	if err := c.Do(ctx, http.MethodGet, path, nil, &apps, withRoute("/applications/job/{id}/applications")); err != nil {
		return nil, err
	}
	return apps, nil
}

// UpdateApplicationStatus moves an application to a new status and stores
// the clinic's internal notes.
func (c *Client) UpdateApplicationStatus(ctx context.Context, id string, update StatusUpdate) (*Application, error) {
	path := "/applications/" + url.PathEscape(id) + "/status"
	if err := c.validateBody(http.MethodPatch, path, update); err != nil {
		return nil, err
	}

	var app Application
	if err := c.Do(ctx, http.MethodPatch, path, update, &app, withRoute("/applications/{id}/status")); err != nil {
		return nil, err
	}
	return &app, nil
}
