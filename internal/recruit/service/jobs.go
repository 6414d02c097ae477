package service

import (
	"context"

	"github.com/aussiebroadwan/dentalrecruit/pkg/recruitsdk"
)

// JobsService backs the public job board.
type JobsService struct {
	Client *recruitsdk.Client
}

// Browse lists active jobs matching filter.
func (s *JobsService) Browse(ctx context.Context, filter recruitsdk.JobFilter) ([]recruitsdk.Job, error) {
	return s.Client.ListJobs(ctx, filter)
}

// Get returns one job posting.
func (s *JobsService) Get(ctx context.Context, id string) (*recruitsdk.Job, error) {
	return s.Client.GetJob(ctx, id)
}
