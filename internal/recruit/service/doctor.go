package service

import (
	"context"

	"github.com/aussiebroadwan/dentalrecruit/pkg/recruitsdk"
)

// StatusCounts tallies applications per status.
type StatusCounts struct {
	Applied     int
	Shortlisted int
	Rejected    int
	Hired       int
}

func (c *StatusCounts) add(status string) {
	switch status {
	case recruitsdk.StatusApplied:
		c.Applied++
	case recruitsdk.StatusShortlisted:
		c.Shortlisted++
	case recruitsdk.StatusRejected:
		c.Rejected++
	case recruitsdk.StatusHired:
		c.Hired++
	}
}

// DoctorDashboard is the doctor's landing page.
type DoctorDashboard struct {
	Applications []recruitsdk.Application
	Counts       StatusCounts
}

// DoctorService backs the doctor section.
type DoctorService struct {
	Client *recruitsdk.Client
}

func (s *DoctorService) Dashboard(ctx context.Context) (*DoctorDashboard, error) {
	apps, err := s.Client.MyApplications(ctx)
	if err != nil {
		return nil, err
	}
	d := &DoctorDashboard{Applications: apps}
	for _, a := range apps {
		d.Counts.add(a.Status)
	}
	return d, nil
}

func (s *DoctorService) Applications(ctx context.Context) ([]recruitsdk.Application, error) {
	return s.Client.MyApplications(ctx)
}

func (s *DoctorService) Profile(ctx context.Context) (*recruitsdk.DoctorProfile, error) {
	return s.Client.DoctorProfile(ctx)
}

// UpdateProfile applies edit to the current profile and saves the result.
func (s *DoctorService) UpdateProfile(ctx context.Context, edit func(*recruitsdk.DoctorProfile)) (*recruitsdk.DoctorProfile, error) {
	p, err := s.Client.DoctorProfile(ctx)
	if err != nil {
		return nil, err
	}
	edit(p)
	return s.Client.UpdateDoctorProfile(ctx, *p)
}
