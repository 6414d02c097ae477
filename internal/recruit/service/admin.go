package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/aussiebroadwan/dentalrecruit/pkg/recruitsdk"
)

// AdminDashboard is the superadmin landing page.
type AdminDashboard struct {
	Overview             recruitsdk.StatsOverview
	JobsByCity           []recruitsdk.Bucket
	ApplicationsByStatus []recruitsdk.Bucket
}

// AdminService backs the superadmin section.
type AdminService struct {
	Client *recruitsdk.Client
	Logger *slog.Logger
}

// Dashboard fetches the three stats endpoints concurrently. Any failure fails
// the whole dashboard.
func (s *AdminService) Dashboard(ctx context.Context) (*AdminDashboard, error) {
	var d AdminDashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		o, err := s.Client.StatsOverview(gctx)
		if err != nil {
			return err
		}
		d.Overview = *o
		return nil
	})
	g.Go(func() error {
		b, err := s.Client.JobsByCity(gctx)
		d.JobsByCity = b
		return err
	})
	g.Go(func() error {
		b, err := s.Client.ApplicationsByStatus(gctx)
		d.ApplicationsByStatus = b
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *AdminService) Doctors(ctx context.Context) ([]recruitsdk.DoctorListing, error) {
	return s.Client.AdminDoctors(ctx)
}

func (s *AdminService) Clinics(ctx context.Context) ([]recruitsdk.ClinicListing, error) {
	return s.Client.AdminClinics(ctx)
}

func (s *AdminService) Jobs(ctx context.Context) ([]recruitsdk.Job, error) {
	return s.Client.AdminJobs(ctx)
}

func (s *AdminService) Applications(ctx context.Context) ([]recruitsdk.Application, error) {
	return s.Client.AdminApplications(ctx)
}

// Export downloads kind into dir/<kind>.csv and returns the path. The file
// only appears once the download completed; on failure nothing is left
// behind.
func (s *AdminService) Export(ctx context.Context, kind recruitsdk.ExportKind, dir string) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("unknown export %q", kind)
	}

	tmp, err := os.CreateTemp(dir, "."+string(kind)+"-*.csv")
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	n, err := s.Client.Export(ctx, kind, tmp)
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return "", err
	}

	dest := filepath.Join(dir, string(kind)+".csv")
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("save export: %w", err)
	}
	s.logger().Info("export saved", "kind", kind, "path", dest, "bytes", n)
	return dest, nil
}

func (s *AdminService) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
