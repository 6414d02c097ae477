package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/aussiebroadwan/dentalrecruit/internal/recruit/metrics"
	"github.com/aussiebroadwan/dentalrecruit/internal/recruit/nav"
	"github.com/aussiebroadwan/dentalrecruit/internal/recruit/service"
	"github.com/aussiebroadwan/dentalrecruit/internal/recruit/store"
	"github.com/aussiebroadwan/dentalrecruit/internal/recruit/store/drivers/memory"
	"github.com/aussiebroadwan/dentalrecruit/internal/recruit/store/drivers/sqlite"
	"github.com/aussiebroadwan/dentalrecruit/pkg/recruitsdk"
	"github.com/aussiebroadwan/dentalrecruit/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application holds the client-side object graph: storage, the API gateway,
// the session, navigation and the page services.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db      store.Store
	metrics *metrics.Recorder

	Client   *recruitsdk.Client
	Sessions *service.SessionService
	History  *nav.History
	Router   *nav.Router

	Jobs   *service.JobsService
	Doctor *service.DoctorService
	Clinic *service.ClinicService
	Admin  *service.AdminService

	stops []func()
}

// New wires the application. Call Start before using it and Shutdown when done.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "recruit",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		metrics: metrics.New(),
	}

	if err := app.initStorage(); err != nil {
		return nil, err
	}
	app.initServices()
	app.initNavigation()

	return app, nil
}

// Start restores any persisted session and begins watching it.
func (app *Application) Start(ctx context.Context) error {
	if err := app.Sessions.Initialize(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	app.stops = append(app.stops, app.Router.Watch())
	return nil
}

// Shutdown flushes metrics and releases storage.
func (app *Application) Shutdown() error {
	for _, stop := range app.stops {
		stop()
	}
	app.stops = nil

	var errs []error
	if app.cfg.MetricsFile != "" {
		if err := app.metrics.WriteTextfile(app.cfg.MetricsFile); err != nil {
			app.logger.Error("write metrics failed", "path", app.cfg.MetricsFile, "error", err)
			errs = append(errs, err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing storage", "error", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (app *Application) Logger() *slog.Logger { return app.logger }

// initStorage opens the persisted client storage and applies migrations.
func (app *Application) initStorage() error {
	if app.cfg.StorageFile == MemoryStorage {
		app.db = memory.NewStore()
		return nil
	}

	if dir := filepath.Dir(app.cfg.StorageFile); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", app.cfg.StorageFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply storage migrations: %w", err)
	}

	app.db = db
	app.logger.Debug("storage ready", "path", app.cfg.StorageFile)
	return nil
}

// initServices builds the gateway and everything that calls it.
func (app *Application) initServices() {
	app.Sessions = service.NewSessionService(app.db, app.logger)

	app.Client = recruitsdk.NewClient(app.cfg.APIBaseURL,
		recruitsdk.WithHTTPClient(&http.Client{Transport: slogx.NewTransport(nil, app.logger)}),
		recruitsdk.WithTimeout(app.cfg.APITimeout),
		recruitsdk.WithTokenSource(app.Sessions),
		recruitsdk.WithLogger(app.logger),
		recruitsdk.WithRateLimit(app.cfg.RateLimit, app.cfg.Burst),
		recruitsdk.WithObserver(app.metrics),
	)
	app.Sessions.Client = app.Client

	app.Jobs = &service.JobsService{Client: app.Client}
	app.Doctor = &service.DoctorService{Client: app.Client}
	app.Clinic = &service.ClinicService{Client: app.Client, Logger: app.logger}
	app.Admin = &service.AdminService{Client: app.Client, Logger: app.logger}
}

// initNavigation sets up history, guards and the 401 coordinator.
func (app *Application) initNavigation() {
	app.History = nav.NewHistory(nav.PathHome)
	app.Router = nav.NewRouter(app.Sessions, app.History, app.logger)

	coord := &nav.Coordinator{
		Sessions:  app.Sessions,
		Navigator: app.History,
		Logger:    app.logger,
		Expired:   app.metrics.SessionExpiredTotal,
	}
	app.stops = append(app.stops, coord.Attach(app.Client))
}
