// Package server initializes and runs the dashboard backend: storage
// backends, the identity store, and the HTTP endpoint with graceful
// shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/asnhub/asndash/internal/api"
	"github.com/asnhub/asndash/internal/config"
	"github.com/asnhub/asndash/internal/dashboard"
	"github.com/asnhub/asndash/internal/employees"
	"github.com/asnhub/asndash/internal/identity"
	"github.com/asnhub/asndash/internal/logging"
	"github.com/asnhub/asndash/internal/repomanager"
	"github.com/asnhub/asndash/internal/reports"
	"github.com/asnhub/asndash/internal/units"
	"github.com/cenkalti/backoff"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config     *config.Config
	logger     logging.Logger
	services   *api.Services
	identityDB *sql.DB
	dataDB     *sql.DB
}

// NewApp builds the full service graph: the SQLite identity store, the
// PostgreSQL repositories (with connection retry) and the domain services.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewDefault()

	store, identityDB, err := identity.OpenSQLiteStore(ctx, cfg.IdentityStorePath)
	if err != nil {
		return nil, fmt.Errorf("identity store init error: %w", err)
	}

	rm, err := connectWithRetry(ctx, cfg.DatabaseDSN, logger)
	if err != nil {
		identityDB.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	identityService := identity.NewService(store, logger)
	employeeService := employees.NewService(rm.Employees())
	unitService := units.NewService(rm.Units(), rm.Employees())
	dashboardService := dashboard.NewService(rm.Dashboard(), logger)
	reportService := reports.NewService(rm.Employees(), rm.Units(), reports.NewS3Storage(cfg), cfg, logger)

	return &App{
		config: cfg,
		logger: logger,
		services: &api.Services{
			Identity:  identityService,
			Employees: employeeService,
			Units:     unitService,
			Dashboard: dashboardService,
			Reports:   reportService,
		},
		identityDB: identityDB,
		dataDB:     rm.Conn(),
	}, nil
}

// connectWithRetry opens the PostgreSQL repository manager with exponential
// backoff until the database answers a ping.
func connectWithRetry(ctx context.Context, dsn string, logger logging.Logger) (repomanager.RepositoryManager, error) {
	var rm repomanager.RepositoryManager

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 1 * time.Second
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = 1 * time.Minute

	err := backoff.RetryNotify(func() error {
		var err error
		rm, err = repomanager.NewPostgresRepositoryManager(ctx, dsn)
		return err
	}, bo, func(err error, next time.Duration) {
		logger.Warn(ctx, "database not ready, retrying", "error", err, "next_attempt_in", next.String())
	})
	if err != nil {
		return nil, err
	}
	return rm, nil
}

func (app *App) newFiberApp() *fiber.App {
	f := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	f.Use(fiberrecover.New())
	f.Use(cors.New())
	f.Use(fiberlogger.New())

	api.SetupRoutes(f, app.services)
	return f
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run starts the HTTP endpoint and blocks until the context is cancelled
// or the listener fails, then shuts the server down gracefully.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	f := app.newFiberApp()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := f.Listen(app.config.EndpointAddr); err != nil {
			app.logger.Error(ctx, "listener stopped", "error", err)
			cancelFunc()
		}
	}()

	<-ctx.Done()

	app.logger.Info(ctx, "shutting down")
	if err := f.ShutdownWithTimeout(shutdownTimeout); err != nil {
		app.logger.Error(ctx, "shutdown error", "error", err)
	}
	wg.Wait()

	if err := app.identityDB.Close(); err != nil {
		app.logger.Error(ctx, "identity store close error", "error", err)
	}
	if err := app.dataDB.Close(); err != nil {
		app.logger.Error(ctx, "database close error", "error", err)
	}
}
