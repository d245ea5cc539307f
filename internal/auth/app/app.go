package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/jobdesk/jobdesk/internal/auth/http"
	"github.com/jobdesk/jobdesk/internal/auth/service"
	"github.com/jobdesk/jobdesk/internal/auth/store"
	"github.com/jobdesk/jobdesk/internal/auth/store/drivers/sqlite"
	"github.com/jobdesk/jobdesk/pkg/httpx"
	"github.com/jobdesk/jobdesk/pkg/jwtx"
	"github.com/jobdesk/jobdesk/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth service application with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	tokens *jwtx.Manager

	// Services
	authService         *service.AuthService
	userService         *service.UserService
	bootstrapService    *service.BootstrapService
	auditService        *service.AuditService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	tokens, err := jwtx.NewManager(
		app.cfg.AccessSecret,
		app.cfg.RefreshSecret,
		app.cfg.AccessTTL,
		app.cfg.RefreshTTL,
		app.cfg.Issuer,
	)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize token manager: %w", err)
	}
	app.tokens = tokens

	app.initServices()

	// Seed the first super-admin before the server accepts traffic. Without
	// one, nobody can register accounts.
	ctx := context.Background()
	created, err := app.bootstrapService.EnsureAdmin(ctx, app.cfg.AdminName, app.cfg.AdminEmail, app.cfg.AdminPassword)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to bootstrap admin user: %w", err)
	}
	if created {
		app.logger.Info("bootstrap admin user created", "email", app.cfg.AdminEmail)
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.auditService.Start()
	app.housekeepingService.Start()

	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion, "env", app.cfg.Env)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop background services. Audit last so in-flight handlers can still
	// record while draining.
	app.housekeepingService.Stop()
	app.auditService.Stop()

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.auditService = service.NewAuditService(app.db, app.logger, app.cfg.AuditBuffer)

	app.authService = &service.AuthService{
		Store:         app.db,
		Tokens:        app.tokens,
		Audit:         app.auditService,
		Issuer:        app.cfg.Issuer,
		DevBypassCode: app.cfg.MFADevBypass,
	}

	app.userService = &service.UserService{
		Store: app.db,
		Audit: app.auditService,
	}

	app.bootstrapService = &service.BootstrapService{
		Store: app.db,
		Audit: app.auditService,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.AuditRetention,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	cookies := httpx.CookieConfig{
		Secure:   app.cfg.CookieSecure,
		Domain:   app.cfg.CookieDomain,
		SameSite: parseSameSite(app.cfg.CookieSameSite),
		CSRFName: app.cfg.CSRFCookieName,
	}

	// Reset tokens are only echoed back in responses on a dev environment,
	// never in staging or production.
	devMode := app.cfg.Env == "dev"

	router := httpapi.NewRouter(
		app.tokens,
		cookies,
		app.cfg.CSRFHeaderName,
		BuildVersion,
		devMode,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.AuthService = app.authService
	router.UserService = app.userService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

func parseSameSite(value string) http.SameSite {
	switch value {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
