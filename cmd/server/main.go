package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"client_tracker_backend/internal/config"
	"client_tracker_backend/internal/database"
	"client_tracker_backend/internal/middleware"
	"client_tracker_backend/internal/repositories"
	"client_tracker_backend/internal/router"
	"client_tracker_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// App owns the process-wide resources of the API server.
type App struct {
	cfg    *config.Config
	db     *sqlx.DB
	server *http.Server
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	utils.InitLogger(cfg.Environment, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, cfg)
	if err != nil {
		utils.LogError(err, "Failed to initialize application")
		os.Exit(1)
	}

	err = app.Run(ctx)
	app.Close()
	if err != nil {
		utils.LogError(err, "Server stopped with error")
		os.Exit(1)
	}
}

// NewApp opens the store and builds the HTTP server.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{cfg: cfg}

	var clientRepo repositories.ClientRepository
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		utils.LogWarn("Using in-memory storage; data is lost on restart")
		clientRepo = repositories.NewMemoryClientRepository()
	default:
		db, err := database.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		app.db = db
		utils.LogInfo("Database connection established")

		if cfg.AutoMigrate {
			if err := database.Migrate(db); err != nil {
				app.Close()
				return nil, fmt.Errorf("migrate database: %w", err)
			}
			utils.LogInfo("Database migrations applied")
		}
		clientRepo = repositories.NewClientRepository(db)
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	deps := router.Dependencies{Config: cfg, ClientRepo: clientRepo}
	if cfg.MetricsEnabled {
		deps.Metrics = middleware.NewMetrics()
	}

	app.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.New(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return app, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{
			"port":        a.cfg.Port,
			"environment": a.cfg.Environment,
			"health":      "http://localhost:" + a.cfg.Port + "/health",
			"api":         "http://localhost:" + a.cfg.Port + a.cfg.APIPrefix,
		})
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	utils.LogInfo("Shutdown signal received, shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	utils.LogInfo("Server stopped")
	return nil
}

// Close releases the store.
func (a *App) Close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		utils.LogError(err, "Failed to close database")
		return
	}
	a.db = nil
	utils.LogInfo("Database connection closed")
}
