// Package app initializes and runs the users directory service.
// It configures logging, storage and routing, and handles graceful shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/patric-chuzhbe/userdir/internal/apiclient"
	"github.com/patric-chuzhbe/userdir/internal/config"
	"github.com/patric-chuzhbe/userdir/internal/db/jsondb"
	"github.com/patric-chuzhbe/userdir/internal/db/memorystorage"
	"github.com/patric-chuzhbe/userdir/internal/db/postgresdb"
	"github.com/patric-chuzhbe/userdir/internal/db/redisdb"
	"github.com/patric-chuzhbe/userdir/internal/db/storage"
	"github.com/patric-chuzhbe/userdir/internal/ipchecker"
	"github.com/patric-chuzhbe/userdir/internal/limiter"
	"github.com/patric-chuzhbe/userdir/internal/logger"
	"github.com/patric-chuzhbe/userdir/internal/models"
	"github.com/patric-chuzhbe/userdir/internal/router"
	"github.com/patric-chuzhbe/userdir/internal/service"
	"github.com/patric-chuzhbe/userdir/internal/validation"
	"github.com/patric-chuzhbe/userdir/internal/web"
)

const shutdownTimeout = 10 * time.Second

// App holds the configuration, storage and HTTP handler of the service.
type App struct {
	cfg         *config.Config
	db          storage.Storage
	stopLimiter context.CancelFunc
	httpHandler http.Handler
}

// New loads the configuration, initializes the logger, opens the storage
// selected by the configuration and builds the router.
func New() (*App, error) {
	var err error
	app := &App{}

	app.cfg, err = config.New()
	if err != nil {
		return nil, err
	}

	err = logger.Init(app.cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	app.db, err = getStorageByType(app.cfg)
	if err != nil {
		return nil, err
	}

	guard, err := ipchecker.New(app.cfg.TrustedSubnet)
	if err != nil {
		return nil, err
	}

	limiterCtx, stopLimiter := context.WithCancel(context.Background())
	app.stopLimiter = stopLimiter
	createLimiter := limiter.New(limiterCtx, app.cfg.CreateRate, app.cfg.CreateBurst)

	validator := validation.New()

	app.httpHandler = router.New(
		service.New(app.db, validator),
		guard,
		router.WithCreateLimiter(createLimiter.Middleware),
		router.WithAllowedOrigins(app.cfg.AllowedOrigins),
		router.WithGzip(app.cfg.EnableGzip),
		router.WithPages(web.New(
			apiclient.New(app.cfg.APIBaseURL, app.cfg.DBConnectionTimeout),
			validator,
		)),
	)

	return app, nil
}

// Run starts the HTTP server and blocks until a termination signal or a
// server failure.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Log.Infoln("server running", "RunAddr", a.cfg.RunAddr, "APIBaseURL", a.cfg.APIBaseURL)

	server := &http.Server{
		Addr:              a.cfg.RunAddr,
		Handler:           a.httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Log.Infoln("Received shutdown signal. Closing storage and exiting...")
		a.stopLimiter()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		return a.db.Close()

	case err := <-serverErrCh:
		a.stopLimiter()
		if closeErr := a.db.Close(); closeErr != nil {
			logger.Log.Errorln("storage close error:", closeErr)
		}
		return fmt.Errorf("server error: %w", err)
	}
}

// Close finalizes resources used by App such as logging.
func (a *App) Close() {
	if err := logger.Sync(); err != nil {
		fmt.Println("Logger sync error:", err)
	}
}

func getAvailableStorageType(cfg *config.Config) int {
	if cfg.DatabaseDSN != "" {
		return models.StorageTypePostgresql
	}

	if cfg.RedisAddr != "" {
		return models.StorageTypeRedis
	}

	if cfg.DBFileName != "" {
		return models.StorageTypeFile
	}

	return models.StorageTypeMemory
}

func getStorageByType(cfg *config.Config) (storage.Storage, error) {
	switch getAvailableStorageType(cfg) {
	case models.StorageTypeUnknown:
		return nil, errors.New("unknown storage type")

	case models.StorageTypePostgresql:
		return postgresdb.New(
			context.Background(),
			cfg.DatabaseDSN,
			cfg.DBConnectionTimeout,
		)

	case models.StorageTypeRedis:
		return redisdb.New(
			context.Background(),
			cfg.RedisAddr,
			cfg.DBConnectionTimeout,
			redisdb.DefaultKey,
		)

	case models.StorageTypeFile:
		return jsondb.New(cfg.DBFileName)
	}

	return memorystorage.New()
}
