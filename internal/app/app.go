// Package app wires the database, engine and API controllers together and
// manages process lifecycle.
package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/hidromet/hidromet-server/internal/controllers/management"
	"github.com/hidromet/hidromet-server/internal/controllers/restserver"
	"github.com/hidromet/hidromet-server/internal/database"
	"github.com/hidromet/hidromet-server/internal/log"
	"github.com/hidromet/hidromet-server/pkg/config"
	"go.uber.org/zap"
)

// Controller is an interface that provides standard methods for the API
// server backends
type Controller interface {
	StartController() error
}

// App represents the main application
type App struct {
	configProvider config.ConfigProvider
	logger         *zap.SugaredLogger
}

// New creates a new application instance
func New(configProvider config.ConfigProvider, logger *zap.SugaredLogger) *App {
	return &App{
		configProvider: configProvider,
		logger:         logger,
	}
}

// Run starts the application and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfgData, err := a.configProvider.LoadConfig()
	if err != nil {
		return err
	}

	// Connect to the database and apply schema migrations
	db := database.NewClient(cfgData.Database.ConnectionString, a.logger)
	if err := db.Connect(); err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return err
	}

	// Build the API controllers
	restServer, err := restserver.NewController(ctx, &wg, cfgData.HTTP, db, a.logger)
	if err != nil {
		return err
	}

	managementAPI, err := management.NewController(ctx, &wg, a.configProvider, cfgData.Management, db, a.logger)
	if err != nil {
		return err
	}

	controllers := []Controller{restServer, managementAPI}
	for _, controller := range controllers {
		if err := controller.StartController(); err != nil {
			return err
		}
	}

	log.Info("Application started successfully")

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal
	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	// Cancel context to signal all goroutines to stop
	cancel()

	// Wait for all workers to terminate
	log.Info("waiting for all workers to terminate...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}
