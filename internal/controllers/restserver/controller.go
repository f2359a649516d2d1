// Package restserver implements the public REST API that serves the sensor
// station map and the aggregated measurement series for charts.
package restserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/hidromet/hidromet-server/internal/aggregation"
	"github.com/hidromet/hidromet-server/internal/database"
	"github.com/hidromet/hidromet-server/internal/log"
	"github.com/hidromet/hidromet-server/pkg/config"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Controller represents the REST server controller
type Controller struct {
	ctx        context.Context
	wg         *sync.WaitGroup
	httpConfig config.HTTPData
	Server     http.Server
	DB         *database.Client
	engine     *aggregation.Engine
	logger     *zap.SugaredLogger
	handlers   *Handlers
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, hc config.HTTPData, db *database.Client, logger *zap.SugaredLogger) (*Controller, error) {
	ctrl := &Controller{
		ctx:        ctx,
		wg:         wg,
		httpConfig: hc,
		DB:         db,
		engine:     aggregation.NewEngine(db, logger),
		logger:     logger,
	}

	if ctrl.DB == nil {
		return nil, fmt.Errorf("REST server requires a database client")
	}

	// If a listen address was not provided, listen on all interfaces
	if ctrl.httpConfig.ListenAddr == "" {
		logger.Info("http.listen_addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		ctrl.httpConfig.ListenAddr = "0.0.0.0"
	}

	// Set default HTTP port if not specified
	if ctrl.httpConfig.Port == 0 {
		logger.Info("http.port not provided; defaulting to 8080")
		ctrl.httpConfig.Port = 8080
	}

	// Create handlers
	ctrl.handlers = NewHandlers(ctrl)

	// Set up router
	router := ctrl.setupRouter()
	ctrl.Server.Addr = fmt.Sprintf("%v:%v", ctrl.httpConfig.ListenAddr, ctrl.httpConfig.Port)
	ctrl.Server.Handler = router

	return ctrl, nil
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	log.Info("Starting REST server controller...")
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if c.httpConfig.TLSCertPath != "" && c.httpConfig.TLSKeyPath != "" {
			if err := c.Server.ListenAndServeTLS(c.httpConfig.TLSCertPath, c.httpConfig.TLSKeyPath); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		} else {
			if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the REST server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/api/series", c.handlers.GetSeries).Methods("GET")
	router.HandleFunc("/api/phenomena", c.handlers.GetPhenomena).Methods("GET")
	router.HandleFunc("/api/stations", c.handlers.GetStations).Methods("GET")
	router.HandleFunc("/api/stations/{id}/latest", c.handlers.GetStationLatest).Methods("GET")
	router.HandleFunc("/api/health", c.handlers.GetHealth).Methods("GET")

	return router
}
