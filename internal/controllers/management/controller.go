// Package management implements the token-protected API for station,
// microbasin and phenomenon catalog management, plus measurement ingestion.
package management

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/hidromet/hidromet-server/internal/database"
	"github.com/hidromet/hidromet-server/internal/log"
	"github.com/hidromet/hidromet-server/pkg/config"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Controller represents the management API controller
type Controller struct {
	ctx              context.Context
	wg               *sync.WaitGroup
	managementConfig config.ManagementData
	Server           http.Server
	DB               *database.Client
	logger           *zap.SugaredLogger
	handlers         *Handlers
}

// NewController creates a new management API controller
func NewController(ctx context.Context, wg *sync.WaitGroup, configProvider config.ConfigProvider, mc config.ManagementData, db *database.Client, logger *zap.SugaredLogger) (*Controller, error) {
	ctrl := &Controller{
		ctx:              ctx,
		wg:               wg,
		managementConfig: mc,
		DB:               db,
		logger:           logger,
	}

	if ctrl.DB == nil {
		return nil, fmt.Errorf("management API requires a database client")
	}

	// Set default values
	if ctrl.managementConfig.Port == 0 {
		logger.Info("management API port not specified; defaulting to 8081")
		ctrl.managementConfig.Port = 8081
	}

	if ctrl.managementConfig.ListenAddr == "" {
		logger.Info("management API listen-addr not provided; defaulting to 127.0.0.1 (localhost only)")
		ctrl.managementConfig.ListenAddr = "127.0.0.1"
	}

	// Use the configured token or generate and persist a new one
	if mc.AuthToken != "" {
		logger.Info("═══════════════════════════════════════════════════════════════")
		logger.Info("                MANAGEMENT API ACCESS TOKEN                    ")
		logger.Info("═══════════════════════════════════════════════════════════════")
		logger.Infof("   Token: %s", mc.AuthToken)
		logger.Info("   Use this token for API authentication")
		logger.Info("═══════════════════════════════════════════════════════════════")
	} else {
		newToken := generateAuthToken()
		ctrl.managementConfig.AuthToken = newToken

		if !configProvider.IsReadOnly() {
			if err := configProvider.SaveManagementToken(newToken); err != nil {
				logger.Errorf("Failed to save auth token to configuration: %v", err)
			}
		}

		logger.Info("═══════════════════════════════════════════════════════════════")
		logger.Info("        NEW MANAGEMENT API ACCESS TOKEN GENERATED             ")
		logger.Info("═══════════════════════════════════════════════════════════════")
		logger.Infof("   Token: %s", newToken)
		logger.Info("   *** SAVE THIS TOKEN - IT WILL NOT CHANGE ON RESTART ***")
		logger.Info("   Use this token for API authentication")
		logger.Info("═══════════════════════════════════════════════════════════════")
	}

	// Create handlers
	ctrl.handlers = NewHandlers(ctrl)

	// Set up router
	router := ctrl.setupRouter()
	ctrl.Server.Addr = fmt.Sprintf("%v:%v", ctrl.managementConfig.ListenAddr, ctrl.managementConfig.Port)
	ctrl.Server.Handler = router

	return ctrl, nil
}

// StartController starts the management API server
func (c *Controller) StartController() error {
	log.Info("Starting management API controller...")
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		c.logger.Infof("Management API server starting on %s", c.Server.Addr)

		if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
			log.Errorf("Management API server error: %v", err)
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the management API server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()

	// Apply middleware
	router.Use(c.loggingMiddleware)
	router.Use(c.corsMiddleware) // CORS is always enabled

	// API routes (with authentication)
	api := router.PathPrefix("/api").Subrouter()
	api.Use(c.authMiddleware)

	// Basic API endpoints
	api.HandleFunc("/status", c.handlers.GetStatus).Methods("GET")

	// Station management endpoints
	api.HandleFunc("/config/stations", c.handlers.GetStations).Methods("GET")
	api.HandleFunc("/config/stations", c.handlers.CreateStation).Methods("POST")
	api.HandleFunc("/config/stations/{id}", c.handlers.GetStation).Methods("GET")
	api.HandleFunc("/config/stations/{id}", c.handlers.UpdateStation).Methods("PUT")
	api.HandleFunc("/config/stations/{id}", c.handlers.DeleteStation).Methods("DELETE")

	// Microbasin management endpoints
	api.HandleFunc("/config/microbasins", c.handlers.GetMicrobasins).Methods("GET")
	api.HandleFunc("/config/microbasins", c.handlers.CreateMicrobasin).Methods("POST")
	api.HandleFunc("/config/microbasins/{id}", c.handlers.GetMicrobasin).Methods("GET")
	api.HandleFunc("/config/microbasins/{id}", c.handlers.UpdateMicrobasin).Methods("PUT")
	api.HandleFunc("/config/microbasins/{id}", c.handlers.DeleteMicrobasin).Methods("DELETE")

	// Phenomenon catalog management endpoints
	api.HandleFunc("/config/phenomena", c.handlers.GetPhenomena).Methods("GET")
	api.HandleFunc("/config/phenomena", c.handlers.CreatePhenomenon).Methods("POST")
	api.HandleFunc("/config/phenomena/{id}", c.handlers.GetPhenomenon).Methods("GET")
	api.HandleFunc("/config/phenomena/{id}", c.handlers.UpdatePhenomenon).Methods("PUT")
	api.HandleFunc("/config/phenomena/{id}", c.handlers.DeletePhenomenon).Methods("DELETE")

	// Measurement ingestion endpoints
	api.HandleFunc("/measurements/raw", c.handlers.IngestRawMeasurements).Methods("POST")
	api.HandleFunc("/measurements/daily", c.handlers.IngestDailyMeasurements).Methods("POST")

	return router
}

// loggingMiddleware logs all requests
func (c *Controller) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		c.logger.Infof("%s %s %s %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// corsMiddleware adds CORS headers
func (c *Controller) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// authMiddleware validates the bearer token
func (c *Controller) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader != "" {
			expectedAuth := "Bearer " + c.managementConfig.AuthToken
			if authHeader == expectedAuth {
				next.ServeHTTP(w, r)
				return
			}
			c.logger.Debugf("Bearer token mismatch for %s", r.URL.Path)
		}

		http.Error(w, "Authentication required", http.StatusUnauthorized)
	})
}
