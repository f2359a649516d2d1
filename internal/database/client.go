// Package database provides PostgreSQL access for stations, the phenomenon
// catalog, and raw/daily measurements.
package database

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hidromet/hidromet-server/internal/log"
	"go.uber.org/zap"
)

// Client holds the connection to the PostgreSQL database
type Client struct {
	connectionString string
	DB               *gorm.DB // Exported so it can be accessed from other packages
	logger           *zap.SugaredLogger
}

// NewClient creates a new database client
func NewClient(connectionString string, logger *zap.SugaredLogger) *Client {
	return &Client{
		connectionString: connectionString,
		logger:           logger,
	}
}

// Connect connects to the PostgreSQL database
func (c *Client) Connect() error {
	var err error

	// Create a logger for gorm
	dbLogger := logger.New(
		zap.NewStdLog(log.GetZapLogger()),
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  logger.Warn, // Log level
			IgnoreRecordNotFoundError: true,        // Ignore ErrRecordNotFound error for logger
			Colorful:                  true,        // Use colors
		},
	)

	config := &gorm.Config{
		Logger: dbLogger,
	}

	log.Info("connecting to PostgreSQL...")
	c.DB, err = gorm.Open(postgres.Open(c.connectionString), config)
	if err != nil {
		log.Warn("warning: unable to create a PostgreSQL connection:", err)
		return err
	}
	log.Info("PostgreSQL connection successful")

	return nil
}

// Migrate creates or updates the database schema for all models
func (c *Client) Migrate() error {
	return c.DB.AutoMigrate(
		&Microbasin{},
		&Station{},
		&PhenomenonType{},
		&RawMeasurement{},
		&DailyMeasurement{},
	)
}

// Ping verifies the underlying connection is alive
func (c *Client) Ping() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close closes the underlying connection pool
func (c *Client) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
