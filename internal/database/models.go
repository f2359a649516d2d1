package database

import (
	"time"

	"github.com/jackc/pgtype"
	"github.com/shopspring/decimal"
)

// Microbasin represents a hydrological microbasin grouping stations
type Microbasin struct {
	ID        int       `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name      string    `gorm:"column:name;not null;unique" json:"name"`
	River     string    `gorm:"column:river" json:"river,omitempty"`
	Area      float64   `gorm:"column:area_km2" json:"area_km2,omitempty"`
	Active    bool      `gorm:"column:active;default:true" json:"active"`
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName specifies the table name for Microbasin
func (Microbasin) TableName() string {
	return "microbasins"
}

// Station represents an environmental sensor station
type Station struct {
	StationID    string       `gorm:"primaryKey;column:station_id" json:"station_id"`
	Name         string       `gorm:"column:name;not null;unique" json:"name"`
	Latitude     float64      `gorm:"column:latitude" json:"latitude"`
	Longitude    float64      `gorm:"column:longitude" json:"longitude"`
	MicrobasinID int          `gorm:"column:microbasin_id" json:"microbasin_id,omitempty"`
	Microbasin   *Microbasin  `gorm:"foreignKey:MicrobasinID" json:"microbasin,omitempty"`
	Metadata     pgtype.JSONB `gorm:"column:metadata;type:jsonb;default:'{}'" json:"metadata,omitempty"`
	Active       bool         `gorm:"column:active;default:true" json:"active"`
	CreatedAt    time.Time    `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"column:updated_at;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName specifies the table name for Station
func (Station) TableName() string {
	return "stations"
}

// PhenomenonType represents a measured environmental quantity and the
// statistical operations that are meaningful for it
type PhenomenonType struct {
	ID                int       `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name              string    `gorm:"column:name;not null;unique" json:"name"`
	UnitOfMeasure     string    `gorm:"column:unit_of_measure" json:"unit_of_measure"`
	AllowedOperations string    `gorm:"column:allowed_operations;not null" json:"allowed_operations"`
	Active            bool      `gorm:"column:active;default:true" json:"active"`
	CreatedAt         time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName specifies the table name for PhenomenonType
func (PhenomenonType) TableName() string {
	return "phenomenon_types"
}

// RawMeasurement represents a single sensor reading as ingested
type RawMeasurement struct {
	ID               int64           `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	StationID        string          `gorm:"column:station_id;index;not null" json:"station_id"`
	PhenomenonTypeID int             `gorm:"column:phenomenon_type_id;index;not null" json:"phenomenon_type_id"`
	MeasuredAt       time.Time       `gorm:"column:measured_at;index;not null" json:"measured_at"`
	Quantity         decimal.Decimal `gorm:"column:quantity;type:decimal(20,4)" json:"quantity"`
	Active           bool            `gorm:"column:active;default:true" json:"active"`
	CreatedAt        time.Time       `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName specifies the table name for RawMeasurement
func (RawMeasurement) TableName() string {
	return "raw_measurements"
}

// DailyMeasurement represents one daily-aggregated measurement: one row per
// station, phenomenon and civil day. Rows are produced by the upstream
// ingestion pipeline; this service only reads and stores them.
type DailyMeasurement struct {
	ID               int64           `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	StationID        string          `gorm:"column:station_id;uniqueIndex:idx_daily_station_phen_date;not null" json:"station_id"`
	PhenomenonTypeID int             `gorm:"column:phenomenon_type_id;uniqueIndex:idx_daily_station_phen_date;not null" json:"phenomenon_type_id"`
	LocalDate        time.Time       `gorm:"column:local_date;uniqueIndex:idx_daily_station_phen_date;index;not null" json:"local_date"`
	Quantity         decimal.Decimal `gorm:"column:quantity;type:decimal(20,4)" json:"quantity"`
	Active           bool            `gorm:"column:active;default:true" json:"active"`
	CreatedAt        time.Time       `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName specifies the table name for DailyMeasurement
func (DailyMeasurement) TableName() string {
	return "daily_measurements"
}
