package database

import (
	"context"
	"fmt"
	"time"

	"github.com/hidromet/hidromet-server/internal/aggregation"
	"github.com/shopspring/decimal"
)

// fetchedDailyRow is the pre-joined shape returned by the daily series query
type fetchedDailyRow struct {
	LocalDate         time.Time       `gorm:"column:local_date"`
	Phenomenon        string          `gorm:"column:phenomenon"`
	AllowedOperations string          `gorm:"column:allowed_operations"`
	Quantity          decimal.Decimal `gorm:"column:quantity"`
}

// FetchDailyMeasurements implements aggregation.Store. Rows are pre-joined
// with phenomenon name and allowed-operations set, restricted to active
// measurements, phenomena and stations, and ordered by date then phenomenon.
// An empty station reference means no station filter; an unknown station
// reference yields an empty result set.
func (c *Client) FetchDailyMeasurements(ctx context.Context, station string, start, end *time.Time) ([]aggregation.Measurement, error) {
	query := c.DB.WithContext(ctx).
		Table("daily_measurements dm").
		Select("dm.local_date AS local_date, pt.name AS phenomenon, pt.allowed_operations AS allowed_operations, dm.quantity AS quantity").
		Joins("JOIN phenomenon_types pt ON pt.id = dm.phenomenon_type_id").
		Joins("JOIN stations s ON s.station_id = dm.station_id").
		Where("dm.active = ? AND pt.active = ? AND s.active = ?", true, true, true)

	if station != "" {
		query = query.Where("s.station_id = ?", station)
	}
	if start != nil {
		query = query.Where("dm.local_date >= ?", *start)
	}
	if end != nil {
		// The end bound is an inclusive calendar date
		query = query.Where("dm.local_date < ?", end.AddDate(0, 0, 1))
	}

	var rows []fetchedDailyRow
	if err := query.Order("dm.local_date ASC, pt.name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error querying daily measurements: %w", err)
	}

	measurements := make([]aggregation.Measurement, 0, len(rows))
	for _, row := range rows {
		allowed, err := aggregation.ParseOperationSet(row.AllowedOperations)
		if err != nil {
			// A malformed catalog entry should not take down the whole
			// series; skip its rows and flag the catalog record.
			c.logger.Warnf("skipping phenomenon %q with malformed operation set %q: %v",
				row.Phenomenon, row.AllowedOperations, err)
			continue
		}
		measurements = append(measurements, aggregation.Measurement{
			MeasuredAt: row.LocalDate,
			Phenomenon: row.Phenomenon,
			Allowed:    allowed,
			Quantity:   row.Quantity,
		})
	}

	return measurements, nil
}

// LatestReading is the most recent raw measurement for one phenomenon at a
// station
type LatestReading struct {
	Phenomenon    string          `gorm:"column:phenomenon" json:"phenomenon"`
	UnitOfMeasure string          `gorm:"column:unit_of_measure" json:"unit_of_measure"`
	MeasuredAt    time.Time       `gorm:"column:measured_at" json:"measured_at"`
	Quantity      decimal.Decimal `gorm:"column:quantity" json:"quantity"`
}

// GetLatestReadings returns the most recent active raw measurement per
// phenomenon for the given station
func (c *Client) GetLatestReadings(ctx context.Context, stationID string) ([]LatestReading, error) {
	var readings []LatestReading

	err := c.DB.WithContext(ctx).
		Table("raw_measurements rm").
		Select("DISTINCT ON (rm.phenomenon_type_id) pt.name AS phenomenon, pt.unit_of_measure AS unit_of_measure, rm.measured_at AS measured_at, rm.quantity AS quantity").
		Joins("JOIN phenomenon_types pt ON pt.id = rm.phenomenon_type_id").
		Where("rm.station_id = ? AND rm.active = ? AND pt.active = ?", stationID, true, true).
		Order("rm.phenomenon_type_id, rm.measured_at DESC").
		Find(&readings).Error
	if err != nil {
		return nil, fmt.Errorf("error querying latest readings: %w", err)
	}

	return readings, nil
}
