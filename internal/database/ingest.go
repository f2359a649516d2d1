package database

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"
)

// ingestBatchSize bounds how many rows GORM inserts per statement
const ingestBatchSize = 500

// InsertRawMeasurements stores a batch of raw sensor readings
func (c *Client) InsertRawMeasurements(ctx context.Context, measurements []RawMeasurement) error {
	if len(measurements) == 0 {
		return nil
	}
	if err := c.DB.WithContext(ctx).CreateInBatches(measurements, ingestBatchSize).Error; err != nil {
		return fmt.Errorf("error inserting raw measurements: %w", err)
	}
	return nil
}

// InsertDailyMeasurements stores a batch of daily-aggregated measurements.
// Re-ingesting a (station, phenomenon, day) row replaces its quantity, so
// upstream recomputation stays idempotent.
func (c *Client) InsertDailyMeasurements(ctx context.Context, measurements []DailyMeasurement) error {
	if len(measurements) == 0 {
		return nil
	}
	err := c.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "station_id"}, {Name: "phenomenon_type_id"}, {Name: "local_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "active"}),
		}).
		CreateInBatches(measurements, ingestBatchSize).Error
	if err != nil {
		return fmt.Errorf("error inserting daily measurements: %w", err)
	}
	return nil
}
