package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// GetStations returns all active stations with their microbasins
func (c *Client) GetStations(ctx context.Context) ([]Station, error) {
	var stations []Station
	err := c.DB.WithContext(ctx).
		Preload("Microbasin").
		Where("active = ?", true).
		Order("name").
		Find(&stations).Error
	if err != nil {
		return nil, fmt.Errorf("error querying stations: %w", err)
	}
	return stations, nil
}

// GetStation returns one station by its external identifier
func (c *Client) GetStation(ctx context.Context, stationID string) (*Station, error) {
	var station Station
	err := c.DB.WithContext(ctx).
		Preload("Microbasin").
		Where("station_id = ?", stationID).
		First(&station).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying station %s: %w", stationID, err)
	}
	return &station, nil
}

// CreateStation inserts a new station
func (c *Client) CreateStation(ctx context.Context, station *Station) error {
	if err := c.DB.WithContext(ctx).Create(station).Error; err != nil {
		return fmt.Errorf("error creating station: %w", err)
	}
	return nil
}

// UpdateStation updates an existing station
func (c *Client) UpdateStation(ctx context.Context, station *Station) error {
	result := c.DB.WithContext(ctx).
		Model(&Station{}).
		Where("station_id = ?", station.StationID).
		Updates(station)
	if result.Error != nil {
		return fmt.Errorf("error updating station %s: %w", station.StationID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteStation soft-deletes a station by clearing its active flag, keeping
// historical measurements consistent
func (c *Client) DeleteStation(ctx context.Context, stationID string) error {
	result := c.DB.WithContext(ctx).
		Model(&Station{}).
		Where("station_id = ?", stationID).
		Update("active", false)
	if result.Error != nil {
		return fmt.Errorf("error deleting station %s: %w", stationID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetMicrobasins returns all active microbasins
func (c *Client) GetMicrobasins(ctx context.Context) ([]Microbasin, error) {
	var basins []Microbasin
	err := c.DB.WithContext(ctx).
		Where("active = ?", true).
		Order("name").
		Find(&basins).Error
	if err != nil {
		return nil, fmt.Errorf("error querying microbasins: %w", err)
	}
	return basins, nil
}

// GetMicrobasin returns one microbasin by ID
func (c *Client) GetMicrobasin(ctx context.Context, id int) (*Microbasin, error) {
	var basin Microbasin
	err := c.DB.WithContext(ctx).First(&basin, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying microbasin %d: %w", id, err)
	}
	return &basin, nil
}

// CreateMicrobasin inserts a new microbasin
func (c *Client) CreateMicrobasin(ctx context.Context, basin *Microbasin) error {
	if err := c.DB.WithContext(ctx).Create(basin).Error; err != nil {
		return fmt.Errorf("error creating microbasin: %w", err)
	}
	return nil
}

// UpdateMicrobasin updates an existing microbasin
func (c *Client) UpdateMicrobasin(ctx context.Context, basin *Microbasin) error {
	result := c.DB.WithContext(ctx).
		Model(&Microbasin{}).
		Where("id = ?", basin.ID).
		Updates(basin)
	if result.Error != nil {
		return fmt.Errorf("error updating microbasin %d: %w", basin.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMicrobasin soft-deletes a microbasin
func (c *Client) DeleteMicrobasin(ctx context.Context, id int) error {
	result := c.DB.WithContext(ctx).
		Model(&Microbasin{}).
		Where("id = ?", id).
		Update("active", false)
	if result.Error != nil {
		return fmt.Errorf("error deleting microbasin %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
