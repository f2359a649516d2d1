package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// GetPhenomenonTypes returns all active phenomenon catalog entries
func (c *Client) GetPhenomenonTypes(ctx context.Context) ([]PhenomenonType, error) {
	var phenomena []PhenomenonType
	err := c.DB.WithContext(ctx).
		Where("active = ?", true).
		Order("name").
		Find(&phenomena).Error
	if err != nil {
		return nil, fmt.Errorf("error querying phenomenon types: %w", err)
	}
	return phenomena, nil
}

// GetPhenomenonType returns one catalog entry by ID
func (c *Client) GetPhenomenonType(ctx context.Context, id int) (*PhenomenonType, error) {
	var phenomenon PhenomenonType
	err := c.DB.WithContext(ctx).First(&phenomenon, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying phenomenon type %d: %w", id, err)
	}
	return &phenomenon, nil
}

// GetPhenomenonTypeByName returns one catalog entry by its unique name
func (c *Client) GetPhenomenonTypeByName(ctx context.Context, name string) (*PhenomenonType, error) {
	var phenomenon PhenomenonType
	err := c.DB.WithContext(ctx).Where("name = ?", name).First(&phenomenon).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying phenomenon type %q: %w", name, err)
	}
	return &phenomenon, nil
}

// CreatePhenomenonType inserts a new catalog entry
func (c *Client) CreatePhenomenonType(ctx context.Context, phenomenon *PhenomenonType) error {
	if err := c.DB.WithContext(ctx).Create(phenomenon).Error; err != nil {
		return fmt.Errorf("error creating phenomenon type: %w", err)
	}
	return nil
}

// UpdatePhenomenonType updates an existing catalog entry
func (c *Client) UpdatePhenomenonType(ctx context.Context, phenomenon *PhenomenonType) error {
	result := c.DB.WithContext(ctx).
		Model(&PhenomenonType{}).
		Where("id = ?", phenomenon.ID).
		Updates(phenomenon)
	if result.Error != nil {
		return fmt.Errorf("error updating phenomenon type %d: %w", phenomenon.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePhenomenonType soft-deletes a catalog entry
func (c *Client) DeletePhenomenonType(ctx context.Context, id int) error {
	result := c.DB.WithContext(ctx).
		Model(&PhenomenonType{}).
		Where("id = ?", id).
		Update("active", false)
	if result.Error != nil {
		return fmt.Errorf("error deleting phenomenon type %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
