// Package menurepo provides read access to the menu catalog.
// The catalog is reference data maintained by staff tooling; this repository
// only looks items up during the authoritative order recheck.
package menurepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"bistro/internal/core/ports"
)

// MenuItemDTO represents a catalog entry row.
type MenuItemDTO struct {
	ID             string `gorm:"primaryKey"`
	Name           string `gorm:"not null"`
	UnitPriceCents int64
	Available      bool
}

// TableName specifies the database table name for menu items.
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// GormMenuCatalog implements MenuCatalog using GORM.
type GormMenuCatalog struct {
	db *gorm.DB
}

// NewGormMenuCatalog creates a new GORM menu catalog.
func NewGormMenuCatalog(db *gorm.DB) *GormMenuCatalog {
	return &GormMenuCatalog{db: db}
}

// Item looks up a catalog entry by its stable id.
// An unknown id returns nil without an error.
func (c *GormMenuCatalog) Item(ctx context.Context, id string) (*ports.MenuItem, error) {
	var dto MenuItemDTO
	if err := c.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &ports.MenuItem{
		ID:             dto.ID,
		Name:           dto.Name,
		UnitPriceCents: dto.UnitPriceCents,
		Available:      dto.Available,
	}, nil
}
