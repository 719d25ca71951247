// Package driverrepo provides data transfer objects and mapping functions for driver persistence.
package driverrepo

import (
	"time"

	"github.com/google/uuid"

	"bistro/internal/core/domain/model/driver"
	"bistro/internal/core/domain/model/kernel"
)

// DriverDTO represents the database structure for persisting driver aggregates.
// The last fix columns are nullable as a unit: either all three are set or the
// driver has never reported a position.
type DriverDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string    `gorm:"not null"`
	Phone             string    `gorm:"not null"`
	IsActive          bool
	LastFixLatitude   *float64
	LastFixLongitude  *float64
	LastFixRecordedAt *time.Time
	CurrentOrderID    *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName specifies the database table name for driver entities.
func (DriverDTO) TableName() string {
	return "drivers"
}

// fromDomain converts a driver domain aggregate to its database representation.
func fromDomain(aggregate *driver.Driver) DriverDTO {
	dto := DriverDTO{
		ID:       aggregate.ID().Bytes(),
		Name:     aggregate.Name(),
		Phone:    aggregate.Phone(),
		IsActive: aggregate.IsActive(),
	}

	if fix := aggregate.LastFix(); fix != nil {
		latitude := fix.Point().Latitude()
		longitude := fix.Point().Longitude()
		recordedAt := fix.RecordedAt()
		dto.LastFixLatitude = &latitude
		dto.LastFixLongitude = &longitude
		dto.LastFixRecordedAt = &recordedAt
	}

	if orderID := aggregate.CurrentOrder(); orderID != nil {
		raw := orderID.Bytes()
		dto.CurrentOrderID = &raw
	}

	return dto
}

// toDomain converts a database DTO to a driver domain aggregate.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var lastFix *driver.Fix
	if dto.LastFixLatitude != nil && dto.LastFixLongitude != nil && dto.LastFixRecordedAt != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.LastFixLatitude, *dto.LastFixLongitude)
		if pointErr != nil {
			return nil, pointErr
		}
		fix, fixErr := driver.NewFix(point, *dto.LastFixRecordedAt)
		if fixErr != nil {
			return nil, fixErr
		}
		lastFix = &fix
	}

	var currentOrderID *kernel.UUID
	if dto.CurrentOrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.CurrentOrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		currentOrderID = &oID
	}

	return driver.RestoreDriver(id, dto.Name, dto.Phone, dto.IsActive, lastFix, currentOrderID)
}
