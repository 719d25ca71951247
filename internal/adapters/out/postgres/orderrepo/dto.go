// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Line items are snapshotted as a JSON document; the subtotal is denormalized
// for the staff list read model.
type OrderDTO struct {
	ID               uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Ref              string      `gorm:"uniqueIndex;not null"`
	DriverID         *uuid.UUID  `gorm:"type:uuid;index"`
	Customer         CustomerDTO `gorm:"embedded;embeddedPrefix:customer_"`
	Destination      GeoPointDTO `gorm:"embedded;embeddedPrefix:destination_"`
	Items            []byte      `gorm:"type:jsonb;not null"`
	SubtotalCents    int64
	DeliveryFeeCents int64
	Status           int `gorm:"index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// CustomerDTO represents the embedded customer block within the order table.
type CustomerDTO struct {
	Name      string
	Phone     string
	Address   string
	Email     string
	DesiredAt *time.Time
	Note      string
}

// GeoPointDTO represents embedded geographic coordinates.
type GeoPointDTO struct {
	Latitude  float64
	Longitude float64
}

// itemJSON is the JSON shape of one snapshotted line item. The field names
// are part of the read-model contract and must stay stable.
type itemJSON struct {
	ItemID         string `json:"item_id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	items := make([]itemJSON, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, itemJSON{
			ItemID:         item.ItemID(),
			Name:           item.Name(),
			UnitPriceCents: item.UnitPriceCents(),
			Quantity:       item.Quantity(),
		})
	}

	itemsRaw, err := json.Marshal(items)
	if err != nil {
		return OrderDTO{}, err
	}

	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	customer := aggregate.Customer()
	return OrderDTO{
		ID:       aggregate.ID().Bytes(),
		Ref:      aggregate.Ref(),
		DriverID: driverID,
		Customer: CustomerDTO{
			Name:      customer.Name(),
			Phone:     customer.Phone(),
			Address:   customer.Address(),
			Email:     customer.Email(),
			DesiredAt: customer.DesiredAt(),
			Note:      customer.Note(),
		},
		Destination: GeoPointDTO{
			Latitude:  aggregate.Destination().Latitude(),
			Longitude: aggregate.Destination().Longitude(),
		},
		Items:            itemsRaw,
		SubtotalCents:    aggregate.SubtotalCents(),
		DeliveryFeeCents: aggregate.DeliveryFeeCents(),
		Status:           int(aggregate.Status()),
		CreatedAt:        aggregate.CreatedAt(),
		UpdatedAt:        aggregate.UpdatedAt(),
	}, nil
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	customer, err := order.NewCustomer(
		dto.Customer.Name,
		dto.Customer.Phone,
		dto.Customer.Address,
		dto.Customer.Email,
		dto.Customer.DesiredAt,
		dto.Customer.Note,
	)
	if err != nil {
		return nil, err
	}

	destination, err := kernel.NewGeoPoint(dto.Destination.Latitude, dto.Destination.Longitude)
	if err != nil {
		return nil, err
	}

	var rawItems []itemJSON
	if err = json.Unmarshal(dto.Items, &rawItems); err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(rawItems))
	for _, raw := range rawItems {
		item, itemErr := order.NewLineItem(raw.ItemID, raw.Name, raw.UnitPriceCents, raw.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		dto.Ref,
		customer,
		destination,
		items,
		dto.DeliveryFeeCents,
		order.Status(dto.Status),
		driverID,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
