package queries

import (
	"errors"
	"time"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/pkg/guard"
)

var ErrGetDriverLocationQueryIsNotConstructed = errors.New(
	"GetDriverLocationQuery must be created via NewGetDriverLocationQuery constructor",
)

// Location sources reported to the client. The map always shows a pin; the
// source tells the client what the pin means.
const (
	// LocationSourceDriver is a live fix from the assigned driver.
	LocationSourceDriver = "driver"
	// LocationSourceOrigin is the restaurant position, used before the order
	// is on the way or when no fix has arrived yet.
	LocationSourceOrigin = "origin"
	// LocationSourceDestination pins a delivered order to the customer address.
	LocationSourceDestination = "destination"
)

// GetDriverLocationQuery retrieves the position to show for an order.
type GetDriverLocationQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDriverLocationQuery creates a query for an order's map position.
func NewGetDriverLocationQuery(orderID kernel.UUID) (GetDriverLocationQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetDriverLocationQuery{}, err
	}

	return GetDriverLocationQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDriverLocationQueryIsNotConstructed if validation fails.
func (q GetDriverLocationQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverLocationQueryIsNotConstructed)
}

// OrderID returns the identifier of the order being tracked.
func (q GetDriverLocationQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetDriverLocationQueryResponse is the position shown on the tracking map.
// LastUpdated and DriverName are only set for live driver fixes.
type GetDriverLocationQueryResponse struct {
	Latitude    float64
	Longitude   float64
	LastUpdated *time.Time
	DriverName  string
	Source      string
}
