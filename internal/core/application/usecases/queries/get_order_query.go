package queries

import (
	"errors"
	"time"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/domain/model/order"
	"bistro/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves the full details of one order, the read path used
// by clients rejoining a tracking room after a reconnect.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order's details.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderItemResponse is one snapshotted line item of an order.
type OrderItemResponse struct {
	ItemID         string
	Name           string
	UnitPriceCents int64
	Quantity       int
}

// OrderDetailsResponse is the full order view.
type OrderDetailsResponse struct {
	ID               kernel.UUID
	Ref              string
	Status           order.Status
	CustomerName     string
	CustomerPhone    string
	CustomerAddress  string
	Items            []OrderItemResponse
	SubtotalCents    int64
	DeliveryFeeCents int64
	GrandTotalCents  int64
	DriverID         *kernel.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
