// Package queries contains read-only operations over the persistence layer.
// Query handlers read raw projections directly from the database, bypassing
// the aggregate repositories, per the CQRS split.
package queries

import (
	"errors"
	"time"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/domain/model/order"
	"bistro/internal/pkg/guard"
)

var ErrGetOrdersByStatusQueryIsNotConstructed = errors.New(
	"GetOrdersByStatusQuery must be created via NewGetOrdersByStatusQuery constructor",
)

// GetOrdersByStatusQuery retrieves the staff order list, optionally filtered
// to a single status.
type GetOrdersByStatusQuery struct {
	status    order.Status
	hasStatus bool

	guard guard.ConstructorGuard
}

// NewGetOrdersByStatusQuery creates a query for orders in the given status.
func NewGetOrdersByStatusQuery(status order.Status) (GetOrdersByStatusQuery, error) {
	if err := status.Validate(); err != nil {
		return GetOrdersByStatusQuery{}, err
	}

	return GetOrdersByStatusQuery{
		status:    status,
		hasStatus: true,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// NewGetAllOrdersQuery creates a query for orders in every status.
func NewGetAllOrdersQuery() GetOrdersByStatusQuery {
	return GetOrdersByStatusQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through a constructor.
// Returns ErrGetOrdersByStatusQueryIsNotConstructed if validation fails.
func (q GetOrdersByStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByStatusQueryIsNotConstructed)
}

// Status returns the status filter and whether one is set.
func (q GetOrdersByStatusQuery) Status() (order.Status, bool) {
	return q.status, q.hasStatus
}

// OrderSummaryResponse is one row of the staff order list.
type OrderSummaryResponse struct {
	ID               kernel.UUID
	Ref              string
	Status           order.Status
	CustomerName     string
	CustomerPhone    string
	SubtotalCents    int64
	DeliveryFeeCents int64
	GrandTotalCents  int64
	CreatedAt        time.Time
}
