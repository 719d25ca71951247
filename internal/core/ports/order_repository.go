// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, the geocoder, the mailer,
// the menu catalog and the realtime event publisher. These interfaces enable
// dependency inversion and testability.
package ports

import (
	"context"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are never deleted; terminal orders stay queryable.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInStatus retrieves all orders currently in the given status,
	// oldest first. Used to re-seed the reminder scheduler with unconfirmed
	// orders at startup.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
