package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/domain/model/order"
)

// GetOrdersByStatusQueryHandler reads the staff order list from the database.
type GetOrdersByStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByStatusQueryHandler creates a handler for order list queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersByStatusQueryHandler(db *gorm.DB) GetOrdersByStatusQueryHandler {
	return GetOrdersByStatusQueryHandler{db: db}
}

// Handle executes the order list query.
// Results are sorted oldest first so the staff board reads top-down in
// arrival order.
func (h GetOrdersByStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByStatusQuery,
) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	const baseQuery = `
		SELECT
			id,
			ref,
			status,
			customer_name,
			customer_phone,
			subtotal_cents,
			delivery_fee_cents,
			created_at
		FROM orders
	`

	tx := h.db.WithContext(ctx)
	var rowsQuery *gorm.DB
	if status, ok := query.Status(); ok {
		rowsQuery = tx.Raw(baseQuery+` WHERE status = ? ORDER BY created_at, id`, int(status))
	} else {
		rowsQuery = tx.Raw(baseQuery + ` ORDER BY created_at, id`)
	}

	rows, err := rowsQuery.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]OrderSummaryResponse, 0)
	for rows.Next() {
		var (
			id        uuid.UUID
			ref       string
			status    int
			name      string
			phone     string
			subtotal  int64
			fee       int64
			createdAt time.Time
		)

		if err = rows.Scan(&id, &ref, &status, &name, &phone, &subtotal, &fee, &createdAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		summaries = append(summaries, OrderSummaryResponse{
			ID:               orderID,
			Ref:              ref,
			Status:           order.Status(status),
			CustomerName:     name,
			CustomerPhone:    phone,
			SubtotalCents:    subtotal,
			DeliveryFeeCents: fee,
			GrandTotalCents:  subtotal + fee,
			CreatedAt:        createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
