package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/domain/model/order"
	"bistro/internal/pkg/errs"
)

// GetOrderQueryHandler reads one order's full details from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// itemRow mirrors the JSON shape the order repository stores line items in.
type itemRow struct {
	ItemID         string `json:"item_id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}

// Handle executes the order detail query.
// Returns errs.ObjectNotFoundError when the order id is unknown.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderDetailsResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderDetailsResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			ref,
			status,
			customer_name,
			customer_phone,
			customer_address,
			items,
			subtotal_cents,
			delivery_fee_cents,
			driver_id,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		id        uuid.UUID
		ref       string
		status    int
		name      string
		phone     string
		address   string
		itemsJSON []byte
		subtotal  int64
		fee       int64
		driverID  uuid.NullUUID
		createdAt time.Time
		updatedAt time.Time
	)
	err := row.Scan(
		&id, &ref, &status, &name, &phone, &address,
		&itemsJSON, &subtotal, &fee, &driverID, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderDetailsResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return OrderDetailsResponse{}, err
	}

	var rawItems []itemRow
	if err = json.Unmarshal(itemsJSON, &rawItems); err != nil {
		return OrderDetailsResponse{}, err
	}

	items := make([]OrderItemResponse, 0, len(rawItems))
	for _, item := range rawItems {
		items = append(items, OrderItemResponse{
			ItemID:         item.ItemID,
			Name:           item.Name,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
		})
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderDetailsResponse{}, err
	}

	var assignedDriver *kernel.UUID
	if driverID.Valid {
		driverUUID, idErr := kernel.UUIDFromBytes(driverID.UUID[:])
		if idErr != nil {
			return OrderDetailsResponse{}, idErr
		}
		assignedDriver = &driverUUID
	}

	return OrderDetailsResponse{
		ID:               orderID,
		Ref:              ref,
		Status:           order.Status(status),
		CustomerName:     name,
		CustomerPhone:    phone,
		CustomerAddress:  address,
		Items:            items,
		SubtotalCents:    subtotal,
		DeliveryFeeCents: fee,
		GrandTotalCents:  subtotal + fee,
		DriverID:         assignedDriver,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}, nil
}
