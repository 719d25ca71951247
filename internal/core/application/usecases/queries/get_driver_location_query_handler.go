package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/domain/model/order"
	"bistro/internal/pkg/errs"
)

// GetDriverLocationQueryHandler resolves the position to show for an order.
//
// The response is deterministic and never empty: a delivered order pins to the
// customer destination, an order on the way with a live fix shows the fix, and
// everything else falls back to the restaurant origin. Clients always get a
// pin to draw.
type GetDriverLocationQueryHandler struct {
	db     *gorm.DB
	origin kernel.GeoPoint
}

// NewGetDriverLocationQueryHandler creates a handler for position queries.
// The origin is the restaurant position used as the fallback pin.
func NewGetDriverLocationQueryHandler(db *gorm.DB, origin kernel.GeoPoint) GetDriverLocationQueryHandler {
	return GetDriverLocationQueryHandler{db: db, origin: origin}
}

// Handle executes the position query.
// Returns errs.ObjectNotFoundError when the order id is unknown.
func (h GetDriverLocationQueryHandler) Handle(
	ctx context.Context,
	query GetDriverLocationQuery,
) (GetDriverLocationQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDriverLocationQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			destination_latitude,
			destination_longitude,
			driver_id
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		status   int
		destLat  float64
		destLon  float64
		driverID uuid.NullUUID
	)
	if err := row.Scan(&status, &destLat, &destLon, &driverID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetDriverLocationQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetDriverLocationQueryResponse{}, err
	}

	if order.Status(status) == order.Delivered {
		return GetDriverLocationQueryResponse{
			Latitude:  destLat,
			Longitude: destLon,
			Source:    LocationSourceDestination,
		}, nil
	}

	if order.Status(status) == order.OnTheWay && driverID.Valid {
		response, found, err := h.liveFix(ctx, driverID.UUID)
		if err != nil {
			return GetDriverLocationQueryResponse{}, err
		}
		if found {
			return response, nil
		}
	}

	return GetDriverLocationQueryResponse{
		Latitude:  h.origin.Latitude(),
		Longitude: h.origin.Longitude(),
		Source:    LocationSourceOrigin,
	}, nil
}

// liveFix reads the assigned driver's last fix. found is false when the
// driver has not reported a position yet.
func (h GetDriverLocationQueryHandler) liveFix(
	ctx context.Context,
	driverID uuid.UUID,
) (GetDriverLocationQueryResponse, bool, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			name,
			last_fix_latitude,
			last_fix_longitude,
			last_fix_recorded_at
		FROM drivers
		WHERE id = ?
	`, driverID).Row()

	var (
		name       string
		latitude   sql.NullFloat64
		longitude  sql.NullFloat64
		recordedAt sql.NullTime
	)
	if err := row.Scan(&name, &latitude, &longitude, &recordedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetDriverLocationQueryResponse{}, false, nil
		}
		return GetDriverLocationQueryResponse{}, false, err
	}

	if !latitude.Valid || !longitude.Valid {
		return GetDriverLocationQueryResponse{}, false, nil
	}

	response := GetDriverLocationQueryResponse{
		Latitude:   latitude.Float64,
		Longitude:  longitude.Float64,
		DriverName: name,
		Source:     LocationSourceDriver,
	}
	if recordedAt.Valid {
		response.LastUpdated = &recordedAt.Time
	}

	return response, true, nil
}
