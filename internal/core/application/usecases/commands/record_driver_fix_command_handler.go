package commands

import (
	"context"
	"time"

	"bistro/internal/core/ports"
)

// RecordDriverFixCommandHandler handles driver location reports.
//
// Each accepted fix overwrites the driver's last known position (last write
// wins) and, when the driver carries an order, publishes a location-changed
// event to that order's room. Reports from idle drivers are stored silently.
type RecordDriverFixCommandHandler struct {
	uowFactory DriverUoWFactory
	publisher  ports.EventPublisher
}

// NewRecordDriverFixCommandHandler creates a handler for driver location reports.
func NewRecordDriverFixCommandHandler(
	uowFactory DriverUoWFactory,
	publisher ports.EventPublisher,
) RecordDriverFixCommandHandler {
	return RecordDriverFixCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the location report.
// Returns errs.ObjectNotFoundError for an unknown driver.
func (h RecordDriverFixCommandHandler) Handle(ctx context.Context, command RecordDriverFixCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()
	reporting, err := driverRepo.Get(ctx, command.DriverID())
	if err != nil {
		return err
	}

	now := time.Now()
	if err = reporting.RecordFix(command.Point(), now); err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, reporting); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if orderID := reporting.CurrentOrder(); orderID != nil {
		h.publisher.PublishLocationChanged(ports.DriverLocationChangedEvent{
			OrderID:     *orderID,
			Latitude:    command.Point().Latitude(),
			Longitude:   command.Point().Longitude(),
			LastUpdated: now,
			DriverName:  reporting.Name(),
		})
	}

	return nil
}
