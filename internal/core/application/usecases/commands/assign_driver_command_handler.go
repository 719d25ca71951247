package commands

import (
	"context"
	"time"
)

// AssignDriverCommandHandler handles putting a driver on an order.
//
// Both sides of the order/driver reference pair are updated inside a single
// transaction, so the bidirectional invariant (the driver's current order is
// exactly the order that references the driver) cannot be observed half-set.
// Re-assigning the same driver to the same order is an idempotent no-op.
type AssignDriverCommandHandler struct {
	uowFactory UoWFactory
}

// NewAssignDriverCommandHandler creates a handler for driver assignment.
// Requires a UoWFactory for coordinating transactional updates across repositories.
func NewAssignDriverCommandHandler(uowFactory UoWFactory) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the driver assignment command.
// Fails with order.ErrOrderIsTerminal for delivered or canceled orders,
// driver.ErrDriverIsInactive for deactivated drivers and driver.ErrDriverIsBusy
// when the driver already carries a different order.
func (h AssignDriverCommandHandler) Handle(ctx context.Context, command AssignDriverCommand) error {
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

	orderRepo := uow.OrderRepository()
	driverRepo := uow.DriverRepository()

	aggregate, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	assigned, err := driverRepo.Get(ctx, command.DriverID())
	if err != nil {
		return err
	}

	// Re-assignment frees the previous driver inside the same transaction.
	if previousID := aggregate.Driver(); previousID != nil && !previousID.IsEqual(assigned.ID()) {
		previous, getErr := driverRepo.Get(ctx, *previousID)
		if getErr != nil {
			return getErr
		}
		previous.UnassignOrder()
		if updateErr := driverRepo.Update(ctx, previous); updateErr != nil {
			return updateErr
		}
	}

	now := time.Now()
	if err = aggregate.AssignDriver(assigned.ID(), now); err != nil {
		return err
	}

	if err = assigned.AssignOrder(aggregate.ID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, assigned); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
