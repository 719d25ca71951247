package commands

import (
	"context"
	"time"

	"bistro/internal/core/domain/model/order"
	"bistro/internal/core/domain/services"
	"bistro/internal/core/ports"
)

// ChangeOrderStatusCommandHandler handles order status transitions.
//
// On an effective transition it persists the order, publishes exactly one
// status-changed event to the order's room, and keeps the surrounding state
// consistent: a terminal transition frees the assigned driver and clears the
// order's driver reference within the same transaction, and drops the order
// from reminder tracking; any transition out
// of "new" stops the reminders. An idempotent no-op (target equals current)
// succeeds without persisting or publishing anything.
type ChangeOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	scheduler  *services.ReminderScheduler
	publisher  ports.EventPublisher
}

// NewChangeOrderStatusCommandHandler creates a handler for status transitions.
func NewChangeOrderStatusCommandHandler(
	uowFactory UoWFactory,
	scheduler *services.ReminderScheduler,
	publisher ports.EventPublisher,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		scheduler:  scheduler,
		publisher:  publisher,
	}
}

// Handle processes the status change command.
// Returns errs.ObjectNotFoundError for an unknown order and
// order.InvalidTransitionError when the move is not legal; in both cases the
// stored status is unchanged.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, command ChangeOrderStatusCommand) error {
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
	aggregate, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	now := time.Now()
	changed, err := aggregate.ChangeStatus(command.Target(), now)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if aggregate.Status().IsTerminal() && aggregate.Driver() != nil {
		if err = h.releaseDriver(ctx, uow, aggregate, now); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if aggregate.Status() != order.New {
		h.scheduler.Untrack(aggregate.ID())
	}

	h.publisher.PublishStatusChanged(ports.OrderStatusChangedEvent{
		OrderID:   aggregate.ID(),
		Ref:       aggregate.Ref(),
		Status:    aggregate.Status(),
		ChangedAt: now,
	})

	return nil
}

// releaseDriver clears both sides of the order/driver reference pair when the
// order reaches a terminal status, so neither aggregate keeps a dangling
// reference. Both updates ride the same transaction.
func (h ChangeOrderStatusCommandHandler) releaseDriver(ctx context.Context, uow UoW, aggregate *order.Order, now time.Time) error {
	driverRepo := uow.DriverRepository()
	assigned, err := driverRepo.Get(ctx, *aggregate.Driver())
	if err != nil {
		return err
	}

	assigned.UnassignOrder()
	if err = driverRepo.Update(ctx, assigned); err != nil {
		return err
	}

	aggregate.UnassignDriver(now)
	return nil
}
