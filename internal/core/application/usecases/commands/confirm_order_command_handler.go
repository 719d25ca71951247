package commands

import (
	"context"
	"time"

	"bistro/internal/core/domain/model/order"
	"bistro/internal/core/domain/services"
	"bistro/internal/core/ports"
)

// ConfirmOrderCommandHandler handles staff confirmation of a new order.
//
// Confirmation is a status transition to "accepted" plus an acknowledgement
// towards the reminder scheduler: the order's alert is resolved and the
// next-oldest unconfirmed order, if any, is surfaced immediately instead of
// waiting for the next tick.
type ConfirmOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	scheduler  *services.ReminderScheduler
	publisher  ports.EventPublisher
}

// NewConfirmOrderCommandHandler creates a handler for order confirmation.
func NewConfirmOrderCommandHandler(
	uowFactory OrderUoWFactory,
	scheduler *services.ReminderScheduler,
	publisher ports.EventPublisher,
) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
		scheduler:  scheduler,
		publisher:  publisher,
	}
}

// Handle processes the confirmation command.
// Confirming an already accepted order is an idempotent no-op; confirming an
// order past "accepted" fails with order.InvalidTransitionError.
func (h ConfirmOrderCommandHandler) Handle(ctx context.Context, command ConfirmOrderCommand) error {
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
	changed, err := aggregate.ChangeStatus(order.Accepted, now)
	if err != nil {
		return err
	}

	if changed {
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if next := h.scheduler.Acknowledge(aggregate.ID(), now); next != nil {
		h.publisher.PublishReminderDue(ports.ReminderDueEvent{
			OrderID:    next.OrderID,
			Ref:        next.Ref,
			ShownCount: next.ShownCount,
		})
	}

	if changed {
		h.publisher.PublishStatusChanged(ports.OrderStatusChangedEvent{
			OrderID:   aggregate.ID(),
			Ref:       aggregate.Ref(),
			Status:    aggregate.Status(),
			ChangedAt: now,
		})
	}

	return nil
}
