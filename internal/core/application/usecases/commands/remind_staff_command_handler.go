package commands

import (
	"context"
	"time"

	"bistro/internal/core/domain/services"
	"bistro/internal/core/ports"
)

// RemindStaffCommandHandler evaluates the reminder protocol once and fans the
// resulting alert, if any, out to the staff room. The scheduler enforces the
// budget, the interval, cool-downs and the single alert slot; this handler
// only connects the tick to the realtime channel.
type RemindStaffCommandHandler struct {
	scheduler *services.ReminderScheduler
	publisher ports.EventPublisher
}

// NewRemindStaffCommandHandler creates a handler for reminder evaluation.
func NewRemindStaffCommandHandler(
	scheduler *services.ReminderScheduler,
	publisher ports.EventPublisher,
) RemindStaffCommandHandler {
	return RemindStaffCommandHandler{
		scheduler: scheduler,
		publisher: publisher,
	}
}

// Handle processes one reminder tick.
func (h RemindStaffCommandHandler) Handle(_ context.Context, command RemindStaffCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	alert := h.scheduler.Tick(time.Now())
	if alert == nil {
		return nil
	}

	h.publisher.PublishReminderDue(ports.ReminderDueEvent{
		OrderID:    alert.OrderID,
		Ref:        alert.Ref,
		ShownCount: alert.ShownCount,
	})

	return nil
}
