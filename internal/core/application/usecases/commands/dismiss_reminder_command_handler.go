package commands

import (
	"context"
	"time"

	"bistro/internal/core/domain/services"
)

// DismissReminderCommandHandler handles staff dismissing a reminder alert.
// The dismissal completes under the scheduler's lock before this handler
// returns, so a reminder tick racing the dismissal cannot re-show the alert
// inside the cool-down.
type DismissReminderCommandHandler struct {
	scheduler *services.ReminderScheduler
}

// NewDismissReminderCommandHandler creates a handler for alert dismissal.
func NewDismissReminderCommandHandler(scheduler *services.ReminderScheduler) DismissReminderCommandHandler {
	return DismissReminderCommandHandler{
		scheduler: scheduler,
	}
}

// Handle processes the dismissal. Dismissing an order that is not tracked is
// a no-op success.
func (h DismissReminderCommandHandler) Handle(_ context.Context, command DismissReminderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	h.scheduler.Dismiss(command.OrderID(), time.Now())
	return nil
}
