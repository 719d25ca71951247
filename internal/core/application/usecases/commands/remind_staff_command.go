package commands

import (
	"errors"

	"bistro/internal/pkg/guard"
)

var ErrRemindStaffCommandIsNotConstructed = errors.New(
	"RemindStaffCommand must be created via NewRemindStaffCommand constructor",
)

// RemindStaffCommand triggers one evaluation of the reminder protocol.
// This is a parameterless command fired by the cron tick job.
type RemindStaffCommand struct {
	guard guard.ConstructorGuard
}

// NewRemindStaffCommand creates a command to evaluate pending reminders.
func NewRemindStaffCommand() RemindStaffCommand {
	return RemindStaffCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrRemindStaffCommandIsNotConstructed if validation fails.
func (c *RemindStaffCommand) Validate() error {
	return c.guard.Validate(ErrRemindStaffCommandIsNotConstructed)
}
