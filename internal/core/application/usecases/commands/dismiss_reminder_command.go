package commands

import (
	"errors"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/pkg/guard"
)

var ErrDismissReminderCommandIsNotConstructed = errors.New(
	"DismissReminderCommand must be created via NewDismissReminderCommand constructor",
)

// DismissReminderCommand represents staff closing a reminder alert without
// confirming the order. The order keeps its remaining alert budget but goes
// quiet for the cool-down period.
type DismissReminderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDismissReminderCommand creates a command to dismiss an order's alert.
func NewDismissReminderCommand(orderID kernel.UUID) (DismissReminderCommand, error) {
	command := DismissReminderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setOrderID(orderID); err != nil {
		return DismissReminderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDismissReminderCommandIsNotConstructed if validation fails.
func (c DismissReminderCommand) Validate() error {
	return c.guard.Validate(ErrDismissReminderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order whose alert is dismissed.
func (c DismissReminderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *DismissReminderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
