package commands

import (
	"errors"
	"time"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/pkg/errs"
	"bistro/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrItemsAreRequired = errors.New("at least one item is required")
)

// OrderItemInput is one requested catalog item. Name and price are not taken
// from the client; the handler resolves them from the menu catalog by id.
type OrderItemInput struct {
	ItemID   string
	Quantity int
}

// CustomerInput is the customer block of a placement request.
type CustomerInput struct {
	Name      string
	Phone     string
	Address   string
	Email     string
	DesiredAt *time.Time
	Note      string
}

// PlaceOrderCommand represents a request to place a new food order.
// Carries the raw client input; pricing and eligibility are decided by the
// handler against the catalog and the fee calculator.
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	customer CustomerInput
	items    []OrderItemInput

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new order.
// Validates that the order ID is valid, the customer block carries name, phone
// and address, and at least one item with a positive quantity is requested.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	customer CustomerInput,
	items []OrderItemInput,
) (PlaceOrderCommand, error) {
	command := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCustomer(customer),
		command.setItems(items),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPlaceOrderCommandIsNotConstructed if validation fails.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the pre-generated identifier for the new order.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Customer returns the customer block of the request.
func (c PlaceOrderCommand) Customer() CustomerInput {
	return c.customer
}

// Items returns the requested items.
func (c PlaceOrderCommand) Items() []OrderItemInput {
	return c.items
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setCustomer(customer CustomerInput) error {
	if customer.Name == "" {
		return errs.NewValueIsRequiredError("customer name")
	}
	if customer.Phone == "" {
		return errs.NewValueIsRequiredError("customer phone")
	}
	if customer.Address == "" {
		return errs.NewValueIsRequiredError("customer address")
	}

	c.customer = customer
	return nil
}

func (c *PlaceOrderCommand) setItems(items []OrderItemInput) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if item.ItemID == "" {
			return errs.NewValueIsRequiredError("item id")
		}
		if item.Quantity <= 0 {
			return errs.NewValueIsInvalidError("item quantity")
		}
	}

	c.items = items
	return nil
}
