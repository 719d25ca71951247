package order

import (
	"errors"
	"time"

	"bistro/internal/pkg/errs"
	"bistro/internal/pkg/guard"
)

// ErrCustomerIsNotConstructed is returned when using an improperly initialized Customer.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// Customer holds the contact and delivery details captured with an order.
// It is an immutable value object; name, phone and address are mandatory,
// email, desired delivery time and note are optional.
type Customer struct { //nolint:recvcheck //using for validation
	name      string
	phone     string
	address   string
	email     string
	desiredAt *time.Time
	note      string

	guard guard.ConstructorGuard
}

// NewCustomer creates a customer block with validation.
func NewCustomer(name, phone, address, email string, desiredAt *time.Time, note string) (Customer, error) {
	customer := Customer{
		email:     email,
		desiredAt: desiredAt,
		note:      note,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		customer.setName(name),
		customer.setPhone(phone),
		customer.setAddress(address),
	); err != nil {
		return Customer{}, err
	}

	return customer, nil
}

// Validate ensures the customer block was created through the constructor.
func (c Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// Name returns the customer name.
func (c Customer) Name() string {
	return c.name
}

// Phone returns the customer phone number.
func (c Customer) Phone() string {
	return c.phone
}

// Address returns the free-text delivery address.
func (c Customer) Address() string {
	return c.address
}

// Email returns the customer email, empty when not provided.
func (c Customer) Email() string {
	return c.email
}

// DesiredAt returns the requested delivery time, nil when not provided.
func (c Customer) DesiredAt() *time.Time {
	return c.desiredAt
}

// Note returns the free-text note attached to the order.
func (c Customer) Note() string {
	return c.note
}

func (c *Customer) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *Customer) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	c.phone = phone
	return nil
}

func (c *Customer) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	c.address = address
	return nil
}
