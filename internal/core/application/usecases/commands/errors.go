package commands

import (
	"errors"
	"fmt"
)

// ErrOrderIneligible is the sentinel for delivery eligibility failures.
// Use errors.Is to detect it; the concrete IneligibleOrderError carries the
// verdict reason for the client.
var ErrOrderIneligible = errors.New("order is not eligible for delivery")

// IneligibleOrderError reports why an order cannot be placed: the destination
// is out of range, the subtotal is below the band minimum, or the address
// could not be located. The reason is safe to return verbatim to the client.
type IneligibleOrderError struct {
	Reason string
}

func NewIneligibleOrderError(reason string) *IneligibleOrderError {
	return &IneligibleOrderError{Reason: reason}
}

func (e *IneligibleOrderError) Error() string {
	return fmt.Sprintf("%s: %s", ErrOrderIneligible, e.Reason)
}

func (e *IneligibleOrderError) Unwrap() error {
	return ErrOrderIneligible
}
