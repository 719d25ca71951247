package order

import (
	"errors"
	"fmt"

	"bistro/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel for illegal status transitions.
// Use errors.Is to classify transition failures regardless of the concrete
// from/to pair that caused them.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError describes a rejected status transition.
// The current status of the order is left unchanged when this error is returned.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status represents the lifecycle state of an order.
// It implements a state machine with a strictly linear happy path and a single
// side-exit to Canceled, so that every consumer of the status stream can assume
// monotonic, gapless progress.
//
// State transitions:
//
//	New ──> Accepted ──> Preparing ──> OnTheWay ──> Delivered
//	 │          │            │             │
//	 └──────────┴────────────┴─────────────┴──> Canceled
//
// Delivered and Canceled are terminal. A transition to the current status is an
// idempotent no-op, not an error. Arbitrary jumps (e.g. New -> OnTheWay) are
// rejected.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status when an order is first placed.
	// Orders in this status are waiting to be acknowledged by staff.
	New

	// Accepted indicates staff has acknowledged the order.
	Accepted

	// Preparing indicates the kitchen is working on the order.
	Preparing

	// OnTheWay indicates a driver is delivering the order.
	OnTheWay

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Canceled indicates the order was abandoned before delivery. Terminal.
	// Reachable from any non-terminal status.
	Canceled
)

// getStatusStrings returns a map of Status values to their wire representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		New:       "new",
		Accepted:  "accepted",
		Preparing: "preparing",
		OnTheWay:  "on_the_way",
		Delivered: "delivered",
		Canceled:  "canceled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Unknown is intentionally excluded to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		New:       "new",
		Accepted:  "accepted",
		Preparing: "preparing",
		OnTheWay:  "on_the_way",
		Delivered: "delivered",
		Canceled:  "canceled",
	}
}

// StatusFromString parses a wire representation into a Status.
// Returns an error for unrecognized values, including "unknown".
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status ("new", "on_the_way", ...).
// This method implements the fmt.Stringer interface and is safe to call on any
// Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status is a final state with no further
// transitions (Delivered or Canceled).
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Canceled
}

// next returns the immediate successor on the happy path, or Unknown when the
// status has no successor.
func (s Status) next() Status {
	//nolint:exhaustive // terminal and invalid statuses have no successor
	switch s {
	case New:
		return Accepted
	case Accepted:
		return Preparing
	case Preparing:
		return OnTheWay
	case OnTheWay:
		return Delivered
	default:
		return Unknown
	}
}

// TransitionTo attempts a transition to the target status.
//
// A transition succeeds when the target is:
//   - equal to the current status (idempotent no-op),
//   - Canceled, from any non-terminal status,
//   - the immediate successor of the current status on the happy path.
//
// Returns:
//   - (target, nil) on a legal transition
//   - (0, *InvalidTransitionError) otherwise; the error unwraps to ErrInvalidTransition
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if target == s {
		return s, nil
	}

	if target == Canceled && !s.IsTerminal() {
		return Canceled, nil
	}

	if s.next() == target {
		return target, nil
	}

	return Unknown, &InvalidTransitionError{From: s, To: target}
}
