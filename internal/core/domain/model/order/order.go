package order

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/pkg/errs"
	"bistro/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrItemsAreRequired is returned when attempting to create an order with an empty cart.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")

	// ErrOrderIsTerminal is returned when mutating an order that already reached
	// a terminal status.
	ErrOrderIsTerminal = errors.New("order is in a terminal status")
)

// refByteLen is the number of random bytes in a generated reference code.
const refByteLen = 4

// Order represents a food order in the system. It is the aggregate root that
// manages the order lifecycle from placement through delivery or cancellation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty reference code
//   - Line items are snapshotted at order time and immutable afterwards
//   - Grand total always equals subtotal plus delivery fee
//   - Status transitions follow the state machine defined on Status
//   - Orders are never deleted; they only reach a terminal status
//
// Order is the single writer of its status field: all status mutations go
// through ChangeStatus, all driver assignment through AssignDriver/UnassignDriver.
type Order struct {
	// id is the internal unique identifier for the order
	id kernel.UUID

	// ref is the human-readable reference code, unique across all orders
	ref string

	// customer holds contact and delivery details captured at order time
	customer Customer

	// destination is the geocoded delivery coordinate
	destination kernel.GeoPoint

	// items are the ordered line items, immutable once the order exists
	items []LineItem

	// deliveryFeeCents is the fee charged for delivery in minor currency units
	deliveryFeeCents int64

	// status is the current state in the order lifecycle
	status Status

	// driverID is the assigned driver's ID (nil if unassigned)
	driverID *kernel.UUID

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in the New status with validation.
// The subtotal is derived from the provided items; the delivery fee must come
// from an authoritative server-side quote and may be zero but never negative.
func NewOrder(
	id kernel.UUID,
	ref string,
	customer Customer,
	destination kernel.GeoPoint,
	items []LineItem,
	deliveryFeeCents int64,
	now time.Time,
) (*Order, error) {
	return newOrder(id, ref, customer, destination, items, deliveryFeeCents, New, nil, now, now)
}

// RestoreOrder reconstructs an Order from persistence.
// All invariants are re-validated so that corrupted rows surface as errors
// instead of invalid aggregates.
func RestoreOrder(
	id kernel.UUID,
	ref string,
	customer Customer,
	destination kernel.GeoPoint,
	items []LineItem,
	deliveryFeeCents int64,
	status Status,
	driverID *kernel.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	return newOrder(id, ref, customer, destination, items, deliveryFeeCents, status, driverID, createdAt, updatedAt)
}

func newOrder(
	id kernel.UUID,
	ref string,
	customer Customer,
	destination kernel.GeoPoint,
	items []LineItem,
	deliveryFeeCents int64,
	status Status,
	driverID *kernel.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		status:    status,
		driverID:  driverID,
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setRef(ref),
		o.setCustomer(customer),
		o.setDestination(destination),
		o.setItems(items),
		o.setDeliveryFeeCents(deliveryFeeCents),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// GenerateRef produces a new human-readable order reference code of the form
// "ORD-XXXXXXXX". Uniqueness is enforced by the persistence layer's unique
// constraint; the random space makes collisions practically irrelevant.
func GenerateRef() string {
	buf := make([]byte, refByteLen)
	_, _ = rand.Read(buf)
	return "ORD-" + strings.ToUpper(hex.EncodeToString(buf))
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's internal unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Ref returns the human-readable reference code.
func (o *Order) Ref() string {
	return o.ref
}

// Customer returns the customer block captured at order time.
func (o *Order) Customer() Customer {
	return o.customer
}

// Destination returns the geocoded delivery coordinate.
func (o *Order) Destination() kernel.GeoPoint {
	return o.destination
}

// Items returns a copy of the snapshotted line items.
// The returned slice may be modified freely without affecting the order.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// SubtotalCents returns the sum of all line item subtotals in minor currency units.
func (o *Order) SubtotalCents() int64 {
	var subtotal int64
	for _, item := range o.items {
		subtotal += item.SubtotalCents()
	}
	return subtotal
}

// DeliveryFeeCents returns the delivery fee in minor currency units.
func (o *Order) DeliveryFeeCents() int64 {
	return o.deliveryFeeCents
}

// GrandTotalCents returns subtotal plus delivery fee in minor currency units.
// Computing it from its parts keeps the totals invariant structural: it cannot
// drift out of sync with the items or the fee.
func (o *Order) GrandTotalCents() int64 {
	return o.SubtotalCents() + o.deliveryFeeCents
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Driver returns the assigned driver's ID, nil if no driver is assigned.
func (o *Order) Driver() *kernel.UUID {
	return o.driverID
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ChangeStatus attempts a transition to the target status.
//
// Returns:
//   - (true, nil) when the status changed
//   - (false, nil) when the target equals the current status (idempotent no-op)
//   - (false, error) when the transition is illegal; the status is unchanged
//
// Callers use the changed flag to publish exactly one status-changed event per
// effective transition and none for no-ops.
func (o *Order) ChangeStatus(target Status, now time.Time) (bool, error) {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return false, err
	}

	if newStatus == o.status {
		return false, nil
	}

	o.status = newStatus
	o.updatedAt = now
	return true, nil
}

// AssignDriver assigns the order to a driver.
//
// Business rules:
//   - The driver ID must be valid
//   - The order must not be in a terminal status
//   - Reassignment to a different driver is allowed while non-terminal
//
// The caller is responsible for updating the driver's side of the
// bidirectional reference within the same transaction.
func (o *Order) AssignDriver(driverID kernel.UUID, now time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	if o.status.IsTerminal() {
		return ErrOrderIsTerminal
	}

	o.driverID = &driverID
	o.updatedAt = now
	return nil
}

// UnassignDriver removes the driver reference from the order.
func (o *Order) UnassignDriver(now time.Time) {
	o.driverID = nil
	o.updatedAt = now
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setRef(ref string) error {
	if ref == "" {
		return errs.NewValueIsRequiredError("ref")
	}
	o.ref = ref
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

func (o *Order) setDestination(destination kernel.GeoPoint) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	o.destination = destination
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setDeliveryFeeCents(deliveryFeeCents int64) error {
	if deliveryFeeCents < 0 {
		return errs.NewValueIsInvalidError("deliveryFeeCents")
	}
	o.deliveryFeeCents = deliveryFeeCents
	return nil
}
