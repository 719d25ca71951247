package driver

import (
	"errors"
	"time"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/pkg/errs"
	"bistro/internal/pkg/guard"
)

// Domain errors for driver operations.
var (
	// ErrNameIsRequired is returned when attempting to create a driver without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPhoneIsRequired is returned when attempting to create a driver without a phone number.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
	// ErrDriverIsInactive is returned when assigning work to a deactivated driver.
	ErrDriverIsInactive = errors.New("driver is inactive")
	// ErrDriverIsBusy is returned when assigning an order to a driver that already
	// carries a different one.
	ErrDriverIsBusy = errors.New("driver already has a current order")
)

// Fix is the last known driver coordinate with the time it was recorded.
// It is an immutable snapshot; a newer fix replaces it wholesale.
type Fix struct {
	point      kernel.GeoPoint
	recordedAt time.Time
}

// NewFix creates a location fix with validation.
func NewFix(point kernel.GeoPoint, recordedAt time.Time) (Fix, error) {
	if err := point.Validate(); err != nil {
		return Fix{}, err
	}
	return Fix{point: point, recordedAt: recordedAt}, nil
}

// Point returns the fix coordinate.
func (f Fix) Point() kernel.GeoPoint {
	return f.point
}

// RecordedAt returns when the fix was recorded.
func (f Fix) RecordedAt() time.Time {
	return f.recordedAt
}

// Driver represents a delivery driver in the system.
// It is an aggregate root that manages driver identity, availability, the last
// known location fix, and the at-most-one current order reference.
//
// Business rules:
//   - Driver must have a valid UUID, non-empty name and phone
//   - Location fixes overwrite unconditionally (last write wins)
//   - A driver carries at most one current order at a time
//   - The current-order reference is kept consistent with the order's driver
//     reference by the assignment use case, inside one transaction
type Driver struct {
	// id uniquely identifies the driver
	id kernel.UUID
	// name is the human-readable name of the driver
	name string
	// phone is the driver's contact number
	phone string
	// isActive marks whether the driver currently takes assignments
	isActive bool
	// lastFix is the most recent location fix, nil before the first report
	lastFix *Fix
	// currentOrderID references the order being delivered, nil when idle
	currentOrderID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewDriver creates a new active Driver with validation.
func NewDriver(id kernel.UUID, name, phone string) (*Driver, error) {
	d := &Driver{
		isActive: true,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setPhone(phone),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDriver reconstructs a Driver from persistence.
func RestoreDriver(
	id kernel.UUID,
	name, phone string,
	isActive bool,
	lastFix *Fix,
	currentOrderID *kernel.UUID,
) (*Driver, error) {
	d, err := NewDriver(id, name, phone)
	if err != nil {
		return nil, err
	}

	if currentOrderID != nil {
		if err = currentOrderID.Validate(); err != nil {
			return nil, err
		}
	}

	d.isActive = isActive
	d.lastFix = lastFix
	d.currentOrderID = currentOrderID
	return d, nil
}

// Validate ensures the Driver instance was properly constructed.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// IsEqual compares two drivers by their unique identifiers.
func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the driver's name.
func (d *Driver) Name() string {
	return d.name
}

// Phone returns the driver's contact number.
func (d *Driver) Phone() string {
	return d.phone
}

// IsActive reports whether the driver currently takes assignments.
func (d *Driver) IsActive() bool {
	return d.isActive
}

// LastFix returns the most recent location fix, nil before the first report.
func (d *Driver) LastFix() *Fix {
	return d.lastFix
}

// CurrentOrder returns the ID of the order being delivered, nil when idle.
func (d *Driver) CurrentOrder() *kernel.UUID {
	return d.currentOrderID
}

// RecordFix overwrites the driver's last known location unconditionally.
// Last write wins; no ordering guarantee beyond arrival order.
func (d *Driver) RecordFix(point kernel.GeoPoint, now time.Time) error {
	fix, err := NewFix(point, now)
	if err != nil {
		return err
	}

	d.lastFix = &fix
	return nil
}

// AssignOrder sets the driver's current order reference.
//
// Business rules:
//   - The driver must be active
//   - The driver must not already carry a different order
//   - Re-assigning the same order is an idempotent no-op
func (d *Driver) AssignOrder(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	if !d.isActive {
		return ErrDriverIsInactive
	}

	if d.currentOrderID != nil {
		if d.currentOrderID.IsEqual(orderID) {
			return nil
		}
		return ErrDriverIsBusy
	}

	d.currentOrderID = &orderID
	return nil
}

// UnassignOrder clears the driver's current order reference.
func (d *Driver) UnassignOrder() {
	d.currentOrderID = nil
}

// Activate marks the driver as taking assignments.
func (d *Driver) Activate() {
	d.isActive = true
}

// Deactivate marks the driver as unavailable for new assignments.
// An order already in progress keeps its reference.
func (d *Driver) Deactivate() {
	d.isActive = false
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}

func (d *Driver) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}
	d.phone = phone
	return nil
}
