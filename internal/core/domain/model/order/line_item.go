package order

import (
	"errors"

	"bistro/internal/pkg/errs"
	"bistro/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when using an improperly initialized LineItem.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is an immutable snapshot of one ordered menu item.
// Name and unit price are captured at order time and stay fixed regardless of
// later catalog edits; the item is referenced by its stable catalog id only.
type LineItem struct { //nolint:recvcheck //using for validation
	itemID         string
	name           string
	unitPriceCents int64
	quantity       int

	guard guard.ConstructorGuard
}

// NewLineItem creates a line item snapshot with validation.
// The catalog item id and name must be non-empty, the unit price must be
// positive (minor currency units) and the quantity at least 1.
func NewLineItem(itemID, name string, unitPriceCents int64, quantity int) (LineItem, error) {
	item := LineItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setItemID(itemID),
		item.setName(name),
		item.setUnitPriceCents(unitPriceCents),
		item.setQuantity(quantity),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

// Validate ensures the line item was created through the constructor.
func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

// ItemID returns the stable catalog identifier of the item.
func (i LineItem) ItemID() string {
	return i.itemID
}

// Name returns the item name as snapshotted at order time.
func (i LineItem) Name() string {
	return i.name
}

// UnitPriceCents returns the unit price in minor currency units.
func (i LineItem) UnitPriceCents() int64 {
	return i.unitPriceCents
}

// Quantity returns the ordered quantity.
func (i LineItem) Quantity() int {
	return i.quantity
}

// SubtotalCents returns unit price times quantity in minor currency units.
func (i LineItem) SubtotalCents() int64 {
	return i.unitPriceCents * int64(i.quantity)
}

func (i *LineItem) setItemID(itemID string) error {
	if itemID == "" {
		return errs.NewValueIsRequiredError("itemID")
	}
	i.itemID = itemID
	return nil
}

func (i *LineItem) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *LineItem) setUnitPriceCents(unitPriceCents int64) error {
	if unitPriceCents <= 0 {
		return errs.NewValueIsInvalidError("unitPriceCents")
	}
	i.unitPriceCents = unitPriceCents
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("quantity")
	}
	i.quantity = quantity
	return nil
}
