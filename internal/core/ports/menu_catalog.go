package ports

import (
	"context"
)

// MenuItem is a catalog entry as known to the kitchen. Orders snapshot the
// name and price at placement time; the catalog is the authority consulted
// during the server-side recheck.
type MenuItem struct {
	ID             string
	Name           string
	UnitPriceCents int64
	Available      bool
}

// MenuCatalog looks up catalog entries by their stable item id.
// A nil item with a nil error means the id is unknown.
type MenuCatalog interface {
	Item(ctx context.Context, id string) (*MenuItem, error)
}
