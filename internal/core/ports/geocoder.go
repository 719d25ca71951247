package ports

import (
	"context"

	"bistro/internal/core/domain/model/kernel"
)

// Address is a resolved postal address as returned by reverse geocoding.
type Address struct {
	DisplayName string
}

// Geocoder resolves between postal addresses and coordinates.
//
// A nil result with a nil error means the address or point could not be
// resolved. That is a normal outcome, not a failure: callers turn it into an
// ineligible delivery verdict. A non-nil error means the upstream service was
// unreachable after the adapter's retry.
type Geocoder interface {
	// Forward resolves a free-form address to coordinates.
	Forward(ctx context.Context, address string) (*kernel.GeoPoint, error)

	// Reverse resolves coordinates to a display address.
	Reverse(ctx context.Context, point kernel.GeoPoint) (*Address, error)
}
