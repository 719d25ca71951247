package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bistro/internal/core/domain/model/kernel"
)

func TestNewGeoPoint(t *testing.T) {
	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		wantErr   bool
	}{
		{
			name:      "valid point",
			latitude:  52.52,
			longitude: 13.405,
			wantErr:   false,
		},
		{
			name:      "valid point at min bounds",
			latitude:  kernel.LatitudeMin,
			longitude: kernel.LongitudeMin,
			wantErr:   false,
		},
		{
			name:      "valid point at max bounds",
			latitude:  kernel.LatitudeMax,
			longitude: kernel.LongitudeMax,
			wantErr:   false,
		},
		{
			name:      "latitude too small",
			latitude:  -90.01,
			longitude: 0,
			wantErr:   true,
		},
		{
			name:      "latitude too large",
			latitude:  90.01,
			longitude: 0,
			wantErr:   true,
		},
		{
			name:      "longitude too small",
			latitude:  0,
			longitude: -180.01,
			wantErr:   true,
		},
		{
			name:      "longitude too large",
			latitude:  0,
			longitude: 180.01,
			wantErr:   true,
		},
		{
			name:      "both out of bounds",
			latitude:  -91,
			longitude: 181,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point, err := kernel.NewGeoPoint(tt.latitude, tt.longitude)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NoError(t, point.Validate())
			assert.InDelta(t, tt.latitude, point.Latitude(), 0)
			assert.InDelta(t, tt.longitude, point.Longitude(), 0)
		})
	}
}

func TestGeoPoint_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var point kernel.GeoPoint
		require.Error(t, point.Validate())
	})

	t.Run("constructed point is valid", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(48.8566, 2.3522)
		require.NoError(t, err)
		require.NoError(t, point.Validate())
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	t.Run("equal points", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(52.52, 13.405)
		b, _ := kernel.NewGeoPoint(52.52, 13.405)

		equal, err := a.IsEqual(b)
		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("different points", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(52.52, 13.405)
		b, _ := kernel.NewGeoPoint(48.8566, 2.3522)

		equal, err := a.IsEqual(b)
		require.NoError(t, err)
		assert.False(t, equal)
	})

	t.Run("comparison with zero value fails", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(52.52, 13.405)
		var b kernel.GeoPoint

		_, err := a.IsEqual(b)
		require.Error(t, err)
	})
}

func TestGeoPoint_DistanceKmTo(t *testing.T) {
	t.Run("zero distance to itself", func(t *testing.T) {
		point, _ := kernel.NewGeoPoint(52.52, 13.405)

		km, err := point.DistanceKmTo(point)
		require.NoError(t, err)
		assert.InDelta(t, 0, km, 1e-9)
	})

	t.Run("known distance Berlin to Potsdam", func(t *testing.T) {
		berlin, _ := kernel.NewGeoPoint(52.5200, 13.4050)
		potsdam, _ := kernel.NewGeoPoint(52.3906, 13.0645)

		km, err := berlin.DistanceKmTo(potsdam)
		require.NoError(t, err)
		assert.InDelta(t, 27.0, km, 1.0)
	})

	t.Run("distance is symmetric", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(52.52, 13.405)
		b, _ := kernel.NewGeoPoint(48.8566, 2.3522)

		ab, err := a.DistanceKmTo(b)
		require.NoError(t, err)
		ba, err := b.DistanceKmTo(a)
		require.NoError(t, err)
		assert.InDelta(t, ab, ba, 1e-9)
	})

	t.Run("distance from zero value fails", func(t *testing.T) {
		var a kernel.GeoPoint
		b, _ := kernel.NewGeoPoint(48.8566, 2.3522)

		_, err := a.DistanceKmTo(b)
		require.Error(t, err)
	})
}
