package kernel_test

import (
	"testing"

	"geodispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lon     float64
		wantErr bool
	}{
		{"valid point", 40.4168, -3.7038, false},
		{"equator and prime meridian", 0, 0, false},
		{"latitude at max bound", 90, 10, false},
		{"latitude at min bound", -90, 10, false},
		{"longitude at max bound", 10, 180, false},
		{"longitude at min bound", 10, -180, false},
		{"latitude too large", 90.001, 0, true},
		{"latitude too small", -90.001, 0, true},
		{"longitude too large", 0, 180.001, true},
		{"longitude too small", 0, -180.001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point, err := kernel.NewGeoPoint(tt.lat, tt.lon)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.lat, point.Lat(), 1e-9)
			assert.InDelta(t, tt.lon, point.Lon(), 1e-9)
			require.NoError(t, point.Validate())
		})
	}

	t.Run("both coordinates invalid aggregates errors", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(120, 200)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude")
		assert.Contains(t, err.Error(), "longitude")
	})
}

func TestGeoPoint_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var point kernel.GeoPoint

		err := point.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrGeoPointIsNotConstructed, err)
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	t.Run("equal coordinates compare equal", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(5, 5)
		p2, _ := kernel.NewGeoPoint(5, 5)

		equal, err := p1.IsEqual(p2)

		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("different coordinates compare unequal", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(5, 5)
		p2, _ := kernel.NewGeoPoint(5, 6)

		equal, err := p1.IsEqual(p2)

		require.NoError(t, err)
		assert.False(t, equal)
	})

	t.Run("unconstructed point fails", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(5, 5)
		var p2 kernel.GeoPoint

		_, err := p1.IsEqual(p2)

		require.Error(t, err)
	})
}

func TestGeoPoint_DistanceTo(t *testing.T) {
	t.Run("distance to self is zero", func(t *testing.T) {
		point, _ := kernel.NewGeoPoint(43.2630, -2.9350)

		meters, err := point.DistanceTo(point)

		require.NoError(t, err)
		assert.InDelta(t, 0, meters, 0.001)
	})

	t.Run("distance is symmetric", func(t *testing.T) {
		madrid, _ := kernel.NewGeoPoint(40.4168, -3.7038)
		bilbao, _ := kernel.NewGeoPoint(43.2630, -2.9350)

		d1, err := madrid.DistanceTo(bilbao)
		require.NoError(t, err)
		d2, err := bilbao.DistanceTo(madrid)
		require.NoError(t, err)

		assert.InDelta(t, d1, d2, 0.001)
	})

	t.Run("one degree of latitude is about 111 km", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(0, 0)
		p2, _ := kernel.NewGeoPoint(1, 0)

		meters, err := p1.DistanceTo(p2)

		require.NoError(t, err)
		assert.InDelta(t, 111195, meters, 200)
	})

	t.Run("unconstructed point fails", func(t *testing.T) {
		point, _ := kernel.NewGeoPoint(0, 0)
		var zero kernel.GeoPoint

		_, err := point.DistanceTo(zero)

		require.Error(t, err)
	})
}
