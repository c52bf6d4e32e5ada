package kernel_test

import (
	"testing"

	"geodispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeVertices(t *testing.T, coords [][2]float64) []kernel.GeoPoint {
	t.Helper()

	vertices := make([]kernel.GeoPoint, 0, len(coords))
	for _, c := range coords {
		point, err := kernel.NewGeoPoint(c[0], c[1])
		require.NoError(t, err)
		vertices = append(vertices, point)
	}
	return vertices
}

func TestNewPolygon(t *testing.T) {
	t.Run("creates polygon from three or more vertices", func(t *testing.T) {
		vertices := makeVertices(t, [][2]float64{{0, 0}, {0, 10}, {10, 5}})

		polygon, err := kernel.NewPolygon(vertices)

		require.NoError(t, err)
		require.NoError(t, polygon.Validate())
		assert.Len(t, polygon.Vertices(), 3)
	})

	t.Run("rejects fewer than three vertices", func(t *testing.T) {
		vertices := makeVertices(t, [][2]float64{{0, 0}, {0, 10}})

		_, err := kernel.NewPolygon(vertices)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 3 vertices")
	})

	t.Run("rejects unconstructed vertices", func(t *testing.T) {
		vertices := makeVertices(t, [][2]float64{{0, 0}, {0, 10}})
		vertices = append(vertices, kernel.GeoPoint{})

		_, err := kernel.NewPolygon(vertices)

		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var polygon kernel.Polygon

		err := polygon.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrPolygonIsNotConstructed, err)
	})
}

func TestPolygon_Contains(t *testing.T) {
	square := [][2]float64{{0, 0}, {0, 10}, {10, 10}, {10, 0}}

	tests := []struct {
		name   string
		lat    float64
		lon    float64
		inside bool
	}{
		{"center of square", 5, 5, true},
		{"outside to the north-east", 15, 15, false},
		{"outside just past the east edge", 5, 10.001, false},
		{"outside just past the west edge", 5, -0.001, false},
		{"inside near a corner", 9.999, 9.999, true},
		{"outside below the square", -1, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			polygon, err := kernel.NewPolygon(makeVertices(t, square))
			require.NoError(t, err)

			point, err := kernel.NewGeoPoint(tt.lat, tt.lon)
			require.NoError(t, err)

			inside, err := polygon.Contains(point)

			require.NoError(t, err)
			assert.Equal(t, tt.inside, inside)
		})
	}

	t.Run("concave polygon notch is outside", func(t *testing.T) {
		// U-shaped polygon: the notch between the prongs is not contained.
		concave := [][2]float64{{0, 0}, {10, 0}, {10, 4}, {2, 4}, {2, 6}, {10, 6}, {10, 10}, {0, 10}}
		polygon, err := kernel.NewPolygon(makeVertices(t, concave))
		require.NoError(t, err)

		notch, err := kernel.NewGeoPoint(5, 5)
		require.NoError(t, err)
		prong, err := kernel.NewGeoPoint(5, 1)
		require.NoError(t, err)

		insideNotch, err := polygon.Contains(notch)
		require.NoError(t, err)
		insideProng, err := polygon.Contains(prong)
		require.NoError(t, err)

		assert.False(t, insideNotch)
		assert.True(t, insideProng)
	})

	t.Run("unconstructed point fails", func(t *testing.T) {
		polygon, err := kernel.NewPolygon(makeVertices(t, square))
		require.NoError(t, err)

		_, err = polygon.Contains(kernel.GeoPoint{})

		require.Error(t, err)
	})
}
