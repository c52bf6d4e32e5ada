package kernel

import (
	"fmt"

	"geodispatch/internal/pkg/errs"
	"geodispatch/internal/pkg/guard"
)

// minPolygonVertices is the smallest vertex count that can describe an area.
const minPolygonVertices = 3

// ErrPolygonIsNotConstructed is returned when attempting to use an
// improperly initialized Polygon. Polygons must be created via NewPolygon.
var ErrPolygonIsNotConstructed = errs.NewValueIsRequiredError(
	"polygon must be created via NewPolygon constructor")

// Polygon is an immutable value object representing a simple (non
// self-intersecting) geographic polygon as an ordered vertex list. The
// closing edge between the last and first vertex is implicit.
//
// The polygon is assumed simple; self-intersection is not validated at
// construction time. Containment for points exactly on an edge is undefined,
// which is inherent to the even-odd ray-casting test.
type Polygon struct {
	vertices []GeoPoint
	guard    guard.ConstructorGuard
}

// NewPolygon creates a Polygon from an ordered vertex list.
// At least three properly constructed vertices are required.
//
// Example:
//
//	square := mustVertices([][2]float64{{0, 0}, {0, 10}, {10, 10}, {10, 0}})
//	polygon, err := kernel.NewPolygon(square)
func NewPolygon(vertices []GeoPoint) (Polygon, error) {
	if len(vertices) < minPolygonVertices {
		return Polygon{}, errs.NewValueIsInvalidErrorWithCause("vertices",
			fmt.Errorf("polygon needs at least %d vertices, got %d", minPolygonVertices, len(vertices)))
	}

	for i, v := range vertices {
		if err := v.Validate(); err != nil {
			return Polygon{}, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("vertices[%d]", i), err)
		}
	}

	copied := make([]GeoPoint, len(vertices))
	copy(copied, vertices)

	return Polygon{
		vertices: copied,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Polygon was created through NewPolygon.
func (p Polygon) Validate() error {
	return p.guard.Validate(ErrPolygonIsNotConstructed)
}

// Vertices returns a copy of the ordered vertex list.
func (p Polygon) Vertices() []GeoPoint {
	copied := make([]GeoPoint, len(p.vertices))
	copy(copied, p.vertices)
	return copied
}

// Contains reports whether the point lies inside the polygon using the
// even-odd (ray-casting) rule: a horizontal ray is cast from the point and
// edge crossings are counted; an odd count means inside.
//
// Points exactly on an edge yield an undefined result.
func (p Polygon) Contains(point GeoPoint) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}
	if err := point.Validate(); err != nil {
		return false, err
	}

	inside := false
	j := len(p.vertices) - 1
	for i := range p.vertices {
		vi, vj := p.vertices[i], p.vertices[j]

		crossesRay := (vi.Lat() > point.Lat()) != (vj.Lat() > point.Lat())
		if crossesRay {
			intersectLon := (vj.Lon()-vi.Lon())*(point.Lat()-vi.Lat())/(vj.Lat()-vi.Lat()) + vi.Lon()
			if point.Lon() < intersectLon {
				inside = !inside
			}
		}
		j = i
	}

	return inside, nil
}
