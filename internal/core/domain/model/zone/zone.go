package zone

import (
	"errors"

	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/pkg/errs"
)

var (
	// ErrZoneIsNotConstructed is returned when a Zone instance was not created
	// through the NewZone or RestoreZone factory methods.
	ErrZoneIsNotConstructed = errors.New("Zone must be created via NewZone constructor")
	// ErrNameIsRequired is returned when attempting to create a zone without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
)

// Zone represents a polygonal delivery geofence. It is an aggregate root
// mapping a geographic area to the city/region/country hierarchy used to
// route addresses and orders.
//
// Invariants:
//   - Must have a valid unique identifier and a non-empty name
//   - The polygon describes a simple (non self-intersecting) area; this is
//     assumed, not validated at write time
//   - The locality references are consistent with the owning city
//
// Only active zones participate in resolution.
type Zone struct {
	// id is the unique identifier for the zone
	id kernel.UUID

	// name is the human-readable zone name
	name string

	// polygon is the geofence boundary as an ordered vertex list
	polygon kernel.Polygon

	// locality is the city/region/country hierarchy this zone belongs to
	locality kernel.Locality

	// active controls whether the zone participates in resolution
	active bool

	// isConstructed ensures the zone was created via a constructor
	isConstructed bool
}

// NewZone creates an active Zone with validation. This is the only way to
// create a fresh zone; zones loaded from persistence use RestoreZone.
func NewZone(id kernel.UUID, name string, polygon kernel.Polygon, locality kernel.Locality) (*Zone, error) {
	return RestoreZone(id, name, polygon, locality, true)
}

// RestoreZone reconstructs a Zone from persistent storage, including its
// active flag.
func RestoreZone(
	id kernel.UUID, name string, polygon kernel.Polygon, locality kernel.Locality, active bool,
) (*Zone, error) {
	zone := &Zone{
		active:        active,
		isConstructed: true,
	}

	if err := errors.Join(
		zone.setID(id),
		zone.setName(name),
		zone.setPolygon(polygon),
		zone.setLocality(locality),
	); err != nil {
		return nil, err
	}

	return zone, nil
}

// Validate ensures the Zone was created through a constructor.
func (z *Zone) Validate() error {
	if z == nil || !z.isConstructed {
		return ErrZoneIsNotConstructed
	}

	return nil
}

// ID returns the zone's unique identifier.
func (z *Zone) ID() kernel.UUID {
	return z.id
}

// Name returns the human-readable zone name.
func (z *Zone) Name() string {
	return z.name
}

// Polygon returns the zone's geofence boundary.
func (z *Zone) Polygon() kernel.Polygon {
	return z.polygon
}

// Locality returns the city/region/country references for the zone.
func (z *Zone) Locality() kernel.Locality {
	return z.locality
}

// IsActive reports whether the zone participates in resolution.
func (z *Zone) IsActive() bool {
	return z.active
}

// Contains reports whether the point lies inside the zone's polygon.
// Containment for points exactly on the boundary is undefined.
func (z *Zone) Contains(point kernel.GeoPoint) (bool, error) {
	if err := z.Validate(); err != nil {
		return false, err
	}

	return z.polygon.Contains(point)
}

func (z *Zone) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	z.id = id
	return nil
}

func (z *Zone) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	z.name = name
	return nil
}

func (z *Zone) setPolygon(polygon kernel.Polygon) error {
	if err := polygon.Validate(); err != nil {
		return err
	}
	z.polygon = polygon
	return nil
}

func (z *Zone) setLocality(locality kernel.Locality) error {
	if err := locality.Validate(); err != nil {
		return err
	}
	z.locality = locality
	return nil
}
