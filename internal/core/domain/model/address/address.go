package address

import (
	"errors"

	"geodispatch/internal/core/domain/model/kernel"
)

var (
	// ErrAddressIsNotConstructed is returned when an Address instance was not
	// created through the NewAddress or RestoreAddress factory methods.
	ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")
	// ErrResolutionIncomplete is returned when a resolution write carries a
	// zone reference without a locality or vice versa.
	ErrResolutionIncomplete = errors.New("zone and locality must be written together")
)

// Address represents a geocoded delivery address attached to an owning
// entity. The zone and locality fields are a denormalized cache of the most
// recent zone resolution for the address coordinates.
//
// Invariant: whenever coordinates are present, the zone/locality cache is
// consistent with the latest resolution of those coordinates — both are
// rewritten together through Relocate, or cleared together through
// RelocateUnresolved, never one without the other.
type Address struct {
	// id is the unique identifier for the address
	id kernel.UUID

	// owner is the tagged reference to the owning entity
	owner OwnerRef

	// point holds the coordinates, nil while the address is not geocoded
	point *kernel.GeoPoint

	// zoneID caches the resolved zone, nil when unresolved
	zoneID *kernel.UUID

	// locality caches the resolved city/region/country, nil when unresolved
	locality *kernel.Locality

	// isConstructed ensures the address was created via a constructor
	isConstructed bool
}

// NewAddress creates a new Address without coordinates. Coordinates and the
// resolution cache are written later through Relocate or RelocateUnresolved.
func NewAddress(id kernel.UUID, owner OwnerRef) (*Address, error) {
	addr := &Address{
		isConstructed: true,
	}

	if err := errors.Join(addr.setID(id), addr.setOwner(owner)); err != nil {
		return nil, err
	}

	return addr, nil
}

// RestoreAddress reconstructs an Address from persistent storage.
// The zone reference and locality must be either both present or both absent.
func RestoreAddress(
	id kernel.UUID,
	owner OwnerRef,
	point *kernel.GeoPoint,
	zoneID *kernel.UUID,
	locality *kernel.Locality,
) (*Address, error) {
	addr, err := NewAddress(id, owner)
	if err != nil {
		return nil, err
	}

	if (zoneID == nil) != (locality == nil) {
		return nil, ErrResolutionIncomplete
	}

	if point != nil {
		if err = point.Validate(); err != nil {
			return nil, err
		}
		p := *point
		addr.point = &p
	}

	if zoneID != nil {
		if err = errors.Join(zoneID.Validate(), locality.Validate()); err != nil {
			return nil, err
		}
		z, l := *zoneID, *locality
		addr.zoneID = &z
		addr.locality = &l
	}

	return addr, nil
}

// Validate ensures the Address was created through a constructor.
func (a *Address) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAddressIsNotConstructed
	}

	return nil
}

// ID returns the address's unique identifier.
func (a *Address) ID() kernel.UUID {
	return a.id
}

// Owner returns the tagged owner reference.
func (a *Address) Owner() OwnerRef {
	return a.owner
}

// Point returns the coordinates, or nil while the address is not geocoded.
func (a *Address) Point() *kernel.GeoPoint {
	if a.point == nil {
		return nil
	}
	p := *a.point
	return &p
}

// ZoneID returns the cached zone reference, or nil when unresolved.
func (a *Address) ZoneID() *kernel.UUID {
	if a.zoneID == nil {
		return nil
	}
	z := *a.zoneID
	return &z
}

// Locality returns the cached locality, or nil when unresolved.
func (a *Address) Locality() *kernel.Locality {
	if a.locality == nil {
		return nil
	}
	l := *a.locality
	return &l
}

// IsResolved reports whether the address carries a zone resolution.
func (a *Address) IsResolved() bool {
	return a.zoneID != nil
}

// Relocate rewrites the coordinates together with the full resolution cache.
// All four denormalized references change in the same mutation, keeping the
// consistency invariant.
func (a *Address) Relocate(point kernel.GeoPoint, zoneID kernel.UUID, locality kernel.Locality) error {
	if err := errors.Join(point.Validate(), zoneID.Validate(), locality.Validate()); err != nil {
		return err
	}

	a.point = &point
	a.zoneID = &zoneID
	a.locality = &locality
	return nil
}

// RelocateUnresolved rewrites the coordinates for a point outside every
// active zone, clearing the resolution cache in the same mutation.
func (a *Address) RelocateUnresolved(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}

	a.point = &point
	a.zoneID = nil
	a.locality = nil
	return nil
}

func (a *Address) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Address) setOwner(owner OwnerRef) error {
	if err := owner.Validate(); err != nil {
		return err
	}
	a.owner = owner
	return nil
}
