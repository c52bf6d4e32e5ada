package services

import (
	"errors"
	"sort"

	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/core/domain/model/zone"
)

// ErrNoZoneFound is returned when a point lies outside every active zone.
// This is a soft outcome: callers decide what an unserviceable point means
// (e.g., clear the address resolution) rather than treating it as a failure.
var ErrNoZoneFound = errors.New("no zone contains the point")

// ZoneResolver is a domain service that maps a coordinate to the delivery
// zone containing it, and transitively to the zone's city/region/country.
//
// Zones are evaluated in ascending id order and the first containing zone
// wins. Zone polygons are not guaranteed disjoint, so for overlapping zones
// the lowest id is the deterministic tie-break. Points exactly on a polygon
// boundary have undefined containment.
type ZoneResolver struct{}

// NewZoneResolver creates a new ZoneResolver instance.
func NewZoneResolver() ZoneResolver {
	return ZoneResolver{}
}

// Resolve returns the first active zone whose polygon contains the point.
//
// Parameters:
//   - point: The coordinate to resolve
//   - zones: Candidate zones; inactive zones are skipped
//
// Returns:
//   - *zone.Zone: The containing zone; its Locality() carries the
//     city/region/country triple for atomic address denormalization
//   - error: ErrNoZoneFound when the point is outside every active zone,
//     or a validation error
func (r ZoneResolver) Resolve(point kernel.GeoPoint, zones []*zone.Zone) (*zone.Zone, error) {
	if err := point.Validate(); err != nil {
		return nil, err
	}

	ordered := make([]*zone.Zone, len(zones))
	copy(ordered, zones)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].ID().String() < ordered[j].ID().String()
	})

	for _, z := range ordered {
		if err := z.Validate(); err != nil {
			return nil, err
		}

		if !z.IsActive() {
			continue
		}

		contains, err := z.Contains(point)
		if err != nil {
			return nil, err
		}

		if contains {
			return z, nil
		}
	}

	return nil, ErrNoZoneFound
}
