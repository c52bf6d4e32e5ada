package queries

import (
	"errors"

	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/pkg/guard"
)

var ErrResolveZoneQueryIsNotConstructed = errors.New(
	"ResolveZoneQuery must be created via NewResolveZoneQuery constructor",
)

// ResolveZoneQuery maps a coordinate to the delivery zone containing it.
// A point outside every active zone is a regular answer, not an error:
// the caller decides what an unserviceable point means.
type ResolveZoneQuery struct { //nolint:recvcheck //using for validation
	point kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewResolveZoneQuery creates a query for zone resolution of one point.
func NewResolveZoneQuery(lat, lon float64) (ResolveZoneQuery, error) {
	q := ResolveZoneQuery{
		guard: guard.NewConstructorGuard(),
	}

	point, err := kernel.NewGeoPoint(lat, lon)
	if err != nil {
		return ResolveZoneQuery{}, err
	}
	q.point = point

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ResolveZoneQuery) Validate() error {
	return q.guard.Validate(ErrResolveZoneQueryIsNotConstructed)
}

// Point returns the coordinate being resolved.
func (q ResolveZoneQuery) Point() kernel.GeoPoint {
	return q.point
}

// ResolveZoneQueryResponse carries the resolution result. When Resolved is
// false the point lies outside every active zone and the remaining fields
// are zero.
type ResolveZoneQueryResponse struct {
	Resolved  bool
	ZoneID    kernel.UUID
	ZoneName  string
	CityID    kernel.UUID
	RegionID  kernel.UUID
	CountryID kernel.UUID
}
