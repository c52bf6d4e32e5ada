package queries

import (
	"context"
	"errors"

	"geodispatch/internal/core/domain/services"
	"geodispatch/internal/core/ports"
)

// ResolveZoneQueryHandler resolves a point against the active zones. Unlike
// the other read models this one hydrates the zone aggregates: containment
// is polygon math, not SQL.
type ResolveZoneQueryHandler struct {
	zones    ports.ZoneRepository
	resolver services.ZoneResolver
}

// NewResolveZoneQueryHandler creates a handler for zone resolution queries.
func NewResolveZoneQueryHandler(zones ports.ZoneRepository) ResolveZoneQueryHandler {
	return ResolveZoneQueryHandler{
		zones:    zones,
		resolver: services.NewZoneResolver(),
	}
}

// Handle executes the query.
func (h ResolveZoneQueryHandler) Handle(
	ctx context.Context,
	query ResolveZoneQuery,
) (ResolveZoneQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ResolveZoneQueryResponse{}, err
	}

	zones, err := h.zones.GetAllActive(ctx)
	if err != nil {
		return ResolveZoneQueryResponse{}, err
	}

	z, err := h.resolver.Resolve(query.Point(), zones)
	if errors.Is(err, services.ErrNoZoneFound) {
		return ResolveZoneQueryResponse{Resolved: false}, nil
	}
	if err != nil {
		return ResolveZoneQueryResponse{}, err
	}

	locality := z.Locality()
	return ResolveZoneQueryResponse{
		Resolved:  true,
		ZoneID:    z.ID(),
		ZoneName:  z.Name(),
		CityID:    locality.CityID(),
		RegionID:  locality.RegionID(),
		CountryID: locality.CountryID(),
	}, nil
}
