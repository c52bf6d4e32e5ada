// Package zonerepo persists delivery zones. The polygon boundary is stored
// as a jsonb array of vertices; containment math stays in the domain, the
// database only keeps the shape.
package zonerepo

import (
	"encoding/json"

	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/core/domain/model/zone"

	"github.com/google/uuid"
)

// ZoneDTO represents the database structure for persisting zones.
type ZoneDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Vertices  []byte    `gorm:"type:jsonb"`
	CityID    uuid.UUID `gorm:"type:uuid"`
	RegionID  uuid.UUID `gorm:"type:uuid"`
	CountryID uuid.UUID `gorm:"type:uuid"`
	Active    bool      `gorm:"index"`
}

// TableName specifies the database table name for zone entities.
func (ZoneDTO) TableName() string {
	return "zones"
}

type vertexJSON struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func fromDomain(aggregate *zone.Zone) (ZoneDTO, error) {
	points := aggregate.Polygon().Vertices()
	vertices := make([]vertexJSON, 0, len(points))
	for _, p := range points {
		vertices = append(vertices, vertexJSON{Lat: p.Lat(), Lon: p.Lon()})
	}

	raw, err := json.Marshal(vertices)
	if err != nil {
		return ZoneDTO{}, err
	}

	locality := aggregate.Locality()
	return ZoneDTO{
		ID:        aggregate.ID().Bytes(),
		Name:      aggregate.Name(),
		Vertices:  raw,
		CityID:    locality.CityID().Bytes(),
		RegionID:  locality.RegionID().Bytes(),
		CountryID: locality.CountryID().Bytes(),
		Active:    aggregate.IsActive(),
	}, nil
}

func toDomain(dto ZoneDTO) (*zone.Zone, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var vertices []vertexJSON
	if err = json.Unmarshal(dto.Vertices, &vertices); err != nil {
		return nil, err
	}

	points := make([]kernel.GeoPoint, 0, len(vertices))
	for _, v := range vertices {
		p, pointErr := kernel.NewGeoPoint(v.Lat, v.Lon)
		if pointErr != nil {
			return nil, pointErr
		}
		points = append(points, p)
	}

	polygon, err := kernel.NewPolygon(points)
	if err != nil {
		return nil, err
	}

	cityID, err := kernel.UUIDFromBytes(dto.CityID[:])
	if err != nil {
		return nil, err
	}

	regionID, err := kernel.UUIDFromBytes(dto.RegionID[:])
	if err != nil {
		return nil, err
	}

	countryID, err := kernel.UUIDFromBytes(dto.CountryID[:])
	if err != nil {
		return nil, err
	}

	locality, err := kernel.NewLocality(cityID, regionID, countryID)
	if err != nil {
		return nil, err
	}

	return zone.RestoreZone(id, dto.Name, polygon, locality, dto.Active)
}
