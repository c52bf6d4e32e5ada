// Package kernel provides core domain primitives for the geo-dispatch engine.
// It implements the fundamental building blocks used throughout the domain
// model, following Domain-Driven Design principles.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - GeoPoint: a WGS 84 coordinate with haversine distance calculation
//   - Polygon: a simple polygon with even-odd point containment testing
//   - Locality: the city/region/country reference triple a zone resolves to
//
// These primitives enforce domain invariants through constructor validation.
// They are immutable and thread-safe, suitable for concurrent use.
package kernel
