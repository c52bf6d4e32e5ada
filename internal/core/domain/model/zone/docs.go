// Package zone contains the Zone aggregate: a polygonal delivery geofence
// tied to a city/region/country hierarchy. Zones are matched against
// geographic points by the zone resolver domain service.
package zone
