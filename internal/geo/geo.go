// Package geo implements the point-in-zone primitives used by the
// billing engine. Everything here is purely functional and safe for
// unsynchronized concurrent use.
package geo

import "math"

// EarthRadiusMeters is the mean sphere radius used by the haversine
// distance computation.
const EarthRadiusMeters = 6371000

// Point is a geographic coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the point lies inside the WGS84 coordinate
// ranges. Out-of-range coordinates are a caller error, not a geometry
// failure.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Distance returns the great-circle distance between two points in
// meters, computed with the haversine formula.
func Distance(a, b Point) float64 {
	latA := degToRad(a.Lat)
	latB := degToRad(b.Lat)
	dLat := degToRad(b.Lat - a.Lat)
	dLng := degToRad(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(latA)*math.Cos(latB)*sinLng*sinLng

	return 2 * EarthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

// InCircle reports whether p lies within radius meters of center.
// The boundary is inclusive: distance == radius matches.
func InCircle(p, center Point, radius float64) bool {
	if radius < 0 {
		return false
	}
	return Distance(p, center) <= radius
}

// InPolygon reports whether p lies inside the simple polygon described
// by vertices, using the even-odd ray casting rule. Convex and
// non-convex polygons are handled; the ring does not need to be closed.
//
// Latitude and longitude are treated as planar Cartesian coordinates.
// This is a small-area approximation: it is not valid for polygons
// spanning large latitude ranges or crossing the antimeridian.
//
// Points exactly on an edge resolve by the half-open crossing rule
// below; the result for boundary points is implementation-defined but
// deterministic for repeated calls with the same inputs.
func InPolygon(p Point, vertices []Point) bool {
	if len(vertices) < 3 {
		return false
	}

	inside := false
	j := len(vertices) - 1
	for i := 0; i < len(vertices); i++ {
		vi, vj := vertices[i], vertices[j]
		// Half-open vertical range check keeps vertices from being
		// counted twice when the ray passes exactly through one.
		if (vi.Lat > p.Lat) != (vj.Lat > p.Lat) {
			cross := (vj.Lng-vi.Lng)*(p.Lat-vi.Lat)/(vj.Lat-vi.Lat) + vi.Lng
			if p.Lng < cross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
