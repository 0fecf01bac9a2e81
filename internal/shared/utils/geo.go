package utils

import "math"

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64
	Lon float64
}

const earthRadiusKm = 6371.0

// CalculateDistance returns the great-circle (haversine) distance between
// two points in kilometers.
func CalculateDistance(p1, p2 Point) float64 {
	lat1 := p1.Lat * math.Pi / 180
	lat2 := p2.Lat * math.Pi / 180
	dLat := (p2.Lat - p1.Lat) * math.Pi / 180
	dLon := (p2.Lon - p1.Lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// IsWithinRadius reports whether point lies within radiusKm of center.
func IsWithinRadius(center, point Point, radiusKm float64) bool {
	return CalculateDistance(center, point) <= radiusKm
}
