package geo

import (
	"math"

	"homehub/models"
)

// EarthRadiusKm is the mean radius of the spherical Earth model.
const EarthRadiusKm = 6371.0

func deg2rad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// DistanceKm returns the great-circle distance between a and b.
func DistanceKm(a, b models.Coordinate) float64 {
	dLat := deg2rad(b.Latitude - a.Latitude)
	dLon := deg2rad(b.Longitude - a.Longitude)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(a.Latitude))*math.Cos(deg2rad(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
