package geo

import (
	"math"

	"jobsportal/services/jobs/internal/models"
)

const (
	// EarthRadiusMiles is the mean Earth radius.
	EarthRadiusMiles = 3958.7613
	MetersPerMile    = 1609.344
)

// DistanceMiles returns the great-circle distance between a and b using the
// haversine formula on a sphere of EarthRadiusMiles.
//
// The ClickHouse store ranks with greatCircleDistance instead, which uses a
// slightly different radius and a table-driven approximation. A posting very
// close to the search radius can therefore be in range on one store and out
// of range on the other.
func DistanceMiles(a, b models.GeoPoint) float64 {
	lat1 := degreesToRadians(a.Lat)
	lat2 := degreesToRadians(b.Lat)
	dLat := lat2 - lat1
	dLng := degreesToRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * EarthRadiusMiles * math.Asin(math.Min(1, math.Sqrt(h)))
}

func degreesToRadians(d float64) float64 {
	return d * math.Pi / 180
}
