// Package geo provides geographic distance calculations.
package geo

import "math"

// EarthRadiusKm is the mean radius of Earth in kilometers.
const EarthRadiusKm = 6371.0

// CruiseSpeedKmh is the notional cruise speed used for flight-time estimates.
const CruiseSpeedKmh = 800.0

// HaversineKm calculates the great-circle distance between two points
// on Earth given their latitude and longitude in decimal degrees.
// Returns the distance in kilometers.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := degreesToRadians(lat1)
	lat2Rad := degreesToRadians(lat2)
	deltaLat := degreesToRadians(lat2 - lat1)
	deltaLon := degreesToRadians(lon2 - lon1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// EstimatedFlightHours estimates gate-to-gate flight time for a
// great-circle distance: cruise at CruiseSpeedKmh plus a fixed hour
// of taxi, climb, and descent. Illustrative, not navigational.
func EstimatedFlightHours(distanceKm float64) float64 {
	return distanceKm/CruiseSpeedKmh + 1
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Coordinates represents a geographic point.
type Coordinates struct {
	Lat float64
	Lon float64
}

// DistanceBetween calculates the distance in kilometers between two coordinate points.
func DistanceBetween(from, to Coordinates) float64 {
	return HaversineKm(from.Lat, from.Lon, to.Lat, to.Lon)
}

// IsValid returns true if the coordinates are within valid ranges.
// Latitude must be between -90 and 90, longitude between -180 and 180.
func (c Coordinates) IsValid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// IsZero returns true if both coordinates are zero (likely unset).
func (c Coordinates) IsZero() bool {
	return c.Lat == 0 && c.Lon == 0
}
