package geo

import "math"

// India bounding box (approximate). A rectangular check is intentionally used
// instead of polygon containment against the india.geojson boundary.
const (
	// MinLat is the southern tip (Kanyakumari area).
	MinLat = 6.5
	// MaxLat is the northern tip (Kashmir area).
	MaxLat = 35.7
	// MinLng is the western tip (Gujarat coast).
	MinLng = 68.1
	// MaxLng is the eastern tip (Arunachal Pradesh).
	MaxLng = 97.4

	// EarthRadiusKm is Earth's radius in kilometers for Haversine calculation.
	EarthRadiusKm = 6371.0
)

// InIndia reports whether a coordinate lies within India's bounding box.
func InIndia(lat, lng float64) bool {
	return MinLat <= lat && lat <= MaxLat && MinLng <= lng && lng <= MaxLng
}

// HaversineKm calculates the great-circle distance between two points
// on Earth in kilometers using the Haversine formula.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const degToRad = math.Pi / 180
	dLat := (lat2 - lat1) * degToRad
	dLng := (lng2 - lng1) * degToRad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}
