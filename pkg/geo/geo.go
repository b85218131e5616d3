package geo

import (
	"math"
)

// EarthRadiusKm, haversine hesabında kullanılan ortalama dünya yarıçapı.
const EarthRadiusKm = 6371.0

// Distance returns the great-circle (haversine) distance in kilometers
// between two latitude/longitude points given in degrees.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(a))
}

// ValidCoordinates koordinatların geçerli aralıkta olup olmadığını kontrol eder.
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
