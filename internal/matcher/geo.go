package matcher

import (
	"math"

	"github.com/tolga/fieldroute/internal/model"
)

const earthRadiusKm = 6371.0

// haversineKm returns the great-circle distance between two lat/lon points
// in kilometers (spec.md §4.4 Step 1).
func haversineKm(a, b model.Centroid) float64 {
	lat1, lon1 := a.Lat*math.Pi/180, a.Lon*math.Pi/180
	lat2, lon2 := b.Lat*math.Pi/180, b.Lon*math.Pi/180
	dLat := lat2 - lat1
	dLon := lon2 - lon1
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
