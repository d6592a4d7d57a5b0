package allocator

import (
	"math"

	"github.com/mediadesk/coverage-allocator/internal/models"
)

// DistanceSentinelKm is returned when either side of a distance estimate has
// no known location. It is large enough to zero out every proximity bonus.
const DistanceSentinelKm = 1000.0

// kmPerDegree is the length of one degree of arc at the equator.
const kmPerDegree = 111.0

// DistanceKm returns an approximate ground distance in kilometers between two
// points: Euclidean distance in degree space scaled by 111 km/degree. The
// estimate is planar, not great-circle; it is only used for relative ranking
// within a metro-scale search radius.
func DistanceKm(a, b *models.GeoPoint) float64 {
	if a == nil || b == nil {
		return DistanceSentinelKm
	}
	dLat := a.Lat - b.Lat
	dLon := a.Lon - b.Lon
	return math.Sqrt(dLat*dLat+dLon*dLon) * kmPerDegree
}
