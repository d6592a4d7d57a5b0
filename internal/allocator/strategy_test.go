package allocator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mediadesk/coverage-allocator/internal/models"
)

func TestParseStrategy(t *testing.T) {
	assert.Equal(t, StrategyBalanced, ParseStrategy("balanced"))
	assert.Equal(t, StrategyProximityFirst, ParseStrategy("proximity_first"))
	assert.Equal(t, StrategyExpertiseFirst, ParseStrategy("expertise_first"))

	// Unrecognized names are ignored, not rejected.
	assert.Equal(t, StrategyBalanced, ParseStrategy(""))
	assert.Equal(t, StrategyBalanced, ParseStrategy("fastest"))
}

func namedResource(name string, bookings int, locAge time.Duration, expertise ...string) models.Resource {
	r := models.Resource{Name: name, Expertise: expertise}
	for i := 0; i < bookings; i++ {
		r.BookingSchedule = append(r.BookingSchedule, models.BookingEntry{})
	}
	if locAge >= 0 {
		r.LastKnownLocation = &models.GeoPoint{UpdatedAt: time.Now().Add(-locAge)}
	}
	return r
}

func names(resources []models.Resource) []string {
	out := make([]string, len(resources))
	for i, r := range resources {
		out[i] = r.Name
	}
	return out
}

func TestSortCandidates_Balanced(t *testing.T) {
	candidates := []models.Resource{
		namedResource("busy", 3, time.Minute),
		namedResource("idle-stale", 0, time.Hour),
		namedResource("idle-fresh", 0, time.Minute),
	}
	sortCandidates(StrategyBalanced, candidates)
	assert.Equal(t, []string{"idle-fresh", "idle-stale", "busy"}, names(candidates))
}

func TestSortCandidates_ProximityFirst(t *testing.T) {
	candidates := []models.Resource{
		namedResource("stale", 0, time.Hour),
		namedResource("never", 0, -1),
		namedResource("fresh", 0, time.Minute),
	}
	sortCandidates(StrategyProximityFirst, candidates)
	assert.Equal(t, []string{"fresh", "stale", "never"}, names(candidates))
}

func TestSortCandidates_ExpertiseFirst(t *testing.T) {
	candidates := []models.Resource{
		namedResource("narrow", 0, -1, "sports"),
		namedResource("broad", 0, -1, "sports", "politics", "breaking-news"),
		namedResource("none", 0, -1),
	}
	sortCandidates(StrategyExpertiseFirst, candidates)
	assert.Equal(t, []string{"broad", "narrow", "none"}, names(candidates))
}
