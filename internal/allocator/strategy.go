package allocator

import (
	"sort"
	"time"

	"github.com/mediadesk/coverage-allocator/internal/models"
)

// Strategy names a candidate-ordering policy applied to the over-fetched pool
// before truncation. It decides which candidates are considered; the final
// selection is the first count entries of the ordered pool, never re-sorted
// by score.
type Strategy string

const (
	// StrategyBalanced prefers the least-booked resources, breaking ties by
	// the freshest location report.
	StrategyBalanced Strategy = "balanced"
	// StrategyProximityFirst prefers the most recently reported locations.
	StrategyProximityFirst Strategy = "proximity_first"
	// StrategyExpertiseFirst prefers the broadest expertise lists.
	StrategyExpertiseFirst Strategy = "expertise_first"
)

// ParseStrategy maps a strategy name to a Strategy. Unrecognized names fall
// back to balanced without error.
func ParseStrategy(name string) Strategy {
	switch s := Strategy(name); s {
	case StrategyBalanced, StrategyProximityFirst, StrategyExpertiseFirst:
		return s
	default:
		return StrategyBalanced
	}
}

// sortCandidates orders the over-fetched pool in place according to the
// strategy.
func sortCandidates(strategy Strategy, candidates []models.Resource) {
	switch strategy {
	case StrategyProximityFirst:
		sort.SliceStable(candidates, func(i, j int) bool {
			return locationReportedAt(&candidates[i]).After(locationReportedAt(&candidates[j]))
		})
	case StrategyExpertiseFirst:
		sort.SliceStable(candidates, func(i, j int) bool {
			return len(candidates[i].Expertise) > len(candidates[j].Expertise)
		})
	default:
		sort.SliceStable(candidates, func(i, j int) bool {
			bi, bj := len(candidates[i].BookingSchedule), len(candidates[j].BookingSchedule)
			if bi != bj {
				return bi < bj
			}
			return locationReportedAt(&candidates[i]).After(locationReportedAt(&candidates[j]))
		})
	}
}

func locationReportedAt(r *models.Resource) time.Time {
	if r.LastKnownLocation == nil {
		return time.Time{}
	}
	return r.LastKnownLocation.UpdatedAt
}
