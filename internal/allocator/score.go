package allocator

import (
	"math"
	"time"

	"github.com/mediadesk/coverage-allocator/internal/models"
)

// baseScore is the starting score for every candidate. Bonuses are additive
// and the total is deliberately uncapped; scores are comparable within one
// allocation call, not normalized percentages.
const baseScore = 50.0

// ScoreCandidate computes the suitability score of a candidate for an event.
// Deterministic for a fixed now.
func ScoreCandidate(r *models.Resource, event *models.Event, now time.Time) float64 {
	switch r.Kind {
	case models.KindEquipment:
		return scoreEquipment(r, event, now)
	case models.KindVehicle:
		return scoreVehicle(r, event, now)
	default:
		return scorePersonnel(r, event)
	}
}

func scorePersonnel(r *models.Resource, event *models.Event) float64 {
	score := baseScore
	if r.HasExpertise(event.Category) {
		score += 30
	}
	d := DistanceKm(r.LastKnownLocation, event.Location)
	score += math.Max(0, 20-d/10)
	// Flat bonus standing in for availability-history weighting, which is not
	// tracked yet.
	score += 10
	return score
}

func scoreEquipment(r *models.Resource, event *models.Event, now time.Time) float64 {
	score := baseScore
	switch days := daysUntilMaintenance(r, now); {
	case days > 30:
		score += 25
	case days > 7:
		score += 15
	case days > 0:
		score += 5
	}
	d := DistanceKm(r.LastKnownLocation, event.Location)
	score += math.Max(0, 25-d/5)
	return score
}

func scoreVehicle(r *models.Resource, event *models.Event, now time.Time) float64 {
	score := baseScore
	score += r.FuelLevel / 4
	switch days := daysUntilMaintenance(r, now); {
	case days > 30:
		score += 15
	case days > 7:
		score += 10
	}
	d := DistanceKm(r.LastKnownLocation, event.Location)
	score += math.Max(0, 10-d/10)
	return score
}

// daysUntilMaintenance returns the whole and fractional days until the next
// maintenance, or 0 when none is scheduled. Overdue maintenance comes back
// negative, which earns no bonus.
func daysUntilMaintenance(r *models.Resource, now time.Time) float64 {
	if r.NextMaintenance == nil {
		return 0
	}
	return r.NextMaintenance.Sub(now).Hours() / 24
}
