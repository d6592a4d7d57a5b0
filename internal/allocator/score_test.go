package allocator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mediadesk/coverage-allocator/internal/models"
)

var scoreNow = time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)

func breakingNewsEvent() *models.Event {
	return &models.Event{
		Category: "breaking-news",
		Start:    scoreNow.Add(24 * time.Hour),
		End:      scoreNow.Add(27 * time.Hour),
		Location: &models.GeoPoint{Lat: 51.5074, Lon: -0.1278},
	}
}

func TestScorePersonnel_ExpertiseBonus(t *testing.T) {
	event := breakingNewsEvent()
	with := &models.Resource{Kind: models.KindPersonnel, Expertise: []string{"breaking-news"}}
	without := &models.Resource{Kind: models.KindPersonnel, Expertise: []string{"sports"}}

	// No location on either candidate: proximity bonus is zero, so
	// 50 base + 30 expertise + 10 flat vs 50 + 10.
	assert.Equal(t, 90.0, ScoreCandidate(with, event, scoreNow))
	assert.Equal(t, 60.0, ScoreCandidate(without, event, scoreNow))
}

func TestScorePersonnel_Deterministic(t *testing.T) {
	event := breakingNewsEvent()
	r := &models.Resource{
		Kind:              models.KindPersonnel,
		Expertise:         []string{"breaking-news"},
		LastKnownLocation: &models.GeoPoint{Lat: 51.51, Lon: -0.13},
	}
	first := ScoreCandidate(r, event, scoreNow)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ScoreCandidate(r, event, scoreNow))
	}
}

func TestScorePersonnel_NonIncreasingInDistance(t *testing.T) {
	event := breakingNewsEvent()
	prev := 1e9
	for _, dLat := range []float64{0, 0.1, 0.5, 1, 5, 20} {
		r := &models.Resource{
			Kind:      models.KindPersonnel,
			Expertise: []string{"breaking-news"},
			LastKnownLocation: &models.GeoPoint{
				Lat: event.Location.Lat + dLat,
				Lon: event.Location.Lon,
			},
		}
		score := ScoreCandidate(r, event, scoreNow)
		assert.LessOrEqual(t, score, prev)
		prev = score
	}
}

func TestScoreEquipment_MaintenanceHorizon(t *testing.T) {
	event := breakingNewsEvent()
	cases := []struct {
		name  string
		until time.Duration
		bonus float64
	}{
		{"far out", 45 * 24 * time.Hour, 25},
		{"within a month", 15 * 24 * time.Hour, 15},
		{"within a week", 3 * 24 * time.Hour, 5},
		{"overdue", -24 * time.Hour, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			due := scoreNow.Add(tc.until)
			r := &models.Resource{Kind: models.KindEquipment, NextMaintenance: &due}
			// No locations: proximity is zero.
			assert.Equal(t, 50+tc.bonus, ScoreCandidate(r, event, scoreNow))
		})
	}
}

func TestScoreEquipment_NoMaintenanceScheduled(t *testing.T) {
	event := breakingNewsEvent()
	r := &models.Resource{Kind: models.KindEquipment}
	assert.Equal(t, 50.0, ScoreCandidate(r, event, scoreNow))
}

func TestScoreVehicle_FuelBonus(t *testing.T) {
	event := breakingNewsEvent()

	full := &models.Resource{Kind: models.KindVehicle, FuelLevel: 100}
	empty := &models.Resource{Kind: models.KindVehicle, FuelLevel: 0}
	assert.Equal(t, 75.0, ScoreCandidate(full, event, scoreNow))
	assert.Equal(t, 50.0, ScoreCandidate(empty, event, scoreNow))

	// The fuel bonus is a plain quarter of the percentage, uncapped.
	over := &models.Resource{Kind: models.KindVehicle, FuelLevel: 120}
	assert.Equal(t, 80.0, ScoreCandidate(over, event, scoreNow))
}

func TestScoreVehicle_MaintenanceTiers(t *testing.T) {
	event := breakingNewsEvent()

	far := scoreNow.Add(45 * 24 * time.Hour)
	soon := scoreNow.Add(10 * 24 * time.Hour)
	imminent := scoreNow.Add(2 * 24 * time.Hour)

	assert.Equal(t, 65.0, ScoreCandidate(&models.Resource{Kind: models.KindVehicle, NextMaintenance: &far}, event, scoreNow))
	assert.Equal(t, 60.0, ScoreCandidate(&models.Resource{Kind: models.KindVehicle, NextMaintenance: &soon}, event, scoreNow))
	assert.Equal(t, 50.0, ScoreCandidate(&models.Resource{Kind: models.KindVehicle, NextMaintenance: &imminent}, event, scoreNow))
}

func TestScore_MissingLocationZeroesProximity(t *testing.T) {
	event := breakingNewsEvent()
	event.Location = nil

	near := &models.Resource{
		Kind:              models.KindEquipment,
		LastKnownLocation: &models.GeoPoint{Lat: 51.5074, Lon: -0.1278},
	}
	// Sentinel distance pushes every proximity term to its max(0, ...) floor.
	assert.Equal(t, 50.0, ScoreCandidate(near, event, scoreNow))
}
