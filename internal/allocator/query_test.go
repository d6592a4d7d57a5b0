package allocator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mediadesk/coverage-allocator/internal/models"
)

func ts(hour int) time.Time {
	return time.Date(2025, 12, 20, hour, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"disjoint", ts(9), ts(10), ts(11), ts(12), false},
		{"touching endpoints do not overlap", ts(9), ts(10), ts(10), ts(11), false},
		{"partial overlap", ts(9), ts(11), ts(10), ts(12), true},
		{"contained", ts(9), ts(12), ts(10), ts(11), true},
		{"identical", ts(9), ts(10), ts(9), ts(10), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			// Symmetric in the two intervals.
			assert.Equal(t, tc.want, Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
		})
	}
}

func availablePersonnel() *models.Resource {
	return &models.Resource{
		Kind:      models.KindPersonnel,
		Subtype:   "photographer",
		Status:    models.StatusAvailable,
		IsActive:  true,
		Expertise: []string{"breaking-news"},
		Languages: []string{"en"},
	}
}

func TestMatches_EmptyScheduleAlwaysPasses(t *testing.T) {
	q := AvailabilityQuery{
		Kind:          models.KindPersonnel,
		Subtype:       "photographer",
		Window:        TimeWindow{Start: ts(9), End: ts(12)},
		RequireActive: true,
	}
	assert.True(t, q.Matches(availablePersonnel()))
}

func TestMatches_BlockingBookingExcludes(t *testing.T) {
	q := AvailabilityQuery{
		Kind:          models.KindPersonnel,
		Subtype:       "photographer",
		Window:        TimeWindow{Start: ts(9), End: ts(12)},
		RequireActive: true,
	}
	for _, status := range []models.BookingStatus{models.BookingTentative, models.BookingConfirmed} {
		r := availablePersonnel()
		r.BookingSchedule = []models.BookingEntry{{Start: ts(11), End: ts(13), Status: status}}
		assert.False(t, q.Matches(r), "booking status %s should block", status)
	}
}

func TestMatches_NonOverlappingBookingPasses(t *testing.T) {
	q := AvailabilityQuery{
		Kind:          models.KindPersonnel,
		Subtype:       "photographer",
		Window:        TimeWindow{Start: ts(9), End: ts(12)},
		RequireActive: true,
	}
	r := availablePersonnel()
	r.BookingSchedule = []models.BookingEntry{{Start: ts(12), End: ts(14), Status: models.BookingConfirmed}}
	assert.True(t, q.Matches(r))
}

func TestMatches_StatusAndActive(t *testing.T) {
	q := AvailabilityQuery{
		Kind:          models.KindPersonnel,
		Subtype:       "photographer",
		Window:        TimeWindow{Start: ts(9), End: ts(12)},
		RequireActive: true,
	}

	r := availablePersonnel()
	r.Status = models.StatusMaintenance
	assert.False(t, q.Matches(r))

	r = availablePersonnel()
	r.IsActive = false
	assert.False(t, q.Matches(r))
}

func TestMatches_ExpertiseAnyOf(t *testing.T) {
	q := AvailabilityQuery{
		Kind:          models.KindPersonnel,
		Subtype:       "photographer",
		Window:        TimeWindow{Start: ts(9), End: ts(12)},
		RequireActive: true,
		Expertise:     []string{"sports", "breaking-news"},
	}
	assert.True(t, q.Matches(availablePersonnel()))

	q.Expertise = []string{"politics"}
	assert.False(t, q.Matches(availablePersonnel()))
}

func TestMatches_EquipmentSpecifications(t *testing.T) {
	r := &models.Resource{
		Kind:           models.KindEquipment,
		Subtype:        "camera",
		Status:         models.StatusAvailable,
		Specifications: map[string]string{models.SpecSensor: "full-frame"},
	}
	q := AvailabilityQuery{
		Kind:           models.KindEquipment,
		Subtype:        "camera",
		Window:         TimeWindow{Start: ts(9), End: ts(12)},
		Specifications: map[string]string{models.SpecSensor: "full-frame"},
	}
	assert.True(t, q.Matches(r))

	q.Specifications = map[string]string{models.SpecSensor: "aps-c"}
	assert.False(t, q.Matches(r))
}

func TestMatches_VehicleCapacityInclusive(t *testing.T) {
	r := &models.Resource{
		Kind:     models.KindVehicle,
		Subtype:  "news-van",
		Status:   models.StatusAvailable,
		Capacity: 4,
	}
	q := AvailabilityQuery{
		Kind:        models.KindVehicle,
		Subtype:     "news-van",
		Window:      TimeWindow{Start: ts(9), End: ts(12)},
		MinCapacity: 4,
	}
	assert.True(t, q.Matches(r), "lower bound is inclusive")

	q.MinCapacity = 5
	assert.False(t, q.Matches(r))
}

func TestFilter_Shape(t *testing.T) {
	q := AvailabilityQuery{
		Kind:           models.KindEquipment,
		Subtype:        "camera",
		Window:         TimeWindow{Start: ts(9), End: ts(12)},
		Specifications: map[string]string{models.SpecSensor: "full-frame"},
	}
	filter := q.Filter()

	assert.Equal(t, models.KindEquipment, filter["kind"])
	assert.Equal(t, "camera", filter["subtype"])
	assert.Equal(t, models.StatusAvailable, filter["availability_status"])
	assert.Equal(t, "full-frame", filter["specifications.sensor"])
	assert.NotContains(t, filter, "is_active")

	not, ok := filter["booking_schedule"].(bson.M)
	assert.True(t, ok)
	elem := not["$not"].(bson.M)["$elemMatch"].(bson.M)
	assert.Equal(t, bson.M{"$lt": ts(12)}, elem["start"])
	assert.Equal(t, bson.M{"$gt": ts(9)}, elem["end"])
}
