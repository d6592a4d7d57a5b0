package allocator

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mediadesk/coverage-allocator/internal/models"
)

// TimeWindow is a half-open interval [Start, End).
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share at least
// one instant.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// blockingStatuses are the booking states that reserve a window. A tentative
// booking blocks just like a confirmed one.
var blockingStatuses = []models.BookingStatus{models.BookingTentative, models.BookingConfirmed}

// AvailabilityQuery selects resources of one kind and subtype that are marked
// available and have no blocking booking overlapping the window. A resource
// with an empty booking schedule trivially passes the window check.
type AvailabilityQuery struct {
	Kind           models.ResourceKind
	Subtype        string
	Window         TimeWindow
	RequireActive  bool
	Expertise      []string // any-of
	Languages      []string // any-of
	Specifications map[string]string
	MinCapacity    int // inclusive lower bound
}

// PersonnelQuery builds the availability query for one personnel requirement.
func PersonnelQuery(req models.PersonnelRequirement, w TimeWindow) AvailabilityQuery {
	return AvailabilityQuery{
		Kind:          models.KindPersonnel,
		Subtype:       req.Role,
		Window:        w,
		RequireActive: true,
		Expertise:     req.Expertise,
		Languages:     req.Languages,
	}
}

// EquipmentQuery builds the availability query for one equipment requirement.
func EquipmentQuery(req models.EquipmentRequirement, w TimeWindow) AvailabilityQuery {
	return AvailabilityQuery{
		Kind:           models.KindEquipment,
		Subtype:        req.Type,
		Window:         w,
		Specifications: req.Specifications,
	}
}

// VehicleQuery builds the availability query for one vehicle requirement.
func VehicleQuery(req models.VehicleRequirement, w TimeWindow) AvailabilityQuery {
	return AvailabilityQuery{
		Kind:        models.KindVehicle,
		Subtype:     req.Type,
		Window:      w,
		MinCapacity: req.MinCapacity,
	}
}

// Filter renders the query as a MongoDB filter document. Specification keys
// are scoped under the specifications subdocument, so requirement input can
// only ever add equality matches there.
func (q AvailabilityQuery) Filter() bson.M {
	filter := bson.M{
		"kind":                q.Kind,
		"subtype":             q.Subtype,
		"availability_status": models.StatusAvailable,
		"booking_schedule": bson.M{"$not": bson.M{"$elemMatch": bson.M{
			"status": bson.M{"$in": blockingStatuses},
			"start":  bson.M{"$lt": q.Window.End},
			"end":    bson.M{"$gt": q.Window.Start},
		}}},
	}
	if q.RequireActive {
		filter["is_active"] = true
	}
	if len(q.Expertise) > 0 {
		filter["expertise"] = bson.M{"$in": q.Expertise}
	}
	if len(q.Languages) > 0 {
		filter["languages"] = bson.M{"$in": q.Languages}
	}
	for key, value := range q.Specifications {
		filter["specifications."+key] = value
	}
	if q.MinCapacity > 0 {
		filter["capacity"] = bson.M{"$gte": q.MinCapacity}
	}
	return filter
}

// Matches is the in-memory equivalent of Filter, used by fakes and tests.
func (q AvailabilityQuery) Matches(r *models.Resource) bool {
	if r.Kind != q.Kind || r.Subtype != q.Subtype || r.Status != models.StatusAvailable {
		return false
	}
	if q.RequireActive && !r.IsActive {
		return false
	}
	for _, entry := range r.BookingSchedule {
		if !blocking(entry.Status) {
			continue
		}
		if Overlaps(entry.Start, entry.End, q.Window.Start, q.Window.End) {
			return false
		}
	}
	if len(q.Expertise) > 0 && !anyOf(r.Expertise, q.Expertise) {
		return false
	}
	if len(q.Languages) > 0 && !anyOf(r.Languages, q.Languages) {
		return false
	}
	for key, value := range q.Specifications {
		if r.Specifications[key] != value {
			return false
		}
	}
	if q.MinCapacity > 0 && r.Capacity < q.MinCapacity {
		return false
	}
	return true
}

func blocking(s models.BookingStatus) bool {
	for _, b := range blockingStatuses {
		if s == b {
			return true
		}
	}
	return false
}

func anyOf(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}
