package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResourceKind identifies the category a schedulable resource belongs to.
type ResourceKind string

const (
	KindPersonnel ResourceKind = "personnel"
	KindEquipment ResourceKind = "equipment"
	KindVehicle   ResourceKind = "vehicle"
)

// AvailabilityStatus represents the coarse availability flag on a resource.
type AvailabilityStatus string

const (
	StatusAvailable   AvailabilityStatus = "available"
	StatusAssigned    AvailabilityStatus = "assigned"
	StatusMaintenance AvailabilityStatus = "maintenance"
	StatusUnavailable AvailabilityStatus = "unavailable"
)

// BookingStatus represents the state of one booking-schedule entry. Both
// tentative and confirmed entries block the covered window.
type BookingStatus string

const (
	BookingTentative BookingStatus = "tentative"
	BookingConfirmed BookingStatus = "confirmed"
)

// Recognized equipment specification keys. Unrecognized keys are still stored
// and matched by equality, scoped under the specifications document.
const (
	SpecSensor     = "sensor"
	SpecMount      = "mount"
	SpecResolution = "resolution"
	SpecAudio      = "audio"
)

// BookingEntry is one reservation interval on a resource's booking schedule.
// The interval is half-open: [Start, End).
type BookingEntry struct {
	EventID primitive.ObjectID `bson:"event_id" json:"event_id"`
	Start   time.Time          `bson:"start" json:"start"`
	End     time.Time          `bson:"end" json:"end"`
	Status  BookingStatus      `bson:"status" json:"status"`
}

// Resource is a schedulable unit: a crew member, a piece of equipment or a
// vehicle. Kind-specific fields are left zero for the other kinds.
type Resource struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Kind    ResourceKind       `bson:"kind" json:"kind"`
	Name    string             `bson:"name" json:"name"`
	Subtype string             `bson:"subtype" json:"subtype"` // role, equipment type or vehicle type
	Status  AvailabilityStatus `bson:"availability_status" json:"availability_status"`

	// Personnel only.
	UserID    primitive.ObjectID `bson:"user_id,omitempty" json:"user_id,omitempty"`
	IsActive  bool               `bson:"is_active" json:"is_active"`
	Expertise []string           `bson:"expertise,omitempty" json:"expertise,omitempty"`
	Languages []string           `bson:"languages,omitempty" json:"languages,omitempty"`

	// Equipment only.
	Specifications map[string]string `bson:"specifications,omitempty" json:"specifications,omitempty"`

	// Vehicles only.
	Capacity  int     `bson:"capacity,omitempty" json:"capacity,omitempty"`
	FuelLevel float64 `bson:"fuel_level,omitempty" json:"fuel_level,omitempty"` // percent

	NextMaintenance   *time.Time     `bson:"next_maintenance,omitempty" json:"next_maintenance,omitempty"`
	LastKnownLocation *GeoPoint      `bson:"last_known_location,omitempty" json:"last_known_location,omitempty"`
	BookingSchedule   []BookingEntry `bson:"booking_schedule" json:"booking_schedule"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasExpertise reports whether the resource lists the given expertise tag.
func (r *Resource) HasExpertise(tag string) bool {
	for _, e := range r.Expertise {
		if e == tag {
			return true
		}
	}
	return false
}
