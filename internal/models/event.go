package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventStatus represents the lifecycle state of a coverage event.
type EventStatus string

const (
	EventScheduled  EventStatus = "scheduled"
	EventInProgress EventStatus = "in_progress"
	EventCompleted  EventStatus = "completed"
	EventCancelled  EventStatus = "cancelled"
)

// Event is a scheduled coverage activity created when a coverage request is
// approved. The allocator reads events but never mutates them. The covered
// window is half-open: [Start, End).
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Category  string             `bson:"category" json:"category"` // matched against personnel expertise
	Start     time.Time          `bson:"start" json:"start"`
	End       time.Time          `bson:"end" json:"end"`
	Location  *GeoPoint          `bson:"location,omitempty" json:"location,omitempty"`
	Venue     string             `bson:"venue,omitempty" json:"venue,omitempty"`
	Status    EventStatus        `bson:"status" json:"status"`
	RequestID primitive.ObjectID `bson:"request_id,omitempty" json:"request_id,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
