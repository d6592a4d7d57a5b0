package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types dispatched by the allocator and the request workflow.
const (
	NotificationAssignment   = "assignment"
	NotificationEventUpdate  = "event_update"
	NotificationEventRelease = "event_release"
)

// Notification is a message addressed to one user. Delivery channels poll the
// notifications collection or subscribe to the MQTT bus; the allocator only
// hands the record to a sender.
type Notification struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CorrelationID string             `bson:"correlation_id" json:"correlation_id"`
	RecipientID   primitive.ObjectID `bson:"recipient_id" json:"recipient_id"`
	Type          string             `bson:"type" json:"type"`
	Title         string             `bson:"title" json:"title"`
	Message       string             `bson:"message" json:"message"`
	Data          map[string]string  `bson:"data,omitempty" json:"data,omitempty"`
	Read          bool               `bson:"read" json:"read"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
