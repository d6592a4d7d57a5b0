package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssignmentStatus represents the lifecycle state of an assignment.
type AssignmentStatus string

const (
	AssignmentPending    AssignmentStatus = "pending"
	AssignmentAccepted   AssignmentStatus = "accepted"
	AssignmentInProgress AssignmentStatus = "in_progress"
	AssignmentCompleted  AssignmentStatus = "completed"
	AssignmentDeclined   AssignmentStatus = "declined"
)

// Assignment links one event to one assignee with its own schedule window,
// tracked independently of the resource's booking schedule. The conflict
// detector uses assignments to find time-overlapping obligations.
type Assignment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID    primitive.ObjectID `bson:"event_id" json:"event_id"`
	AssigneeID primitive.ObjectID `bson:"assignee_id" json:"assignee_id"`
	Role       string             `bson:"role" json:"role"`
	Status     AssignmentStatus   `bson:"status" json:"status"`
	Start      time.Time          `bson:"start" json:"start"`
	End        time.Time          `bson:"end" json:"end"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}
