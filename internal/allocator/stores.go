package allocator

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mediadesk/coverage-allocator/internal/models"
)

// ResourceStore is the persistence surface the allocator needs for resources.
type ResourceStore interface {
	// FindAvailable returns up to limit resources matching the query.
	FindAvailable(ctx context.Context, q AvailabilityQuery, limit int64) ([]models.Resource, error)
	// AddBooking appends a booking-schedule entry to the resource and sets its
	// availability status.
	AddBooking(ctx context.Context, id primitive.ObjectID, entry models.BookingEntry, status models.AvailabilityStatus) error
	// ReleaseEvent removes every booking referencing the event across all
	// resources, resetting their availability status, and returns the number
	// of resources touched.
	ReleaseEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error)
}

// AssignmentStore is the persistence surface the conflict detector needs.
type AssignmentStore interface {
	// FindOverlapping returns the assignee's assignments in any of the given
	// statuses whose window overlaps [start, end).
	FindOverlapping(ctx context.Context, assigneeID primitive.ObjectID, start, end time.Time, statuses []models.AssignmentStatus) ([]models.Assignment, error)
}

// Sender delivers a notification. Failures are logged and never fail an
// allocation.
type Sender interface {
	Send(ctx context.Context, n models.Notification) error
}
