package allocator

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReleaseResources removes every booking-schedule entry referencing the event
// and resets the touched resources to available. The reset is unconditional:
// a resource holding other reservations still comes back as available, and
// its remaining bookings keep blocking availability queries. Calling this for
// an event no resource references is a no-op success, so the operation is
// idempotent.
func (a *Allocator) ReleaseResources(ctx context.Context, eventID primitive.ObjectID) (bool, error) {
	released, err := a.resources.ReleaseEvent(ctx, eventID)
	if err != nil {
		return false, fmt.Errorf("release resources for event %s: %w", eventID.Hex(), err)
	}
	log.WithFields(log.Fields{
		"event_id": eventID.Hex(),
		"released": released,
	}).Info("event resources released")
	return true, nil
}
