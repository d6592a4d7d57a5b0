package allocator

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mediadesk/coverage-allocator/internal/models"
)

// conflictStatuses are the assignment states that commit an assignee's time.
var conflictStatuses = []models.AssignmentStatus{
	models.AssignmentAccepted,
	models.AssignmentInProgress,
}

// checkConflicts cross-checks a finished allocation against existing
// obligations. Reservations are already written by this point; the output is
// advisory and nothing is un-reserved.
//
// Two independent checks run: allocated personnel are matched against
// accepted or in-progress assignments overlapping the event window, and
// allocated equipment is flagged when its next maintenance falls inside the
// window, inclusive on both ends.
func (a *Allocator) checkConflicts(ctx context.Context, event *models.Event, personnel, equipment []models.Resource) ([]models.Conflict, error) {
	conflicts := []models.Conflict{}

	for i := range personnel {
		res := &personnel[i]
		overlapping, err := a.assignments.FindOverlapping(ctx, res.ID, event.Start, event.End, conflictStatuses)
		if err != nil {
			return nil, fmt.Errorf("check assignments for %s: %w", res.ID.Hex(), err)
		}
		if len(overlapping) == 0 {
			continue
		}
		ids := make([]primitive.ObjectID, 0, len(overlapping))
		for _, as := range overlapping {
			ids = append(ids, as.ID)
		}
		conflicts = append(conflicts, models.Conflict{
			Type:        models.ConflictTime,
			ResourceID:  res.ID,
			Message:     fmt.Sprintf("%s has %d overlapping assignment(s) in this window", res.Name, len(overlapping)),
			Assignments: ids,
		})
	}

	for i := range equipment {
		res := &equipment[i]
		if res.NextMaintenance == nil {
			continue
		}
		due := *res.NextMaintenance
		if due.Before(event.Start) || due.After(event.End) {
			continue
		}
		conflicts = append(conflicts, models.Conflict{
			Type:       models.ConflictMaintenance,
			ResourceID: res.ID,
			Message:    fmt.Sprintf("%s is due for maintenance on %s, during the event", res.Name, due.Format(time.RFC3339)),
		})
	}

	return conflicts, nil
}
