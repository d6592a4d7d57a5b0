package allocator

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/mediadesk/coverage-allocator/internal/models"
)

// overFetchFactor widens each fetch so selection can pick from an ordered
// pool instead of taking the first matches arbitrarily.
const overFetchFactor = 2

// Allocator matches available resources to one event's requirements. Writes
// are optimistic: every selected resource is reserved immediately, conflicts
// are reported afterwards, and an error mid-call leaves the reservations made
// so far in place. Callers reconcile a failed call with ReleaseResources.
type Allocator struct {
	resources   ResourceStore
	assignments AssignmentStore
	sender      Sender
	validate    *validator.Validate
	now         func() time.Time
}

// New creates an Allocator. sender may be nil, in which case no assignment
// notifications are dispatched.
func New(resources ResourceStore, assignments AssignmentStore, sender Sender) *Allocator {
	return &Allocator{
		resources:   resources,
		assignments: assignments,
		sender:      sender,
		validate:    validator.New(),
		now:         time.Now,
	}
}

// Allocate reserves resources for every requirement line and returns the
// allocation with any detected conflicts attached. A line whose pool is
// smaller than its count yields a short allocation, not an error.
func (a *Allocator) Allocate(ctx context.Context, event *models.Event, reqs models.RequirementSet, strategy Strategy) (*models.AllocationResult, error) {
	if event == nil || event.ID.IsZero() {
		return nil, ErrEventNotFound
	}
	if err := a.validate.Struct(&reqs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequirement, err)
	}

	window := TimeWindow{Start: event.Start, End: event.End}
	result := &models.AllocationResult{
		Personnel: []models.AllocatedResource{},
		Equipment: []models.AllocatedResource{},
		Vehicles:  []models.AllocatedResource{},
		Conflicts: []models.Conflict{},
	}
	var personnel, equipment []models.Resource

	for _, req := range reqs.Personnel {
		selected, err := a.allocateLine(ctx, event, PersonnelQuery(req, window), req.Count, strategy)
		if err != nil {
			return nil, err
		}
		for i := range selected {
			res := &selected[i]
			result.Personnel = append(result.Personnel, allocated(res, ScoreCandidate(res, event, a.now())))
			a.notifyAssignment(ctx, res, event, req.Role)
		}
		personnel = append(personnel, selected...)
	}
	for _, req := range reqs.Equipment {
		selected, err := a.allocateLine(ctx, event, EquipmentQuery(req, window), req.Count, strategy)
		if err != nil {
			return nil, err
		}
		for i := range selected {
			res := &selected[i]
			result.Equipment = append(result.Equipment, allocated(res, ScoreCandidate(res, event, a.now())))
		}
		equipment = append(equipment, selected...)
	}
	for _, req := range reqs.Vehicles {
		selected, err := a.allocateLine(ctx, event, VehicleQuery(req, window), req.Count, strategy)
		if err != nil {
			return nil, err
		}
		for i := range selected {
			res := &selected[i]
			result.Vehicles = append(result.Vehicles, allocated(res, ScoreCandidate(res, event, a.now())))
		}
	}

	conflicts, err := a.checkConflicts(ctx, event, personnel, equipment)
	if err != nil {
		return nil, err
	}
	result.Conflicts = conflicts

	log.WithFields(log.Fields{
		"event_id":  event.ID.Hex(),
		"strategy":  strategy,
		"personnel": len(result.Personnel),
		"equipment": len(result.Equipment),
		"vehicles":  len(result.Vehicles),
		"conflicts": len(result.Conflicts),
	}).Info("allocation completed")
	return result, nil
}

// allocateLine reserves up to count resources for one requirement line. The
// pool is over-fetched, ordered by the strategy, truncated to count, and each
// pick gets a tentative booking written before any conflict check runs.
func (a *Allocator) allocateLine(ctx context.Context, event *models.Event, q AvailabilityQuery, count int, strategy Strategy) ([]models.Resource, error) {
	candidates, err := a.resources.FindAvailable(ctx, q, int64(count*overFetchFactor))
	if err != nil {
		return nil, fmt.Errorf("fetch %s candidates: %w", q.Kind, err)
	}
	sortCandidates(strategy, candidates)
	if len(candidates) > count {
		candidates = candidates[:count]
	}

	entry := models.BookingEntry{
		EventID: event.ID,
		Start:   event.Start,
		End:     event.End,
		Status:  models.BookingTentative,
	}
	for i := range candidates {
		if err := a.resources.AddBooking(ctx, candidates[i].ID, entry, models.StatusAssigned); err != nil {
			return nil, fmt.Errorf("reserve %s %s: %w", q.Kind, candidates[i].ID.Hex(), err)
		}
	}
	return candidates, nil
}

func (a *Allocator) notifyAssignment(ctx context.Context, res *models.Resource, event *models.Event, role string) {
	if a.sender == nil || res.UserID.IsZero() {
		return
	}
	n := models.Notification{
		CorrelationID: uuid.NewString(),
		RecipientID:   res.UserID,
		Type:          models.NotificationAssignment,
		Title:         "New assignment",
		Message:       fmt.Sprintf("You have been assigned to %q as %s", event.Title, role),
		Data: map[string]string{
			"event_id": event.ID.Hex(),
			"role":     role,
			"start":    event.Start.Format(time.RFC3339),
			"end":      event.End.Format(time.RFC3339),
		},
		CreatedAt: a.now(),
	}
	if err := a.sender.Send(ctx, n); err != nil {
		// Best effort: a lost notification does not fail the allocation.
		log.WithError(err).WithFields(log.Fields{
			"resource_id": res.ID.Hex(),
			"event_id":    event.ID.Hex(),
		}).Warn("assignment notification failed")
	}
}

func allocated(res *models.Resource, score float64) models.AllocatedResource {
	return models.AllocatedResource{
		ResourceID: res.ID,
		Name:       res.Name,
		Subtype:    res.Subtype,
		Score:      score,
	}
}
