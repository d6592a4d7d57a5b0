package handlers

import (
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mediadesk/coverage-allocator/internal/allocator"
	"github.com/mediadesk/coverage-allocator/internal/db"
	"github.com/mediadesk/coverage-allocator/internal/models"
)

// AllocationHandler exposes the allocator over HTTP.
type AllocationHandler struct {
	Allocator   *allocator.Allocator
	Events      db.EventCollection
	Assignments db.AssignmentCollection
}

// NewAllocationHandler creates a new allocation handler. assignments may be
// nil, in which case no assignment records are written.
func NewAllocationHandler(alloc *allocator.Allocator, events db.EventCollection, assignments db.AssignmentCollection) *AllocationHandler {
	return &AllocationHandler{Allocator: alloc, Events: events, Assignments: assignments}
}

// AllocateRequest is the body of an allocation call.
type AllocateRequest struct {
	EventID      string                `json:"event_id"`
	Requirements models.RequirementSet `json:"requirements"`
	Strategy     string                `json:"strategy,omitempty"`
}

// Allocate handles POST /api/events/allocate.
func (h *AllocationHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req AllocateRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.EventID == "" {
		http.Error(w, "event_id is required", http.StatusBadRequest)
		return
	}

	event, err := h.Events.FindEventByID(r.Context(), req.EventID)
	if err != nil {
		if errors.Is(err, allocator.ErrEventNotFound) {
			http.Error(w, "Event not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load event", http.StatusInternalServerError)
		return
	}

	result, err := h.Allocator.Allocate(r.Context(), event, req.Requirements, allocator.ParseStrategy(req.Strategy))
	if err != nil {
		if errors.Is(err, allocator.ErrInvalidRequirement) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		// Reservations written before the failure stay applied; the caller
		// reconciles with a release.
		log.WithError(err).WithField("event_id", req.EventID).Error("allocation failed")
		http.Error(w, "Allocation failed", http.StatusInternalServerError)
		return
	}

	h.recordAssignments(r, event, result)
	respondJSON(w, http.StatusOK, result)
}

// recordAssignments writes one pending assignment per allocated crew member so
// field units can accept or decline, and so later allocations see the
// obligation. Failures are logged but do not fail the allocation; the booking
// schedule already holds the reservation.
func (h *AllocationHandler) recordAssignments(r *http.Request, event *models.Event, result *models.AllocationResult) {
	if h.Assignments == nil {
		return
	}
	for _, p := range result.Personnel {
		assignment := models.Assignment{
			EventID:    event.ID,
			AssigneeID: p.ResourceID,
			Role:       p.Subtype,
			Status:     models.AssignmentPending,
			Start:      event.Start,
			End:        event.End,
		}
		if err := h.Assignments.InsertAssignment(r.Context(), assignment); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"event_id":    event.ID.Hex(),
				"resource_id": p.ResourceID.Hex(),
			}).Error("failed to record assignment")
		}
	}
}

// ReleaseRequest is the body of a release call.
type ReleaseRequest struct {
	EventID string `json:"event_id"`
}

// Release handles POST /api/events/release.
func (h *AllocationHandler) Release(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ReleaseRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	eventID, err := primitive.ObjectIDFromHex(req.EventID)
	if err != nil {
		http.Error(w, "Invalid event_id", http.StatusBadRequest)
		return
	}

	released, err := h.Allocator.ReleaseResources(r.Context(), eventID)
	if err != nil {
		http.Error(w, "Release failed", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"released": released})
}
