package handlers

import (
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/mediadesk/coverage-allocator/internal/allocator"
	"github.com/mediadesk/coverage-allocator/internal/db"
	"github.com/mediadesk/coverage-allocator/internal/models"
)

// EventHandler serves the event surface of the coverage workflow.
type EventHandler struct {
	events    db.EventCollection
	Allocator *allocator.Allocator
}

// NewEventHandler creates a new event handler.
func NewEventHandler(events db.EventCollection, alloc *allocator.Allocator) *EventHandler {
	return &EventHandler{events: events, Allocator: alloc}
}

// Events handles POST (create) and GET (fetch by id) on /api/events.
func (h *EventHandler) Events(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.get(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *EventHandler) create(w http.ResponseWriter, r *http.Request) {
	var event models.Event
	if err := decodeJSON(r, &event); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if event.Title == "" || event.Start.IsZero() || event.End.IsZero() {
		http.Error(w, "title, start and end are required", http.StatusBadRequest)
		return
	}
	if !event.Start.Before(event.End) {
		http.Error(w, "start must be before end", http.StatusBadRequest)
		return
	}

	id, err := h.events.InsertEvent(r.Context(), event)
	if err != nil {
		http.Error(w, "Failed to create event", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": id.Hex()})
}

func (h *EventHandler) get(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}
	event, err := h.events.FindEventByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, allocator.ErrEventNotFound) {
			http.Error(w, "Event not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load event", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, event)
}

// CancelRequest is the body of a cancellation call.
type CancelRequest struct {
	EventID string `json:"event_id"`
}

// Cancel handles POST /api/events/cancel: marks the event cancelled and
// releases every resource booked for it.
func (h *EventHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CancelRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	event, err := h.events.FindEventByID(r.Context(), req.EventID)
	if err != nil {
		if errors.Is(err, allocator.ErrEventNotFound) {
			http.Error(w, "Event not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load event", http.StatusInternalServerError)
		return
	}

	if err := h.events.UpdateEventStatus(r.Context(), req.EventID, models.EventCancelled); err != nil {
		http.Error(w, "Failed to cancel event", http.StatusInternalServerError)
		return
	}
	if _, err := h.Allocator.ReleaseResources(r.Context(), event.ID); err != nil {
		// The event is cancelled either way; the operator can retry the release.
		log.WithError(err).WithField("event_id", req.EventID).Error("release after cancellation failed")
		http.Error(w, "Event cancelled but release failed", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": string(models.EventCancelled)})
}
