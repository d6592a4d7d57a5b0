package handlers

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mediadesk/coverage-allocator/internal/db"
	"github.com/mediadesk/coverage-allocator/internal/models"
)

// AssignmentHandler serves assignment lookup and the accept/decline responses
// from field units.
type AssignmentHandler struct {
	Assignments db.AssignmentCollection
}

// NewAssignmentHandler creates a new assignment handler.
func NewAssignmentHandler(assignments db.AssignmentCollection) *AssignmentHandler {
	return &AssignmentHandler{Assignments: assignments}
}

// ByEvent handles GET /api/assignments?event_id=<hex>.
func (h *AssignmentHandler) ByEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	eventID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("event_id"))
	if err != nil {
		http.Error(w, "Invalid event_id", http.StatusBadRequest)
		return
	}

	assignments, err := h.Assignments.FindAssignmentsByEvent(r.Context(), eventID)
	if err != nil {
		http.Error(w, "Failed to list assignments", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, assignments)
}

// RespondRequest is the body of an accept/decline call.
type RespondRequest struct {
	AssignmentID string `json:"assignment_id"`
	Accept       bool   `json:"accept"`
}

// Respond handles POST /api/assignments/respond. An accepted assignment starts
// counting toward time-conflict detection on later allocations.
func (h *AssignmentHandler) Respond(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RespondRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.AssignmentID == "" {
		http.Error(w, "assignment_id is required", http.StatusBadRequest)
		return
	}

	status := models.AssignmentDeclined
	if req.Accept {
		status = models.AssignmentAccepted
	}
	if err := h.Assignments.UpdateAssignmentStatus(r.Context(), req.AssignmentID, status); err != nil {
		http.Error(w, "Failed to update assignment", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": string(status)})
}
