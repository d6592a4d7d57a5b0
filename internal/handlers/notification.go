package handlers

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mediadesk/coverage-allocator/internal/db"
	"github.com/mediadesk/coverage-allocator/internal/middleware"
)

// NotificationHandler lets authenticated users poll their notifications.
type NotificationHandler struct {
	Notifications db.NotificationCollection
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(notifications db.NotificationCollection) *NotificationHandler {
	return &NotificationHandler{Notifications: notifications}
}

// List handles GET /api/notifications. The recipient is the authenticated
// user; ?unread=true narrows to unread entries.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	recipientID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user", http.StatusUnauthorized)
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"
	notifications, err := h.Notifications.FindByRecipient(r.Context(), recipientID, unreadOnly)
	if err != nil {
		http.Error(w, "Failed to list notifications", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, notifications)
}

// MarkReadRequest is the body of a mark-read call.
type MarkReadRequest struct {
	NotificationID string `json:"notification_id"`
}

// MarkRead handles POST /api/notifications/read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req MarkReadRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.NotificationID == "" {
		http.Error(w, "notification_id is required", http.StatusBadRequest)
		return
	}

	if err := h.Notifications.MarkRead(r.Context(), req.NotificationID); err != nil {
		http.Error(w, "Failed to mark notification read", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
