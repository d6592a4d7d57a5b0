package handlers

import (
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mediadesk/coverage-allocator/internal/allocator"
	"github.com/mediadesk/coverage-allocator/internal/db"
	"github.com/mediadesk/coverage-allocator/internal/models"
)

// ResourceHandler serves resource management and the location-ping ingest
// that keeps proximity scoring fresh.
type ResourceHandler struct {
	resources db.ResourceCollection
}

// NewResourceHandler creates a new resource handler.
func NewResourceHandler(resources db.ResourceCollection) *ResourceHandler {
	return &ResourceHandler{resources: resources}
}

// Resources handles POST (create) and GET (list) on /api/resources.
func (h *ResourceHandler) Resources(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ResourceHandler) create(w http.ResponseWriter, r *http.Request) {
	var resource models.Resource
	if err := decodeJSON(r, &resource); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if resource.Kind == "" || resource.Subtype == "" {
		http.Error(w, "kind and subtype are required", http.StatusBadRequest)
		return
	}

	id, err := h.resources.InsertResource(r.Context(), resource)
	if err != nil {
		http.Error(w, "Failed to create resource", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": id.Hex()})
}

func (h *ResourceHandler) list(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if kind := r.URL.Query().Get("kind"); kind != "" {
		filter["kind"] = kind
	}
	if subtype := r.URL.Query().Get("subtype"); subtype != "" {
		filter["subtype"] = subtype
	}

	resources, err := h.resources.FindResources(r.Context(), filter)
	if err != nil {
		http.Error(w, "Failed to list resources", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, resources)
}

// LocationPing is one position report from a field unit.
type LocationPing struct {
	ResourceID string  `json:"resource_id"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
}

// Location handles POST /api/resources/location.
func (h *ResourceHandler) Location(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var ping LocationPing
	if err := decodeJSON(r, &ping); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if ping.ResourceID == "" {
		http.Error(w, "resource_id is required", http.StatusBadRequest)
		return
	}

	point := models.GeoPoint{Lat: ping.Lat, Lon: ping.Lon, UpdatedAt: time.Now()}
	if err := h.resources.UpdateLocation(r.Context(), ping.ResourceID, point); err != nil {
		if errors.Is(err, allocator.ErrResourceNotFound) {
			http.Error(w, "Resource not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update location", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
