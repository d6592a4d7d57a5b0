package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ConflictType identifies the kind of scheduling conflict detected.
type ConflictType string

const (
	ConflictTime        ConflictType = "time_conflict"
	ConflictMaintenance ConflictType = "maintenance_conflict"
)

// AllocatedResource is one reserved resource inside an allocation result.
// Score is attached for reporting; selection order is decided by the
// allocation strategy, not by the score.
type AllocatedResource struct {
	ResourceID primitive.ObjectID `json:"resource_id"`
	Name       string             `json:"name"`
	Subtype    string             `json:"subtype"`
	Score      float64            `json:"score"`
}

// Conflict is an advisory warning attached to an allocation result. Conflicts
// are reported to the operator, never auto-resolved.
type Conflict struct {
	Type        ConflictType         `json:"type"`
	ResourceID  primitive.ObjectID   `json:"resource_id"`
	Message     string               `json:"message"`
	Assignments []primitive.ObjectID `json:"assignments,omitempty"`
}

// AllocationResult is the outcome of one allocation call. It is returned to
// the caller and not persisted; the persisted effect is the set of mutated
// booking schedules.
type AllocationResult struct {
	Personnel []AllocatedResource `json:"personnel"`
	Equipment []AllocatedResource `json:"equipment"`
	Vehicles  []AllocatedResource `json:"vehicles"`
	Conflicts []Conflict          `json:"conflicts"`
}
