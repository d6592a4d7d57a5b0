package models

// PersonnelRequirement asks for Count crew members of the given role.
// Expertise and Languages narrow the candidate pool (any-of semantics).
type PersonnelRequirement struct {
	Role      string   `json:"role" validate:"required"`
	Count     int      `json:"count" validate:"required,min=1"`
	Expertise []string `json:"expertise,omitempty"`
	Languages []string `json:"languages,omitempty"`
}

// EquipmentRequirement asks for Count units of the given equipment type.
// Specifications entries are matched by key/value equality.
type EquipmentRequirement struct {
	Type           string            `json:"type" validate:"required"`
	Count          int               `json:"count" validate:"required,min=1"`
	Specifications map[string]string `json:"specifications,omitempty"`
}

// VehicleRequirement asks for Count vehicles of the given type with at least
// MinCapacity seats.
type VehicleRequirement struct {
	Type        string `json:"type" validate:"required"`
	Count       int    `json:"count" validate:"required,min=1"`
	MinCapacity int    `json:"min_capacity,omitempty" validate:"min=0"`
}

// RequirementSet is the full ask for one allocation call. It exists only for
// the duration of the call and is never persisted.
type RequirementSet struct {
	Personnel []PersonnelRequirement `json:"personnel,omitempty" validate:"dive"`
	Equipment []EquipmentRequirement `json:"equipment,omitempty" validate:"dive"`
	Vehicles  []VehicleRequirement   `json:"vehicles,omitempty" validate:"dive"`
}

// Empty reports whether the set asks for nothing at all.
func (s *RequirementSet) Empty() bool {
	return len(s.Personnel) == 0 && len(s.Equipment) == 0 && len(s.Vehicles) == 0
}
