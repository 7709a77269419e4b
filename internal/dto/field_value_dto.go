package dto

import (
	"github.com/google/uuid"
)

// FieldWithValueResponse pairs a definition with the entity's current value
// for it, coerced per the field type's read rule. Value is null (or the
// type's zero reading) when no row exists yet.
type FieldWithValueResponse struct {
	Definition *FieldDefinitionResponse `json:"definition"`
	Value      interface{}              `json:"value"`
	HasValue   bool                     `json:"hasValue"`
}

// SetFieldValueRequest carries the raw input for one field write
type SetFieldValueRequest struct {
	Value interface{} `json:"value"`
}

// SetFieldValueResponse is the result of one field write. Form is the full
// values map re-projected as {fieldName: value} for embedding in a parent
// form's pending state.
type SetFieldValueResponse struct {
	FieldID  uuid.UUID              `json:"fieldId"`
	EntityID uuid.UUID              `json:"entityId"`
	Value    interface{}            `json:"value"`
	Form     map[string]interface{} `json:"form"`
}

// BulkSetFieldValuesRequest maps field definition IDs to raw inputs
type BulkSetFieldValuesRequest struct {
	Values map[string]interface{} `json:"values" binding:"required"`
}

// FieldWriteResult is the per-field outcome of a bulk write
type FieldWriteResult struct {
	FieldID uuid.UUID `json:"fieldId"`
	Success bool      `json:"success"`
	Error   string    `json:"error,omitempty"`
}

// BulkSetFieldValuesResponse is the multi-status outcome of a bulk write.
// Writes are sequential best-effort; callers reconcile using the per-field
// results instead of assuming all-or-nothing.
type BulkSetFieldValuesResponse struct {
	Results   []FieldWriteResult `json:"results"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
}
