package dto

import (
	"github.com/google/uuid"
)

// ColumnResponse describes one extra table column projected from a field
// definition. Accessor is the stable cell key ("custom_" + definition ID);
// the header is the field name.
type ColumnResponse struct {
	ID        string `json:"id"`
	Accessor  string `json:"accessor"`
	Header    string `json:"header"`
	FieldType string `json:"fieldType"`
	Position  int    `json:"position"`
}

// ColumnRowsRequest asks for the projected cells of a set of entities
type ColumnRowsRequest struct {
	Scope      string      `json:"scope" binding:"required"`
	EntityType string      `json:"entityType" binding:"required,oneof=project task"`
	EntityIDs  []uuid.UUID `json:"entityIds" binding:"required,min=1"`
}

// ColumnRowResponse carries the formatted cells of one entity, keyed by
// column accessor. Missing values render as the placeholder string.
type ColumnRowResponse struct {
	EntityID uuid.UUID         `json:"entityId"`
	Cells    map[string]string `json:"cells"`
}
