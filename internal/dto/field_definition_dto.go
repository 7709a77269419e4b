package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ScopeGlobal is the sentinel scope for definitions not bound to a project
const ScopeGlobal = "global"

// ParseScope converts an API scope string into the nullable project key used
// by storage. "global" (or empty) selects the global scope.
func ParseScope(scope string) (*uuid.UUID, error) {
	if scope == "" || scope == ScopeGlobal {
		return nil, nil
	}
	id, err := uuid.Parse(scope)
	if err != nil {
		return nil, fmt.Errorf("scope must be %q or a project ID: %w", ScopeGlobal, err)
	}
	return &id, nil
}

// FormatScope converts a nullable project key back into the API scope string
func FormatScope(projectID *uuid.UUID) string {
	if projectID == nil {
		return ScopeGlobal
	}
	return projectID.String()
}

// FieldDefinitionResponse represents a field definition in API responses
type FieldDefinitionResponse struct {
	FieldID    uuid.UUID       `json:"fieldId"`
	Scope      string          `json:"scope"`
	EntityType string          `json:"entityType"`
	FieldName  string          `json:"fieldName"`
	FieldType  string          `json:"fieldType"`
	IsRequired bool            `json:"isRequired"`
	Options    json.RawMessage `json:"options,omitempty"`
	Position   int             `json:"position"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// FieldDefinitionListResponse is the ordered definition list plus the
// advisory plan-limit state the field manager UI renders
type FieldDefinitionListResponse struct {
	Fields        []*FieldDefinitionResponse `json:"fields"`
	LimitReached  bool                       `json:"limitReached"`
	MaxFreeFields int                        `json:"maxFreeFields"`
}

// CreateFieldDefinitionRequest represents the request to create a field definition
type CreateFieldDefinitionRequest struct {
	Scope      string          `json:"scope" binding:"required"`
	EntityType string          `json:"entityType" binding:"required,oneof=project task"`
	FieldName  string          `json:"fieldName" binding:"required,max=50"`
	FieldType  string          `json:"fieldType" binding:"required"`
	IsRequired bool            `json:"isRequired"`
	Options    json.RawMessage `json:"options,omitempty"`
}

// UpdateFieldDefinitionRequest represents a partial update of a field definition
type UpdateFieldDefinitionRequest struct {
	FieldName  *string         `json:"fieldName" binding:"omitempty,min=1,max=50"`
	FieldType  *string         `json:"fieldType"`
	IsRequired *bool           `json:"isRequired"`
	Options    json.RawMessage `json:"options,omitempty"`
}

// ReorderFieldDefinitionsRequest reassigns positions by index in OrderedIDs
type ReorderFieldDefinitionsRequest struct {
	Scope      string      `json:"scope" binding:"required"`
	EntityType string      `json:"entityType" binding:"required,oneof=project task"`
	OrderedIDs []uuid.UUID `json:"orderedIds" binding:"required,min=1"`
}
