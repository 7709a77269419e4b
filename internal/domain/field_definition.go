package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FieldType represents the type of a custom field
type FieldType string

// FieldType constants - the closed set of supported field types
const (
	FieldTypeText        FieldType = "text"
	FieldTypeNumber      FieldType = "number"
	FieldTypeDate        FieldType = "date"
	FieldTypeBoolean     FieldType = "boolean"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiSelect FieldType = "multi_select"
	FieldTypeUserID      FieldType = "user_id"
)

// EntityType represents the kind of entity a field definition applies to
type EntityType string

// EntityType constants
const (
	EntityTypeProject EntityType = "project"
	EntityTypeTask    EntityType = "task"
)

// FieldDefinition represents the schema of one user-defined custom field.
// ProjectID is NULL for globally scoped definitions, mirroring how system
// defaults are scoped for field options.
type FieldDefinition struct {
	BaseModel
	ProjectID  *uuid.UUID     `gorm:"type:uuid;index:idx_field_definitions_scope,priority:1" json:"project_id"` // NULL for global scope
	EntityType EntityType     `gorm:"type:varchar(20);not null;index:idx_field_definitions_scope,priority:2" json:"entity_type"`
	FieldName  string         `gorm:"type:varchar(50);not null" json:"field_name"`
	FieldType  FieldType      `gorm:"type:varchar(30);not null" json:"field_type"`
	IsRequired bool           `gorm:"type:boolean;not null;default:false" json:"is_required"`
	Options    datatypes.JSON `gorm:"type:jsonb" json:"options,omitempty"`
	Position   int            `gorm:"type:int;not null;default:0;index:idx_field_definitions_position" json:"position"`
	Project    *Project       `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
}

// TableName specifies the table name for FieldDefinition
func (FieldDefinition) TableName() string {
	return "field_definitions"
}
