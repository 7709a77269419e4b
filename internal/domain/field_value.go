package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FieldValue stores the datum for one field definition applied to one entity
// instance. Exactly one typed slot is populated, chosen by the owning
// definition's field type. The unique index on (field_definition_id, entity_id)
// backs the atomic upsert so concurrent edits can never produce duplicate rows.
type FieldValue struct {
	BaseModel
	FieldDefinitionID uuid.UUID        `gorm:"type:uuid;not null;index:idx_field_values_definition_id;uniqueIndex:uq_field_values_definition_entity,priority:1" json:"field_definition_id"`
	EntityID          uuid.UUID        `gorm:"type:uuid;not null;index:idx_field_values_entity_id;uniqueIndex:uq_field_values_definition_entity,priority:2" json:"entity_id"`
	TextValue         *string          `gorm:"type:text" json:"text_value,omitempty"`
	NumberValue       *float64         `gorm:"type:numeric" json:"number_value,omitempty"`
	DateValue         *time.Time       `gorm:"type:timestamp" json:"date_value,omitempty"`
	BooleanValue      *bool            `gorm:"type:boolean" json:"boolean_value,omitempty"`
	JSONValue         datatypes.JSON   `gorm:"type:jsonb" json:"json_value,omitempty"`
	FieldDefinition   *FieldDefinition `gorm:"foreignKey:FieldDefinitionID" json:"field_definition,omitempty"`
}

// TableName specifies the table name for FieldValue
func (FieldValue) TableName() string {
	return "field_values"
}
