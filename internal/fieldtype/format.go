package fieldtype

import (
	"encoding/json"
	"strconv"
	"strings"

	"project-task-api/internal/domain"
)

// Placeholder rendered for absent values and unknown field types
const Placeholder = "—"

const displayDateLayout = "Jan 2, 2006"

// Format renders a field value as a display string for table cells. Absent
// values and unknown types render the placeholder; the formatter never fails.
func Format(definition *domain.FieldDefinition, value *domain.FieldValue) string {
	if value == nil {
		if definition.FieldType == domain.FieldTypeBoolean {
			return "No"
		}
		return Placeholder
	}

	switch definition.FieldType {
	case domain.FieldTypeText, domain.FieldTypeUserID:
		if value.TextValue == nil || *value.TextValue == "" {
			return Placeholder
		}
		return *value.TextValue

	case domain.FieldTypeNumber:
		if value.NumberValue == nil {
			return Placeholder
		}
		return strconv.FormatFloat(*value.NumberValue, 'f', -1, 64)

	case domain.FieldTypeDate:
		if value.DateValue == nil {
			return Placeholder
		}
		return value.DateValue.Format(displayDateLayout)

	case domain.FieldTypeBoolean:
		if value.BooleanValue != nil && *value.BooleanValue {
			return "Yes"
		}
		return "No"

	case domain.FieldTypeSelect:
		if value.TextValue == nil || *value.TextValue == "" {
			return Placeholder
		}
		return choiceLabel(definition, *value.TextValue)

	case domain.FieldTypeMultiSelect:
		if len(value.JSONValue) == 0 {
			return Placeholder
		}
		var selected []string
		if err := json.Unmarshal(value.JSONValue, &selected); err != nil || len(selected) == 0 {
			return Placeholder
		}
		labels := make([]string, len(selected))
		for i, v := range selected {
			labels[i] = choiceLabel(definition, v)
		}
		return strings.Join(labels, ", ")

	default:
		return Placeholder
	}
}

// choiceLabel resolves a stored choice value to its display label, falling
// back to the raw value when the choice no longer exists.
func choiceLabel(definition *domain.FieldDefinition, value string) string {
	for _, choice := range ParseSelectOptions(definition.Options).Choices {
		if choice.Value == value {
			return choice.Label
		}
	}
	return value
}
