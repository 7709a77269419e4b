package fieldtype

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"project-task-api/internal/domain"
)

// Choice is one selectable entry for select and multi_select fields
type Choice struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SelectOptions is the option payload for select and multi_select fields
type SelectOptions struct {
	Choices []Choice `json:"choices"`
}

// NumberOptions is the option payload for number fields
type NumberOptions struct {
	Min           *float64 `json:"min,omitempty"`
	Max           *float64 `json:"max,omitempty"`
	Step          float64  `json:"step,omitempty"`
	AllowDecimals bool     `json:"allowDecimals,omitempty"`
}

// DateOptions is the option payload for date fields
type DateOptions struct {
	MinDate     string `json:"minDate,omitempty"`
	MaxDate     string `json:"maxDate,omitempty"`
	IncludeTime bool   `json:"includeTime"`
}

// IsValid reports whether the field type is a member of the closed type set
func IsValid(fieldType domain.FieldType) bool {
	switch fieldType {
	case domain.FieldTypeText, domain.FieldTypeNumber, domain.FieldTypeDate,
		domain.FieldTypeBoolean, domain.FieldTypeSelect, domain.FieldTypeMultiSelect,
		domain.FieldTypeUserID:
		return true
	default:
		return false
	}
}

// HasOptions reports whether the field type carries an option payload
func HasOptions(fieldType domain.FieldType) bool {
	switch fieldType {
	case domain.FieldTypeNumber, domain.FieldTypeDate, domain.FieldTypeSelect, domain.FieldTypeMultiSelect:
		return true
	default:
		return false
	}
}

// DefaultOptions returns the default option payload for a field type.
// Switching a definition to a new type must reset its options to these
// defaults so the previous type's shape is never carried over.
func DefaultOptions(fieldType domain.FieldType) datatypes.JSON {
	switch fieldType {
	case domain.FieldTypeSelect, domain.FieldTypeMultiSelect:
		return mustMarshal(SelectOptions{Choices: []Choice{}})
	case domain.FieldTypeNumber:
		return mustMarshal(NumberOptions{Step: 1})
	case domain.FieldTypeDate:
		return mustMarshal(DateOptions{IncludeTime: false})
	default:
		return nil
	}
}

// ValidateOptions checks an option payload against the field type's schema.
// The payload is decoded strictly so a stale payload from a previous type
// (e.g. {"step":1} on a select field) is rejected at the manager boundary.
func ValidateOptions(fieldType domain.FieldType, options datatypes.JSON) error {
	if !IsValid(fieldType) {
		return fmt.Errorf("unknown field type: %s", fieldType)
	}

	if len(options) == 0 || bytes.Equal(options, []byte("null")) {
		return nil
	}

	switch fieldType {
	case domain.FieldTypeSelect, domain.FieldTypeMultiSelect:
		var opts SelectOptions
		if err := strictUnmarshal(options, &opts); err != nil {
			return fmt.Errorf("invalid options for %s field: %w", fieldType, err)
		}
		for i, choice := range opts.Choices {
			if choice.Value == "" {
				return fmt.Errorf("invalid options for %s field: choice %d has an empty value", fieldType, i)
			}
		}
	case domain.FieldTypeNumber:
		var opts NumberOptions
		if err := strictUnmarshal(options, &opts); err != nil {
			return fmt.Errorf("invalid options for number field: %w", err)
		}
		if opts.Min != nil && opts.Max != nil && *opts.Min > *opts.Max {
			return fmt.Errorf("invalid options for number field: min is greater than max")
		}
	case domain.FieldTypeDate:
		var opts DateOptions
		if err := strictUnmarshal(options, &opts); err != nil {
			return fmt.Errorf("invalid options for date field: %w", err)
		}
	default:
		// text, boolean and user_id fields carry no options
		return fmt.Errorf("field type %s does not accept options", fieldType)
	}

	return nil
}

// ParseSelectOptions decodes the choices of a select or multi_select
// definition. Malformed payloads yield an empty choice list so display paths
// fall back to raw values instead of failing.
func ParseSelectOptions(options datatypes.JSON) SelectOptions {
	var opts SelectOptions
	if len(options) == 0 {
		return opts
	}
	if err := json.Unmarshal(options, &opts); err != nil {
		return SelectOptions{}
	}
	return opts
}

func strictUnmarshal(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func mustMarshal(v interface{}) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return datatypes.JSON(data)
}
