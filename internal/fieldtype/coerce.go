package fieldtype

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"project-task-api/internal/domain"
)

// Date layouts accepted on write, tried in order
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ApplyValue coerces a raw input onto the typed slot of a field value,
// clearing every other slot first. Exactly one slot is populated afterwards
// (or none, when the coerced result is null).
func ApplyValue(value *domain.FieldValue, fieldType domain.FieldType, raw interface{}) error {
	value.TextValue = nil
	value.NumberValue = nil
	value.DateValue = nil
	value.BooleanValue = nil
	value.JSONValue = nil

	switch fieldType {
	case domain.FieldTypeText, domain.FieldTypeSelect, domain.FieldTypeUserID:
		if raw == nil {
			return nil
		}
		s, ok := raw.(string)
		if !ok {
			return fmt.Errorf("%s field expects a string value, got %T", fieldType, raw)
		}
		value.TextValue = &s
		return nil

	case domain.FieldTypeNumber:
		n, ok := coerceNumber(raw)
		if ok {
			value.NumberValue = &n
		}
		// unparseable input coerces to null, not an error
		return nil

	case domain.FieldTypeDate:
		if raw == nil {
			return nil
		}
		s, ok := raw.(string)
		if !ok {
			return fmt.Errorf("date field expects a string value, got %T", raw)
		}
		if s == "" {
			return nil
		}
		t, err := parseDate(s)
		if err != nil {
			return fmt.Errorf("date field expects an ISO date: %w", err)
		}
		utc := t.UTC()
		value.DateValue = &utc
		return nil

	case domain.FieldTypeBoolean:
		b := coerceTruthy(raw)
		value.BooleanValue = &b
		return nil

	case domain.FieldTypeMultiSelect:
		selected, err := coerceStringSlice(raw)
		if err != nil {
			return err
		}
		data, err := json.Marshal(selected)
		if err != nil {
			return err
		}
		value.JSONValue = data
		return nil

	default:
		return fmt.Errorf("unknown field type: %s", fieldType)
	}
}

// CurrentValue extracts the typed slot of a value per the field type's read
// rule. A nil value yields the type's zero reading: false for booleans, an
// empty array for multi_select and nil for everything else.
func CurrentValue(fieldType domain.FieldType, value *domain.FieldValue) interface{} {
	switch fieldType {
	case domain.FieldTypeText, domain.FieldTypeSelect, domain.FieldTypeUserID:
		if value == nil || value.TextValue == nil {
			return nil
		}
		return *value.TextValue

	case domain.FieldTypeNumber:
		if value == nil || value.NumberValue == nil {
			return nil
		}
		return *value.NumberValue

	case domain.FieldTypeDate:
		if value == nil || value.DateValue == nil {
			return nil
		}
		return value.DateValue.UTC().Format(time.RFC3339)

	case domain.FieldTypeBoolean:
		if value == nil || value.BooleanValue == nil {
			return false
		}
		return *value.BooleanValue

	case domain.FieldTypeMultiSelect:
		if value == nil || len(value.JSONValue) == 0 {
			return []string{}
		}
		var selected []string
		if err := json.Unmarshal(value.JSONValue, &selected); err != nil || selected == nil {
			return []string{}
		}
		return selected

	default:
		return nil
	}
}

func coerceNumber(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		n, err := v.Float64()
		return n, err == nil
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func parseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// coerceTruthy mirrors the loose truthiness the editing UI applied:
// nil and zero values are false, everything else is true.
func coerceTruthy(raw interface{}) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != "" && !strings.EqualFold(v, "false")
	case float64:
		return v != 0
	case int:
		return v != 0
	default:
		return true
	}
}

func coerceStringSlice(raw interface{}) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return v, nil
	case []interface{}:
		selected := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("multi_select field expects string values, got %T", item)
			}
			selected = append(selected, s)
		}
		return selected, nil
	default:
		return nil, fmt.Errorf("multi_select field expects an array of values, got %T", raw)
	}
}
