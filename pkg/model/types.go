package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// FieldType is the closed enumeration of input kinds a form can contain.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeDate     FieldType = "date"
)

// FieldTypes lists every supported type in display order.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldTypeText,
		FieldTypeNumber,
		FieldTypeTextarea,
		FieldTypeSelect,
		FieldTypeRadio,
		FieldTypeCheckbox,
		FieldTypeDate,
	}
}

// Valid reports whether t is one of the supported field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeTextarea, FieldTypeSelect,
		FieldTypeRadio, FieldTypeCheckbox, FieldTypeDate:
		return true
	default:
		return false
	}
}

// Choice reports whether the type carries an options list.
func (t FieldType) Choice() bool {
	switch t {
	case FieldTypeSelect, FieldTypeRadio, FieldTypeCheckbox:
		return true
	default:
		return false
	}
}

// TextLike reports whether the type is validated by character length.
func (t FieldType) TextLike() bool {
	return t == FieldTypeText || t == FieldTypeTextarea
}

// Multi reports whether values for the type are lists rather than single
// strings. Only checkbox groups collect multiple selections.
func (t FieldType) Multi() bool {
	return t == FieldTypeCheckbox
}

// DerivedField marks a field whose value is computed from other fields
// instead of entered directly. Parents lists the contributing field IDs and
// Formula is an arithmetic expression over them (see pkg/formula).
type DerivedField struct {
	Parents []string `json:"parents"`
	Formula string   `json:"formula"`
}

// FormField is one question inside a form. ID and Type are fixed at creation;
// changing a field's type means creating a new field.
type FormField struct {
	ID           string        `json:"id"`
	Type         FieldType     `json:"type"`
	Label        string        `json:"label"`
	DefaultValue any           `json:"defaultValue,omitempty"`
	Options      []string      `json:"options,omitempty"`
	Validation   Rules         `json:"validation,omitempty"`
	Derived      *DerivedField `json:"derived,omitempty"`
}

// Required reports whether the field's rules mark it mandatory. Fields without
// an attached rule set are optional.
func (f FormField) Required() bool {
	if f.Validation == nil {
		return false
	}
	return f.Validation.IsRequired()
}

// Clone returns a deep copy of the field so schema snapshots do not alias the
// builder's working list.
func (f FormField) Clone() FormField {
	out := f
	if f.Options != nil {
		out.Options = append([]string(nil), f.Options...)
	}
	if list, ok := f.DefaultValue.([]string); ok {
		out.DefaultValue = append([]string(nil), list...)
	}
	if f.Validation != nil {
		out.Validation = f.Validation.clone()
	}
	if f.Derived != nil {
		derived := DerivedField{
			Parents: append([]string(nil), f.Derived.Parents...),
			Formula: f.Derived.Formula,
		}
		out.Derived = &derived
	}
	return out
}

// UnmarshalJSON decodes a field, selecting the validation rule variant from
// the declared type and normalising list default values to []string.
func (f *FormField) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID           string          `json:"id"`
		Type         FieldType       `json:"type"`
		Label        string          `json:"label"`
		DefaultValue json.RawMessage `json:"defaultValue"`
		Options      []string        `json:"options"`
		Validation   json.RawMessage `json:"validation"`
		Derived      *DerivedField   `json:"derived"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("model: decode field: %w", err)
	}

	f.ID = raw.ID
	f.Type = raw.Type
	f.Label = raw.Label
	f.Options = raw.Options
	f.Derived = raw.Derived

	defaultValue, err := decodeDefaultValue(raw.DefaultValue)
	if err != nil {
		return fmt.Errorf("model: field %q: %w", raw.ID, err)
	}
	f.DefaultValue = defaultValue

	rules, err := decodeRules(raw.Type, raw.Validation)
	if err != nil {
		return fmt.Errorf("model: field %q: %w", raw.ID, err)
	}
	f.Validation = rules
	return nil
}

func decodeDefaultValue(raw json.RawMessage) (any, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	return nil, fmt.Errorf("default value must be a string or a string list")
}

// FormSchema is a named, saved snapshot of an ordered field list. Once stored
// it never changes except through an explicit replace-by-id.
type FormSchema struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	CreatedAt time.Time   `json:"createdAt"`
	Fields    []FormField `json:"fields"`
}

// Clone returns a deep copy of the schema.
func (s FormSchema) Clone() FormSchema {
	out := s
	out.Fields = CloneFields(s.Fields)
	return out
}

// Field returns the field with the given id, if present.
func (s FormSchema) Field(id string) (FormField, bool) {
	for _, field := range s.Fields {
		if field.ID == id {
			return field, true
		}
	}
	return FormField{}, false
}

// CloneFields deep-copies an ordered field list.
func CloneFields(fields []FormField) []FormField {
	if fields == nil {
		return nil
	}
	out := make([]FormField, len(fields))
	for i, field := range fields {
		out[i] = field.Clone()
	}
	return out
}
