package model

import (
	"encoding/json"
	"fmt"
)

// Rules is the validation rule set attached to a field. The concrete variant
// is keyed by the field's type: text-like fields carry TextRules, number
// fields NumberRules, and choice/date fields ChoiceRules. Keeping the
// variants separate removes the ambiguity of one min/max slot doing double
// duty as both a character count and a numeric bound.
type Rules interface {
	// IsRequired reports whether an empty value should be rejected.
	IsRequired() bool

	clone() Rules
	isRules()
}

// TextRules constrains text and textarea fields.
type TextRules struct {
	Required  bool `json:"required,omitempty"`
	MinLength *int `json:"minLength,omitempty"`
	MaxLength *int `json:"maxLength,omitempty"`
	Email     bool `json:"email,omitempty"`
	Password  bool `json:"password,omitempty"`
}

func (r TextRules) IsRequired() bool { return r.Required }
func (r TextRules) isRules()         {}

func (r TextRules) clone() Rules {
	out := r
	if r.MinLength != nil {
		v := *r.MinLength
		out.MinLength = &v
	}
	if r.MaxLength != nil {
		v := *r.MaxLength
		out.MaxLength = &v
	}
	return out
}

// NumberRules constrains number fields with numeric bounds.
type NumberRules struct {
	Required bool     `json:"required,omitempty"`
	MinValue *float64 `json:"minValue,omitempty"`
	MaxValue *float64 `json:"maxValue,omitempty"`
}

func (r NumberRules) IsRequired() bool { return r.Required }
func (r NumberRules) isRules()         {}

func (r NumberRules) clone() Rules {
	out := r
	if r.MinValue != nil {
		v := *r.MinValue
		out.MinValue = &v
	}
	if r.MaxValue != nil {
		v := *r.MaxValue
		out.MaxValue = &v
	}
	return out
}

// ChoiceRules constrains select, radio, checkbox, and date fields, which only
// support a required flag.
type ChoiceRules struct {
	Required bool `json:"required,omitempty"`
}

func (r ChoiceRules) IsRequired() bool { return r.Required }
func (r ChoiceRules) isRules()         {}

func (r ChoiceRules) clone() Rules { return r }

// DefaultRules returns the empty rule variant matching a field type.
func DefaultRules(t FieldType) Rules {
	switch {
	case t.TextLike():
		return TextRules{}
	case t == FieldTypeNumber:
		return NumberRules{}
	default:
		return ChoiceRules{}
	}
}

func decodeRules(t FieldType, raw json.RawMessage) (Rules, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return DefaultRules(t), nil
	}
	switch {
	case t.TextLike():
		var rules TextRules
		if err := json.Unmarshal(raw, &rules); err != nil {
			return nil, fmt.Errorf("decode text rules: %w", err)
		}
		return rules, nil
	case t == FieldTypeNumber:
		var rules NumberRules
		if err := json.Unmarshal(raw, &rules); err != nil {
			return nil, fmt.Errorf("decode number rules: %w", err)
		}
		return rules, nil
	default:
		var rules ChoiceRules
		if err := json.Unmarshal(raw, &rules); err != nil {
			return nil, fmt.Errorf("decode choice rules: %w", err)
		}
		return rules, nil
	}
}
