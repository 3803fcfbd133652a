package model

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormFieldUnmarshalSelectsRuleVariant(t *testing.T) {
	raw := []byte(`{
  "id": "f1",
  "type": "number",
  "label": "Age",
  "validation": {"required": true, "minValue": 5, "maxValue": 10}
}`)

	var field FormField
	if err := json.Unmarshal(raw, &field); err != nil {
		t.Fatalf("unmarshal field: %v", err)
	}

	rules, ok := field.Validation.(NumberRules)
	if !ok {
		t.Fatalf("expected NumberRules, got %T", field.Validation)
	}
	want := NumberRules{Required: true, MinValue: Float64Ptr(5), MaxValue: Float64Ptr(10)}
	if diff := cmp.Diff(want, rules); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}
}

func TestFormFieldUnmarshalMissingValidation(t *testing.T) {
	raw := []byte(`{"id": "f2", "type": "text", "label": "Name"}`)

	var field FormField
	if err := json.Unmarshal(raw, &field); err != nil {
		t.Fatalf("unmarshal field: %v", err)
	}
	if _, ok := field.Validation.(TextRules); !ok {
		t.Fatalf("expected empty TextRules, got %T", field.Validation)
	}
	if field.Required() {
		t.Fatalf("field without rules must be optional")
	}
}

func TestFormFieldUnmarshalCheckboxDefaults(t *testing.T) {
	raw := []byte(`{
  "id": "f3",
  "type": "checkbox",
  "label": "Toppings",
  "defaultValue": ["Cheese", "Olives"],
  "options": ["Cheese", "Olives", "Ham"]
}`)

	var field FormField
	if err := json.Unmarshal(raw, &field); err != nil {
		t.Fatalf("unmarshal field: %v", err)
	}
	list, ok := field.DefaultValue.([]string)
	if !ok {
		t.Fatalf("expected []string default, got %T", field.DefaultValue)
	}
	if diff := cmp.Diff([]string{"Cheese", "Olives"}, list); diff != "" {
		t.Fatalf("default mismatch (-want +got):\n%s", diff)
	}
}

func TestCloneFieldsDoesNotAlias(t *testing.T) {
	fields := []FormField{
		{
			ID:         "f1",
			Type:       FieldTypeSelect,
			Label:      "Color",
			Options:    []string{"Red", "Blue"},
			Validation: ChoiceRules{Required: true},
		},
	}

	cloned := CloneFields(fields)
	cloned[0].Options[0] = "Green"
	cloned[0].Label = "Shade"

	if fields[0].Options[0] != "Red" {
		t.Fatalf("clone aliases the options slice")
	}
	if fields[0].Label != "Color" {
		t.Fatalf("clone aliases the field struct")
	}
}

func TestSchemaRoundTrip(t *testing.T) {
	schema := FormSchema{
		ID:   "s1",
		Name: "Contact",
		Fields: []FormField{
			{
				ID:    "f1",
				Type:  FieldTypeText,
				Label: "Name",
				Validation: TextRules{
					Required:  true,
					MinLength: IntPtr(2),
				},
			},
		},
	}

	data, err := json.Marshal(schema)
	if err != nil {
		t.Fatalf("marshal schema: %v", err)
	}

	var decoded FormSchema
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal schema: %v", err)
	}
	if diff := cmp.Diff(schema, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
