package validation

import (
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

func textField(rules model.TextRules) model.FormField {
	return model.FormField{ID: "f1", Type: model.FieldTypeText, Label: "Name", Validation: rules}
}

func numberField(rules model.NumberRules) model.FormField {
	return model.FormField{ID: "f1", Type: model.FieldTypeNumber, Label: "Age", Validation: rules}
}

func TestValidateValueRequired(t *testing.T) {
	t.Parallel()

	required := textField(model.TextRules{Required: true})
	if got := ValidateValue(required, ""); got != "This field is required" {
		t.Fatalf("empty required value: got %q", got)
	}

	multi := model.FormField{
		ID:         "f1",
		Type:       model.FieldTypeCheckbox,
		Label:      "Toppings",
		Options:    []string{"Cheese"},
		Validation: model.ChoiceRules{Required: true},
	}
	if got := ValidateValue(multi, []string{}); got != "This field is required" {
		t.Fatalf("empty required list: got %q", got)
	}
	if got := ValidateValue(multi, []string{"Cheese"}); got != "" {
		t.Fatalf("satisfied checkbox: got %q", got)
	}
}

func TestValidateValueOptionalEmptyAlwaysPasses(t *testing.T) {
	t.Parallel()

	fields := []model.FormField{
		textField(model.TextRules{MinLength: model.IntPtr(3), Email: true, Password: true}),
		numberField(model.NumberRules{MinValue: model.Float64Ptr(5)}),
	}
	for _, field := range fields {
		if got := ValidateValue(field, ""); got != "" {
			t.Fatalf("optional empty value for %s field: got %q", field.Type, got)
		}
	}
}

func TestValidateValueNumberBounds(t *testing.T) {
	t.Parallel()

	field := numberField(model.NumberRules{
		MinValue: model.Float64Ptr(5),
		MaxValue: model.Float64Ptr(10),
	})

	cases := []struct {
		value string
		want  string
	}{
		{value: "3", want: "Minimum value is 5"},
		{value: "7", want: ""},
		{value: "12", want: "Maximum value is 10"},
		{value: "abc", want: "Please enter a valid number"},
	}
	for _, tc := range cases {
		if got := ValidateValue(field, tc.value); got != tc.want {
			t.Fatalf("value %q: got %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestValidateValueTextLength(t *testing.T) {
	t.Parallel()

	field := textField(model.TextRules{MinLength: model.IntPtr(3)})
	if got := ValidateValue(field, "ab"); got != "Minimum length is 3" {
		t.Fatalf("short value: got %q", got)
	}
	if got := ValidateValue(field, "abc"); got != "" {
		t.Fatalf("exact length: got %q", got)
	}

	capped := textField(model.TextRules{MaxLength: model.IntPtr(4)})
	if got := ValidateValue(capped, "abcde"); got != "Maximum length is 4" {
		t.Fatalf("long value: got %q", got)
	}
}

func TestValidateValueEmail(t *testing.T) {
	t.Parallel()

	field := textField(model.TextRules{Email: true})
	if got := ValidateValue(field, "a@b.com"); got != "" {
		t.Fatalf("valid email: got %q", got)
	}
	if got := ValidateValue(field, "not-an-email"); got != "Invalid email format" {
		t.Fatalf("invalid email: got %q", got)
	}
}

func TestValidateValuePassword(t *testing.T) {
	t.Parallel()

	field := textField(model.TextRules{Password: true})
	want := "Password must be at least 8 characters and contain a number"

	if got := ValidateValue(field, "abc12345"); got != "" {
		t.Fatalf("valid password: got %q", got)
	}
	if got := ValidateValue(field, "abcdefgh"); got != want {
		t.Fatalf("password without digit: got %q", got)
	}
	if got := ValidateValue(field, "ab1"); got != want {
		t.Fatalf("short password: got %q", got)
	}
}

func TestIsFormValid(t *testing.T) {
	t.Parallel()

	fields := []model.FormField{
		textField(model.TextRules{Required: true}),
		{ID: "f2", Type: model.FieldTypeNumber, Label: "Age", Validation: model.NumberRules{MaxValue: model.Float64Ptr(120)}},
	}

	if IsFormValid(fields, map[string]any{"f2": "30"}) {
		t.Fatalf("missing required value should invalidate the form")
	}
	if !IsFormValid(fields, map[string]any{"f1": "Ada", "f2": "30"}) {
		t.Fatalf("satisfied form reported invalid")
	}
	if IsFormValid(fields, map[string]any{"f1": "Ada", "f2": "200"}) {
		t.Fatalf("out-of-range number should invalidate the form")
	}
}
