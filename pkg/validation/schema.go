package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/formula"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// ErrNoFields is returned by ValidateForSave when the field list is empty.
var ErrNoFields = errors.New("Add at least one field before saving")

// ValidateForSave checks a whole field list before it is persisted. Fields and
// checks run in a fixed order and the first failure wins; nil means the list
// is ready to be saved. This is distinct from ValidateValue, which judges
// user input against an already-saved schema.
func ValidateForSave(fields []model.FormField) error {
	if len(fields) == 0 {
		return ErrNoFields
	}
	ids := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		ids[field.ID] = struct{}{}
	}
	for i, field := range fields {
		if err := validateField(i, field, ids); err != nil {
			return err
		}
	}
	return nil
}

func validateField(index int, field model.FormField, ids map[string]struct{}) error {
	if strings.TrimSpace(field.Label) == "" {
		return fmt.Errorf("field %d: label must not be empty", index+1)
	}

	if field.Type.Choice() {
		if len(field.Options) == 0 {
			return fmt.Errorf("field %q requires at least one option", field.Label)
		}
		for _, option := range field.Options {
			if strings.TrimSpace(option) == "" {
				return fmt.Errorf("field %q has a blank option", field.Label)
			}
		}
	}

	switch rules := field.Validation.(type) {
	case model.NumberRules:
		if rules.MinValue != nil && rules.MaxValue != nil && *rules.MinValue > *rules.MaxValue {
			return fmt.Errorf("field %q: minimum value exceeds maximum value", field.Label)
		}
	case model.TextRules:
		if rules.MinLength != nil && rules.MaxLength != nil && *rules.MinLength > *rules.MaxLength {
			return fmt.Errorf("field %q: minimum length exceeds maximum length", field.Label)
		}
	}

	if field.Derived != nil {
		if err := validateDerived(field, ids); err != nil {
			return err
		}
	}
	return nil
}

func validateDerived(field model.FormField, ids map[string]struct{}) error {
	expr, err := formula.Parse(field.Derived.Formula)
	if err != nil {
		return fmt.Errorf("field %q: derived formula: %v", field.Label, err)
	}
	for _, ref := range expr.Identifiers() {
		if ref == field.ID {
			return fmt.Errorf("field %q: derived formula references itself", field.Label)
		}
		if _, ok := ids[ref]; !ok {
			return fmt.Errorf("field %q: derived formula references unknown field %q", field.Label, ref)
		}
	}
	return nil
}
