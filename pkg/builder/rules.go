package builder

import "github.com/goliatone/go-formbuilder/pkg/model"

// Rule setters merge one rule into the field's rule set, preserving the
// others. Each setter is a no-op when the id is unknown or the rule does not
// apply to the field's type, mirroring the type-dependent editor surface:
// length/email/password rules exist only on text-like fields, numeric bounds
// only on number fields.

// SetRequired toggles the required flag; it applies to every field type.
func (s *Session) SetRequired(id string, required bool) []model.FormField {
	return s.update(id, func(field *model.FormField) {
		if field.Validation == nil {
			field.Validation = model.DefaultRules(field.Type)
		}
		switch rules := field.Validation.(type) {
		case model.TextRules:
			rules.Required = required
			field.Validation = rules
		case model.NumberRules:
			rules.Required = required
			field.Validation = rules
		case model.ChoiceRules:
			rules.Required = required
			field.Validation = rules
		}
	})
}

// SetMinLength sets or clears the minimum character count of a text-like
// field. Pass nil to clear.
func (s *Session) SetMinLength(id string, min *int) []model.FormField {
	return s.update(id, func(field *model.FormField) {
		if rules, ok := field.Validation.(model.TextRules); ok {
			rules.MinLength = copyInt(min)
			field.Validation = rules
		}
	})
}

// SetMaxLength sets or clears the maximum character count of a text-like
// field.
func (s *Session) SetMaxLength(id string, max *int) []model.FormField {
	return s.update(id, func(field *model.FormField) {
		if rules, ok := field.Validation.(model.TextRules); ok {
			rules.MaxLength = copyInt(max)
			field.Validation = rules
		}
	})
}

// SetEmail toggles the email-shape rule of a text-like field.
func (s *Session) SetEmail(id string, email bool) []model.FormField {
	return s.update(id, func(field *model.FormField) {
		if rules, ok := field.Validation.(model.TextRules); ok {
			rules.Email = email
			field.Validation = rules
		}
	})
}

// SetPassword toggles the password-strength rule of a text-like field.
func (s *Session) SetPassword(id string, password bool) []model.FormField {
	return s.update(id, func(field *model.FormField) {
		if rules, ok := field.Validation.(model.TextRules); ok {
			rules.Password = password
			field.Validation = rules
		}
	})
}

// SetMinValue sets or clears the numeric lower bound of a number field.
func (s *Session) SetMinValue(id string, min *float64) []model.FormField {
	return s.update(id, func(field *model.FormField) {
		if rules, ok := field.Validation.(model.NumberRules); ok {
			rules.MinValue = copyFloat(min)
			field.Validation = rules
		}
	})
}

// SetMaxValue sets or clears the numeric upper bound of a number field.
func (s *Session) SetMaxValue(id string, max *float64) []model.FormField {
	return s.update(id, func(field *model.FormField) {
		if rules, ok := field.Validation.(model.NumberRules); ok {
			rules.MaxValue = copyFloat(max)
			field.Validation = rules
		}
	})
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
