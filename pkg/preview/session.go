// Package preview turns a saved schema into a live, validated fill session:
// values seeded from defaults, per-field errors recomputed on every change,
// and a single submit gate over the whole form.
package preview

import (
	"strconv"

	"github.com/goliatone/go-formbuilder/pkg/formula"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// Session holds the fill state for one schema. Like the builder session it is
// owned by a single flow and not safe for concurrent use.
type Session struct {
	schema model.FormSchema
	values map[string]any
	errors map[string]string
}

// NewSession seeds a session from the schema's default values. Checkbox
// fields start from their list default (or an empty list); every other type
// starts from its string default. Derived fields are computed immediately.
func NewSession(schema model.FormSchema) *Session {
	s := &Session{
		schema: schema.Clone(),
		values: make(map[string]any, len(schema.Fields)),
		errors: make(map[string]string),
	}
	for _, field := range s.schema.Fields {
		if field.Type.Multi() {
			if list, ok := field.DefaultValue.([]string); ok {
				s.values[field.ID] = append([]string(nil), list...)
			} else {
				s.values[field.ID] = []string{}
			}
			continue
		}
		if text, ok := field.DefaultValue.(string); ok {
			s.values[field.ID] = text
		} else {
			s.values[field.ID] = ""
		}
	}
	s.recomputeDerived()
	return s
}

// Schema returns the schema being previewed.
func (s *Session) Schema() model.FormSchema {
	return s.schema
}

// Values returns a copy of the current values keyed by field id.
func (s *Session) Values() map[string]any {
	out := make(map[string]any, len(s.values))
	for id, value := range s.values {
		if list, ok := value.([]string); ok {
			out[id] = append([]string(nil), list...)
			continue
		}
		out[id] = value
	}
	return out
}

// Value returns the current value for one field.
func (s *Session) Value(id string) any {
	return s.values[id]
}

// SetValue records a user edit, re-validates that field, and recomputes any
// derived fields. Unknown ids are ignored.
func (s *Session) SetValue(id string, value any) {
	field, ok := s.schema.Field(id)
	if !ok {
		return
	}
	s.values[id] = value
	s.setError(id, validation.ValidateValue(field, value))
	s.recomputeDerived()
}

// Error returns the current message for one field, or "".
func (s *Session) Error(id string) string {
	return s.errors[id]
}

// Errors returns a copy of all non-empty field messages.
func (s *Session) Errors() map[string]string {
	out := make(map[string]string, len(s.errors))
	for id, message := range s.errors {
		out[id] = message
	}
	return out
}

// Valid reports whether every field is satisfied by the current values. The
// preview's submit control is enabled exactly when this is true.
func (s *Session) Valid() bool {
	return validation.IsFormValid(s.schema.Fields, s.values)
}

// Submit re-validates every field, records the messages, and reports whether
// the submission succeeded.
func (s *Session) Submit() bool {
	ok := true
	for _, field := range s.schema.Fields {
		message := validation.ValidateValue(field, s.values[field.ID])
		s.setError(field.ID, message)
		if message != "" {
			ok = false
		}
	}
	return ok
}

func (s *Session) setError(id, message string) {
	if message == "" {
		delete(s.errors, id)
		return
	}
	s.errors[id] = message
}

// recomputeDerived walks the fields in display order so a derived field can
// feed a later one.
func (s *Session) recomputeDerived() {
	for _, field := range s.schema.Fields {
		if field.Derived == nil {
			continue
		}
		computed, err := formula.Eval(field.Derived.Formula, s.values)
		if err != nil {
			// a failed evaluation blanks the field so a stale result never
			// outlives its parents
			s.values[field.ID] = ""
			s.setError(field.ID, validation.ValidateValue(field, ""))
			continue
		}
		value := strconv.FormatFloat(computed, 'f', -1, 64)
		s.values[field.ID] = value
		s.setError(field.ID, validation.ValidateValue(field, value))
	}
}
