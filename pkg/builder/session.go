// Package builder maintains the ordered field list of an in-progress form.
// A Session owns its list exclusively: saved schemas are snapshots and never
// alias the working fields. Every operation is synchronous and total; unknown
// ids and out-of-range positions are no-ops.
package builder

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Direction names the two neighbour-swap moves.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Option configures a Session.
type Option func(*Session)

// WithIDFunc overrides the field id generator, mainly for tests.
func WithIDFunc(fn func() string) Option {
	return func(s *Session) {
		if fn != nil {
			s.idFunc = fn
		}
	}
}

// WithFields seeds the session with an existing field list, for example one
// imported from an OpenAPI operation. The list is copied.
func WithFields(fields []model.FormField) Option {
	return func(s *Session) {
		s.fields = model.CloneFields(fields)
	}
}

// Session is the explicit state container for one authoring run. It is not
// safe for concurrent use; the builder flow is single-threaded by design.
type Session struct {
	fields      []model.FormField
	idFunc      func() string
	subscribers []func([]model.FormField)
}

// New constructs an empty session.
func New(options ...Option) *Session {
	s := &Session{idFunc: uuid.NewString}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Fields returns a snapshot of the current list.
func (s *Session) Fields() []model.FormField {
	return model.CloneFields(s.fields)
}

// Subscribe registers a callback invoked with a fresh snapshot after every
// mutation, so a view layer can stay in sync without polling.
func (s *Session) Subscribe(fn func([]model.FormField)) {
	if fn != nil {
		s.subscribers = append(s.subscribers, fn)
	}
}

// Reset discards the in-progress list, e.g. after a successful save.
func (s *Session) Reset() {
	s.fields = nil
	s.notify()
}

// AddField appends a new field of the given type with a defaulted label,
// empty default value, and an empty rule set. Choice types start with two
// placeholder options. An unset or unknown type is a no-op.
func (s *Session) AddField(fieldType model.FieldType) []model.FormField {
	if !fieldType.Valid() {
		return s.Fields()
	}
	field := model.FormField{
		ID:           s.idFunc(),
		Type:         fieldType,
		Label:        string(fieldType) + " field",
		DefaultValue: "",
		Validation:   model.DefaultRules(fieldType),
	}
	if fieldType.Choice() {
		field.Options = []string{"Option 1", "Option 2"}
	}
	s.fields = append(s.fields, field)
	s.notify()
	return s.Fields()
}

// SetLabel replaces the display label of the field with the given id.
func (s *Session) SetLabel(id, label string) []model.FormField {
	return s.update(id, func(field *model.FormField) {
		field.Label = label
	})
}

// SetDefaultValue replaces the field's preview prefill. Checkbox fields take
// a []string, everything else a string; other shapes are stored as-is and
// caught by the save-time sanity check.
func (s *Session) SetDefaultValue(id string, value any) []model.FormField {
	return s.update(id, func(field *model.FormField) {
		field.DefaultValue = value
	})
}

// SetOptions replaces the whole option list of a choice field. Non-choice
// fields are left untouched.
func (s *Session) SetOptions(id string, options []string) []model.FormField {
	return s.update(id, func(field *model.FormField) {
		if !field.Type.Choice() {
			return
		}
		field.Options = append([]string(nil), options...)
	})
}

// AddOption appends a placeholder option named after the new list length.
func (s *Session) AddOption(id string) []model.FormField {
	return s.update(id, func(field *model.FormField) {
		if !field.Type.Choice() {
			return
		}
		field.Options = append(field.Options, fmt.Sprintf("Option %d", len(field.Options)+1))
	})
}

// RenameOption replaces the option at the given position.
func (s *Session) RenameOption(id string, index int, name string) []model.FormField {
	return s.update(id, func(field *model.FormField) {
		if !field.Type.Choice() || index < 0 || index >= len(field.Options) {
			return
		}
		field.Options[index] = name
	})
}

// RemoveOption deletes the option at the given position, shifting the rest
// down. Display order of the remaining options is preserved.
func (s *Session) RemoveOption(id string, index int) []model.FormField {
	return s.update(id, func(field *model.FormField) {
		if !field.Type.Choice() || index < 0 || index >= len(field.Options) {
			return
		}
		field.Options = append(field.Options[:index], field.Options[index+1:]...)
	})
}

// MoveField swaps the field with its immediate neighbour in the given
// direction. Moving the first field up or the last field down is a no-op, and
// repeating a boundary move stays a no-op.
func (s *Session) MoveField(id string, direction Direction) []model.FormField {
	index := s.indexOf(id)
	if index < 0 {
		return s.Fields()
	}
	switch direction {
	case DirectionUp:
		if index == 0 {
			return s.Fields()
		}
		s.fields[index-1], s.fields[index] = s.fields[index], s.fields[index-1]
	case DirectionDown:
		if index == len(s.fields)-1 {
			return s.Fields()
		}
		s.fields[index+1], s.fields[index] = s.fields[index], s.fields[index+1]
	default:
		return s.Fields()
	}
	s.notify()
	return s.Fields()
}

// DeleteField removes the field, preserving the order of the rest.
func (s *Session) DeleteField(id string) []model.FormField {
	index := s.indexOf(id)
	if index < 0 {
		return s.Fields()
	}
	s.fields = append(s.fields[:index], s.fields[index+1:]...)
	s.notify()
	return s.Fields()
}

// SetDerived marks the field as computed from the given parents and formula.
func (s *Session) SetDerived(id string, parents []string, formula string) []model.FormField {
	return s.update(id, func(field *model.FormField) {
		field.Derived = &model.DerivedField{
			Parents: append([]string(nil), parents...),
			Formula: formula,
		}
	})
}

// ClearDerived turns a derived field back into a directly entered one.
func (s *Session) ClearDerived(id string) []model.FormField {
	return s.update(id, func(field *model.FormField) {
		field.Derived = nil
	})
}

func (s *Session) update(id string, mutate func(*model.FormField)) []model.FormField {
	index := s.indexOf(id)
	if index < 0 {
		return s.Fields()
	}
	mutate(&s.fields[index])
	s.notify()
	return s.Fields()
}

func (s *Session) indexOf(id string) int {
	for i, field := range s.fields {
		if field.ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) notify() {
	if len(s.subscribers) == 0 {
		return
	}
	snapshot := model.CloneFields(s.fields)
	for _, fn := range s.subscribers {
		fn(snapshot)
	}
}
