// Package tui fills a saved schema interactively in the terminal, prompting
// field by field and re-asking until each value passes validation.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/preview"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	maxAttempts  int
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = newSurveyDriver()
	}

	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatPrettyText {
		return "text/plain"
	}
	return "application/json"
}

// Render prompts for every non-derived field in display order, seeding
// defaults from the schema plus any values in options. Derived results are
// printed once their parents are collected.
func (r *Renderer) Render(ctx context.Context, schema model.FormSchema, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	session := preview.NewSession(schema)
	for id, value := range options.Values {
		session.SetValue(id, value)
	}

	for _, field := range schema.Fields {
		if field.Derived != nil {
			continue
		}
		if err := r.promptField(ctx, field, session); err != nil {
			return nil, err
		}
	}

	for _, field := range schema.Fields {
		if field.Derived == nil {
			continue
		}
		msg := fmt.Sprintf("%s: %s", field.Label, stringValue(session.Value(field.ID)))
		if err := r.driver.Info(ctx, msg); err != nil {
			return nil, err
		}
	}

	return r.serialize(schema, session.Values())
}

func (r *Renderer) promptField(ctx context.Context, field model.FormField, session *preview.Session) error {
	for attempt := 0; ; attempt++ {
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return fmt.Errorf("tui: field %q: %s", field.Label, session.Error(field.ID))
		}

		value, err := r.askOnce(ctx, field, session.Value(field.ID))
		if err != nil {
			return err
		}

		session.SetValue(field.ID, value)
		message := session.Error(field.ID)
		if message == "" {
			return nil
		}
		if err := r.driver.Info(ctx, message); err != nil {
			return err
		}
	}
}

func (r *Renderer) askOnce(ctx context.Context, field model.FormField, current any) (any, error) {
	message := promptMessage(field)
	help := preview.RuleCaption(field)

	if rules, ok := field.Validation.(model.TextRules); ok && rules.Password {
		return r.driver.Password(ctx, InputConfig{
			Message: message,
			Help:    help,
		})
	}

	switch field.Type {
	case model.FieldTypeTextarea:
		return r.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Default: stringValue(current),
			Help:    help,
		})
	case model.FieldTypeSelect, model.FieldTypeRadio:
		index, err := r.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      field.Options,
			DefaultIndex: indexOf(field.Options, stringValue(current)),
			Help:         help,
		})
		if err != nil {
			return nil, err
		}
		if index < 0 || index >= len(field.Options) {
			return "", nil
		}
		return field.Options[index], nil
	case model.FieldTypeCheckbox:
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  message,
			Options:  field.Options,
			Defaults: indicesOf(field.Options, listValue(current)),
			Help:     help,
		})
		if err != nil {
			return nil, err
		}
		selected := make([]string, 0, len(indices))
		for _, idx := range indices {
			if idx >= 0 && idx < len(field.Options) {
				selected = append(selected, field.Options[idx])
			}
		}
		return selected, nil
	default:
		return r.driver.Input(ctx, InputConfig{
			Message: message,
			Default: stringValue(current),
			Help:    help,
		})
	}
}

func (r *Renderer) serialize(schema model.FormSchema, values map[string]any) ([]byte, error) {
	if r.outputFormat == OutputFormatPrettyText {
		var builder strings.Builder
		for _, field := range schema.Fields {
			builder.WriteString(field.Label)
			builder.WriteString(": ")
			value := values[field.ID]
			if list, ok := value.([]string); ok {
				builder.WriteString(strings.Join(list, ", "))
			} else {
				builder.WriteString(stringValue(value))
			}
			builder.WriteByte('\n')
		}
		return []byte(builder.String()), nil
	}

	out, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("tui: serialize values: %w", err)
	}
	return out, nil
}

func promptMessage(field model.FormField) string {
	if field.Required() {
		return field.Label + " *"
	}
	return field.Label
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

func listValue(value any) []string {
	if list, ok := value.([]string); ok {
		return list
	}
	return nil
}
