// Package formbuilder is the top-level entry point: type aliases for the
// common model types plus quick-start helpers that wire the builder,
// validation, storage, and renderers together.
package formbuilder

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/html"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/goliatone/go-formbuilder/pkg/storage"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// FormField is one field of a form under construction or saved.
type FormField = model.FormField

// FormSchema is a saved form with identity, name, and creation time.
type FormSchema = model.FormSchema

// FieldType enumerates the supported field kinds.
type FieldType = model.FieldType

// RenderOptions carries per-request values and messages into a renderer.
type RenderOptions = render.RenderOptions

// NewBuilder creates an editing session for composing a form field by field.
func NewBuilder(options ...builder.Option) *builder.Session {
	return builder.New(options...)
}

// NewGateway wraps a key-value backend with the schema persistence gateway.
func NewGateway(kv storage.KV, options ...storage.GatewayOption) *storage.Gateway {
	return storage.NewGateway(kv, options...)
}

// SaveForm validates the session's fields and persists them as a named form.
// It is the canonical save path: schema-level validation runs before the
// gateway sees the fields, so an invalid form never reaches storage.
func SaveForm(gateway *storage.Gateway, name string, session *builder.Session) (model.FormSchema, error) {
	if gateway == nil {
		return model.FormSchema{}, fmt.Errorf("formbuilder: gateway is required")
	}
	if session == nil {
		return model.FormSchema{}, fmt.Errorf("formbuilder: session is required")
	}

	fields := session.Fields()
	if err := validation.ValidateForSave(fields); err != nil {
		return model.FormSchema{}, err
	}
	return gateway.AddSchema(name, fields)
}

// RenderHTML renders a schema with the built-in HTML templates.
func RenderHTML(ctx context.Context, schema model.FormSchema, options ...html.Option) ([]byte, error) {
	renderer, err := html.New(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, schema, render.RenderOptions{})
}

// FillForm runs an interactive terminal session over the schema and returns
// the collected values serialized per the renderer's output format.
func FillForm(ctx context.Context, schema model.FormSchema, options ...tui.Option) ([]byte, error) {
	renderer, err := tui.New(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, schema, render.RenderOptions{})
}

// DefaultRegistry returns a registry with the built-in renderers registered
// under their default names.
func DefaultRegistry() (*render.Registry, error) {
	registry := render.NewRegistry()

	htmlRenderer, err := html.New()
	if err != nil {
		return nil, err
	}
	if err := registry.Register(htmlRenderer); err != nil {
		return nil, err
	}

	tuiRenderer, err := tui.New()
	if err != nil {
		return nil, err
	}
	if err := registry.Register(tuiRenderer); err != nil {
		return nil, err
	}

	return registry, nil
}
