// Package render defines the renderer contract shared by the HTML and
// terminal preview surfaces, plus a registry for looking renderers up by
// name.
package render

import (
	"context"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Renderer converts a saved schema into a byte representation: an HTML page,
// a filled JSON payload from an interactive session, and so on.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, schema model.FormSchema, options RenderOptions) ([]byte, error)
}

// RenderOptions carries per-request state: current values keyed by field id
// and the messages to surface inline.
type RenderOptions struct {
	Values map[string]any
	Errors map[string]string
}
