// Package template defines the engine contract HTML renderers depend on, so a
// renderer never touches a concrete template library directly.
package template

import (
	"io"
)

// TemplateRenderer is the seam between renderers and the template engine.
// Render dispatches on its argument: inline template content is rendered
// directly, anything else is treated as a template name.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
