package html

import (
	"fmt"
	"html"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/preview"
)

var (
	sanitizeOnce   sync.Once
	sanitizePolicy *bluemonday.Policy
)

// sanitizeText strips any markup from user-authored labels and options before
// the value reaches the escaper.
func sanitizeText(s string) string {
	sanitizeOnce.Do(func() {
		sanitizePolicy = bluemonday.StrictPolicy()
	})
	return sanitizePolicy.Sanitize(s)
}

func escape(s string) string {
	return html.EscapeString(sanitizeText(s))
}

// buildFieldMarkup emits the wrapper, label, control, hint, and error line
// for a single field.
func buildFieldMarkup(field model.FormField, value any, errMsg string) string {
	var builder strings.Builder
	builder.Grow(512)

	builder.WriteString(`<div class="form-field" data-field-type="`)
	builder.WriteString(html.EscapeString(string(field.Type)))
	builder.WriteString(`">` + "\n")

	builder.WriteString(`    <label for="fb-`)
	builder.WriteString(html.EscapeString(field.ID))
	builder.WriteString(`" class="field-label">`)
	builder.WriteString(escape(field.Label))
	if field.Required() {
		builder.WriteString(` *`)
	}
	builder.WriteString("</label>\n")

	// control builders indent their own inner lines, so only the first line
	// needs a prefix; textarea bodies must pass through untouched
	builder.WriteString("    ")
	builder.WriteString(buildControl(field, value))
	builder.WriteByte('\n')

	if caption := preview.RuleCaption(field); caption != "" {
		builder.WriteString(`    <small class="field-hint">`)
		builder.WriteString(html.EscapeString(caption))
		builder.WriteString("</small>\n")
	}

	if errMsg != "" {
		builder.WriteString(`    <small class="field-error">`)
		builder.WriteString(html.EscapeString(errMsg))
		builder.WriteString("</small>\n")
	}

	builder.WriteString("</div>\n")
	return builder.String()
}

func buildControl(field model.FormField, value any) string {
	switch field.Type {
	case model.FieldTypeTextarea:
		return buildTextarea(field, stringValue(value))
	case model.FieldTypeSelect:
		return buildSelect(field, stringValue(value))
	case model.FieldTypeRadio:
		return buildRadioGroup(field, stringValue(value))
	case model.FieldTypeCheckbox:
		return buildCheckboxGroup(field, listValue(value))
	default:
		return buildInput(field, stringValue(value))
	}
}

func buildInput(field model.FormField, value string) string {
	var builder strings.Builder

	builder.WriteString(`<input type="`)
	builder.WriteString(inputType(field))
	builder.WriteString(`" id="fb-`)
	builder.WriteString(html.EscapeString(field.ID))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(field.ID))
	builder.WriteString(`" class="field-control"`)

	if value != "" {
		builder.WriteString(` value="`)
		builder.WriteString(html.EscapeString(value))
		builder.WriteString(`"`)
	}
	if field.Required() {
		builder.WriteString(` required`)
	}
	if rules, ok := field.Validation.(model.NumberRules); ok {
		if rules.MinValue != nil {
			builder.WriteString(fmt.Sprintf(` min="%s"`, formatNumber(*rules.MinValue)))
		}
		if rules.MaxValue != nil {
			builder.WriteString(fmt.Sprintf(` max="%s"`, formatNumber(*rules.MaxValue)))
		}
	}
	if rules, ok := field.Validation.(model.TextRules); ok {
		if rules.MinLength != nil {
			builder.WriteString(fmt.Sprintf(` minlength="%d"`, *rules.MinLength))
		}
		if rules.MaxLength != nil {
			builder.WriteString(fmt.Sprintf(` maxlength="%d"`, *rules.MaxLength))
		}
	}
	if field.Derived != nil {
		builder.WriteString(` readonly data-derived="true"`)
	}
	builder.WriteString(`>`)
	return builder.String()
}

func inputType(field model.FormField) string {
	if field.Derived != nil {
		return "text"
	}
	switch field.Type {
	case model.FieldTypeNumber:
		return "number"
	case model.FieldTypeDate:
		return "date"
	}
	if rules, ok := field.Validation.(model.TextRules); ok {
		if rules.Password {
			return "password"
		}
		if rules.Email {
			return "email"
		}
	}
	return "text"
}

func buildTextarea(field model.FormField, value string) string {
	var builder strings.Builder
	builder.WriteString(`<textarea id="fb-`)
	builder.WriteString(html.EscapeString(field.ID))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(field.ID))
	builder.WriteString(`" class="field-control"`)
	if field.Required() {
		builder.WriteString(` required`)
	}
	builder.WriteString(`>`)
	builder.WriteString(html.EscapeString(value))
	builder.WriteString(`</textarea>`)
	return builder.String()
}

func buildSelect(field model.FormField, value string) string {
	var builder strings.Builder
	builder.WriteString(`<select id="fb-`)
	builder.WriteString(html.EscapeString(field.ID))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(field.ID))
	builder.WriteString(`" class="field-control"`)
	if field.Required() {
		builder.WriteString(` required`)
	}
	builder.WriteString(">\n")

	builder.WriteString(`    <option value="">Select...</option>` + "\n")
	for _, option := range field.Options {
		builder.WriteString(`    <option value="`)
		builder.WriteString(escape(option))
		builder.WriteString(`"`)
		if option == value {
			builder.WriteString(` selected`)
		}
		builder.WriteString(`>`)
		builder.WriteString(escape(option))
		builder.WriteString("</option>\n")
	}
	builder.WriteString(`</select>`)
	return builder.String()
}

func buildRadioGroup(field model.FormField, value string) string {
	var builder strings.Builder
	builder.WriteString(`<div class="field-options" role="radiogroup">` + "\n")
	for i, option := range field.Options {
		id := fmt.Sprintf("fb-%s-%d", html.EscapeString(field.ID), i)
		builder.WriteString(`    <label class="field-option"><input type="radio" id="`)
		builder.WriteString(id)
		builder.WriteString(`" name="`)
		builder.WriteString(html.EscapeString(field.ID))
		builder.WriteString(`" value="`)
		builder.WriteString(escape(option))
		builder.WriteString(`"`)
		if option == value {
			builder.WriteString(` checked`)
		}
		builder.WriteString(`> `)
		builder.WriteString(escape(option))
		builder.WriteString("</label>\n")
	}
	builder.WriteString(`</div>`)
	return builder.String()
}

func buildCheckboxGroup(field model.FormField, selected []string) string {
	var builder strings.Builder
	builder.WriteString(`<div class="field-options">` + "\n")
	for i, option := range field.Options {
		id := fmt.Sprintf("fb-%s-%d", html.EscapeString(field.ID), i)
		builder.WriteString(`    <label class="field-option"><input type="checkbox" id="`)
		builder.WriteString(id)
		builder.WriteString(`" name="`)
		builder.WriteString(html.EscapeString(field.ID))
		builder.WriteString(`" value="`)
		builder.WriteString(escape(option))
		builder.WriteString(`"`)
		if slices.Contains(selected, option) {
			builder.WriteString(` checked`)
		}
		builder.WriteString(`> `)
		builder.WriteString(escape(option))
		builder.WriteString("</label>\n")
	}
	builder.WriteString(`</div>`)
	return builder.String()
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return formatNumber(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func listValue(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, stringValue(item))
		}
		return out
	default:
		return nil
	}
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
