package preview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// RuleCaption renders the hint line shown under a field's label, e.g.
// "Required • Min length: 3 • Email format". Returns "" when the field has no
// rules worth mentioning.
func RuleCaption(field model.FormField) string {
	var parts []string

	if field.Required() {
		parts = append(parts, "Required")
	}

	switch rules := field.Validation.(type) {
	case model.NumberRules:
		if rules.MinValue != nil {
			parts = append(parts, "Min: "+formatBound(*rules.MinValue))
		}
		if rules.MaxValue != nil {
			parts = append(parts, "Max: "+formatBound(*rules.MaxValue))
		}
	case model.TextRules:
		if rules.MinLength != nil {
			parts = append(parts, fmt.Sprintf("Min length: %d", *rules.MinLength))
		}
		if rules.MaxLength != nil {
			parts = append(parts, fmt.Sprintf("Max length: %d", *rules.MaxLength))
		}
		if rules.Email {
			parts = append(parts, "Email format")
		}
		if rules.Password {
			parts = append(parts, "Password with number")
		}
	}

	if field.Derived != nil {
		parts = append(parts, "Computed")
	}

	return strings.Join(parts, " • ")
}

func formatBound(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
