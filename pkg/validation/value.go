// Package validation decides whether candidate values satisfy a field's rules
// and whether a whole field list is fit to be persisted. Both checks are pure
// and total: they never panic and report at most one message at a time.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

const (
	msgRequired      = "This field is required"
	msgInvalidNumber = "Please enter a valid number"
	msgInvalidEmail  = "Invalid email format"
	msgWeakPassword  = "Password must be at least 8 characters and contain a number"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateValue checks one candidate value against the field's rules and
// returns a user-facing message, or "" when the value is acceptable. The
// required check runs first; beyond it, empty optional values always pass, so
// an optional number field never reports "invalid number" for an empty input.
func ValidateValue(field model.FormField, value any) string {
	if field.Required() && isEmpty(value) {
		return msgRequired
	}
	if isEmpty(value) {
		return ""
	}

	if field.Type == model.FieldTypeNumber {
		return validateNumber(field, value)
	}
	if rules, ok := field.Validation.(model.TextRules); ok {
		return validateText(rules, value)
	}
	return ""
}

func validateNumber(field model.FormField, value any) string {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(asString(value)), 64)
	if err != nil {
		return msgInvalidNumber
	}
	rules, ok := field.Validation.(model.NumberRules)
	if !ok {
		return ""
	}
	if rules.MinValue != nil && parsed < *rules.MinValue {
		return fmt.Sprintf("Minimum value is %s", formatNumber(*rules.MinValue))
	}
	if rules.MaxValue != nil && parsed > *rules.MaxValue {
		return fmt.Sprintf("Maximum value is %s", formatNumber(*rules.MaxValue))
	}
	return ""
}

func validateText(rules model.TextRules, value any) string {
	text := asString(value)
	length := utf8.RuneCountInString(text)

	if rules.MinLength != nil && length < *rules.MinLength {
		return fmt.Sprintf("Minimum length is %d", *rules.MinLength)
	}
	if rules.MaxLength != nil && length > *rules.MaxLength {
		return fmt.Sprintf("Maximum length is %d", *rules.MaxLength)
	}
	if rules.Email && !emailPattern.MatchString(text) {
		return msgInvalidEmail
	}
	if rules.Password && !validPassword(text) {
		return msgWeakPassword
	}
	return ""
}

func validPassword(text string) bool {
	if utf8.RuneCountInString(text) < 8 {
		return false
	}
	return strings.ContainsAny(text, "0123456789")
}

// IsFormValid reports whether every field is satisfied by the current values,
// gating the preview's submit control. Missing entries count as empty values.
func IsFormValid(fields []model.FormField, values map[string]any) bool {
	for _, field := range fields {
		if ValidateValue(field, values[field.ID]) != "" {
			return false
		}
	}
	return true
}

func isEmpty(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return typed == ""
	case []string:
		return len(typed) == 0
	case []any:
		return len(typed) == 0
	default:
		return false
	}
}

func asString(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case []byte:
		return string(typed)
	default:
		return fmt.Sprint(typed)
	}
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
