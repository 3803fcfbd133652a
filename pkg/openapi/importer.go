// Package openapi seeds builder fields from an OpenAPI 3 document, so a form
// can start from an existing request body schema instead of an empty canvas.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/uuid"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Option configures the importer.
type Option func(*Importer)

// WithResolveReferences allows external $ref resolution while loading.
func WithResolveReferences(allow bool) Option {
	return func(i *Importer) {
		i.resolveRefs = allow
	}
}

// WithIDFunc overrides the id generator used for imported fields.
func WithIDFunc(fn func() string) Option {
	return func(i *Importer) {
		if fn != nil {
			i.idFunc = fn
		}
	}
}

// Importer converts OpenAPI request body schemas into form fields.
type Importer struct {
	resolveRefs bool
	idFunc      func() string
}

// New constructs an Importer.
func New(options ...Option) *Importer {
	importer := &Importer{
		idFunc: uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(importer)
	}
	return importer
}

// Operations lists the operation ids found in data, sorted. Operations
// without an explicit operationId are keyed "method:path".
func (i *Importer) Operations(ctx context.Context, data []byte) ([]string, error) {
	spec, err := i.load(ctx, data)
	if err != nil {
		return nil, err
	}

	var out []string
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			out = append(out, operationID(method, path, operation))
		}
	}
	sort.Strings(out)
	return out, nil
}

// ImportOperation converts the request body of one operation into form
// fields, in alphabetical property order.
func (i *Importer) ImportOperation(ctx context.Context, data []byte, opID string) ([]model.FormField, error) {
	spec, err := i.load(ctx, data)
	if err != nil {
		return nil, err
	}

	operation := findOperation(spec, opID)
	if operation == nil {
		return nil, fmt.Errorf("openapi: operation %q not found", opID)
	}

	schema := requestSchema(operation)
	if schema == nil {
		return nil, fmt.Errorf("openapi: operation %q has no request body schema", opID)
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]model.FormField, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		field, ok := i.buildField(name, ref.Value, required[name])
		if !ok {
			continue
		}
		fields = append(fields, field)
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("openapi: operation %q produced no fields", opID)
	}
	return fields, nil
}

func (i *Importer) load(ctx context.Context, data []byte) (*openapi3.T, error) {
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: i.resolveRefs,
	}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi: document does not contain any paths")
	}
	return spec, nil
}

// buildField maps one schema property onto the closest field type. Properties
// with shapes the form model cannot express (objects, plain arrays) are
// skipped.
func (i *Importer) buildField(name string, schema *openapi3.Schema, required bool) (model.FormField, bool) {
	field := model.FormField{
		ID:    i.idFunc(),
		Label: fieldLabel(name, schema),
	}

	switch {
	case hasType(schema, openapi3.TypeBoolean):
		field.Type = model.FieldTypeRadio
		field.Options = []string{"Yes", "No"}
		field.Validation = model.ChoiceRules{Required: required}
		if def, ok := schema.Default.(bool); ok {
			if def {
				field.DefaultValue = "Yes"
			} else {
				field.DefaultValue = "No"
			}
		}

	case hasType(schema, openapi3.TypeInteger), hasType(schema, openapi3.TypeNumber):
		field.Type = model.FieldTypeNumber
		rules := model.NumberRules{Required: required}
		if schema.Min != nil {
			rules.MinValue = model.Float64Ptr(*schema.Min)
		}
		if schema.Max != nil {
			rules.MaxValue = model.Float64Ptr(*schema.Max)
		}
		field.Validation = rules
		field.DefaultValue = defaultString(schema.Default)

	case hasType(schema, openapi3.TypeArray):
		options := enumOptions(itemsEnum(schema))
		if len(options) == 0 {
			return model.FormField{}, false
		}
		field.Type = model.FieldTypeCheckbox
		field.Options = options
		field.Validation = model.ChoiceRules{Required: required}
		field.DefaultValue = []string{}

	case hasType(schema, openapi3.TypeString):
		if options := enumOptions(schema.Enum); len(options) > 0 {
			field.Type = model.FieldTypeSelect
			field.Options = options
			field.Validation = model.ChoiceRules{Required: required}
			field.DefaultValue = defaultString(schema.Default)
			break
		}

		rules := model.TextRules{Required: required}
		switch schema.Format {
		case "email":
			field.Type = model.FieldTypeText
			rules.Email = true
		case "password":
			field.Type = model.FieldTypeText
			rules.Password = true
		case "date", "date-time":
			field.Type = model.FieldTypeDate
		default:
			field.Type = model.FieldTypeText
			if schema.MinLength > 0 {
				rules.MinLength = model.IntPtr(int(schema.MinLength))
			}
			if schema.MaxLength != nil {
				rules.MaxLength = model.IntPtr(int(*schema.MaxLength))
			}
		}
		field.Validation = rules
		field.DefaultValue = defaultString(schema.Default)

	default:
		return model.FormField{}, false
	}

	return field, true
}

func hasType(schema *openapi3.Schema, typ string) bool {
	return schema.Type != nil && schema.Type.Is(typ)
}

func requestSchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	content := operation.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func findOperation(spec *openapi3.T, opID string) *openapi3.Operation {
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			if operation == nil {
				continue
			}
			if operationID(method, path, operation) == opID {
				return operation
			}
		}
	}
	return nil
}

func operationID(method, path string, operation *openapi3.Operation) string {
	if operation != nil && operation.OperationID != "" {
		return operation.OperationID
	}
	return strings.ToLower(method) + ":" + path
}

func itemsEnum(schema *openapi3.Schema) []any {
	if schema.Items == nil || schema.Items.Value == nil {
		return nil
	}
	return schema.Items.Value.Enum
}

func enumOptions(enum []any) []string {
	out := make([]string, 0, len(enum))
	for _, value := range enum {
		text := defaultString(value)
		if text == "" {
			continue
		}
		out = append(out, text)
	}
	return out
}

func defaultString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func fieldLabel(name string, schema *openapi3.Schema) string {
	if title := strings.TrimSpace(schema.Title); title != "" {
		return title
	}
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(name)
	runes := []rune(cleaned)
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes)
}
