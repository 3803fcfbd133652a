package openapi

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

const petstoreDoc = `
openapi: 3.0.3
info:
  title: Signup API
  version: 1.0.0
paths:
  /signup:
    post:
      operationId: createUser
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [email, age]
              properties:
                email:
                  type: string
                  format: email
                full_name:
                  type: string
                  title: Full name
                  minLength: 2
                  maxLength: 60
                age:
                  type: integer
                  minimum: 18
                  maximum: 120
                plan:
                  type: string
                  enum: [free, pro]
                  default: free
                newsletter:
                  type: boolean
                  default: true
                topics:
                  type: array
                  items:
                    type: string
                    enum: [go, rust, zig]
                joined:
                  type: string
                  format: date
                profile:
                  type: object
      responses:
        "201":
          description: created
  /health:
    get:
      operationId: health
      responses:
        "200":
          description: ok
`

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("field-%d", n)
	}
}

func TestImporter_Operations(t *testing.T) {
	importer := New()

	ops, err := importer.Operations(context.Background(), []byte(petstoreDoc))
	if err != nil {
		t.Fatalf("operations: %v", err)
	}

	want := []string{"createUser", "health"}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}
}

func TestImporter_ImportOperation(t *testing.T) {
	importer := New(WithIDFunc(sequentialIDs()))

	fields, err := importer.ImportOperation(context.Background(), []byte(petstoreDoc), "createUser")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	byLabel := make(map[string]model.FormField, len(fields))
	for _, field := range fields {
		byLabel[field.Label] = field
	}

	// object-typed property cannot be represented and is skipped
	if len(fields) != 7 {
		t.Fatalf("expected 7 fields, got %d: %+v", len(fields), fields)
	}

	email := byLabel["Email"]
	if email.Type != model.FieldTypeText {
		t.Errorf("email type = %q", email.Type)
	}
	if rules, ok := email.Validation.(model.TextRules); !ok || !rules.Required || !rules.Email {
		t.Errorf("email rules = %#v", email.Validation)
	}

	name := byLabel["Full name"]
	if name.Type != model.FieldTypeText {
		t.Errorf("full_name type = %q", name.Type)
	}
	if rules, ok := name.Validation.(model.TextRules); !ok ||
		rules.MinLength == nil || *rules.MinLength != 2 ||
		rules.MaxLength == nil || *rules.MaxLength != 60 {
		t.Errorf("full_name rules = %#v", name.Validation)
	}

	age := byLabel["Age"]
	if age.Type != model.FieldTypeNumber {
		t.Errorf("age type = %q", age.Type)
	}
	if rules, ok := age.Validation.(model.NumberRules); !ok || !rules.Required ||
		rules.MinValue == nil || *rules.MinValue != 18 ||
		rules.MaxValue == nil || *rules.MaxValue != 120 {
		t.Errorf("age rules = %#v", age.Validation)
	}

	plan := byLabel["Plan"]
	if plan.Type != model.FieldTypeSelect {
		t.Errorf("plan type = %q", plan.Type)
	}
	if diff := cmp.Diff([]string{"free", "pro"}, plan.Options); diff != "" {
		t.Errorf("plan options mismatch (-want +got):\n%s", diff)
	}
	if plan.DefaultValue != "free" {
		t.Errorf("plan default = %v", plan.DefaultValue)
	}

	newsletter := byLabel["Newsletter"]
	if newsletter.Type != model.FieldTypeRadio {
		t.Errorf("newsletter type = %q", newsletter.Type)
	}
	if newsletter.DefaultValue != "Yes" {
		t.Errorf("newsletter default = %v", newsletter.DefaultValue)
	}

	topics := byLabel["Topics"]
	if topics.Type != model.FieldTypeCheckbox {
		t.Errorf("topics type = %q", topics.Type)
	}
	if diff := cmp.Diff([]string{"go", "rust", "zig"}, topics.Options); diff != "" {
		t.Errorf("topics options mismatch (-want +got):\n%s", diff)
	}

	joined := byLabel["Joined"]
	if joined.Type != model.FieldTypeDate {
		t.Errorf("joined type = %q", joined.Type)
	}
}

func TestImporter_MissingOperation(t *testing.T) {
	importer := New()

	if _, err := importer.ImportOperation(context.Background(), []byte(petstoreDoc), "nope"); err == nil {
		t.Fatal("expected error for unknown operation")
	}
	if _, err := importer.ImportOperation(context.Background(), []byte(petstoreDoc), "health"); err == nil {
		t.Fatal("expected error for operation without request body")
	}
}

func TestImporter_EmptyDocument(t *testing.T) {
	importer := New()

	if _, err := importer.Operations(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty payload")
	}
}
