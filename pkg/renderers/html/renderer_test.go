package html

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

func textField(id, label string, rules model.TextRules) model.FormField {
	return model.FormField{ID: id, Type: model.FieldTypeText, Label: label, DefaultValue: "", Validation: rules}
}

func TestRenderer_RenderBasicForm(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	schema := model.FormSchema{
		ID:   "form-1",
		Name: "Signup",
		Fields: []model.FormField{
			textField("name", "Full name", model.TextRules{Required: true}),
			{ID: "plan", Type: model.FieldTypeSelect, Label: "Plan", DefaultValue: "", Options: []string{"Free", "Pro"}, Validation: model.ChoiceRules{}},
		},
	}

	out, err := renderer.Render(context.Background(), schema, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(out)

	for _, want := range []string{
		`data-form-id="form-1"`,
		`<h2 class="form-title">Signup</h2>`,
		`<label for="fb-name" class="field-label">Full name *</label>`,
		`<input type="text" id="fb-name" name="name" class="field-control" required>`,
		`<option value="Pro">Pro</option>`,
		`<small class="field-hint">Required</small>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}

	// name is required and empty, so the form cannot be submitted yet
	if !strings.Contains(got, "disabled>Submit</button>") {
		t.Errorf("expected disabled submit button\n%s", got)
	}
}

func TestRenderer_ValuesEnableSubmit(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	schema := model.FormSchema{
		ID:     "form-2",
		Fields: []model.FormField{textField("name", "Name", model.TextRules{Required: true})},
	}

	out, err := renderer.Render(context.Background(), schema, render.RenderOptions{
		Values: map[string]any{"name": "Ada"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(out)

	if !strings.Contains(got, `value="Ada"`) {
		t.Errorf("expected value attribute\n%s", got)
	}
	if strings.Contains(got, "disabled>Submit") {
		t.Errorf("submit should be enabled once required fields are filled\n%s", got)
	}
}

func TestRenderer_InlineErrors(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	schema := model.FormSchema{
		ID:     "form-3",
		Fields: []model.FormField{textField("email", "Email", model.TextRules{Email: true})},
	}

	out, err := renderer.Render(context.Background(), schema, render.RenderOptions{
		Values: map[string]any{"email": "not-an-email"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.Contains(string(out), `<small class="field-error">Invalid email format</small>`) {
		t.Errorf("expected inline validation message\n%s", out)
	}
}

func TestRenderer_EscapesLabels(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	schema := model.FormSchema{
		ID:     "form-4",
		Fields: []model.FormField{textField("bio", `<script>alert("x")</script>Bio`, model.TextRules{})},
	}

	out, err := renderer.Render(context.Background(), schema, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	got := string(out)
	if strings.Contains(got, "<script>") {
		t.Errorf("label markup leaked into output\n%s", got)
	}
	if !strings.Contains(got, ">Bio</label>") {
		t.Errorf("expected sanitized label text\n%s", got)
	}
}

func TestRenderer_ContentType(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if got := renderer.Name(); got != "html" {
		t.Fatalf("name = %q", got)
	}
	if got := renderer.ContentType(); got != "text/html; charset=utf-8" {
		t.Fatalf("content type = %q", got)
	}
}
