package formula

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEvalArithmetic(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		src    string
		values map[string]any
		want   float64
	}{
		{name: "literals", src: "2 + 3 * 4", want: 14},
		{name: "parens", src: "(2 + 3) * 4", want: 20},
		{name: "negation", src: "-price + 10", values: map[string]any{"price": 4}, want: 6},
		{name: "identifiers", src: "price * quantity", values: map[string]any{"price": "2.5", "quantity": 4}, want: 10},
		{name: "bracket refs", src: "[unit-price] * 2", values: map[string]any{"unit-price": 3}, want: 6},
		{name: "missing ref is zero", src: "subtotal + tax", values: map[string]any{"subtotal": 5}, want: 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Eval(tc.src, tc.values)
			if err != nil {
				t.Fatalf("Eval(%q) returned error: %v", tc.src, err)
			}
			if got != tc.want {
				t.Fatalf("Eval(%q) = %v, want %v", tc.src, got, tc.want)
			}
		})
	}
}

func TestEvalDivisionByZero(t *testing.T) {
	t.Parallel()

	if _, err := Eval("1 / count", map[string]any{"count": 0}); err == nil {
		t.Fatalf("expected division by zero error")
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"", "1 +", "(1 + 2", "[unterminated", "1 $ 2"} {
		if _, err := Parse(src); err == nil {
			t.Fatalf("Parse(%q) should fail", src)
		}
	}
}

func TestIdentifiers(t *testing.T) {
	t.Parallel()

	expr, err := Parse("[unit-price] * quantity + quantity")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	want := []string{"quantity", "unit-price"}
	if diff := cmp.Diff(want, expr.Identifiers()); diff != "" {
		t.Fatalf("identifiers mismatch (-want +got):\n%s", diff)
	}
}
