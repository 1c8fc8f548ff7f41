package builtin

import (
	"context"
	"testing"

	"github.com/tobiasmd/maestro/internal/tools"
)

func registry(t *testing.T) *tools.Registry {
	t.Helper()
	b := tools.NewBuilder()
	RegisterMath(b, "")
	RegisterString(b, "")
	return b.Build()
}

func invoke(t *testing.T, reg *tools.Registry, scope, name string, args ...any) (any, error) {
	t.Helper()
	tool, ok := reg.Toolset(scope).Lookup(name)
	if !ok {
		t.Fatalf("tool %s not found in scope %s", name, scope)
	}
	return tool.Invoke(context.Background(), args)
}

func TestMathTools(t *testing.T) {
	reg := registry(t)

	cases := []struct {
		name string
		args []any
		want float64
	}{
		{"add", []any{float64(2), float64(3)}, 5},
		{"subtract", []any{float64(10), float64(4)}, 6},
		{"multiply", []any{float64(6), float64(7)}, 42},
		{"divide", []any{float64(9), float64(2)}, 4.5},
		{"power", []any{float64(2), float64(10)}, 1024},
		{"factorial", []any{float64(5)}, 120},
	}

	for _, tc := range cases {
		got, err := invoke(t, reg, "math", tc.name, tc.args...)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s(%v) = %v, want %v", tc.name, tc.args, got, tc.want)
		}
	}
}

func TestMathToolErrors(t *testing.T) {
	reg := registry(t)

	if _, err := invoke(t, reg, "math", "divide", float64(1), float64(0)); err == nil {
		t.Error("expected division-by-zero error")
	}
	if _, err := invoke(t, reg, "math", "add", float64(1)); err == nil {
		t.Error("expected arity error")
	}
	if _, err := invoke(t, reg, "math", "add", "one", "two"); err == nil {
		t.Error("expected type error")
	}
	if _, err := invoke(t, reg, "math", "factorial", float64(-3)); err == nil {
		t.Error("expected negative factorial error")
	}
	if _, err := invoke(t, reg, "math", "factorial", 2.5); err == nil {
		t.Error("expected non-integer factorial error")
	}
}

func TestStringTools(t *testing.T) {
	reg := registry(t)

	got, err := invoke(t, reg, "string", "word_count", "the quick brown fox")
	if err != nil {
		t.Fatalf("word_count: %v", err)
	}
	if got != float64(4) {
		t.Errorf("word_count = %v, want 4", got)
	}

	got, err = invoke(t, reg, "string", "letter_count", "ab1 c!")
	if err != nil {
		t.Fatalf("letter_count: %v", err)
	}
	if got != float64(3) {
		t.Errorf("letter_count = %v, want 3", got)
	}

	got, err = invoke(t, reg, "string", "reverse", "live")
	if err != nil {
		t.Fatalf("reverse: %v", err)
	}
	if got != "evil" {
		t.Errorf("reverse = %v, want evil", got)
	}

	got, err = invoke(t, reg, "string", "concat", "total:", float64(5))
	if err != nil {
		t.Fatalf("concat: %v", err)
	}
	if got != "total: 5" {
		t.Errorf("concat = %q, want %q", got, "total: 5")
	}
}

func TestStringToolsRenderChainedNumber(t *testing.T) {
	reg := registry(t)

	// A numeric previous-result flows into a string tool.
	got, err := invoke(t, reg, "string", "word_count", float64(120))
	if err != nil {
		t.Fatalf("word_count: %v", err)
	}
	if got != float64(1) {
		t.Errorf("word_count(120) = %v, want 1", got)
	}
}
