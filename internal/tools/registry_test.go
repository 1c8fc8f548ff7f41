package tools

import (
	"context"
	"sort"
	"strings"
	"testing"
)

func constTool(name, doc string, value any) *Func {
	return NewFunc(name, doc, func(ctx context.Context, args []any) (any, error) {
		return value, nil
	})
}

func TestRegistryScopedLookup(t *testing.T) {
	b := NewBuilder()
	b.Register("math", constTool("add", "Adds two numbers.", 5))
	b.Register("string", constTool("word_count", "Counts words.", 2))
	reg := b.Build()

	ts := reg.Toolset("math")
	if _, ok := ts.Lookup("add"); !ok {
		t.Fatal("expected add in math scope")
	}
	if _, ok := ts.Lookup("word_count"); ok {
		t.Error("word_count should not leak into math scope")
	}
}

func TestRegistryUnknownScopeFallsBackToGlobal(t *testing.T) {
	b := NewBuilder()
	b.Register("", constTool("echo", "Echoes.", "hi"))
	b.Register("math", constTool("add", "Adds.", 5))
	reg := b.Build()

	ts := reg.Toolset("no-such-scope")
	if _, ok := ts.Lookup("echo"); !ok {
		t.Fatal("expected fallback to global unscoped set")
	}
	if _, ok := ts.Lookup("add"); ok {
		t.Error("scoped tool should not appear in global fallback")
	}
}

func TestRegistryImmutableAfterBuild(t *testing.T) {
	b := NewBuilder()
	b.Register("math", constTool("add", "Adds.", 5))
	reg := b.Build()

	// Registrations after Build must not leak into the snapshot.
	b.Register("math", constTool("late", "Added late.", 0))

	if _, ok := reg.Toolset("math").Lookup("late"); ok {
		t.Error("registry mutated after Build")
	}
}

func TestRegistryLastRegistrationWins(t *testing.T) {
	b := NewBuilder()
	b.Register("math", constTool("add", "v1", 1))
	b.Register("math", constTool("add", "v2", 2))
	reg := b.Build()

	tool, ok := reg.Toolset("math").Lookup("add")
	if !ok {
		t.Fatal("expected add")
	}
	if tool.Doc() != "v2" {
		t.Errorf("expected last registration to win, got doc %q", tool.Doc())
	}
}

func TestToolsetList(t *testing.T) {
	b := NewBuilder()
	b.Register("math", constTool("multiply", "Multiplies two numbers.", 0))
	b.Register("math", constTool("add", "Adds two numbers.", 0))
	reg := b.Build()

	list := reg.Toolset("math").List()
	lines := strings.Split(list, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), list)
	}
	if !sort.StringsAreSorted(lines) {
		t.Errorf("expected sorted listing, got %q", list)
	}
	if lines[0] != "add: Adds two numbers." {
		t.Errorf("unexpected first line: %q", lines[0])
	}
}

func TestFuncAsyncFlag(t *testing.T) {
	syncTool := NewFunc("a", "", func(ctx context.Context, args []any) (any, error) { return nil, nil })
	asyncTool := NewAsyncFunc("b", "", func(ctx context.Context, args []any) (any, error) { return nil, nil })

	if syncTool.Async() {
		t.Error("NewFunc should produce a synchronous tool")
	}
	if !asyncTool.Async() {
		t.Error("NewAsyncFunc should produce an async-tagged tool")
	}
}
