// Package tools provides the capability-scoped tool registry used by plan
// execution. Tools are registered once during process initialization; the
// built registry is read-only and has no removal operation.
package tools

import (
	"context"
	"sort"
	"strings"
)

// Tool is one invocable capability. Implementations declare up front whether
// invocation suspends on external I/O (Async) rather than being probed at
// call time; either way Invoke takes a context and returns synchronously to
// the caller.
type Tool interface {
	// Name is the registry key within a scope.
	Name() string
	// Doc is the human-readable description listed in planner prompts.
	Doc() string
	// Async reports whether the tool is dominated by external I/O (LLM or
	// HTTP calls) rather than local computation.
	Async() bool
	// Invoke runs the tool with positional arguments.
	Invoke(ctx context.Context, args []any) (any, error)
}

// Func adapts a plain function to the Tool interface.
type Func struct {
	name  string
	doc   string
	async bool
	fn    func(ctx context.Context, args []any) (any, error)
}

// NewFunc wraps a synchronous function as a Tool.
func NewFunc(name, doc string, fn func(ctx context.Context, args []any) (any, error)) *Func {
	return &Func{name: name, doc: doc, fn: fn}
}

// NewAsyncFunc wraps an I/O-bound function as a Tool.
func NewAsyncFunc(name, doc string, fn func(ctx context.Context, args []any) (any, error)) *Func {
	return &Func{name: name, doc: doc, async: true, fn: fn}
}

func (f *Func) Name() string { return f.name }
func (f *Func) Doc() string  { return f.doc }
func (f *Func) Async() bool  { return f.async }

func (f *Func) Invoke(ctx context.Context, args []any) (any, error) {
	return f.fn(ctx, args)
}

// Toolset is the resolved name-to-tool mapping for one agent scope.
type Toolset map[string]Tool

// Lookup returns the named tool, if registered.
func (t Toolset) Lookup(name string) (Tool, bool) {
	tool, ok := t[name]
	return tool, ok
}

// List renders one "name: doc" line per tool, sorted by name, for inclusion
// in planner prompts.
func (t Toolset) List() string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(strings.TrimSpace(t[name].Doc()))
	}
	return b.String()
}
