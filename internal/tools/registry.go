package tools

// Builder collects tool registrations during process initialization.
// Registration replaces import-time side effects: each tool-providing module
// is handed the builder and registers explicitly, so lookup behavior never
// depends on import order.
type Builder struct {
	scopes map[string]Toolset
	global Toolset
}

// NewBuilder creates an empty registry builder.
func NewBuilder() *Builder {
	return &Builder{
		scopes: make(map[string]Toolset),
		global: make(Toolset),
	}
}

// Register adds a tool under the given agent scope. An empty scope registers
// into the global unscoped set, which serves as the fallback for unknown
// scopes. A later registration with the same name replaces the earlier one.
func (b *Builder) Register(scope string, tool Tool) {
	if scope == "" {
		b.global[tool.Name()] = tool
		return
	}
	ts, ok := b.scopes[scope]
	if !ok {
		ts = make(Toolset)
		b.scopes[scope] = ts
	}
	ts[tool.Name()] = tool
}

// Build returns an immutable registry snapshot. The builder may be reused,
// but further registrations do not affect registries already built.
func (b *Builder) Build() *Registry {
	scopes := make(map[string]Toolset, len(b.scopes))
	for scope, ts := range b.scopes {
		copied := make(Toolset, len(ts))
		for name, tool := range ts {
			copied[name] = tool
		}
		scopes[scope] = copied
	}
	global := make(Toolset, len(b.global))
	for name, tool := range b.global {
		global[name] = tool
	}
	return &Registry{scopes: scopes, global: global}
}

// Registry is the process-wide mapping from agent scope to toolset.
// It is immutable after Build, so concurrent reads need no locking.
type Registry struct {
	scopes map[string]Toolset
	global Toolset
}

// Toolset resolves the toolset for an agent scope. Unknown scopes fall back
// to the global unscoped set rather than failing hard.
func (r *Registry) Toolset(scope string) Toolset {
	if ts, ok := r.scopes[scope]; ok {
		return ts
	}
	return r.global
}

// Scopes returns the registered scope names, for listing.
func (r *Registry) Scopes() []string {
	names := make([]string, 0, len(r.scopes))
	for scope := range r.scopes {
		names = append(names, scope)
	}
	return names
}
