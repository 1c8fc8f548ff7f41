// Package trace provides the append-only structured record sink written to
// after every tool dispatch and every orchestration step.
package trace

import "context"

// Logger is the narrow trace sink interface the execution core writes to.
// Implementations must be safe for concurrent use; callers treat Log as
// fire-and-forget and ignore its error where loss of a trace record must
// not fail the work itself.
type Logger interface {
	Log(ctx context.Context, fields map[string]any) error
}

// Nop is a Logger that discards all records.
type Nop struct{}

func (Nop) Log(ctx context.Context, fields map[string]any) error { return nil }

// Multi returns a Logger that fans records out to all of loggers and
// reports the first error encountered.
func Multi(loggers ...Logger) Logger {
	return multi(loggers)
}

type multi []Logger

func (m multi) Log(ctx context.Context, fields map[string]any) error {
	var first error
	for _, l := range m {
		if err := l.Log(ctx, fields); err != nil && first == nil {
			first = err
		}
	}
	return first
}
