// Package executor runs parsed tool-call plans sequentially, threading
// each step's result into the next via the "previous" placeholder.
package executor

import (
	"context"
	"errors"
	"fmt"

	"github.com/tobiasmd/maestro/internal/tools"
	"github.com/tobiasmd/maestro/internal/trace"
	"github.com/tobiasmd/maestro/pkg/models"
)

// ErrUnknownTool is returned by Dispatch when a call names a tool the
// scope cannot resolve.
var ErrUnknownTool = errors.New("unknown tool")

// Executor dispatches tool calls against a registry and records every
// dispatch to a trace sink.
type Executor struct {
	registry *tools.Registry
	trace    trace.Logger
}

// New creates an executor over the given registry. A nil trace logger
// disables trace output.
func New(registry *tools.Registry, logger trace.Logger) *Executor {
	if logger == nil {
		logger = trace.Nop{}
	}
	return &Executor{registry: registry, trace: logger}
}

// Dispatch resolves and invokes a single tool call within a scope and
// appends one trace entry for the outcome. Arguments are passed through
// as-is; placeholder substitution is the caller's concern.
func (e *Executor) Dispatch(ctx context.Context, call models.ToolCall, scope string) (any, error) {
	set := e.registry.Toolset(scope)
	tool, ok := set.Lookup(call.Tool)
	if !ok {
		e.log(ctx, map[string]any{
			"event": "unknown_tool",
			"tool":  call.Tool,
			"scope": scope,
		})
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, call.Tool)
	}

	debugLog("dispatch %s %v (scope=%q)", call.Tool, call.Args, scope)
	out, err := tool.Invoke(ctx, call.Args)
	if err != nil {
		e.log(ctx, map[string]any{
			"event": "tool_failed",
			"tool":  call.Tool,
			"args":  call.Args,
			"error": err.Error(),
		})
		return nil, err
	}

	e.log(ctx, map[string]any{
		"event":  "tool_done",
		"tool":   call.Tool,
		"args":   call.Args,
		"result": out,
	})
	return out, nil
}

// Execute runs a plan in order, aborting on the first failure. On an
// unknown tool it returns the error with no step record; on a tool
// invocation error it records the failed step before stopping. The
// returned result always carries the trace of steps completed so far.
func (e *Executor) Execute(ctx context.Context, plan []models.ToolCall, scope string) models.PlanResult {
	var result models.PlanResult
	var prev any

	for i, call := range plan {
		if err := ctx.Err(); err != nil {
			result.Err = err.Error()
			return result
		}

		args := substitute(call.Args, prev)
		debugLog("step %d: %s", i, call.Tool)

		out, err := e.Dispatch(ctx, models.ToolCall{
			Tool:      call.Tool,
			Args:      args,
			Reasoning: call.Reasoning,
		}, scope)
		if err != nil {
			if errors.Is(err, ErrUnknownTool) {
				result.Err = fmt.Sprintf("Unknown tool: %s", call.Tool)
				return result
			}
			result.Steps = append(result.Steps, models.StepRecord{
				Tool:      call.Tool,
				Args:      args,
				Error:     err.Error(),
				Reasoning: call.Reasoning,
			})
			result.Err = fmt.Sprintf("Tool %s failed: %v", call.Tool, err)
			return result
		}

		result.Steps = append(result.Steps, models.StepRecord{
			Tool:      call.Tool,
			Args:      args,
			Result:    out,
			Reasoning: call.Reasoning,
		})
		prev = out
	}

	result.FinalResult = prev
	return result
}

func (e *Executor) log(ctx context.Context, fields map[string]any) {
	if err := e.trace.Log(ctx, fields); err != nil {
		debugLog("trace log failed: %v", err)
	}
}

// substitute returns a copy of args with every "previous" placeholder
// replaced by prev. On the first step prev is nil, so an early
// placeholder resolves to nil rather than erroring.
func substitute(args []any, prev any) []any {
	out := make([]any, len(args))
	for i, a := range args {
		if models.IsSentinel(a) {
			out[i] = prev
		} else {
			out[i] = a
		}
	}
	return out
}
