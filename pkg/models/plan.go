// Package models defines the shared data types for plan execution and
// multi-agent orchestration.
package models

import "strings"

// SentinelPrevious is the reserved argument literal that means "substitute
// the previous step's result here". Matching is case-insensitive, so
// "Previous" and "PREVIOUS" also substitute. A genuine string argument equal
// to "previous" is indistinguishable from the sentinel; callers that need the
// literal string must encode it some other way.
const SentinelPrevious = "previous"

// IsSentinel reports whether an argument value is the previous-result sentinel.
func IsSentinel(arg any) bool {
	s, ok := arg.(string)
	return ok && strings.EqualFold(s, SentinelPrevious)
}

// ToolCall is one planned tool invocation emitted by a planner.
type ToolCall struct {
	// Tool is the registry name of the tool to invoke. Must be non-empty.
	Tool string `json:"tool"`
	// Args are the positional arguments. Each element is a JSON literal
	// (string, number, boolean, null) or the previous-result sentinel.
	Args []any `json:"args"`
	// Reasoning is the planner's free-text justification. It is recorded in
	// the trace but never executed.
	Reasoning string `json:"reasoning,omitempty"`
}

// StepRecord is the outcome of one dispatched tool call. Records are
// append-only: once added to a trace they are never mutated.
type StepRecord struct {
	// Tool is the name of the invoked tool.
	Tool string `json:"tool"`
	// Args are the arguments after sentinel substitution.
	Args []any `json:"args"`
	// Result is the value the tool produced, if it succeeded.
	Result any `json:"result,omitempty"`
	// Error holds the failure description if the invocation failed.
	Error string `json:"error,omitempty"`
	// Reasoning is carried over from the originating ToolCall.
	Reasoning string `json:"reasoning,omitempty"`
}

// PlanResult is the terminal output of a full sequential plan execution.
// Exactly one of the two shapes holds: FinalResult with empty Err and the
// complete trace, or a non-empty Err with the partial trace up to the
// failing call.
type PlanResult struct {
	// FinalResult is the last step's result on success.
	FinalResult any `json:"final_result,omitempty"`
	// Steps is the ordered execution trace.
	Steps []StepRecord `json:"steps"`
	// Err describes the terminal failure, if any.
	Err string `json:"error,omitempty"`
}

// Failed reports whether the plan execution ended in an error.
func (r PlanResult) Failed() bool {
	return r.Err != ""
}
