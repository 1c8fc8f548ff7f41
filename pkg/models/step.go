package models

// StepStatus represents the current state of an orchestration step.
type StepStatus string

const (
	// StepStatusPending indicates the step has not started.
	StepStatusPending StepStatus = "pending"
	// StepStatusRunning indicates the step is being executed.
	StepStatusRunning StepStatus = "running"
	// StepStatusDone indicates the step completed successfully.
	StepStatusDone StepStatus = "done"
	// StepStatusFailed indicates the step's agent reported an error.
	StepStatusFailed StepStatus = "failed"
	// StepStatusBlocked indicates the step can never run because a
	// dependency will not complete.
	StepStatusBlocked StepStatus = "blocked"
)

// Valid returns true if the status is a known value.
func (s StepStatus) Valid() bool {
	switch s {
	case StepStatusPending, StepStatusRunning, StepStatusDone, StepStatusFailed, StepStatusBlocked:
		return true
	default:
		return false
	}
}

// Step is one node in an orchestration dependency graph. Dependencies are
// expressed as indices into the sibling step list.
type Step struct {
	// Agent is the capability scope to dispatch into (e.g. "math",
	// "web_search").
	Agent string `json:"agent" yaml:"agent"`
	// Task is the natural-language instruction handed to the agent's own
	// planner.
	Task string `json:"task" yaml:"task"`
	// Dependencies lists sibling step indices that must complete before
	// this step runs. An empty list makes the step immediately eligible.
	Dependencies []int `json:"dependencies" yaml:"dependencies"`
}

// StepResult is the outcome of one dispatched orchestration step.
type StepResult struct {
	// Status records where the step ended up. The orchestrator sets it
	// when the step's wave completes.
	Status StepStatus `json:"status,omitempty"`
	// Agent is the scope the step was dispatched to.
	Agent string `json:"agent"`
	// Task is the original (unaugmented) instruction text.
	Task string `json:"task"`
	// Summary is a concise rendering of the result, suitable for feeding
	// to dependent steps.
	Summary string `json:"summary"`
	// Output is the complete result text.
	Output string `json:"output"`
	// Err holds the in-band failure description, if any. A failed step
	// never aborts its wave.
	Err string `json:"error,omitempty"`
}

// Failed reports whether the step ended in an error.
func (r StepResult) Failed() bool {
	return r.Err != ""
}
