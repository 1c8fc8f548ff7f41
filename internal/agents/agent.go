// Package agents ties LLM completions to tool execution. An Agent asks
// its completer for a tool-call plan and runs it against its toolset
// scope; a Runner routes named tasks to registered agents.
package agents

import (
	"context"
	"fmt"
	"math"

	"github.com/tobiasmd/maestro/internal/executor"
	"github.com/tobiasmd/maestro/internal/llm"
	"github.com/tobiasmd/maestro/internal/plan"
	"github.com/tobiasmd/maestro/internal/tools"
	"github.com/tobiasmd/maestro/pkg/models"
)

// summaryLimit caps the summary passed to dependent steps.
const summaryLimit = 500

// Agent plans and executes tool calls for a single capability domain.
type Agent struct {
	Name        string
	Description string

	scope     string
	system    string
	completer llm.Completer
	registry  *tools.Registry
	exec      *executor.Executor
}

// AgentConfig describes an agent to create.
type AgentConfig struct {
	// Name is the identifier used to route tasks to this agent.
	Name string
	// Description is a short human-readable summary of the agent's domain.
	Description string
	// Scope selects the toolset this agent plans against. Empty means
	// the unscoped tools.
	Scope string
	// SystemPrompt overrides the default planning prompt when non-empty.
	SystemPrompt string
}

// NewAgent creates an agent over the given completer and registry.
func NewAgent(cfg AgentConfig, completer llm.Completer, registry *tools.Registry, exec *executor.Executor) *Agent {
	return &Agent{
		Name:        cfg.Name,
		Description: cfg.Description,
		scope:       cfg.Scope,
		system:      cfg.SystemPrompt,
		completer:   completer,
		registry:    registry,
		exec:        exec,
	}
}

// Scope returns the toolset scope this agent plans against.
func (a *Agent) Scope() string {
	return a.scope
}

// Run asks the completer for a plan and executes it. Failures are
// reported in-band on the returned StepResult rather than as an error.
func (a *Agent) Run(ctx context.Context, task string) models.StepResult {
	res := models.StepResult{Agent: a.Name, Task: task}

	raw, err := a.completer.Complete(ctx, a.systemPrompt(), []llm.Message{
		{Role: llm.RoleUser, Content: "Add 2 and 3"},
		{Role: llm.RoleAssistant, Content: `[{"tool": "add", "args": [2, 3], "reasoning": "Adding 2 and 3 to get the sum"}]`},
		{Role: llm.RoleUser, Content: task},
	})
	if err != nil {
		res.Err = fmt.Sprintf("completion failed: %v", err)
		return res
	}

	calls, err := plan.Parse(raw)
	if err != nil {
		res.Err = fmt.Sprintf("plan parse failed: %v", err)
		return res
	}

	planResult := a.exec.Execute(ctx, calls, a.scope)
	if planResult.Failed() {
		res.Err = planResult.Err
	}
	res.Output = renderResult(planResult.FinalResult)
	res.Summary = truncate(res.Output, summaryLimit)
	return res
}

func (a *Agent) systemPrompt() string {
	if a.system != "" {
		return a.system
	}

	toolList := a.registry.Toolset(a.scope).List()
	return "You are a reasoning agent. Use tools from the list below to accomplish your tasks.\n" +
		"Tools:\n" + toolList + "\n\n" +
		"CRITICAL: You must respond with ONLY a valid JSON array, nothing else. No markdown, no explanations.\n" +
		"Return a JSON array of tool calls in this exact format:\n" +
		"[\n" +
		`  {"tool": "example_tool", "args": [1, 2], "reasoning": "Explain why this tool is called."},` + "\n" +
		`  {"tool": "another_tool", "args": ["previous"], "reasoning": "Explain why using the previous result."}` + "\n" +
		"]\n" +
		"RULES:\n" +
		"1. Start your response with [ and end with ]\n" +
		"2. No markdown code blocks\n" +
		"3. No extra text before or after the JSON\n" +
		`4. Always include a "reasoning" field for each step` + "\n" +
		`5. Use "previous" in args to reference the previous step result`
}

// renderResult formats a tool result for inclusion in downstream task
// context. Whole-valued floats print without a trailing ".0" so chained
// numeric results stay readable.
func renderResult(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return fmt.Sprintf("%d", int64(n))
		}
		return fmt.Sprintf("%g", n)
	case string:
		return n
	default:
		return fmt.Sprintf("%v", v)
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
