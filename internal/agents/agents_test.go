package agents

import (
	"context"
	"strings"
	"testing"

	"github.com/tobiasmd/maestro/internal/executor"
	"github.com/tobiasmd/maestro/internal/llm"
	"github.com/tobiasmd/maestro/internal/tools"
	"github.com/tobiasmd/maestro/internal/tools/builtin"
)

// scriptedCompleter returns a fixed response and records the prompts
// it was called with.
type scriptedCompleter struct {
	response string
	err      error
	systems  []string
	messages [][]llm.Message
}

func (s *scriptedCompleter) Complete(_ context.Context, system string, messages []llm.Message) (string, error) {
	s.systems = append(s.systems, system)
	s.messages = append(s.messages, messages)
	return s.response, s.err
}

func newMathAgent(t *testing.T, completer llm.Completer) (*Agent, *Runner) {
	t.Helper()
	b := tools.NewBuilder()
	builtin.RegisterMath(b, "")
	registry := b.Build()
	exec := executor.New(registry, nil)

	agent := NewAgent(AgentConfig{
		Name:        "math",
		Description: "arithmetic over numbers",
	}, completer, registry, exec)

	runner := NewRunner()
	runner.Register(agent)
	return agent, runner
}

func TestAgentRunExecutesPlan(t *testing.T) {
	completer := &scriptedCompleter{
		response: `[{"tool": "add", "args": [2, 3], "reasoning": "sum"}, {"tool": "multiply", "args": ["previous", 4], "reasoning": "scale"}]`,
	}
	agent, _ := newMathAgent(t, completer)

	result := agent.Run(context.Background(), "Add 2 and 3, then multiply by 4")
	if result.Failed() {
		t.Fatalf("unexpected error: %s", result.Err)
	}
	if result.Output != "20" {
		t.Errorf("expected output 20, got %q", result.Output)
	}
	if result.Summary != "20" {
		t.Errorf("expected summary 20, got %q", result.Summary)
	}

	if len(completer.systems) != 1 {
		t.Fatalf("expected one completion call, got %d", len(completer.systems))
	}
	if !strings.Contains(completer.systems[0], "add:") {
		t.Errorf("system prompt should list tools, got:\n%s", completer.systems[0])
	}
}

func TestAgentScope(t *testing.T) {
	b := tools.NewBuilder()
	builtin.RegisterMath(b, "math")
	registry := b.Build()

	agent := NewAgent(AgentConfig{
		Name:  "math",
		Scope: "math",
	}, &scriptedCompleter{}, registry, executor.New(registry, nil))

	if agent.Scope() != "math" {
		t.Errorf("expected scope math, got %q", agent.Scope())
	}
}

func TestAgentRunRecoversFromFencedPlan(t *testing.T) {
	completer := &scriptedCompleter{
		response: "Here is the plan:\n```json\n[{\"tool\": \"add\", \"args\": [1, 1], \"reasoning\": \"sum\"}]\n```",
	}
	agent, _ := newMathAgent(t, completer)

	result := agent.Run(context.Background(), "Add 1 and 1")
	if result.Failed() {
		t.Fatalf("unexpected error: %s", result.Err)
	}
	if result.Output != "2" {
		t.Errorf("expected 2, got %q", result.Output)
	}
}

func TestAgentRunUnparsablePlan(t *testing.T) {
	completer := &scriptedCompleter{response: "I cannot help with that."}
	agent, _ := newMathAgent(t, completer)

	result := agent.Run(context.Background(), "Add 1 and 1")
	if !result.Failed() {
		t.Fatal("expected failure")
	}
	if !strings.Contains(result.Err, "plan parse failed") {
		t.Errorf("unexpected error: %q", result.Err)
	}
}

func TestAgentRunToolFailureInBand(t *testing.T) {
	completer := &scriptedCompleter{
		response: `[{"tool": "divide", "args": [1, 0], "reasoning": "oops"}]`,
	}
	agent, _ := newMathAgent(t, completer)

	result := agent.Run(context.Background(), "Divide 1 by 0")
	if !result.Failed() {
		t.Fatal("expected failure")
	}
	if !strings.Contains(result.Err, "divide") {
		t.Errorf("error should name the tool: %q", result.Err)
	}
}

func TestRunnerDispatchUnknownAgent(t *testing.T) {
	completer := &scriptedCompleter{response: "[]"}
	_, runner := newMathAgent(t, completer)

	result := runner.Dispatch(context.Background(), "weather", "Forecast for Oslo")
	if result.Err != "Unknown agent: weather" {
		t.Errorf("unexpected error: %q", result.Err)
	}
	if result.Agent != "weather" {
		t.Errorf("result should carry the requested agent name, got %q", result.Agent)
	}
	if len(completer.systems) != 0 {
		t.Error("no completion should happen for an unknown agent")
	}
}

func TestRunnerNamesSorted(t *testing.T) {
	completer := &scriptedCompleter{response: "[]"}
	_, runner := newMathAgent(t, completer)

	b := tools.NewBuilder()
	builtin.RegisterString(b, "")
	registry := b.Build()
	runner.Register(NewAgent(AgentConfig{Name: "string"}, completer, registry, executor.New(registry, nil)))

	names := runner.Names()
	if len(names) != 2 || names[0] != "math" || names[1] != "string" {
		t.Errorf("unexpected names: %v", names)
	}
}

func TestPlannerPlan(t *testing.T) {
	completer := &scriptedCompleter{
		response: `[{"agent": "math", "task": "Add 2 and 3", "dependencies": []}, {"agent": "string", "task": "Spell the result", "dependencies": [0]}]`,
	}
	planner := NewPlanner(completer)

	steps, err := planner.Plan(context.Background(), "Add 2 and 3 and spell it", []string{"math", "string"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(steps))
	}
	if steps[1].Agent != "string" || len(steps[1].Dependencies) != 1 || steps[1].Dependencies[0] != 0 {
		t.Errorf("unexpected second step: %+v", steps[1])
	}
	if !strings.Contains(completer.systems[0], "- math") {
		t.Errorf("planner prompt should list agents, got:\n%s", completer.systems[0])
	}
}

func TestPlannerRejectsCyclicPlan(t *testing.T) {
	completer := &scriptedCompleter{
		response: `[{"agent": "math", "task": "a", "dependencies": [1]}, {"agent": "math", "task": "b", "dependencies": [0]}]`,
	}
	planner := NewPlanner(completer)

	_, err := planner.Plan(context.Background(), "anything", []string{"math"})
	if err == nil || !strings.Contains(err.Error(), "circular") {
		t.Errorf("expected circular dependency error, got %v", err)
	}
}

func TestParseDefs(t *testing.T) {
	data := []byte(`
agents:
  - name: math
    description: arithmetic
    scope: math
    model: claude-haiku-4-5-20251001
  - name: string
    description: text manipulation
    scope: string
    system_prompt: "Custom prompt."
`)
	defs, err := ParseDefs(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("expected 2 defs, got %d", len(defs))
	}
	if defs[0].Name != "math" || defs[0].Scope != "math" {
		t.Errorf("unexpected first def: %+v", defs[0])
	}
	if defs[0].Model != "claude-haiku-4-5-20251001" {
		t.Errorf("unexpected model override: %q", defs[0].Model)
	}
	if defs[1].Model != "" {
		t.Errorf("model should default to empty, got %q", defs[1].Model)
	}
	if defs[1].SystemPrompt != "Custom prompt." {
		t.Errorf("unexpected system prompt: %q", defs[1].SystemPrompt)
	}
}

func TestParseDefsMissingName(t *testing.T) {
	_, err := ParseDefs([]byte("agents:\n  - description: nameless\n"))
	if err == nil || !strings.Contains(err.Error(), "missing name") {
		t.Errorf("expected missing name error, got %v", err)
	}
}

func TestRenderResult(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{float64(5), "5"},
		{float64(2.5), "2.5"},
		{"hello", "hello"},
		{true, "true"},
	}
	for _, c := range cases {
		if got := renderResult(c.in); got != c.want {
			t.Errorf("renderResult(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
