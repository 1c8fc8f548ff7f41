package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/tobiasmd/maestro/internal/llm"
	"github.com/tobiasmd/maestro/internal/plan"
	"github.com/tobiasmd/maestro/pkg/models"
)

// Planner asks a completer to decompose a request into agent steps
// with explicit dependencies.
type Planner struct {
	completer llm.Completer
}

// NewPlanner creates a planner over the given completer.
func NewPlanner(completer llm.Completer) *Planner {
	return &Planner{completer: completer}
}

// Plan decomposes a request into steps for the given agents. The
// returned steps are validated for index range and cycles.
func (p *Planner) Plan(ctx context.Context, request string, agentNames []string) ([]models.Step, error) {
	raw, err := p.completer.Complete(ctx, plannerPrompt(agentNames), []llm.Message{
		{Role: llm.RoleUser, Content: request},
	})
	if err != nil {
		return nil, fmt.Errorf("planner completion failed: %w", err)
	}

	steps, err := plan.ParseSteps(raw)
	if err != nil {
		return nil, fmt.Errorf("planner output: %w", err)
	}
	if err := plan.ValidateSteps(steps); err != nil {
		return nil, fmt.Errorf("planner produced invalid plan: %w", err)
	}
	return steps, nil
}

func plannerPrompt(agentNames []string) string {
	var agents strings.Builder
	for _, name := range agentNames {
		fmt.Fprintf(&agents, "- %s\n", name)
	}

	return "You are a planning agent. Decompose the user's request into steps for the agents below.\n" +
		"Available agents:\n" + agents.String() + "\n" +
		"CRITICAL: You must respond with ONLY a valid JSON array, nothing else.\n" +
		"Return a JSON array of steps in this exact format:\n" +
		"[\n" +
		`  {"agent": "agent_name", "task": "specific task", "dependencies": []},` + "\n" +
		`  {"agent": "agent_name", "task": "another task", "dependencies": [0]}` + "\n" +
		"]\n" +
		"RULES:\n" +
		"1. Steps with empty dependencies run in PARALLEL\n" +
		"2. Use dependencies: [0] to make a step wait for step 0\n" +
		"3. Dependencies are zero-based indices of earlier steps\n" +
		"4. Group independent tasks to leverage parallelism\n" +
		"5. No markdown code blocks, no extra text"
}
