package agents

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/tobiasmd/maestro/pkg/models"
)

// Runner routes tasks to registered agents by name. Registration is
// explicit; there is no implicit global set.
type Runner struct {
	mu     sync.RWMutex
	agents map[string]*Agent
}

// NewRunner creates an empty runner.
func NewRunner() *Runner {
	return &Runner{agents: make(map[string]*Agent)}
}

// Register adds an agent, replacing any previous agent with the same name.
func (r *Runner) Register(a *Agent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.agents[a.Name] = a
}

// Names returns the registered agent names in sorted order.
func (r *Runner) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.agents))
	for name := range r.agents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the agent registered under name.
func (r *Runner) Lookup(name string) (*Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.agents[name]
	return a, ok
}

// Dispatch routes a task to the named agent. An unknown agent name
// produces an in-band error result so a single bad step cannot take
// down a whole run.
func (r *Runner) Dispatch(ctx context.Context, agent, task string) models.StepResult {
	a, ok := r.Lookup(agent)
	if !ok {
		return models.StepResult{
			Agent: agent,
			Task:  task,
			Err:   fmt.Sprintf("Unknown agent: %s", agent),
		}
	}
	return a.Run(ctx, task)
}
