// Package orchestrator executes dependency-ordered step plans in
// concurrent waves. All steps whose dependencies are satisfied run in
// parallel; the next wave starts when the current one fully completes.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tobiasmd/maestro/internal/trace"
	"github.com/tobiasmd/maestro/pkg/models"
)

// ErrDependencyStall is returned in strict mode when pending steps
// remain but none can run, which indicates a cycle or a dependency on
// a missing step.
var ErrDependencyStall = errors.New("no steps ready to execute, but pending steps remain")

// ErrStopped is returned when a stop signal interrupts the run between
// waves. Completed results are still returned alongside it.
var ErrStopped = errors.New("stop signal received")

// Dispatcher routes a single step to an agent and returns its result.
// Failures are reported in-band on the StepResult.
type Dispatcher interface {
	Dispatch(ctx context.Context, agent, task string) models.StepResult
}

// SignalChecker reports run-control signals. Both checks happen between
// waves: stop ends the run, pause holds the next wave until it clears.
type SignalChecker interface {
	ShouldStop() bool
	ShouldPause() bool
}

// pausePoll is how often a paused run re-checks its signals.
var pausePoll = 500 * time.Millisecond

// Options configures an Orchestrator.
type Options struct {
	// StrictDeps makes a dependency stall an error instead of a
	// graceful halt with partial results.
	StrictDeps bool
	// MaxParallel caps concurrent dispatches within a wave. Zero or
	// negative means unbounded.
	MaxParallel int
	// Signals, when set, is consulted between waves to stop or pause a run.
	Signals SignalChecker
	// Trace receives one entry per completed step. Nil disables tracing.
	Trace trace.Logger
}

// Orchestrator runs step plans through a Dispatcher.
type Orchestrator struct {
	dispatcher Dispatcher
	opts       Options
	trace      trace.Logger
}

// New creates an orchestrator.
func New(dispatcher Dispatcher, opts Options) *Orchestrator {
	logger := opts.Trace
	if logger == nil {
		logger = trace.Nop{}
	}
	return &Orchestrator{dispatcher: dispatcher, opts: opts, trace: logger}
}

// Run executes the plan and returns results for completed steps in
// original plan order. A stall with StrictDeps off, a stop signal, or
// a cancelled context all return the partial results accumulated so
// far; only strict-mode stalls and interruptions surface as errors.
func (o *Orchestrator) Run(ctx context.Context, steps []models.Step) ([]models.StepResult, error) {
	completed := make(map[int]models.StepResult, len(steps))

	pending := make([]int, len(steps))
	for i := range steps {
		pending[i] = i
	}

	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			return collectResults(completed), err
		}
		if o.opts.Signals != nil && o.opts.Signals.ShouldStop() {
			debugLog("stop signal received with %d step(s) pending", len(pending))
			o.log(ctx, map[string]any{
				"event":   "run_stopped",
				"pending": len(pending),
				"status":  string(models.StepStatusPending),
			})
			return collectResults(completed), ErrStopped
		}
		if err := o.waitWhilePaused(ctx); err != nil {
			return collectResults(completed), err
		}

		var ready, remaining []int
		for _, idx := range pending {
			if depsSatisfied(steps[idx].Dependencies, completed) {
				ready = append(ready, idx)
			} else {
				remaining = append(remaining, idx)
			}
		}

		if len(ready) == 0 {
			debugLog("stall: %d step(s) pending, none ready", len(remaining))
			o.log(ctx, map[string]any{
				"event":  "steps_blocked",
				"steps":  remaining,
				"status": string(models.StepStatusBlocked),
			})
			if o.opts.StrictDeps {
				return collectResults(completed),
					fmt.Errorf("%w: %d step(s) blocked", ErrDependencyStall, len(remaining))
			}
			break
		}

		debugLog("executing wave of %d step(s): %v", len(ready), ready)
		o.log(ctx, map[string]any{
			"event":  "wave_start",
			"steps":  ready,
			"status": string(models.StepStatusRunning),
		})

		// Augment tasks before launching so goroutines only read
		// completed results, never the shared map.
		tasks := make([]string, len(ready))
		for i, idx := range ready {
			tasks[i] = augmentTask(steps[idx], completed)
		}

		waveResults := make([]models.StepResult, len(ready))

		var sem chan struct{}
		if o.opts.MaxParallel > 0 {
			sem = make(chan struct{}, o.opts.MaxParallel)
		}

		var wg sync.WaitGroup
		for i, idx := range ready {
			wg.Add(1)
			go func(slot, stepIdx int, task string) {
				defer wg.Done()
				if sem != nil {
					sem <- struct{}{}
					defer func() { <-sem }()
				}
				waveResults[slot] = o.dispatcher.Dispatch(ctx, steps[stepIdx].Agent, task)
			}(i, idx, tasks[i])
		}
		wg.Wait()

		for i, idx := range ready {
			res := waveResults[i]
			if res.Failed() {
				res.Status = models.StepStatusFailed
			} else {
				res.Status = models.StepStatusDone
			}
			completed[idx] = res
			o.logStep(ctx, idx, steps[idx], res)
		}

		pending = remaining
	}

	return collectResults(completed), nil
}

// waitWhilePaused blocks until the pause signal clears. A stop signal or
// context cancellation during the pause ends the run.
func (o *Orchestrator) waitWhilePaused(ctx context.Context) error {
	sig := o.opts.Signals
	if sig == nil || !sig.ShouldPause() {
		return nil
	}

	debugLog("pause signal received, holding before next wave")
	for sig.ShouldPause() {
		if sig.ShouldStop() {
			return ErrStopped
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pausePoll):
		}
	}
	debugLog("pause cleared, resuming")
	return nil
}

func (o *Orchestrator) logStep(ctx context.Context, idx int, step models.Step, result models.StepResult) {
	fields := map[string]any{
		"step":         idx,
		"agent":        step.Agent,
		"task":         step.Task,
		"dependencies": step.Dependencies,
		"summary":      result.Summary,
		"status":       string(result.Status),
	}
	if result.Err != "" {
		fields["error"] = result.Err
	}
	o.log(ctx, fields)
}

func (o *Orchestrator) log(ctx context.Context, fields map[string]any) {
	if err := o.trace.Log(ctx, fields); err != nil {
		debugLog("trace log failed: %v", err)
	}
}

func depsSatisfied(deps []int, completed map[int]models.StepResult) bool {
	for _, dep := range deps {
		if _, ok := completed[dep]; !ok {
			return false
		}
	}
	return true
}

// augmentTask prepends the summaries of a step's dependencies to its
// task so agents see upstream results without sharing state.
func augmentTask(step models.Step, completed map[int]models.StepResult) string {
	if len(step.Dependencies) == 0 {
		return step.Task
	}

	lines := make([]string, 0, len(step.Dependencies))
	for _, dep := range step.Dependencies {
		res := completed[dep]
		lines = append(lines, fmt.Sprintf("Step %d (%s): %s", dep, res.Agent, res.Summary))
	}
	return "Context from previous steps:\n" + strings.Join(lines, "\n") + "\n\nYour task: " + step.Task
}

// collectResults returns completed results ordered by step index.
func collectResults(completed map[int]models.StepResult) []models.StepResult {
	indices := make([]int, 0, len(completed))
	for idx := range completed {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	out := make([]models.StepResult, 0, len(indices))
	for _, idx := range indices {
		out = append(out, completed[idx])
	}
	return out
}
