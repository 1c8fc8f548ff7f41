package plan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tobiasmd/maestro/pkg/models"
)

// ValidateSteps checks that every dependency index references a sibling step
// and that no step (transitively) depends on itself. The orchestrator
// tolerates bad graphs at runtime by stalling gracefully; callers that want
// a hard error up front use this instead.
func ValidateSteps(steps []models.Step) error {
	for i, step := range steps {
		for _, dep := range step.Dependencies {
			if dep < 0 || dep >= len(steps) {
				return fmt.Errorf("step %d depends on out-of-range step %d (have %d steps)", i, dep, len(steps))
			}
		}
	}

	// Color states: 0 = unvisited, 1 = in progress, 2 = done.
	state := make([]int, len(steps))

	var visit func(i int, path []int) error
	visit = func(i int, path []int) error {
		if state[i] == 2 {
			return nil
		}
		if state[i] == 1 {
			cycleStart := 0
			for p, idx := range path {
				if idx == i {
					cycleStart = p
					break
				}
			}
			cycle := append(path[cycleStart:], i)
			parts := make([]string, len(cycle))
			for p, idx := range cycle {
				parts[p] = strconv.Itoa(idx)
			}
			return fmt.Errorf("circular dependency detected: %s", strings.Join(parts, " -> "))
		}

		state[i] = 1
		for _, dep := range steps[i].Dependencies {
			if err := visit(dep, append(path, i)); err != nil {
				return err
			}
		}
		state[i] = 2
		return nil
	}

	for i := range steps {
		if state[i] == 0 {
			if err := visit(i, nil); err != nil {
				return err
			}
		}
	}

	return nil
}
