package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tobiasmd/maestro/internal/agents"
	"github.com/tobiasmd/maestro/internal/config"
	"github.com/tobiasmd/maestro/internal/executor"
	"github.com/tobiasmd/maestro/internal/llm"
)

var planJSON bool

var planCmd = &cobra.Command{
	Use:   "plan <request>",
	Short: "Show the step plan for a request without executing it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		completer, err := newCompleter(cfg, "")
		if err != nil {
			return err
		}
		factory := completerFactory(func(model string) (llm.Completer, error) {
			if model == "" {
				return completer, nil
			}
			return newCompleter(cfg, model)
		})

		registry := newRegistry()
		exec := executor.New(registry, nil)
		runner, err := newRunner(cfg, factory, registry, exec)
		if err != nil {
			return err
		}

		planner := agents.NewPlanner(completer)
		steps, err := planner.Plan(context.Background(), args[0], runner.Names())
		if err != nil {
			return err
		}

		if planJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(steps)
		}

		for i, step := range steps {
			deps := "parallel"
			if len(step.Dependencies) > 0 {
				deps = fmt.Sprintf("after %v", step.Dependencies)
			}
			fmt.Printf("%d. [%s] %s (%s)\n", i, step.Agent, step.Task, deps)
		}
		return nil
	},
}

func init() {
	planCmd.Flags().BoolVar(&planJSON, "json", false, "Print the plan as JSON")
}
