package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tobiasmd/maestro/internal/agents"
	"github.com/tobiasmd/maestro/internal/config"
	"github.com/tobiasmd/maestro/internal/executor"
	"github.com/tobiasmd/maestro/internal/llm"
	"github.com/tobiasmd/maestro/internal/orchestrator"
	"github.com/tobiasmd/maestro/internal/signals"
	"github.com/tobiasmd/maestro/pkg/models"
)

var (
	runMaxParallel int
	runStrictDeps  bool
)

var runCmd = &cobra.Command{
	Use:   "run <request>",
	Short: "Plan and execute a request across agents",
	Long: `Run decomposes the request into agent steps, then executes them in
dependency-ordered waves. Independent steps run in parallel; dependent
steps receive upstream results as task context.

A stop file dropped into .maestro/signals halts the run between waves;
a pause file holds the next wave until it is removed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		request := args[0]

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("max-parallel") {
			cfg.Orchestrator.MaxParallel = runMaxParallel
		}
		if cmd.Flags().Changed("strict-deps") {
			cfg.Orchestrator.StrictDeps = runStrictDeps
		}

		base, err := newCompleter(cfg, "")
		if err != nil {
			return err
		}

		// Per-model completers are created on demand; all of them feed
		// the usage summary printed after the run.
		completers := []llm.Completer{base}
		factory := completerFactory(func(model string) (llm.Completer, error) {
			if model == "" {
				return base, nil
			}
			c, err := newCompleter(cfg, model)
			if err != nil {
				return nil, err
			}
			completers = append(completers, c)
			return c, nil
		})

		traceLogger, closeTrace, err := newTraceLogger(cfg)
		if err != nil {
			return err
		}
		defer closeTrace()

		registry := newRegistry()
		exec := executor.New(registry, traceLogger)
		runner, err := newRunner(cfg, factory, registry, exec)
		if err != nil {
			return err
		}

		sig, err := signals.NewManager(".maestro")
		if err != nil {
			return err
		}
		defer sig.Close()
		sig.Clear()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		runID := uuid.New().String()[:8]
		fmt.Printf("%s run %s\n", color.CyanString("maestro"), runID)

		planner := agents.NewPlanner(base)
		steps, err := planner.Plan(ctx, request, runner.Names())
		if err != nil {
			return err
		}

		fmt.Printf("\n%s %d step(s)\n", color.New(color.Bold).Sprint("Plan:"), len(steps))
		for i, step := range steps {
			deps := "parallel"
			if len(step.Dependencies) > 0 {
				deps = fmt.Sprintf("after %v", step.Dependencies)
			}
			fmt.Printf("  %d. [%s] %s (%s)\n", i, step.Agent, step.Task, deps)
		}

		orch := orchestrator.New(runner, orchestrator.Options{
			StrictDeps:  cfg.Orchestrator.StrictDeps,
			MaxParallel: cfg.Orchestrator.MaxParallel,
			Signals:     sig,
			Trace:       traceLogger,
		})

		results, runErr := orch.Run(ctx, steps)

		fmt.Printf("\n%s\n", color.New(color.Bold).Sprint("Results:"))
		var finals []string
		for _, res := range results {
			switch res.Status {
			case models.StepStatusFailed:
				fmt.Printf("  %s [%s] %s\n", color.RedString("✗"), res.Agent, res.Err)
			case models.StepStatusDone:
				fmt.Printf("  %s [%s] %s\n", color.GreenString("✓"), res.Agent, res.Summary)
				if res.Summary != "" {
					finals = append(finals, fmt.Sprintf("%s: %s", res.Agent, res.Summary))
				}
			default:
				fmt.Printf("  %s [%s] %s\n", color.YellowString("?"), res.Agent, res.Summary)
			}
		}
		if unfinished := len(steps) - len(results); unfinished > 0 {
			fmt.Printf("  %s\n", color.YellowString("%d step(s) did not run", unfinished))
		}

		combined := "No results"
		if len(finals) > 0 {
			combined = strings.Join(finals, " | ")
		}
		fmt.Printf("\n%s %s\n", color.New(color.Bold).Sprint("Final:"), combined)

		var calls int
		var inTok, outTok int64
		for _, c := range completers {
			ut, ok := c.(llm.UsageTracker)
			if !ok {
				continue
			}
			in, out := ut.Tracker().Total()
			inTok += in
			outTok += out
			calls += ut.Tracker().Calls()
		}
		if calls > 0 {
			fmt.Printf("%s %d call(s), %d in / %d out tokens\n",
				color.New(color.Bold).Sprint("Usage:"), calls, inTok, outTok)
		}

		if runErr != nil {
			if errors.Is(runErr, orchestrator.ErrStopped) {
				fmt.Println(color.YellowString("Run stopped by signal."))
				return nil
			}
			return runErr
		}
		return nil
	},
}

func init() {
	runCmd.Flags().IntVar(&runMaxParallel, "max-parallel", 5, "Maximum concurrent agent dispatches per wave")
	runCmd.Flags().BoolVar(&runStrictDeps, "strict-deps", false, "Treat a dependency stall as an error")
}
