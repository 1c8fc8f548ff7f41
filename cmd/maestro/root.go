package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/tobiasmd/maestro/internal/executor"
	"github.com/tobiasmd/maestro/internal/orchestrator"
	"github.com/tobiasmd/maestro/internal/plan"
)

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:   "maestro",
	Short: "Multi-agent task orchestration",
	Long: `Maestro decomposes requests into agent steps, executes independent
steps in parallel waves, and chains dependent steps by feeding upstream
results into downstream tasks.

Each agent plans tool calls with an LLM and executes them against its
toolset, threading intermediate results step to step.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugFlag {
			logger := log.New(os.Stderr, "[debug] ", log.Ltime)
			plan.SetDebugLog(logger.Printf)
			executor.SetDebugLog(logger.Printf)
			orchestrator.SetDebugLog(logger.Printf)
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging to stderr")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(agentsCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(versionCmd)
}
