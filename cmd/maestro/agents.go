package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tobiasmd/maestro/internal/config"
	"github.com/tobiasmd/maestro/internal/executor"
	"github.com/tobiasmd/maestro/internal/llm"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the registered agents and their tools",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// Listing never calls the provider, so a stub completer avoids
		// requiring API keys.
		stub := llm.CompleterFunc(func(ctx context.Context, system string, messages []llm.Message) (string, error) {
			return "", nil
		})
		factory := completerFactory(func(string) (llm.Completer, error) {
			return stub, nil
		})

		registry := newRegistry()
		exec := executor.New(registry, nil)
		runner, err := newRunner(cfg, factory, registry, exec)
		if err != nil {
			return err
		}

		for _, name := range runner.Names() {
			agent, _ := runner.Lookup(name)
			fmt.Printf("%s  %s\n", color.New(color.Bold).Sprint(name), agent.Description)
			for _, line := range strings.Split(registry.Toolset(agent.Scope()).List(), "\n") {
				if line == "" {
					continue
				}
				fmt.Printf("    %s\n", line)
			}
		}
		return nil
	},
}
