package main

import (
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/tobiasmd/maestro/internal/agents"
	"github.com/tobiasmd/maestro/internal/config"
	"github.com/tobiasmd/maestro/internal/executor"
	"github.com/tobiasmd/maestro/internal/llm"
	"github.com/tobiasmd/maestro/internal/tools"
	"github.com/tobiasmd/maestro/internal/tools/builtin"
	"github.com/tobiasmd/maestro/internal/trace"
)

// completerFactory builds a completer for a model name. An empty model
// uses the provider's configured default.
type completerFactory func(model string) (llm.Completer, error)

// newCompleter builds the LLM completer selected by the config. A
// non-empty model overrides the configured one.
func newCompleter(cfg *config.Config, model string) (llm.Completer, error) {
	switch cfg.Provider {
	case "openai":
		if model == "" {
			model = cfg.OpenAI.Model
		}
		return llm.NewOpenAI(llm.OpenAIConfig{
			Model:   model,
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
		})
	case "anthropic", "":
		if model == "" {
			model = cfg.Anthropic.Model
		}
		return llm.NewAnthropic(llm.AnthropicConfig{
			Model:         anthropic.Model(model),
			APIKey:        cfg.Anthropic.APIKey,
			UseAWSBedrock: cfg.Anthropic.UseAWSBedrock,
			AWSRegion:     cfg.Anthropic.AWSRegion,
			AWSProfile:    cfg.Anthropic.AWSProfile,
		})
	default:
		return nil, fmt.Errorf("unknown provider %q (want anthropic or openai)", cfg.Provider)
	}
}

// newTraceLogger builds the configured trace sinks. The returned close
// function flushes and closes all underlying sinks.
func newTraceLogger(cfg *config.Config) (trace.Logger, func() error, error) {
	var sinks []trace.Logger
	var closers []func() error

	if cfg.Trace.Path != "" {
		jsonl, err := trace.OpenJSONL(cfg.Trace.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open trace file: %w", err)
		}
		sinks = append(sinks, jsonl)
		closers = append(closers, jsonl.Close)
	}
	if cfg.Trace.DB != "" {
		store, err := trace.OpenStore(cfg.Trace.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("open trace store: %w", err)
		}
		sinks = append(sinks, store)
		closers = append(closers, store.Close)
	}

	closeAll := func() error {
		var first error
		for _, c := range closers {
			if err := c(); err != nil && first == nil {
				first = err
			}
		}
		return first
	}

	switch len(sinks) {
	case 0:
		return trace.Nop{}, closeAll, nil
	case 1:
		return sinks[0], closeAll, nil
	default:
		return trace.Multi(sinks...), closeAll, nil
	}
}

// newRegistry builds the tool registry with the built-in toolsets. Each
// toolset is registered both under its own scope and unscoped, so both
// specialized and general agents can reach them.
func newRegistry() *tools.Registry {
	b := tools.NewBuilder()
	builtin.RegisterMath(b, "")
	builtin.RegisterString(b, "")
	builtin.RegisterMath(b, "math")
	builtin.RegisterString(b, "string")
	return b.Build()
}

// newRunner builds the agent runner, loading declarations from the
// agents file when configured and falling back to the built-in agents.
// A definition with a model of its own gets a dedicated completer.
func newRunner(cfg *config.Config, completers completerFactory, registry *tools.Registry, exec *executor.Executor) (*agents.Runner, error) {
	runner := agents.NewRunner()

	var defs []agents.AgentDef
	if cfg.Agents.File != "" {
		loaded, err := agents.LoadDefs(cfg.Agents.File)
		if err != nil {
			return nil, err
		}
		defs = loaded
	} else {
		defs = []agents.AgentDef{
			{Name: "math", Description: "arithmetic over numbers", Scope: "math"},
			{Name: "string", Description: "text manipulation", Scope: "string"},
		}
	}

	for _, def := range defs {
		completer, err := completers(def.Model)
		if err != nil {
			return nil, fmt.Errorf("agent %s: %w", def.Name, err)
		}
		runner.Register(agents.NewAgent(agents.AgentConfig{
			Name:         def.Name,
			Description:  def.Description,
			Scope:        def.Scope,
			SystemPrompt: def.SystemPrompt,
		}, completer, registry, exec))
	}
	return runner, nil
}
