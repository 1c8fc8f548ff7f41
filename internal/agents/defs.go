package agents

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AgentDef is an agent declaration loaded from an agents file.
type AgentDef struct {
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	Scope        string `yaml:"scope"`
	SystemPrompt string `yaml:"system_prompt"`
	// Model overrides the provider's default model for this agent only.
	Model string `yaml:"model"`
}

type agentsFile struct {
	Agents []AgentDef `yaml:"agents"`
}

// LoadDefs reads agent declarations from a YAML file.
func LoadDefs(path string) ([]AgentDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read agents file: %w", err)
	}
	return ParseDefs(data)
}

// ParseDefs parses agent declarations from YAML bytes.
func ParseDefs(data []byte) ([]AgentDef, error) {
	var f agentsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse agents file: %w", err)
	}
	for i, def := range f.Agents {
		if def.Name == "" {
			return nil, fmt.Errorf("agent %d: missing name", i)
		}
	}
	return f.Agents, nil
}
