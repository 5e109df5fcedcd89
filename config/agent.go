package config

import "fmt"

// AgentSettings configures the tool-calling loop
type AgentSettings struct {
	Model            string `hcl:"model"`
	MaxIterations    int    `hcl:"max_iterations,optional"`
	ContextItemLimit int    `hcl:"context_item_limit,optional"`
	MaxTokens        int    `hcl:"max_tokens,optional"`
}

func (a *AgentSettings) Defaults() {
	if a.MaxIterations == 0 {
		a.MaxIterations = 8
	}
	if a.ContextItemLimit == 0 {
		a.ContextItemLimit = 50
	}
	if a.MaxTokens == 0 {
		a.MaxTokens = 4096
	}
}

func (a *AgentSettings) Validate(models []Model) error {
	if a.Model == "" {
		return fmt.Errorf("agent: model is required")
	}
	found := false
	for _, m := range models {
		if m.Name == a.Model {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("agent: model '%s' is not defined", a.Model)
	}
	if a.MaxIterations < 1 {
		return fmt.Errorf("agent: max_iterations must be at least 1, got %d", a.MaxIterations)
	}
	if a.ContextItemLimit < 1 {
		return fmt.Errorf("agent: context_item_limit must be at least 1, got %d", a.ContextItemLimit)
	}
	if a.MaxTokens < 1 {
		return fmt.Errorf("agent: max_tokens must be at least 1, got %d", a.MaxTokens)
	}
	return nil
}
