package config

import "fmt"

type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderGroq      Provider = "groq"
	ProviderGemini    Provider = "gemini"
	ProviderAnthropic Provider = "anthropic"
)

// SupportedProviders lists the providers a model block may name
var SupportedProviders = []Provider{ProviderOpenAI, ProviderGroq, ProviderGemini, ProviderAnthropic}

// Model represents a model provider configuration
type Model struct {
	Name     string   `hcl:"name,label"`
	Provider Provider `hcl:"provider"`
	Model    string   `hcl:"model"`
	APIKey   string   `hcl:"api_key,optional"`
	BaseURL  string   `hcl:"base_url,optional"`
}

func (m *Model) Validate() error {
	supported := false
	for _, p := range SupportedProviders {
		if m.Provider == p {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("Unsupported provider; Provider '%s' is not supported. Supported providers: %v", m.Provider, SupportedProviders)
	}
	if m.Model == "" {
		return fmt.Errorf("model name is required")
	}
	return nil
}
