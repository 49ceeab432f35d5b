package llm

import "fmt"

const defaultGroqBaseURL = "https://api.groq.com/openai/v1"

// GroqProvider targets Groq's hosted Llama models through their
// OpenAI-compatible endpoint.
type GroqProvider struct {
	*OpenAIProvider
}

// NewGroqProvider creates a provider targeting the Groq API.
func NewGroqProvider(cfg GroqConfig) (*GroqProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = "llama-3.1-8b-instant"
	}

	return &GroqProvider{
		OpenAIProvider: newOpenAICompatible(cfg.APIKey, baseURL, model),
	}, nil
}
