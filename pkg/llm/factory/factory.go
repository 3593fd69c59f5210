package factory

import (
	"fmt"

	"ai-minutes-be/pkg/llm"
	"ai-minutes-be/pkg/llm/gemini"
	"ai-minutes-be/pkg/llm/ollama"
	"ai-minutes-be/pkg/llm/openai"
)

type ProviderConfig struct {
	Provider  string // "openai", "gemini", "ollama"
	ModelName string
	ApiKey    string
	BaseURL   string // ollama only
}

func NewLLMProvider(cfg ProviderConfig) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.ApiKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return openai.NewOpenAIProvider(cfg.ApiKey, cfg.ModelName), nil
	case "gemini":
		if cfg.ApiKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		return gemini.NewGeminiProvider(cfg.ApiKey, cfg.ModelName), nil
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, cfg.ModelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
