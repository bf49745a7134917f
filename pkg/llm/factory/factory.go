package factory

import (
	"fmt"

	"xlai-be/pkg/llm"
	"xlai-be/pkg/llm/ollama"
	"xlai-be/pkg/llm/openai"
)

func NewLLMProvider(providerType, modelName, apiKey, baseURL string) (llm.LLMProvider, error) {
	switch providerType {
	case "openai", "":
		return openai.NewOpenAIProvider(apiKey, baseURL, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
