package factory

import (
	"fmt"
	"strings"

	"hcp-crm-be/pkg/llm"
	"hcp-crm-be/pkg/llm/groq"
	"hcp-crm-be/pkg/llm/ollama"
)

const (
	ProviderGroq        = "groq"
	ProviderHuggingFace = "huggingface"
	ProviderOllama      = "ollama"
)

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch strings.ToLower(strings.TrimSpace(providerType)) {
	case ProviderGroq, "":
		return groq.NewProvider(apiKey, baseURL, modelName), nil
	case ProviderHuggingFace:
		if baseURL == "" {
			baseURL = groq.DefaultHuggingFaceBaseURL
		}
		return groq.NewProvider(apiKey, baseURL, modelName, groq.WithName(ProviderHuggingFace)), nil
	case ProviderOllama:
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
