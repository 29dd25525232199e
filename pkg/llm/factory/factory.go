package factory

import (
	"fmt"

	"travelmate-be/pkg/llm"
	"travelmate-be/pkg/llm/openai"
)

func NewLLMProvider(providerType, apiKey, baseURL, modelName string) (llm.LLMProvider, error) {
	switch providerType {
	case "openai":
		return openai.NewOpenAIProvider(apiKey, baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
