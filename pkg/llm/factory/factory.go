package factory

import (
	"fmt"

	"ordermypdf-be/pkg/llm"
	"ordermypdf-be/pkg/llm/huggingface"
	"ordermypdf-be/pkg/llm/ollama"
)

// New builds the configured LLM backend for the rewrite stage.
func New(providerType, model, ollamaBaseURL, hfAPIKey string) (llm.Provider, error) {
	switch providerType {
	case "ollama":
		return ollama.New(ollamaBaseURL, model), nil
	case "huggingface":
		return huggingface.New(hfAPIKey, "", model), nil
	}
	return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
}
