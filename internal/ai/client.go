package ai

import (
	openai "github.com/sashabaranov/go-openai"
)

// NewClient builds an OpenAI-compatible client. A non-empty baseURL
// redirects all calls to a compatible endpoint (Ollama, vLLM, a proxy).
func NewClient(apiKey, baseURL string) *openai.Client {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(clientConfig)
}
