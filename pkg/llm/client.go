package llm

import (
	"fmt"
	"os"
)

// GenerateRequest carries one text-generation call. A zero Temperature or
// MaxTokens means "use the provider default".
type GenerateRequest struct {
	Prompt      string
	System      string
	Temperature float64
	MaxTokens   int
}

type Client interface {
	Generate(req GenerateRequest) (string, error)
	ModelName() string
}

// NewClientFromEnv picks a provider by available API keys, Anthropic first.
func NewClientFromEnv() (Client, error) {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return NewAnthropicClient(key), nil
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return NewOpenAIClient(key), nil
	}
	return nil, fmt.Errorf("no LLM API key configured (set ANTHROPIC_API_KEY or OPENAI_API_KEY)")
}
