package chat

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Aniruddha-Ponnuri/Multi-ChatBot/pkg/llm"
	"github.com/Aniruddha-Ponnuri/Multi-ChatBot/pkg/prompt"
)

const (
	parsingTemperature = 0.7
	parsingMaxTokens   = 2000
)

// ParseContent reformats raw reference material (typically the knowledge
// base file) as HTML via the model. Empty model output falls back to the
// original content unchanged.
func (o *Orchestrator) ParseContent(content, parseDescription string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", errors.New("content cannot be empty")
	}
	if strings.TrimSpace(parseDescription) == "" {
		return "", errors.New("parse description cannot be empty")
	}

	inputPrompt, err := o.prompts.Format(prompt.Parsing, map[string]string{
		"content":           content,
		"parse_description": parseDescription,
	})
	if err != nil {
		slog.Warn("parsing template not configured, using inline fallback", "error", err)
		inputPrompt = fmt.Sprintf(
			"Parse the following content and return it formatted as HTML (use <b> for bold, <br> for line breaks, and <ul> for bullet points):\n\"\"\"%s\"\"\"\n\n%s",
			content, parseDescription,
		)
	}

	parsed, err := o.llm.Generate(llm.GenerateRequest{
		Prompt:      inputPrompt,
		Temperature: parsingTemperature,
		MaxTokens:   parsingMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("parsing content: %w", err)
	}

	if strings.TrimSpace(parsed) == "" {
		slog.Warn("model returned empty parsed content, keeping original")
		return content, nil
	}

	return parsed, nil
}
