package chat

import (
	"log/slog"
	"strings"

	"github.com/Aniruddha-Ponnuri/Multi-ChatBot/internal/model"
	"github.com/Aniruddha-Ponnuri/Multi-ChatBot/pkg/llm"
	"github.com/Aniruddha-Ponnuri/Multi-ChatBot/pkg/prompt"
)

const (
	titleTemperature = 0.5
	titleMaxTokens   = 30

	defaultSessionTitle = "New Chat Session"
)

// GenerateTitle produces a session title of at most 50 characters from the
// first question. Model failure falls back to the question's first five
// words; a blank question is the caller's error.
func (o *Orchestrator) GenerateTitle(question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyQuestion
	}

	formatted, err := o.prompts.Format(prompt.SessionTitle, map[string]string{
		"question": question,
	})
	if err != nil {
		slog.Warn("session title template unavailable, using fallback title", "error", err)
		return fallbackTitle(question), nil
	}

	title, err := o.llm.Generate(llm.GenerateRequest{
		Prompt:      formatted,
		Temperature: titleTemperature,
		MaxTokens:   titleMaxTokens,
	})
	if err != nil {
		slog.Error("error generating session title", "error", err)
		return fallbackTitle(question), nil
	}

	title = strings.Trim(strings.TrimSpace(title), `"'`)
	if title == "" {
		slog.Warn("model returned empty title, using fallback")
		return fallbackTitle(question), nil
	}

	return truncateTitle(title), nil
}

func fallbackTitle(question string) string {
	words := strings.Fields(question)
	if len(words) > 5 {
		words = words[:5]
	}

	title := truncateTitle(strings.Join(words, " "))
	if title == "" {
		return defaultSessionTitle
	}
	return title
}

func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) > model.MaxTitleLength {
		return string(runes[:model.MaxTitleLength])
	}
	return title
}
