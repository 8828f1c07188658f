package chat

import (
	"log/slog"
	"strings"

	"github.com/Aniruddha-Ponnuri/Multi-ChatBot/pkg/llm"
	"github.com/Aniruddha-Ponnuri/Multi-ChatBot/pkg/prompt"
)

const defaultSummarizationSystem = "You are a helpful assistant that summarizes conversations concisely."

// SummarizeConversation collapses a transcript into a bounded summary.
// Markup is stripped first so the model reasons over plain text turns.
// An empty or markup-only conversation returns "" without a model call;
// empty model output falls back to the cleaned conversation verbatim.
// Only a failed model call is returned as an error, for the caller's
// truncation fallback.
func (o *Orchestrator) SummarizeConversation(conversation string) (string, error) {
	if strings.TrimSpace(conversation) == "" {
		return "", nil
	}

	cleaned := StripHTML(conversation)
	if strings.TrimSpace(cleaned) == "" {
		slog.Warn("conversation is empty after cleaning HTML tags")
		return "", nil
	}

	system, ok := o.prompts.Lookup(prompt.Summarization)
	if !ok {
		slog.Warn("summarization template not configured, using default")
		system = defaultSummarizationSystem
	}

	summary, err := o.llm.Generate(llm.GenerateRequest{
		Prompt:    cleaned,
		System:    system,
		MaxTokens: o.summaryMaxTokens,
	})
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(summary) == "" {
		slog.Warn("model returned empty summary, keeping cleaned conversation")
		return cleaned, nil
	}

	return summary, nil
}
