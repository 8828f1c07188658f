// Package chat drives one question/answer cycle end to end: symbol
// extraction, stock context, prompt assembly, generation, history
// summarization and session persistence. Prompt assembly and the primary
// generation call are the only fatal stages; everything else degrades to a
// documented fallback.
package chat

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Aniruddha-Ponnuri/Multi-ChatBot/internal/model"
	"github.com/Aniruddha-Ponnuri/Multi-ChatBot/pkg/llm"
	"github.com/Aniruddha-Ponnuri/Multi-ChatBot/pkg/prompt"
)

var ErrEmptyQuestion = errors.New("question cannot be empty")

const historyTruncateChars = 1000

type SessionStore interface {
	GetSession(id string) (*model.ChatSession, error)
	CreateSession(id, title string) (bool, error)
	SaveMessage(sessionID, role, content string, rlUsed bool) (int64, error)
}

type StockContextBuilder interface {
	BuildContext(symbols []string) string
}

type Config struct {
	// KnowledgeBase is set once at startup and never mutated per request.
	KnowledgeBase    string
	Temperature      float64
	MaxTokens        int
	SummaryMaxTokens int
}

type Orchestrator struct {
	llm              llm.Client
	prompts          *prompt.Store
	stocks           StockContextBuilder
	sessions         SessionStore
	knowledgeBase    string
	temperature      float64
	maxTokens        int
	summaryMaxTokens int
}

// NewOrchestrator wires the pipeline. stocks and sessions may be nil, which
// disables stock context and session persistence respectively.
func NewOrchestrator(client llm.Client, prompts *prompt.Store, stocks StockContextBuilder, sessions SessionStore, cfg Config) *Orchestrator {
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 2000
	}
	if cfg.SummaryMaxTokens == 0 {
		cfg.SummaryMaxTokens = 1000
	}

	return &Orchestrator{
		llm:              client,
		prompts:          prompts,
		stocks:           stocks,
		sessions:         sessions,
		knowledgeBase:    cfg.KnowledgeBase,
		temperature:      cfg.Temperature,
		maxTokens:        cfg.MaxTokens,
		summaryMaxTokens: cfg.SummaryMaxTokens,
	}
}

type AskRequest struct {
	Question  string
	History   string
	SessionID string
}

type AskResult struct {
	Answer            string
	SummarizedHistory string
	RLUsed            bool
	StockSymbols      []string
	// Session is set only when this request created the session.
	Session *model.ChatSession
}

func (o *Orchestrator) Ask(req AskRequest) (*AskResult, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	knowledgeBasePrompt := ""
	if o.knowledgeBase != "" {
		knowledgeBasePrompt = fmt.Sprintf("Here is some knowledge that can help:\n%s\n\n", o.knowledgeBase)
	}

	symbols, isStockQuery, err := o.ExtractSymbols(question)
	if err != nil {
		slog.Error("symbol extraction failed, continuing without stock data", "error", err)
		symbols, isStockQuery = nil, false
	}

	stockContext := ""
	if isStockQuery && len(symbols) > 0 && o.stocks != nil {
		slog.Info("stock query detected", "symbols", symbols)
		stockContext = o.stocks.BuildContext(symbols)
		if stockContext == "" {
			slog.Warn("no stock data could be fetched for any symbol", "symbols", symbols)
		}
	}

	promptText, err := o.buildPrompt(question, req.History, knowledgeBasePrompt, stockContext)
	if err != nil {
		return nil, fmt.Errorf("building prompt: %w", err)
	}

	system, _ := o.prompts.Lookup(prompt.System)
	answer, err := o.llm.Generate(llm.GenerateRequest{
		Prompt:      promptText,
		System:      system,
		Temperature: o.temperature,
		MaxTokens:   o.maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}

	formatted := FormatAsHTML(answer)

	updatedHistory := fmt.Sprintf("%s\nHuman: %s\nAI: %s", req.History, question, formatted)
	summarized, err := o.SummarizeConversation(updatedHistory)
	if err != nil {
		slog.Error("error summarizing history, truncating instead", "error", err)
		summarized = truncateTail(updatedHistory, historyTruncateChars)
	}

	result := &AskResult{
		Answer:            formatted,
		SummarizedHistory: summarized,
		RLUsed:            false,
		StockSymbols:      []string{},
	}
	if isStockQuery && len(symbols) > 0 {
		result.StockSymbols = symbols
	}

	if req.SessionID != "" && o.sessions != nil {
		o.persistSession(req.SessionID, question, formatted, result)
	}

	return result, nil
}

// buildPrompt picks one of three mutually exclusive templates: stock data
// present, no history, or the full financial template.
func (o *Orchestrator) buildPrompt(question, history, knowledgeBasePrompt, stockContext string) (string, error) {
	if stockContext != "" {
		if _, ok := o.prompts.Lookup(prompt.StockFinancial); ok {
			return o.prompts.Format(prompt.StockFinancial, map[string]string{
				"stock_context":         stockContext,
				"knowledge_base_prompt": knowledgeBasePrompt,
				"history":               history,
				"question":              question,
			})
		}

		slog.Info("stock template not configured, using financial prompt fallback")
		return o.prompts.Format(prompt.Financial, map[string]string{
			"knowledge_base_prompt": fmt.Sprintf("%s\n\nREAL-TIME STOCK DATA:\n%s", knowledgeBasePrompt, stockContext),
			"history":               history,
			"question":              question,
		})
	}

	if history == "" {
		return o.prompts.Format(prompt.GeneralQuestion, map[string]string{
			"question": question,
		})
	}

	return o.prompts.Format(prompt.Financial, map[string]string{
		"knowledge_base_prompt": knowledgeBasePrompt,
		"history":               history,
		"question":              question,
	})
}

// persistSession is best-effort: any failure is logged and the response
// still succeeds without session continuity.
func (o *Orchestrator) persistSession(sessionID, question, answer string, result *AskResult) {
	session, err := o.sessions.GetSession(sessionID)
	if err != nil {
		slog.Error("error looking up session, skipping persistence", "session_id", sessionID, "error", err)
		return
	}

	isNew := false
	if session == nil {
		title, err := o.GenerateTitle(question)
		if err != nil {
			slog.Error("failed to generate session title", "error", err)
			title = "New Chat"
		}

		created, err := o.sessions.CreateSession(sessionID, title)
		if err != nil {
			slog.Error("error creating session", "session_id", sessionID, "error", err)
			return
		}
		// A lost creation race means another request owns the "new session"
		// response payload.
		isNew = created
		if created {
			slog.Info("new session created", "session_id", sessionID, "title", title)
		}
	}

	if _, err := o.sessions.SaveMessage(sessionID, model.RoleUser, question, false); err != nil {
		slog.Error("error saving user message", "session_id", sessionID, "error", err)
		return
	}
	if _, err := o.sessions.SaveMessage(sessionID, model.RoleAssistant, answer, false); err != nil {
		slog.Error("error saving assistant message", "session_id", sessionID, "error", err)
		return
	}

	if isNew {
		created, err := o.sessions.GetSession(sessionID)
		if err != nil {
			slog.Error("error retrieving new session info", "session_id", sessionID, "error", err)
			return
		}
		result.Session = created
	}
}

// truncateTail keeps the last n characters, never splitting a rune.
func truncateTail(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}
