// Package prompt holds the named prompt templates used by the chat pipeline.
// Templates use {placeholder} slots; formatting fails on any unresolved slot.
package prompt

import (
	"fmt"
	"regexp"
)

const (
	System           = "system"
	Financial        = "financial"
	StockFinancial   = "stock_financial"
	GeneralQuestion  = "general_question"
	SymbolExtraction = "symbol_extraction"
	Summarization    = "summarization"
	SessionTitle     = "session_title"
	Parsing          = "parsing"
)

// Placeholder tokens are lowercase words; the JSON examples embedded in
// templates (`{"symbols": ...}`) never match.
var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

type Store struct {
	templates map[string]string
}

func NewStore(templates map[string]string) *Store {
	copied := make(map[string]string, len(templates))
	for name, tmpl := range templates {
		copied[name] = tmpl
	}
	return &Store{templates: copied}
}

// Default returns a store loaded with the compiled-in templates.
func Default() *Store {
	return NewStore(Defaults())
}

func (s *Store) Lookup(name string) (string, bool) {
	tmpl, ok := s.templates[name]
	return tmpl, ok
}

// Format renders a named template. Every {token} must be present in vars;
// an unknown template or an unresolved token is an error because the
// request cannot be answered without a valid prompt.
func (s *Store) Format(name string, vars map[string]string) (string, error) {
	tmpl, ok := s.templates[name]
	if !ok {
		return "", fmt.Errorf("prompt template %q not configured", name)
	}

	var missing []string
	result := placeholderPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		token := match[1 : len(match)-1]
		value, ok := vars[token]
		if !ok {
			missing = append(missing, token)
			return match
		}
		return value
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("prompt template %q: unresolved placeholders %v", name, missing)
	}

	return result, nil
}

func Defaults() map[string]string {
	return map[string]string{
		System: `You are a knowledgeable financial assistant. You explain financial concepts clearly, stay factual, and never give guarantees about future market performance. When real-time stock data is provided, base price statements on that data and mention when it was fetched.`,

		Financial: `{knowledge_base_prompt}Conversation so far:
{history}

Answer the user's financial question below. Be concise and practical, use plain language, and note any important caveats.

Question: {question}

Answer:`,

		StockFinancial: `REAL-TIME STOCK DATA:
{stock_context}

{knowledge_base_prompt}Conversation so far:
{history}

Using the real-time stock data above, answer the user's question. Quote concrete prices from the data rather than from memory and say clearly that prices move constantly.

Question: {question}

Answer:`,

		GeneralQuestion: `Answer the following financial question clearly and concisely for a general audience.

Question: {question}

Answer:`,

		SymbolExtraction: `Decide whether the question below asks about current or historical market data for specific publicly traded stocks, and extract the ticker symbols involved.

Question: {question}

Respond with JSON only, no other text:
{"symbols": ["TICKER1", "TICKER2"], "is_stock_query": true}

If the question is not about specific stock market data, respond:
{"symbols": [], "is_stock_query": false}`,

		Summarization: `You are a helpful assistant that summarizes conversations concisely. Condense the conversation you are given into a short plain-text summary that preserves the facts, figures, and open threads needed to continue it. Output the summary only.`,

		SessionTitle: `Generate a very short, concise title (maximum 50 characters) for a chat session based on this first question. Return ONLY the title, nothing else.

Question: {question}

Title:`,

		Parsing: `Parse the following content and return it formatted as HTML (use <b> for bold, <br> for line breaks, and <ul> for bullet points):
"""{content}"""

{parse_description}`,
	}
}
