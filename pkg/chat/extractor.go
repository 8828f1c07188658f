package chat

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/Aniruddha-Ponnuri/Multi-ChatBot/pkg/llm"
	"github.com/Aniruddha-Ponnuri/Multi-ChatBot/pkg/prompt"
)

const (
	extractionTemperature = 0.3
	extractionMaxTokens   = 200
)

// ExtractSymbols asks the model whether the question is about market data
// and which tickers it names. Extraction is best-effort: apart from an
// empty question, every failure returns ([], false) so the main answer is
// never blocked. A failed call and a genuine "not a stock query" are
// indistinguishable to callers; only the logs tell them apart.
func (o *Orchestrator) ExtractSymbols(question string) ([]string, bool, error) {
	if strings.TrimSpace(question) == "" {
		return nil, false, ErrEmptyQuestion
	}

	if _, ok := o.prompts.Lookup(prompt.SymbolExtraction); !ok {
		slog.Warn("symbol extraction template not configured, stock detection disabled")
		return []string{}, false, nil
	}

	formatted, err := o.prompts.Format(prompt.SymbolExtraction, map[string]string{
		"question": question,
	})
	if err != nil {
		slog.Error("error formatting extraction prompt", "error", err)
		return []string{}, false, nil
	}

	// Low temperature so the same question classifies the same way.
	raw, err := o.llm.Generate(llm.GenerateRequest{
		Prompt:      formatted,
		Temperature: extractionTemperature,
		MaxTokens:   extractionMaxTokens,
	})
	if err != nil {
		slog.Error("symbol extraction call failed", "error", err)
		return []string{}, false, nil
	}

	symbols, isStockQuery := parseExtractionResponse(raw)
	slog.Info("symbol extraction result", "symbols", symbols, "is_stock_query", isStockQuery)
	return symbols, isStockQuery, nil
}

// parseExtractionResponse is a total function over arbitrary model output.
func parseExtractionResponse(raw string) ([]string, bool) {
	jsonStr, ok := llm.ExtractJSONObject(raw)
	if !ok {
		slog.Warn("no JSON object found in extraction response", "response", raw)
		return []string{}, false
	}

	var parsed struct {
		Symbols      interface{} `json:"symbols"`
		IsStockQuery interface{} `json:"is_stock_query"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		slog.Warn("failed to parse extraction JSON", "error", err, "json", jsonStr)
		return []string{}, false
	}

	return coerceSymbols(parsed.Symbols), truthy(parsed.IsStockQuery)
}

// coerceSymbols accepts a list, a scalar (wrapped into a one-element list),
// or nothing.
func coerceSymbols(v interface{}) []string {
	switch value := v.(type) {
	case nil:
		return []string{}
	case []interface{}:
		symbols := make([]string, 0, len(value))
		for _, item := range value {
			if s := symbolString(item); s != "" {
				symbols = append(symbols, s)
			}
		}
		return symbols
	default:
		if s := symbolString(value); s != "" {
			return []string{s}
		}
		return []string{}
	}
}

func symbolString(v interface{}) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func truthy(v interface{}) bool {
	switch value := v.(type) {
	case nil:
		return false
	case bool:
		return value
	case string:
		return value != ""
	case float64:
		return value != 0
	case []interface{}:
		return len(value) > 0
	default:
		return true
	}
}
