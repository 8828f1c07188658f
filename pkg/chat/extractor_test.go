package chat

import (
	"errors"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/Aniruddha-Ponnuri/Multi-ChatBot/pkg/prompt"
)

func TestParseExtractionResponse(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		symbols      []string
		isStockQuery bool
	}{
		{
			name:         "plain object",
			raw:          `{"symbols": ["AAPL", "MSFT"], "is_stock_query": true}`,
			symbols:      []string{"AAPL", "MSFT"},
			isStockQuery: true,
		},
		{
			name:         "fenced object",
			raw:          "```json\n{\"symbols\": [\"TSLA\"], \"is_stock_query\": true}\n```",
			symbols:      []string{"TSLA"},
			isStockQuery: true,
		},
		{
			name:         "object buried in prose",
			raw:          `Sure, here is the result: {"symbols": ["NVDA"], "is_stock_query": true} Hope that helps!`,
			symbols:      []string{"NVDA"},
			isStockQuery: true,
		},
		{
			name:         "not a stock query",
			raw:          `{"symbols": [], "is_stock_query": false}`,
			symbols:      []string{},
			isStockQuery: false,
		},
		{
			name:         "scalar symbol wrapped into a list",
			raw:          `{"symbols": "AAPL", "is_stock_query": true}`,
			symbols:      []string{"AAPL"},
			isStockQuery: true,
		},
		{
			name:         "string flag is truthy",
			raw:          `{"symbols": ["AAPL"], "is_stock_query": "yes"}`,
			symbols:      []string{"AAPL"},
			isStockQuery: true,
		},
		{
			name:         "empty string flag is falsy",
			raw:          `{"symbols": ["AAPL"], "is_stock_query": ""}`,
			symbols:      []string{"AAPL"},
			isStockQuery: false,
		},
		{
			name:         "numeric flag",
			raw:          `{"symbols": ["AAPL"], "is_stock_query": 1}`,
			symbols:      []string{"AAPL"},
			isStockQuery: true,
		},
		{
			name:         "zero flag is falsy",
			raw:          `{"symbols": ["AAPL"], "is_stock_query": 0}`,
			symbols:      []string{"AAPL"},
			isStockQuery: false,
		},
		{
			name:         "missing fields",
			raw:          `{}`,
			symbols:      []string{},
			isStockQuery: false,
		},
		{
			name:         "symbols with whitespace and non-strings",
			raw:          `{"symbols": [" AAPL ", 42, ""], "is_stock_query": true}`,
			symbols:      []string{"AAPL"},
			isStockQuery: true,
		},
		{
			name:         "no JSON at all",
			raw:          "I could not determine any symbols.",
			symbols:      []string{},
			isStockQuery: false,
		},
		{
			name:         "malformed JSON",
			raw:          `{"symbols": ["AAPL",}`,
			symbols:      []string{},
			isStockQuery: false,
		},
		{
			name:         "empty input",
			raw:          "",
			symbols:      []string{},
			isStockQuery: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			symbols, isStockQuery := parseExtractionResponse(tt.raw)
			assert.Equal(t, tt.symbols, symbols)
			assert.Equal(t, tt.isStockQuery, isStockQuery)

			// Same input, same answer.
			again, againFlag := parseExtractionResponse(tt.raw)
			assert.Equal(t, symbols, again)
			assert.Equal(t, isStockQuery, againFlag)
		})
	}
}

func TestExtractSymbolsEmptyQuestion(t *testing.T) {
	fake := &fakeLLM{}
	o := newTestOrchestrator(fake, nil, nil)

	_, _, err := o.ExtractSymbols("  ")

	assert.Equal(t, true, errors.Is(err, ErrEmptyQuestion))
	assert.Equal(t, 0, len(fake.calls))
}

func TestExtractSymbolsModelFailureDegrades(t *testing.T) {
	fake := &fakeLLM{errors: map[string]error{"extract": errors.New("model down")}}
	o := newTestOrchestrator(fake, nil, nil)

	symbols, isStockQuery, err := o.ExtractSymbols("What is AAPL trading at?")

	assert.Equal(t, nil, err)
	assert.Equal(t, []string{}, symbols)
	assert.Equal(t, false, isStockQuery)
}

func TestExtractSymbolsMissingTemplateDegrades(t *testing.T) {
	templates := prompt.Defaults()
	delete(templates, prompt.SymbolExtraction)

	fake := &fakeLLM{}
	o := NewOrchestrator(fake, prompt.NewStore(templates), nil, nil, Config{})

	symbols, isStockQuery, err := o.ExtractSymbols("What is AAPL trading at?")

	assert.Equal(t, nil, err)
	assert.Equal(t, []string{}, symbols)
	assert.Equal(t, false, isStockQuery)
	assert.Equal(t, 0, len(fake.calls))
}

func TestExtractSymbolsRequestShape(t *testing.T) {
	fake := &fakeLLM{responses: map[string]string{
		"extract": `{"symbols": ["GOOG"], "is_stock_query": true}`,
	}}
	o := newTestOrchestrator(fake, nil, nil)

	symbols, isStockQuery, err := o.ExtractSymbols("What is GOOG trading at?")

	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"GOOG"}, symbols)
	assert.Equal(t, true, isStockQuery)

	assert.Equal(t, 1, len(fake.calls))
	assert.Equal(t, extractionTemperature, fake.calls[0].Temperature)
	assert.Equal(t, extractionMaxTokens, fake.calls[0].MaxTokens)
}
