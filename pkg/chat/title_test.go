package chat

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/go-playground/assert/v2"
)

func TestGenerateTitleEmptyQuestion(t *testing.T) {
	o := newTestOrchestrator(&fakeLLM{}, nil, nil)

	_, err := o.GenerateTitle("")

	assert.Equal(t, true, errors.Is(err, ErrEmptyQuestion))
}

func TestGenerateTitleStripsQuotes(t *testing.T) {
	fake := &fakeLLM{responses: map[string]string{"title": ` "Retirement Planning" `}}
	o := newTestOrchestrator(fake, nil, nil)

	title, err := o.GenerateTitle("How do I plan for retirement?")

	assert.Equal(t, nil, err)
	assert.Equal(t, "Retirement Planning", title)
}

func TestGenerateTitleTruncatesLongOutput(t *testing.T) {
	fake := &fakeLLM{responses: map[string]string{
		"title": strings.Repeat("Very Long Title ", 10),
	}}
	o := newTestOrchestrator(fake, nil, nil)

	title, err := o.GenerateTitle("Tell me everything about markets")

	assert.Equal(t, nil, err)
	assert.Equal(t, 50, len(title))
}

func TestGenerateTitleModelFailureFallsBack(t *testing.T) {
	fake := &fakeLLM{errors: map[string]error{"title": errors.New("model down")}}
	o := newTestOrchestrator(fake, nil, nil)

	title, err := o.GenerateTitle("Should I invest in index funds or individual stocks?")

	assert.Equal(t, nil, err)
	assert.Equal(t, "Should I invest in index", title)
}

func TestGenerateTitleEmptyOutputFallsBack(t *testing.T) {
	fake := &fakeLLM{responses: map[string]string{"title": `""`}}
	o := newTestOrchestrator(fake, nil, nil)

	title, err := o.GenerateTitle("What is a P/E ratio?")

	assert.Equal(t, nil, err)
	assert.Equal(t, "What is a P/E ratio?", title)
}

func TestGenerateTitleTruncatesOnRuneBoundary(t *testing.T) {
	fake := &fakeLLM{responses: map[string]string{
		"title": strings.Repeat("é", 60),
	}}
	o := newTestOrchestrator(fake, nil, nil)

	title, err := o.GenerateTitle("Qu'est-ce que l'inflation ?")

	assert.Equal(t, nil, err)
	assert.Equal(t, 50, len([]rune(title)))
	assert.Equal(t, true, utf8.ValidString(title))
}

func TestGenerateTitleFallbackTruncated(t *testing.T) {
	fake := &fakeLLM{errors: map[string]error{"title": errors.New("model down")}}
	o := newTestOrchestrator(fake, nil, nil)

	title, err := o.GenerateTitle("Supercalifragilisticexpialidocious diversification considerations regarding intercontinental conglomerates")

	assert.Equal(t, nil, err)
	assert.Equal(t, true, len(title) <= 50)
}
