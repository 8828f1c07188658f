package chat

import (
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestFormatAsHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bold spans",
			in:   "This is **important** advice.",
			want: "This is <b>important</b> advice.",
		},
		{
			name: "line breaks",
			in:   "First line.\nSecond line.",
			want: "First line.<br>Second line.",
		},
		{
			name: "dash bullets become a list",
			in:   "Options:\n- Stocks\n- Bonds\nChoose wisely.",
			want: "Options:<ul><li>Stocks</li><li>Bonds</li></ul>Choose wisely.",
		},
		{
			name: "asterisk and dot bullets",
			in:   "* First\n• Second",
			want: "<ul><li>First</li><li>Second</li></ul>",
		},
		{
			name: "line after a list breaks normally afterwards",
			in:   "Intro:\n- a\nAfter list.\nNext line.",
			want: "Intro:<ul><li>a</li></ul>After list.<br>Next line.",
		},
		{
			name: "bold inside bullets",
			in:   "- **Risk**: high",
			want: "<ul><li><b>Risk</b>: high</li></ul>",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAsHTML(tt.in))
		})
	}
}

func TestStripHTML(t *testing.T) {
	in := "Human: bonds?\nAI: <b>Bonds</b> are debt.<br>They pay interest.<ul><li>Corporate</li><li>Municipal</li></ul>"
	out := StripHTML(in)

	assert.Equal(t, false, strings.Contains(out, "<"))
	assert.Equal(t, true, strings.Contains(out, "Bonds are debt."))
	assert.Equal(t, true, strings.Contains(out, "Corporate"))
	// Block boundaries survive as newlines so turns stay separated.
	assert.Equal(t, false, strings.Contains(out, "interest.Corporate"))
	assert.Equal(t, false, strings.Contains(out, "CorporateMunicipal"))
}

func TestStripHTMLRoundTrip(t *testing.T) {
	original := "Diversify across assets.\n- Stocks\n- Bonds\nRebalance **yearly**."
	stripped := StripHTML(FormatAsHTML(original))

	for _, want := range []string{"Diversify across assets.", "Stocks", "Bonds", "Rebalance yearly."} {
		assert.Equal(t, true, strings.Contains(stripped, want))
	}
	assert.Equal(t, false, strings.Contains(stripped, "<"))
}
