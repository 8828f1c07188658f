package chat

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	boldPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)
	tagPattern  = regexp.MustCompile(`<[^>]+>`)
)

// FormatAsHTML renders plain model output for the frontend: **bold** spans,
// <br> line breaks, and consecutive bullet lines folded into a <ul>.
func FormatAsHTML(text string) string {
	text = boldPattern.ReplaceAllString(text, "<b>$1</b>")

	lines := strings.Split(text, "\n")

	var sb strings.Builder
	inList := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if bullet, ok := bulletText(trimmed); ok {
			if !inList {
				sb.WriteString("<ul>")
				inList = true
			}
			sb.WriteString("<li>" + bullet + "</li>")
			continue
		}

		if inList {
			// The closing tag is the line break here.
			sb.WriteString("</ul>")
			inList = false
		} else if i > 0 {
			sb.WriteString("<br>")
		}
		sb.WriteString(trimmed)
	}
	if inList {
		sb.WriteString("</ul>")
	}

	return sb.String()
}

func bulletText(line string) (string, bool) {
	for _, marker := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(strings.TrimPrefix(line, marker)), true
		}
	}
	return "", false
}

// StripHTML reduces formatted content to plain text. Block-ending tags
// become newlines first so the turns stay separated.
func StripHTML(s string) string {
	replacer := strings.NewReplacer(
		"<br>", "\n", "<br/>", "\n", "<br />", "\n",
		"<ul>", "\n", "</li>", "\n", "</ul>", "\n", "</p>", "\n",
	)
	s = replacer.Replace(s)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return tagPattern.ReplaceAllString(s, "")
	}

	return doc.Text()
}
