package llm

import "strings"

// ExtractJSONObject pulls the first-`{`-to-last-`}` substring out of
// free-form model output, tolerating code fences and surrounding prose.
// It never fails: the second return is false when no brace pair exists.
func ExtractJSONObject(content string) (string, bool) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return "", false
	}

	return content[start : end+1], true
}
