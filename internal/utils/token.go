package utils

import (
	"regexp"
	"strings"
)

// CleanLLMToken normalizes a short classifier answer that may come back:
// - as the bare token
// - wrapped in quotes or backticks
// - wrapped in a markdown code block
// - with trailing punctuation or explanatory text on later lines
// Only the first line is considered; the result is lowercased.
func CleanLLMToken(input string) string {
	if input == "" {
		return ""
	}

	if extracted := stripCodeFence(input); extracted != "" {
		input = extracted
	}

	// First line only; classifiers are prompted for single-token answers.
	if idx := strings.IndexAny(input, "\r\n"); idx >= 0 {
		input = input[:idx]
	}

	input = strings.TrimSpace(input)
	input = strings.Trim(input, "\"'`")
	input = strings.TrimRight(input, ".,;:!")
	return strings.ToLower(strings.TrimSpace(input))
}

var codeFenceRe = regexp.MustCompile("(?s)```[a-z]*\\s*(.+?)\\s*```")

// stripCodeFence extracts the body of a markdown code block
func stripCodeFence(input string) string {
	if matches := codeFenceRe.FindStringSubmatch(input); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}
	return ""
}
