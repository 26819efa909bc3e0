package utils

import (
	"regexp"
	"strings"
)

var (
	lineCommentRe  = regexp.MustCompile(`//[^\n]*`)
	trailingComma  = regexp.MustCompile(`,\s*([}\]])`)
	controlCharsRe = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)
)

// RepairJSON fixes the near-JSON issues that language models commonly
// produce: // line comments, trailing commas before closing braces or
// brackets, a BOM prefix, and stray control characters. It does not attempt
// to validate the result.
func RepairJSON(input string) string {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(s, "\uFEFF")
	s = lineCommentRe.ReplaceAllString(s, "")
	s = trailingComma.ReplaceAllString(s, "$1")
	s = controlCharsRe.ReplaceAllString(s, "")
	return s
}

// ExtractBalancedObject returns the first balanced {...} object starting at
// or after the beginning of input, honoring strings and escapes. Returns ""
// when no balanced object is found.
func ExtractBalancedObject(input string) string {
	depth := 0
	inString := false
	escape := false
	start := -1

	for i, ch := range input {
		if escape {
			escape = false
			continue
		}
		if ch == '\\' {
			escape = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch ch {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}
	return ""
}

// TruncateString shortens s to maxLen characters for log output.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
