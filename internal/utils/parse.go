package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var yearPattern = regexp.MustCompile(`(\d{4})`)

// ParseYear extracts a 4-digit year from a free-text year field
// (e.g. "2011 janvāris"). The second return is false when no year is found.
func ParseYear(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	m := yearPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return year, true
}

// ParseMakeModel splits a space-joined "make model" string. A single-word
// input is treated as the make with an empty model.
func ParseMakeModel(s string) (make, model string) {
	if s == "" {
		return "Unknown", "Unknown"
	}
	parts := strings.Fields(s)
	if len(parts) >= 2 {
		return parts[0], strings.Join(parts[1:], " ")
	}
	return s, ""
}

// ParseDigits strips every non-digit character from s and parses the rest.
// An all-non-digit string coerces to 0.
func ParseDigits(s string) int {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}

// CleanNumeric removes spaces, thousands separators and the given unit
// suffixes from a formatted numeric string ("18 500 €" -> "18500").
func CleanNumeric(s string, units ...string) string {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", "")
	for _, u := range units {
		s = strings.ReplaceAll(s, u, "")
	}
	return s
}

// ExtractFeatures parses a pipe-and-colon delimited options string
// ("Comfort: heated seats, cruise control | Safety: ABS") into a flat list.
func ExtractFeatures(options string) []string {
	if options == "" {
		return []string{}
	}
	features := []string{}
	for _, section := range strings.Split(options, "|") {
		section = strings.TrimSpace(section)
		idx := strings.Index(section, ":")
		if idx < 0 {
			continue
		}
		for _, item := range strings.Split(section[idx+1:], ",") {
			if item = strings.TrimSpace(item); item != "" {
				features = append(features, item)
			}
		}
	}
	return features
}
