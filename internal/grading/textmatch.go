package grading

import (
	"strings"
	"unicode/utf8"
)

// quoteStripper removes straight and curly quotes that speech-to-text
// engines like to wrap around dictated letters.
var quoteStripper = strings.NewReplacer(
	`"`, "",
	`'`, "",
	"“", "",
	"”", "",
	"‘", "",
	"’", "",
)

// normalizeField trims surrounding whitespace, strips quotes and uppercases.
// The order matters: whitespace inside a pair of quotes survives.
func normalizeField(s string) string {
	s = strings.TrimSpace(s)
	s = quoteStripper.Replace(s)
	return strings.ToUpper(s)
}

// splitFields splits a raw answer on literal commas and normalizes each field.
// An empty string yields a single empty field.
func splitFields(raw string) []string {
	parts := strings.Split(raw, ",")
	for i, p := range parts {
		parts[i] = normalizeField(p)
	}
	return parts
}

// letters splits a word into its individual characters.
func letters(s string) []string {
	out := make([]string, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// isSingleLetter reports whether tok is exactly one character.
func isSingleLetter(tok string) bool {
	return utf8.RuneCountInString(tok) == 1
}
