package grading

import "strings"

// minFields is start word + one letter + end word.
const minFields = 3

// ParsedAnswer is the structural view of a raw answer in the
// "WORD, L, E, T, T, E, R, WORD" grammar.
type ParsedAnswer struct {
	ValidFormat         bool
	StartToken          string
	LetterTokens        []string
	EndToken            string
	ConcatenatedLetters string
}

// Parse never fails: anything that does not split into at least three
// comma-separated fields comes back with ValidFormat=false and empty fields.
func Parse(raw string) ParsedAnswer {
	fields := splitFields(raw)
	if len(fields) < minFields {
		return ParsedAnswer{}
	}
	inner := fields[1 : len(fields)-1]
	letterTokens := make([]string, len(inner))
	copy(letterTokens, inner)
	return ParsedAnswer{
		ValidFormat:         true,
		StartToken:          fields[0],
		LetterTokens:        letterTokens,
		EndToken:            fields[len(fields)-1],
		ConcatenatedLetters: strings.Join(letterTokens, ""),
	}
}
