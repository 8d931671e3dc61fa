package grading

import (
	"fmt"
	"strings"

	"github.com/antzucaro/matchr"
)

// PartType tags a piece of the rendered diff.
type PartType string

const (
	PartStartWord   PartType = "startWord"
	PartLetter      PartType = "letter"
	PartEndWord     PartType = "endWord"
	PartSeparator   PartType = "separator"
	PartFormatError PartType = "format_error_display"
)

const (
	missingLetter = "_"
	emptyAttempt  = "(empty attempt)"
)

// FeedbackPart is one rendered token of the diff.
type FeedbackPart struct {
	Text      string   `json:"text"`
	IsCorrect bool     `json:"is_correct"`
	Type      PartType `json:"type"`
}

// BuildDisplayFeedback renders a Result as an ordered diff against the
// target word. It only looks at the tokens retained in the Result.
func BuildDisplayFeedback(r Result) []FeedbackPart {
	if !r.ValidFormat {
		text := r.RawAnswer
		if text == "" {
			text = emptyAttempt
		}
		return []FeedbackPart{{Text: text, Type: PartFormatError}}
	}

	targetUpper := strings.ToUpper(r.TargetWord)
	target := letters(targetUpper)
	n := max(len(r.LetterTokens), len(target))

	parts := make([]FeedbackPart, 0, 2*n+3)
	parts = append(parts, FeedbackPart{Text: r.StartToken, IsCorrect: r.StartToken == targetUpper, Type: PartStartWord})
	for _, m := range compareLetters(r.LetterTokens, target) {
		parts = append(parts, separator())
		if !m.Present {
			parts = append(parts, FeedbackPart{Text: missingLetter, Type: PartLetter})
			continue
		}
		parts = append(parts, FeedbackPart{Text: m.Given, IsCorrect: m.Correct, Type: PartLetter})
	}
	parts = append(parts, separator())
	parts = append(parts, FeedbackPart{Text: r.EndToken, IsCorrect: r.EndToken == targetUpper, Type: PartEndWord})
	return parts
}

func separator() FeedbackPart {
	return FeedbackPart{Text: ",", IsCorrect: true, Type: PartSeparator}
}

// Hint is the practice-mode message shown after an answer.
func Hint(r Result) string {
	word := strings.ToUpper(r.TargetWord)
	switch {
	case !r.ValidFormat:
		return "Incorrect format. Try: WORD, L, E, T, T, E, R, WORD."
	case r.ErrorType == ErrorNone && r.IsCorrect:
		return "Well spelled!"
	}

	msg := fmt.Sprintf("Almost, but not quite. Word: %s.", word)
	switch r.ErrorType {
	case ErrorStartWord:
		msg += " The first word does not match."
	case ErrorLetters:
		spelled := strings.Join(r.LetterTokens, "")
		if spelled == "" {
			msg += " You spelled: nothing."
			break
		}
		msg += fmt.Sprintf(" You spelled: %s.", spelled)
		if matchr.Levenshtein(spelled, word) == 1 {
			msg += " Just one letter off!"
		}
	case ErrorEndWord:
		msg += " The last word does not match."
	}
	return msg
}
