package grading

// ErrorType classifies the first thing wrong with an answer.
type ErrorType string

const (
	ErrorNone      ErrorType = ""
	ErrorFormat    ErrorType = "format"
	ErrorStartWord ErrorType = "start_word"
	ErrorLetters   ErrorType = "letters"
	ErrorEndWord   ErrorType = "end_word"
)

// LetterMatch is the per-position comparison of a letter token against the
// target letter at the same index.
type LetterMatch struct {
	Given    string // "" when the user supplied no token here
	Expected string // "" when the target has no letter here
	Present  bool
	Correct  bool
}

// Comparison is the outcome of comparing a parsed answer with a target word.
//
// SpellingCorrect compares the concatenated letters as a whole and drives
// AllCorrect; Letters compares token by token and only feeds the diff.
// The two can disagree when letters are fused into longer tokens.
type Comparison struct {
	StartCorrect    bool
	EndCorrect      bool
	SpellingCorrect bool
	AllCorrect      bool
	Letters         []LetterMatch
	ErrorType       ErrorType
}

// Compare expects targetUpper to already be uppercased.
func Compare(p ParsedAnswer, targetUpper string) Comparison {
	if !p.ValidFormat {
		return Comparison{ErrorType: ErrorFormat}
	}
	c := Comparison{
		StartCorrect:    p.StartToken == targetUpper,
		EndCorrect:      p.EndToken == targetUpper,
		SpellingCorrect: p.ConcatenatedLetters == targetUpper,
		Letters:         compareLetters(p.LetterTokens, letters(targetUpper)),
	}
	c.AllCorrect = c.StartCorrect && c.EndCorrect && c.SpellingCorrect

	switch {
	case !c.StartCorrect:
		c.ErrorType = ErrorStartWord
	case !c.SpellingCorrect:
		c.ErrorType = ErrorLetters
	case !c.EndCorrect:
		c.ErrorType = ErrorEndWord
	}
	return c
}

func compareLetters(tokens, target []string) []LetterMatch {
	n := max(len(tokens), len(target))
	out := make([]LetterMatch, n)
	for i := 0; i < n; i++ {
		m := LetterMatch{}
		if i < len(tokens) {
			m.Given = tokens[i]
			m.Present = true
		}
		if i < len(target) {
			m.Expected = target[i]
		}
		m.Correct = m.Present && i < len(target) && isSingleLetter(m.Given) && m.Given == m.Expected
		out[i] = m
	}
	return out
}
