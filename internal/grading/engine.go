package grading

import (
	"fmt"
	"strings"
)

// Mode selects how an answer is scored.
type Mode string

const (
	ModePractice Mode = "practice"
	ModeTest     Mode = "test"
)

// ParseMode validates a mode coming from an outer surface.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModePractice, ModeTest:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}

// Result is the outcome of evaluating one answer. Feedback can be rebuilt
// from it alone, without the raw answer being parsed again.
type Result struct {
	TargetWord   string    `json:"target_word"`
	RawAnswer    string    `json:"raw_answer"`
	Mode         Mode      `json:"mode"`
	ValidFormat  bool      `json:"valid_format"`
	IsCorrect    bool      `json:"is_correct"`
	Score        float64   `json:"score"` // 0..100
	StartToken   string    `json:"start_token,omitempty"`
	LetterTokens []string  `json:"letter_tokens,omitempty"`
	EndToken     string    `json:"end_token,omitempty"`
	ErrorType    ErrorType `json:"error_type,omitempty"`

	// Test mode only.
	PointsEarned float64 `json:"points_earned,omitempty"`
	MaxPoints    float64 `json:"max_points,omitempty"`
}

// Strategy scores a compared answer for one mode.
type Strategy interface {
	Score(p ParsedAnswer, c Comparison, targetUpper string) Score
}

// Score is what a Strategy produces.
type Score struct {
	Percentage   float64
	Correct      bool
	PointsEarned float64
	MaxPoints    float64
}

// Evaluator turns a raw answer into a Result.
type Evaluator interface {
	Evaluate(rawAnswer, targetWord string, mode Mode) Result
}

type defaultEvaluator struct {
	strategies map[Mode]Strategy
}

// Evaluate is pure and safe for concurrent use. Unknown modes are scored
// as practice.
func (e *defaultEvaluator) Evaluate(rawAnswer, targetWord string, mode Mode) Result {
	targetUpper := strings.ToUpper(targetWord)
	parsed := Parse(rawAnswer)
	cmp := Compare(parsed, targetUpper)

	s, ok := e.strategies[mode]
	if !ok {
		mode = ModePractice
		s = e.strategies[ModePractice]
	}
	sc := s.Score(parsed, cmp, targetUpper)

	res := Result{
		TargetWord:   targetWord,
		RawAnswer:    rawAnswer,
		Mode:         mode,
		ValidFormat:  parsed.ValidFormat,
		IsCorrect:    sc.Correct,
		Score:        sc.Percentage,
		StartToken:   parsed.StartToken,
		LetterTokens: parsed.LetterTokens,
		EndToken:     parsed.EndToken,
		ErrorType:    cmp.ErrorType,
		PointsEarned: sc.PointsEarned,
		MaxPoints:    sc.MaxPoints,
	}
	if !res.ValidFormat {
		res.Score = 0
		res.IsCorrect = false
	}
	return res
}

// Engine options

type Option func(*config)

type config struct {
	OverrunPenalty float64 // points lost per extra letter in test mode
}

func WithOverrunPenalty(p float64) Option { return func(c *config) { c.OverrunPenalty = p } }

// NewEvaluator installs the practice and test strategies.
func NewEvaluator(opts ...Option) Evaluator {
	cfg := &config{
		OverrunPenalty: 0.5,
	}
	for _, o := range opts {
		o(cfg)
	}
	return &defaultEvaluator{
		strategies: map[Mode]Strategy{
			ModePractice: practiceStrategy{},
			ModeTest:     testStrategy{overrunPenalty: cfg.OverrunPenalty},
		},
	}
}
