// Package session runs a game: a fixed list of words answered one at a
// time, recorded for the tutor once the game ends.
package session

import (
	"errors"
	"math"
	"time"

	"github.com/mind-engage/spellquest/internal/grading"
	"github.com/mind-engage/spellquest/internal/words"
)

var (
	ErrNotFound    = errors.New("session not found")
	ErrFinished    = errors.New("session already finished")
	ErrNoWords     = errors.New("no words available for this difficulty")
	ErrNotPractice = errors.New("only practice sessions can go back")
)

// Attempt is one submission within a game.
type Attempt struct {
	Word     words.Word             `json:"word"`
	Result   grading.Result         `json:"result"`
	Feedback []grading.FeedbackPart `json:"feedback"`
}

type Session struct {
	ID          string           `json:"id"`
	Mode        grading.Mode     `json:"mode"`
	Difficulty  words.Difficulty `json:"difficulty"`
	Words       []words.Word     `json:"words"`
	Index       int              `json:"index"`
	Attempts    []Attempt        `json:"attempts"`
	Finished    bool             `json:"finished"`
	StartedAt   time.Time        `json:"started_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	CompletedAt time.Time        `json:"completed_at,omitzero"`
}

// Current is the word being asked, or nil once finished.
func (s *Session) Current() *words.Word {
	if s.Finished || s.Index >= len(s.Words) {
		return nil
	}
	w := s.Words[s.Index]
	return &w
}

type Summary struct {
	Answered int `json:"answered"`
	// practice
	CorrectCount int `json:"correct_count"`
	// test; nil when nothing was answered in test mode
	AverageScore *float64 `json:"average_score,omitempty"`
}

func (s *Session) Summary() Summary {
	sum := Summary{Answered: len(s.Attempts)}
	var total float64
	for _, a := range s.Attempts {
		if a.Result.IsCorrect {
			sum.CorrectCount++
		}
		total += a.Result.Score
	}
	if s.Mode == grading.ModeTest && len(s.Attempts) > 0 {
		avg := math.Round(total/float64(len(s.Attempts))*10) / 10
		sum.AverageScore = &avg
	}
	return sum
}

// clone copies everything a caller could mutate.
func (s *Session) clone() *Session {
	c := *s
	c.Words = append([]words.Word(nil), s.Words...)
	c.Attempts = append([]Attempt(nil), s.Attempts...)
	return &c
}
