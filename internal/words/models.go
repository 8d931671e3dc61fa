package words

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid wraps every validation failure so callers can map it to a 400.
var ErrInvalid = errors.New("invalid word")

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty accepts any casing and surrounding whitespace.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalid, s)
	}
}

type Source string

const (
	SourceAdmin Source = "admin"
	SourceAI    Source = "ai"
	SourceMock  Source = "mock"
)

type Word struct {
	ID                string     `json:"id"`
	Text              string     `json:"text"`
	Difficulty        Difficulty `json:"difficulty"`
	CustomImageURL    string     `json:"custom_image_url,omitempty"`
	CustomSentence    string     `json:"custom_sentence,omitempty"`
	CustomTranslation string     `json:"custom_translation,omitempty"`
	Source            Source     `json:"source"`
	CreatedAt         int64      `json:"created_at,omitempty"`
	IsActive          bool       `json:"is_active"`
}

// NewWord is what a tutor submits to add a word.
type NewWord struct {
	Text              string     `json:"text" yaml:"text"`
	Difficulty        Difficulty `json:"difficulty" yaml:"difficulty"`
	CustomImageURL    string     `json:"custom_image_url,omitempty" yaml:"image_url"`
	CustomSentence    string     `json:"custom_sentence,omitempty" yaml:"sentence"`
	CustomTranslation string     `json:"custom_translation,omitempty" yaml:"translation"`
}

// Validate trims the text and checks the difficulty.
func (n *NewWord) Validate() error {
	n.Text = strings.TrimSpace(n.Text)
	if n.Text == "" {
		return fmt.Errorf("%w: text required", ErrInvalid)
	}
	d, err := ParseDifficulty(string(n.Difficulty))
	if err != nil {
		return err
	}
	n.Difficulty = d
	return nil
}

// Update is a partial update; nil fields are left alone.
type Update struct {
	Text              *string     `json:"text,omitempty"`
	Difficulty        *Difficulty `json:"difficulty,omitempty"`
	IsActive          *bool       `json:"is_active,omitempty"`
	CustomImageURL    *string     `json:"custom_image_url,omitempty"`
	CustomSentence    *string     `json:"custom_sentence,omitempty"`
	CustomTranslation *string     `json:"custom_translation,omitempty"`
}

// Apply validates u and merges it into w.
func (u Update) Apply(w Word) (Word, error) {
	if u.Text != nil {
		t := strings.TrimSpace(*u.Text)
		if t == "" {
			return Word{}, fmt.Errorf("%w: text required", ErrInvalid)
		}
		w.Text = t
	}
	if u.Difficulty != nil {
		d, err := ParseDifficulty(string(*u.Difficulty))
		if err != nil {
			return Word{}, err
		}
		w.Difficulty = d
	}
	if u.IsActive != nil {
		w.IsActive = *u.IsActive
	}
	if u.CustomImageURL != nil {
		w.CustomImageURL = *u.CustomImageURL
	}
	if u.CustomSentence != nil {
		w.CustomSentence = *u.CustomSentence
	}
	if u.CustomTranslation != nil {
		w.CustomTranslation = *u.CustomTranslation
	}
	return w, nil
}
