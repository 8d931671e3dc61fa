// Package content produces the media shown next to a word: an image, a
// translation and an example sentence.
package content

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

var ErrUnavailable = errors.New("content provider unavailable")

// Provider is the generative backend. Implementations return errors
// freely; Service turns them into fallbacks.
type Provider interface {
	GenerateWords(ctx context.Context, difficulty string, n int) ([]string, error)
	GenerateImage(ctx context.Context, word string) (string, error)
	TranslateWord(ctx context.Context, word, lang string) (string, error)
	GenerateSentence(ctx context.Context, word string) (string, error)
	TranslateSentence(ctx context.Context, sentence, lang string) (string, error)
}

// Placeholder works offline: placehold.co images and echoed text.
type Placeholder struct{}

func (Placeholder) GenerateWords(_ context.Context, _ string, _ int) ([]string, error) {
	return nil, ErrUnavailable
}

func (Placeholder) GenerateImage(_ context.Context, word string) (string, error) {
	return placeholderURL("Mock", word), nil
}

func (Placeholder) TranslateWord(_ context.Context, word, _ string) (string, error) {
	return word, nil
}

func (Placeholder) GenerateSentence(_ context.Context, word string) (string, error) {
	return "This is the word " + word + ".", nil
}

func (Placeholder) TranslateSentence(_ context.Context, sentence, _ string) (string, error) {
	return sentence, nil
}

func placeholderURL(label, word string) string {
	text := label + "+" + strings.ReplaceAll(strings.TrimSpace(word), " ", "+")
	return "https://placehold.co/600x400.png?text=" + url.PathEscape(text)
}
