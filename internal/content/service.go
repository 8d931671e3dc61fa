package content

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mind-engage/spellquest/internal/observe"
	"github.com/mind-engage/spellquest/internal/words"
)

// Service wraps a Provider so callers always get something to show.
type Service struct {
	p             Provider
	useMockImages bool
	lang          string
	metrics       *observe.Metrics
	log           *slog.Logger
}

type ServiceConfig struct {
	UseMockImages bool
	Language      string // default target language, e.g. "es"
}

func NewService(p Provider, cfg ServiceConfig, m *observe.Metrics, logger *slog.Logger) *Service {
	if p == nil {
		p = Placeholder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Language == "" {
		cfg.Language = "es"
	}
	return &Service{p: p, useMockImages: cfg.UseMockImages, lang: cfg.Language, metrics: m, log: logger}
}

// Provider exposes the backend, e.g. as the word generator for a Picker.
func (s *Service) Provider() Provider { return s.p }

func (s *Service) Language(lang string) string {
	if strings.TrimSpace(lang) == "" {
		return s.lang
	}
	return lang
}

func (s *Service) Image(ctx context.Context, word string) string {
	if s.useMockImages {
		return placeholderURL("Mock", word)
	}
	u, err := s.p.GenerateImage(ctx, word)
	s.metrics.ContentRequest(ctx, "image", err)
	if err != nil || u == "" {
		s.log.Warn("image generation failed", "word", word, "err", err)
		return placeholderURL("Error", word)
	}
	return u
}

func (s *Service) Translate(ctx context.Context, word, lang string) string {
	out, err := s.p.TranslateWord(ctx, word, s.Language(lang))
	s.metrics.ContentRequest(ctx, "translate_word", err)
	if err != nil || out == "" {
		s.log.Warn("word translation failed", "word", word, "err", err)
		return word + " (translation error)"
	}
	return out
}

func (s *Service) Sentence(ctx context.Context, word string) string {
	out, err := s.p.GenerateSentence(ctx, word)
	s.metrics.ContentRequest(ctx, "sentence", err)
	if err != nil || out == "" {
		s.log.Warn("sentence generation failed", "word", word, "err", err)
		return "Could not generate a sentence for " + word + "."
	}
	return out
}

func (s *Service) TranslateSentence(ctx context.Context, sentence, lang string) string {
	out, err := s.p.TranslateSentence(ctx, sentence, s.Language(lang))
	s.metrics.ContentRequest(ctx, "translate_sentence", err)
	if err != nil || out == "" {
		s.log.Warn("sentence translation failed", "err", err)
		return sentence + " (translation error)"
	}
	return out
}

// Bundle is everything the game screen shows for one word.
type Bundle struct {
	WordID              string `json:"word_id"`
	ImageURL            string `json:"image_url"`
	Translation         string `json:"translation"`
	Sentence            string `json:"sentence"`
	SentenceTranslation string `json:"sentence_translation"`
}

// Bundle fetches the missing pieces concurrently. Custom fields on the
// word win over generated content.
func (s *Service) Bundle(ctx context.Context, w words.Word, lang string) Bundle {
	b := Bundle{WordID: w.ID, ImageURL: w.CustomImageURL, Translation: w.CustomTranslation, Sentence: w.CustomSentence}
	g, gctx := errgroup.WithContext(ctx)

	if b.ImageURL == "" {
		g.Go(func() error {
			b.ImageURL = s.Image(gctx, w.Text)
			return nil
		})
	}
	if b.Translation == "" {
		g.Go(func() error {
			b.Translation = s.Translate(gctx, w.Text, lang)
			return nil
		})
	}
	g.Go(func() error {
		sentence := b.Sentence
		if sentence == "" {
			sentence = s.Sentence(gctx, w.Text)
		}
		tr := s.TranslateSentence(gctx, sentence, lang)
		b.Sentence, b.SentenceTranslation = sentence, tr
		return nil
	})

	_ = g.Wait()
	return b
}
