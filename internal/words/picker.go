package words

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// mockWords is the offline list used when no word source is configured or
// the generator fails.
var mockWords = map[Difficulty][]string{
	DifficultyEasy:   {"cat", "dog", "sun", "run", "big", "egg", "cup", "hat", "pen", "joy", "sky", "fly", "try", "cry", "dry"},
	DifficultyMedium: {"apple", "happy", "table", "water", "earth", "dream", "smile", "magic", "music", "story", "grape", "chair", "watch", "train", "light"},
	DifficultyHard:   {"beautiful", "adventure", "technology", "knowledge", "environment", "communication", "delicious", "important", "experience", "opportunity", "xylophone", "question", "believe", "journey", "mystery"},
}

// Generator produces candidate words, typically backed by an LLM.
type Generator interface {
	GenerateWords(ctx context.Context, difficulty string, n int) ([]string, error)
}

type PickerConfig struct {
	UseAdminWords bool // tutor list is the only source
	UseMockWords  bool // skip the generator entirely
}

// Picker chooses the words for a game.
type Picker struct {
	store Store
	gen   Generator
	cfg   PickerConfig
	log   *slog.Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewPicker(store Store, gen Generator, cfg PickerConfig, logger *slog.Logger) *Picker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Picker{
		store: store,
		gen:   gen,
		cfg:   cfg,
		log:   logger,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Pick returns up to n words of the given difficulty. With admin words
// configured it never falls back: no active tutor words means no game.
func (p *Picker) Pick(ctx context.Context, d Difficulty, n int) ([]Word, error) {
	if n <= 0 {
		return []Word{}, nil
	}

	if p.cfg.UseAdminWords {
		all, err := p.store.List(ctx)
		if err != nil {
			p.log.Error("fetch admin words", "difficulty", d, "err", err)
			return []Word{}, nil
		}
		active := make([]Word, 0, len(all))
		for _, w := range all {
			if w.IsActive && w.Difficulty == d {
				active = append(active, w)
			}
		}
		if len(active) == 0 {
			p.log.Info("no active admin words", "difficulty", d)
			return []Word{}, nil
		}
		shuffled := shuffle(p, active)
		return shuffled[:min(n, len(shuffled))], nil
	}

	if p.cfg.UseMockWords || p.gen == nil {
		return p.mock(d, n, "mock"), nil
	}

	generated, err := p.gen.GenerateWords(ctx, string(d), n)
	if err != nil {
		p.log.Warn("generate words, falling back to mocks", "difficulty", d, "err", err)
		return p.mock(d, n, "fallback-mock"), nil
	}
	out := make([]Word, 0, min(n, len(generated)))
	for _, g := range generated {
		if len(out) == n {
			break
		}
		t := strings.ToLower(strings.TrimSpace(g))
		if t == "" {
			continue
		}
		out = append(out, Word{ID: "ai-" + uuid.NewString(), Text: t, Difficulty: d, Source: SourceAI, IsActive: true})
	}
	return out, nil
}

func (p *Picker) mock(d Difficulty, n int, prefix string) []Word {
	list, ok := mockWords[d]
	if !ok {
		list = mockWords[DifficultyEasy]
	}
	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(list))
	for _, w := range list {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		uniq = append(uniq, w)
	}
	uniq = shuffle(p, uniq)
	uniq = uniq[:min(n, len(uniq))]

	out := make([]Word, len(uniq))
	for i, w := range uniq {
		out[i] = Word{ID: prefix + "-" + uuid.NewString(), Text: strings.ToLower(w), Difficulty: d, Source: SourceMock, IsActive: true}
	}
	return out
}

func shuffle[T any](p *Picker, in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	p.mu.Lock()
	p.rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	p.mu.Unlock()
	return out
}
