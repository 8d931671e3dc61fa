package words

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("word not found")

type Store interface {
	List(ctx context.Context) ([]Word, error)
	Get(ctx context.Context, id string) (Word, error)
	Add(ctx context.Context, n NewWord) (Word, error)
	Update(ctx context.Context, id string, u Update) (Word, error)
	Delete(ctx context.Context, id string) error
}

type memoryStore struct {
	mu    sync.RWMutex
	words map[string]Word
	now   func() time.Time
}

// NewInMemoryStore returns a store holding the given words. Pass
// DefaultWords() for the stock tutor list.
func NewInMemoryStore(seed ...Word) Store {
	m := &memoryStore{words: map[string]Word{}, now: time.Now}
	for _, w := range seed {
		m.words[w.ID] = w
	}
	return m
}

// DefaultWords is the tutor list a fresh install starts with.
func DefaultWords() []Word {
	now := time.Now().UnixMilli()
	return []Word{
		{ID: "admin-1", Text: "elephant", Difficulty: DifficultyMedium, IsActive: true, Source: SourceAdmin, CreatedAt: now,
			CustomImageURL: "https://placehold.co/600x400.png?text=Custom+Elephant", CustomSentence: "An elephant is a very large animal.", CustomTranslation: "Elefante"},
		{ID: "admin-2", Text: "bicycle", Difficulty: DifficultyEasy, IsActive: true, Source: SourceAdmin, CreatedAt: now,
			CustomSentence: "I like to ride my bicycle.", CustomTranslation: "Bicicleta"},
		{ID: "admin-3", Text: "query", Difficulty: DifficultyHard, IsActive: false, Source: SourceAdmin, CreatedAt: now},
	}
}

func (m *memoryStore) List(_ context.Context) ([]Word, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Word, 0, len(m.words))
	for _, w := range m.words {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memoryStore) Get(_ context.Context, id string) (Word, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.words[id]
	if !ok {
		return Word{}, ErrNotFound
	}
	return w, nil
}

func (m *memoryStore) Add(_ context.Context, n NewWord) (Word, error) {
	if err := n.Validate(); err != nil {
		return Word{}, err
	}
	w := fromNew(n, m.now())
	m.mu.Lock()
	defer m.mu.Unlock()
	m.words[w.ID] = w
	return w, nil
}

func (m *memoryStore) Update(_ context.Context, id string, u Update) (Word, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.words[id]
	if !ok {
		return Word{}, ErrNotFound
	}
	w, err := u.Apply(w)
	if err != nil {
		return Word{}, err
	}
	m.words[id] = w
	return w, nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.words[id]; !ok {
		return ErrNotFound
	}
	delete(m.words, id)
	return nil
}

func fromNew(n NewWord, now time.Time) Word {
	return Word{
		ID:                "admin-" + uuid.NewString(),
		Text:              n.Text,
		Difficulty:        n.Difficulty,
		CustomImageURL:    n.CustomImageURL,
		CustomSentence:    n.CustomSentence,
		CustomTranslation: n.CustomTranslation,
		Source:            SourceAdmin,
		CreatedAt:         now.UnixMilli(),
		IsActive:          true,
	}
}
