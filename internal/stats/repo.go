package stats

import (
	"context"
	"sync"
)

// Store keeps attempts. Record appends a batch in order.
type Store interface {
	Record(ctx context.Context, batch []Attempt) error
	List(ctx context.Context) ([]Attempt, error)
	Clear(ctx context.Context) error
	// PruneBefore drops attempts older than cutoff (unix millis) and
	// reports how many went.
	PruneBefore(ctx context.Context, cutoff int64) (int, error)
}

type memoryStore struct {
	mu       sync.RWMutex
	attempts []Attempt
}

func NewInMemoryStore() Store { return &memoryStore{} }

func (m *memoryStore) Record(_ context.Context, batch []Attempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range batch {
		a.LetterTokens = append([]string(nil), a.LetterTokens...)
		m.attempts = append(m.attempts, a)
	}
	return nil
}

func (m *memoryStore) List(_ context.Context) ([]Attempt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Attempt, len(m.attempts))
	copy(out, m.attempts)
	return out, nil
}

func (m *memoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	m.attempts = nil
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) PruneBefore(_ context.Context, cutoff int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.attempts[:0]
	for _, a := range m.attempts {
		if a.AttemptedAt >= cutoff {
			kept = append(kept, a)
		}
	}
	n := len(m.attempts) - len(kept)
	m.attempts = kept
	return n, nil
}
