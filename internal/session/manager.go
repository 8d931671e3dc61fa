package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mind-engage/spellquest/internal/grading"
	"github.com/mind-engage/spellquest/internal/observe"
	"github.com/mind-engage/spellquest/internal/stats"
	"github.com/mind-engage/spellquest/internal/words"
)

type WordPicker interface {
	Pick(ctx context.Context, d words.Difficulty, n int) ([]words.Word, error)
}

// Manager keeps live sessions in memory. Finished games are written to the
// stats store; abandoned ones are dropped by PruneIdle.
type Manager struct {
	picker  WordPicker
	eval    grading.Evaluator
	stats   stats.Store
	metrics *observe.Metrics
	log     *slog.Logger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(picker WordPicker, eval grading.Evaluator, st stats.Store, m *observe.Metrics, logger *slog.Logger) *Manager {
	if eval == nil {
		eval = grading.NewEvaluator()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		picker:   picker,
		eval:     eval,
		stats:    st,
		metrics:  m,
		log:      logger,
		now:      time.Now,
		sessions: map[string]*Session{},
	}
}

func (m *Manager) Start(ctx context.Context, mode grading.Mode, d words.Difficulty, n int) (*Session, error) {
	ws, err := m.picker.Pick(ctx, d, n)
	if err != nil {
		return nil, err
	}
	if len(ws) == 0 {
		return nil, ErrNoWords
	}
	now := m.now()
	s := &Session{
		ID:         uuid.NewString(),
		Mode:       mode,
		Difficulty: d,
		Words:      ws,
		Attempts:   []Attempt{},
		StartedAt:  now,
		UpdatedAt:  now,
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	m.metrics.SessionStarted(ctx)
	m.log.Info("session started", "session", s.ID, "mode", mode, "difficulty", d, "words", len(ws))
	return s.clone(), nil
}

func (m *Manager) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s.clone(), nil
}

type SubmitResult struct {
	Attempt  Attempt  `json:"attempt"`
	Hint     string   `json:"hint,omitempty"`
	Advanced bool     `json:"advanced"`
	Session  *Session `json:"session"`
}

// Submit grades raw against the current word. Practice stays on the word
// until it is spelled correctly; test always moves on.
func (m *Manager) Submit(ctx context.Context, id, raw string) (SubmitResult, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return SubmitResult{}, ErrNotFound
	}
	if s.Finished {
		m.mu.Unlock()
		return SubmitResult{}, ErrFinished
	}

	w := s.Words[s.Index]
	res := m.eval.Evaluate(raw, w.Text, s.Mode)
	att := Attempt{Word: w, Result: res, Feedback: grading.BuildDisplayFeedback(res)}
	s.Attempts = append(s.Attempts, att)
	s.UpdatedAt = m.now()

	out := SubmitResult{Attempt: att}
	if s.Mode == grading.ModePractice {
		out.Hint = grading.Hint(res)
	}
	var batch []stats.Attempt
	if s.Mode == grading.ModeTest || res.IsCorrect {
		out.Advanced = true
		batch = m.advance(s)
	}
	out.Session = s.clone()
	m.mu.Unlock()

	m.metrics.RecordEvaluation(ctx, string(res.Mode), string(res.ErrorType), res.Score)
	m.record(ctx, id, batch)
	return out, nil
}

// Skip moves to the next word without an answer.
func (m *Manager) Skip(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return nil, ErrNotFound
	}
	if s.Finished {
		m.mu.Unlock()
		return nil, ErrFinished
	}
	s.UpdatedAt = m.now()
	batch := m.advance(s)
	out := s.clone()
	m.mu.Unlock()

	m.record(ctx, id, batch)
	return out, nil
}

// Previous goes back one word in practice mode. At the first word it is a
// no-op.
func (m *Manager) Previous(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.Finished {
		return nil, ErrFinished
	}
	if s.Mode != grading.ModePractice {
		return nil, ErrNotPractice
	}
	if s.Index > 0 {
		s.Index--
	}
	s.UpdatedAt = m.now()
	return s.clone(), nil
}

// Finish ends the game early. Finishing twice is an error.
func (m *Manager) Finish(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return nil, ErrNotFound
	}
	if s.Finished {
		m.mu.Unlock()
		return nil, ErrFinished
	}
	batch := m.finish(s)
	out := s.clone()
	m.mu.Unlock()

	m.record(ctx, id, batch)
	return out, nil
}

// PruneIdle drops sessions untouched for longer than ttl.
func (m *Manager) PruneIdle(ctx context.Context, ttl time.Duration) int {
	cutoff := m.now().Add(-ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.UpdatedAt.Before(cutoff) {
			if !s.Finished {
				m.metrics.SessionEnded(ctx)
			}
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// advance must be called with m.mu held.
func (m *Manager) advance(s *Session) []stats.Attempt {
	if s.Index < len(s.Words)-1 {
		s.Index++
		return nil
	}
	return m.finish(s)
}

// finish must be called with m.mu held. It returns the batch to record.
func (m *Manager) finish(s *Session) []stats.Attempt {
	now := m.now()
	s.Finished = true
	s.CompletedAt = now
	s.UpdatedAt = now
	m.metrics.SessionEnded(context.Background())

	completed := now.UnixMilli()
	batch := make([]stats.Attempt, len(s.Attempts))
	for i, a := range s.Attempts {
		batch[i] = stats.Attempt{
			ID:           stats.NewAttemptID(completed, i),
			SessionID:    s.ID,
			WordID:       a.Word.ID,
			WordText:     a.Word.Text,
			Difficulty:   string(s.Difficulty),
			Mode:         s.Mode,
			RawAnswer:    a.Result.RawAnswer,
			ValidFormat:  a.Result.ValidFormat,
			IsCorrect:    a.Result.IsCorrect,
			Score:        a.Result.Score,
			ErrorType:    string(a.Result.ErrorType),
			StartToken:   a.Result.StartToken,
			LetterTokens: a.Result.LetterTokens,
			EndToken:     a.Result.EndToken,
			AttemptedAt:  completed,
		}
	}
	return batch
}

func (m *Manager) record(ctx context.Context, id string, batch []stats.Attempt) {
	if len(batch) == 0 || m.stats == nil {
		return
	}
	if err := m.stats.Record(ctx, batch); err != nil {
		m.log.Error("record session attempts", "session", id, "attempts", len(batch), "err", err)
		return
	}
	m.log.Info("session recorded", "session", id, "attempts", len(batch))
}
