package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mind-engage/spellquest/internal/grading"
	"github.com/mind-engage/spellquest/internal/stats"
	"github.com/mind-engage/spellquest/internal/words"
)

type fixedPicker struct {
	words []words.Word
	err   error
}

func (p fixedPicker) Pick(_ context.Context, _ words.Difficulty, n int) ([]words.Word, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.words[:min(n, len(p.words))], nil
}

type failingStats struct{ stats.Store }

func (failingStats) Record(context.Context, []stats.Attempt) error { return errors.New("disk full") }

func catDog() fixedPicker {
	return fixedPicker{words: []words.Word{
		{ID: "w1", Text: "cat", Difficulty: words.DifficultyEasy},
		{ID: "w2", Text: "dog", Difficulty: words.DifficultyEasy},
	}}
}

func newManager(p WordPicker, st stats.Store) *Manager {
	return NewManager(p, grading.NewEvaluator(), st, nil, nil)
}

func TestPracticeFlow(t *testing.T) {
	ctx := context.Background()
	st := stats.NewInMemoryStore()
	m := newManager(catDog(), st)

	s, err := m.Start(ctx, grading.ModePractice, words.DifficultyEasy, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Words) != 2 || s.Current().Text != "cat" {
		t.Fatalf("unexpected start: %+v", s)
	}

	res, err := m.Submit(ctx, s.ID, "cat, c, a, r, cat")
	if err != nil {
		t.Fatal(err)
	}
	if res.Advanced || res.Session.Index != 0 || res.Hint == "" || res.Attempt.Result.IsCorrect {
		t.Fatalf("wrong practice answer should stay: %+v", res)
	}

	res, _ = m.Submit(ctx, s.ID, "cat, c, a, t, cat")
	if !res.Advanced || res.Session.Current().Text != "dog" || res.Hint != "Well spelled!" {
		t.Fatalf("correct answer should advance: %+v", res)
	}

	if got, _ := st.List(ctx); len(got) != 0 {
		t.Fatal("nothing is recorded before the game ends")
	}

	res, _ = m.Submit(ctx, s.ID, "dog, d, o, g, dog")
	if !res.Session.Finished || res.Session.Current() != nil {
		t.Fatalf("last correct answer should finish: %+v", res.Session)
	}
	sum := res.Session.Summary()
	if sum.Answered != 3 || sum.CorrectCount != 2 || sum.AverageScore != nil {
		t.Fatalf("summary: %+v", sum)
	}

	recorded, _ := st.List(ctx)
	if len(recorded) != 3 {
		t.Fatalf("want 3 recorded attempts, got %d", len(recorded))
	}
	for i, a := range recorded {
		if a.AttemptedAt != recorded[0].AttemptedAt || a.SessionID != s.ID || a.Difficulty != "easy" {
			t.Errorf("attempt %d: %+v", i, a)
		}
	}
	if recorded[0].RawAnswer != "cat, c, a, r, cat" || recorded[2].WordText != "dog" {
		t.Fatalf("submission order lost: %+v", recorded)
	}

	if _, err := m.Submit(ctx, s.ID, "dog, d, o, g, dog"); !errors.Is(err, ErrFinished) {
		t.Fatalf("submit after finish: %v", err)
	}
}

func TestTestModeAlwaysAdvances(t *testing.T) {
	ctx := context.Background()
	st := stats.NewInMemoryStore()
	m := newManager(catDog(), st)
	s, _ := m.Start(ctx, grading.ModeTest, words.DifficultyEasy, 2)

	res, _ := m.Submit(ctx, s.ID, "cat, c, a, r, cat")
	if !res.Advanced || res.Hint != "" || res.Attempt.Result.Score != 80 {
		t.Fatalf("first: %+v", res)
	}
	res, _ = m.Submit(ctx, s.ID, "garbage")
	if !res.Session.Finished {
		t.Fatal("test should finish after the last word")
	}
	sum := res.Session.Summary()
	if sum.AverageScore == nil || *sum.AverageScore != 40 {
		t.Fatalf("average: %+v", sum.AverageScore)
	}
	recorded, _ := st.List(ctx)
	if len(recorded) != 2 || recorded[1].ErrorType != "format" || recorded[1].ValidFormat {
		t.Fatalf("recorded: %+v", recorded)
	}
}

func TestSkipPreviousFinish(t *testing.T) {
	ctx := context.Background()
	st := stats.NewInMemoryStore()
	m := newManager(catDog(), st)
	s, _ := m.Start(ctx, grading.ModePractice, words.DifficultyEasy, 2)

	got, err := m.Previous(ctx, s.ID)
	if err != nil || got.Index != 0 {
		t.Fatalf("previous at start: %+v %v", got, err)
	}
	got, _ = m.Skip(ctx, s.ID)
	if got.Index != 1 {
		t.Fatalf("skip: %+v", got)
	}
	got, _ = m.Previous(ctx, s.ID)
	if got.Index != 0 {
		t.Fatalf("previous: %+v", got)
	}

	// finishing with no answers records nothing
	got, err = m.Finish(ctx, s.ID)
	if err != nil || !got.Finished {
		t.Fatalf("finish: %+v %v", got, err)
	}
	if recorded, _ := st.List(ctx); len(recorded) != 0 {
		t.Fatalf("recorded %d", len(recorded))
	}
	if _, err := m.Finish(ctx, s.ID); !errors.Is(err, ErrFinished) {
		t.Fatalf("second finish: %v", err)
	}
	if _, err := m.Skip(ctx, s.ID); !errors.Is(err, ErrFinished) {
		t.Fatalf("skip after finish: %v", err)
	}

	ts, _ := m.Start(ctx, grading.ModeTest, words.DifficultyEasy, 2)
	if _, err := m.Previous(ctx, ts.ID); !errors.Is(err, ErrNotPractice) {
		t.Fatalf("previous in test: %v", err)
	}
}

func TestStartErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := newManager(fixedPicker{}, nil).Start(ctx, grading.ModeTest, words.DifficultyHard, 5); !errors.Is(err, ErrNoWords) {
		t.Fatalf("empty pick: %v", err)
	}
	boom := errors.New("boom")
	if _, err := newManager(fixedPicker{err: boom}, nil).Start(ctx, grading.ModeTest, words.DifficultyHard, 5); !errors.Is(err, boom) {
		t.Fatalf("picker error: %v", err)
	}
	m := newManager(catDog(), nil)
	if _, err := m.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get: %v", err)
	}
	if _, err := m.Submit(ctx, "nope", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("submit: %v", err)
	}
}

func TestRecordFailureStillFinishes(t *testing.T) {
	ctx := context.Background()
	m := newManager(fixedPicker{words: []words.Word{{ID: "w1", Text: "cat"}}}, failingStats{})
	s, _ := m.Start(ctx, grading.ModeTest, words.DifficultyEasy, 1)
	res, err := m.Submit(ctx, s.ID, "cat, c, a, t, cat")
	if err != nil || !res.Session.Finished {
		t.Fatalf("%+v %v", res, err)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := newManager(catDog(), nil)
	s, _ := m.Start(ctx, grading.ModePractice, words.DifficultyEasy, 2)
	s.Words[0].Text = "changed"
	got, _ := m.Get(ctx, s.ID)
	if got.Words[0].Text != "cat" {
		t.Fatal("caller mutated the live session")
	}
}

func TestPruneIdle(t *testing.T) {
	ctx := context.Background()
	m := newManager(catDog(), nil)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	old, _ := m.Start(ctx, grading.ModePractice, words.DifficultyEasy, 2)
	now = now.Add(90 * time.Minute)
	fresh, _ := m.Start(ctx, grading.ModePractice, words.DifficultyEasy, 2)
	now = now.Add(40 * time.Minute)

	if n := m.PruneIdle(ctx, 2*time.Hour); n != 1 {
		t.Fatalf("pruned %d", n)
	}
	if _, err := m.Get(ctx, old.ID); !errors.Is(err, ErrNotFound) {
		t.Fatal("old session should be gone")
	}
	if _, err := m.Get(ctx, fresh.ID); err != nil {
		t.Fatal("fresh session should survive")
	}
}
