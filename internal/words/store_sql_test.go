package words_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mind-engage/spellquest/internal/db"
	"github.com/mind-engage/spellquest/internal/words"
)

func openSQLStore(t *testing.T) *words.SQLStore {
	t.Helper()
	conn, err := db.Open(context.Background(), db.DriverSQLite, "file:"+filepath.Join(t.TempDir(), "words.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return words.NewSQLStore(conn)
}

func TestSQLStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openSQLStore(t)

	if err := s.Seed(ctx, words.DefaultWords()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// seeding twice keeps the existing rows
	if err := s.Seed(ctx, words.DefaultWords()); err != nil {
		t.Fatalf("reseed: %v", err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("want 3 words, got %d", len(list))
	}

	el, err := s.Get(ctx, "admin-1")
	if err != nil {
		t.Fatal(err)
	}
	if el.CustomTranslation != "Elefante" || !el.IsActive || el.Difficulty != words.DifficultyMedium {
		t.Fatalf("unexpected row: %+v", el)
	}
	q, _ := s.Get(ctx, "admin-3")
	if q.IsActive {
		t.Fatal("admin-3 should be inactive")
	}

	added, err := s.Add(ctx, words.NewWord{Text: "giraffe", Difficulty: words.DifficultyHard})
	if err != nil {
		t.Fatal(err)
	}
	hard := words.DifficultyEasy
	upd, err := s.Update(ctx, added.ID, words.Update{Difficulty: &hard})
	if err != nil {
		t.Fatal(err)
	}
	if upd.Difficulty != words.DifficultyEasy {
		t.Fatalf("difficulty not updated: %+v", upd)
	}
	again, _ := s.Get(ctx, added.ID)
	if again.Difficulty != words.DifficultyEasy {
		t.Fatalf("update not persisted: %+v", again)
	}

	if err := s.Delete(ctx, added.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, added.ID); !errors.Is(err, words.ErrNotFound) {
		t.Fatalf("get deleted: %v", err)
	}
	if err := s.Delete(ctx, "nope"); !errors.Is(err, words.ErrNotFound) {
		t.Fatalf("delete missing: %v", err)
	}
	if _, err := s.Update(ctx, "nope", words.Update{}); !errors.Is(err, words.ErrNotFound) {
		t.Fatalf("update missing: %v", err)
	}
}
