package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"
)

type fakeSessions struct {
	mu  sync.Mutex
	ttl time.Duration
	n   int
}

func (f *fakeSessions) PruneIdle(_ context.Context, ttl time.Duration) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ttl = ttl
	f.n++
	return 1
}

type fakeAttempts struct {
	cutoff int64
}

func (f *fakeAttempts) PruneBefore(_ context.Context, cutoff int64) (int, error) {
	f.cutoff = cutoff
	return 3, nil
}

func TestPruneAttemptsCutoff(t *testing.T) {
	att := &fakeAttempts{}
	s := New(&fakeSessions{}, att, Config{RetentionDays: 30}, nil)
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.pruneAttempts()
	if want := now.AddDate(0, 0, -30).UnixMilli(); att.cutoff != want {
		t.Fatalf("cutoff %d, want %d", att.cutoff, want)
	}
}

func TestPruneSessionsUsesTTL(t *testing.T) {
	sess := &fakeSessions{}
	s := New(sess, nil, Config{SessionTTL: 90 * time.Minute}, nil)
	s.pruneSessions()
	if sess.ttl != 90*time.Minute || sess.n != 1 {
		t.Fatalf("got ttl=%v n=%d", sess.ttl, sess.n)
	}
}

func TestStartRunsSessionJobImmediately(t *testing.T) {
	sess := &fakeSessions{}
	s := New(sess, &fakeAttempts{}, Config{SessionTTL: time.Hour, RetentionDays: 7}, nil)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	defer s.Stop()

	if got := len(s.scheduler.Jobs()); got != 2 {
		t.Fatalf("want 2 jobs, got %d", got)
	}
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		sess.mu.Lock()
		n := sess.n
		sess.mu.Unlock()
		if n > 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("hourly job did not run on start")
}
