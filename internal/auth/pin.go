package auth

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPinIncorrect = errors.New("incorrect pin")
	ErrPinFormat    = errors.New("pin must be exactly 4 digits")
	ErrPinMismatch  = errors.New("new pins do not match")
)

var pinPattern = regexp.MustCompile(`^\d{4}$`)

// PinStore persists the bcrypt hash of the tutor PIN. Hash returns "" when
// none has been set.
type PinStore interface {
	Hash(ctx context.Context) (string, error)
	SetHash(ctx context.Context, hash string) error
}

type PinService struct {
	store PinStore
	cost  int
}

func NewPinService(store PinStore) *PinService {
	return &PinService{store: store, cost: bcrypt.DefaultCost}
}

// EnsureDefault stores pin when no PIN has been set yet.
func (s *PinService) EnsureDefault(ctx context.Context, pin string) error {
	h, err := s.store.Hash(ctx)
	if err != nil {
		return err
	}
	if h != "" {
		return nil
	}
	if !pinPattern.MatchString(pin) {
		return ErrPinFormat
	}
	return s.set(ctx, pin)
}

func (s *PinService) Verify(ctx context.Context, pin string) error {
	h, err := s.store.Hash(ctx)
	if err != nil {
		return err
	}
	if h == "" || bcrypt.CompareHashAndPassword([]byte(h), []byte(pin)) != nil {
		return ErrPinIncorrect
	}
	return nil
}

// Change replaces the PIN. newPin must equal confirm and be four digits;
// current must be the PIN in force.
func (s *PinService) Change(ctx context.Context, current, newPin, confirm string) error {
	if newPin != confirm {
		return ErrPinMismatch
	}
	if !pinPattern.MatchString(newPin) {
		return ErrPinFormat
	}
	if err := s.Verify(ctx, current); err != nil {
		return err
	}
	return s.set(ctx, newPin)
}

func (s *PinService) set(ctx context.Context, pin string) error {
	h, err := bcrypt.GenerateFromPassword([]byte(pin), s.cost)
	if err != nil {
		return err
	}
	return s.store.SetHash(ctx, string(h))
}

type memoryPinStore struct {
	mu   sync.RWMutex
	hash string
}

func NewInMemoryPinStore() PinStore { return &memoryPinStore{} }

func (m *memoryPinStore) Hash(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hash, nil
}

func (m *memoryPinStore) SetHash(_ context.Context, hash string) error {
	m.mu.Lock()
	m.hash = hash
	m.mu.Unlock()
	return nil
}

const pinKey = "tutor_pin_hash"

// SQLPinStore keeps the hash in the settings table.
type SQLPinStore struct{ db *sql.DB }

func NewSQLPinStore(db *sql.DB) *SQLPinStore { return &SQLPinStore{db: db} }

func (s *SQLPinStore) Hash(ctx context.Context) (string, error) {
	var h string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key=$1`, pinKey).Scan(&h)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return h, err
}

func (s *SQLPinStore) SetHash(ctx context.Context, hash string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO settings (key, value, updated_at) VALUES ($1,$2,$3)
		ON CONFLICT (key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		pinKey, hash, time.Now().UnixMilli())
	return err
}
