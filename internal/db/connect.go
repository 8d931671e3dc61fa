package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// ParseDriver maps the DB_DRIVER setting; an empty value means memory.
func ParseDriver(s string) (Driver, error) {
	switch d := Driver(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return DriverMemory, nil
	case DriverMemory, DriverSQLite, DriverPostgres:
		return d, nil
	default:
		return "", fmt.Errorf("unsupported driver: %s", s)
	}
}

// Open opens a DB and ensures the words, attempts and settings tables exist.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:spellquest.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/spellquest?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("schema: %w", err)
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS words (
  id TEXT PRIMARY KEY,
  text TEXT NOT NULL,
  difficulty TEXT NOT NULL,
  custom_image_url TEXT NOT NULL DEFAULT '',
  custom_sentence TEXT NOT NULL DEFAULT '',
  custom_translation TEXT NOT NULL DEFAULT '',
  source TEXT NOT NULL DEFAULT 'admin',
  created_at INTEGER NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS attempts (
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL DEFAULT '',
  word_id TEXT NOT NULL,
  word_text TEXT NOT NULL,
  difficulty TEXT NOT NULL,
  mode TEXT NOT NULL,
  raw_answer TEXT NOT NULL,
  valid_format INTEGER NOT NULL,
  is_correct INTEGER NOT NULL,
  score REAL NOT NULL DEFAULT 0,
  error_type TEXT NOT NULL DEFAULT '',
  start_token TEXT NOT NULL DEFAULT '',
  letter_tokens_json TEXT NOT NULL DEFAULT '[]',
  end_token TEXT NOT NULL DEFAULT '',
  attempted_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS attempts_attempted_at ON attempts(attempted_at);

CREATE TABLE IF NOT EXISTS settings (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at INTEGER NOT NULL
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS words (
  id TEXT PRIMARY KEY,
  text TEXT NOT NULL,
  difficulty TEXT NOT NULL,
  custom_image_url TEXT NOT NULL DEFAULT '',
  custom_sentence TEXT NOT NULL DEFAULT '',
  custom_translation TEXT NOT NULL DEFAULT '',
  source TEXT NOT NULL DEFAULT 'admin',
  created_at BIGINT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS attempts (
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL DEFAULT '',
  word_id TEXT NOT NULL,
  word_text TEXT NOT NULL,
  difficulty TEXT NOT NULL,
  mode TEXT NOT NULL,
  raw_answer TEXT NOT NULL,
  valid_format INTEGER NOT NULL,
  is_correct INTEGER NOT NULL,
  score DOUBLE PRECISION NOT NULL DEFAULT 0,
  error_type TEXT NOT NULL DEFAULT '',
  start_token TEXT NOT NULL DEFAULT '',
  letter_tokens_json TEXT NOT NULL DEFAULT '[]',
  end_token TEXT NOT NULL DEFAULT '',
  attempted_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS attempts_attempted_at ON attempts(attempted_at);

CREATE TABLE IF NOT EXISTS settings (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at BIGINT NOT NULL
);
`
