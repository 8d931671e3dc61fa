package stats

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mind-engage/spellquest/internal/grading"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

const attemptColumns = `id,session_id,word_id,word_text,difficulty,mode,raw_answer,valid_format,is_correct,score,error_type,start_token,letter_tokens_json,end_token,attempted_at`

// Record writes the batch in one transaction.
func (s *SQLStore) Record(ctx context.Context, batch []Attempt) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, a := range batch {
		letters, err := json.Marshal(nonNil(a.LetterTokens))
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO attempts (`+attemptColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
			a.ID, a.SessionID, a.WordID, a.WordText, a.Difficulty, string(a.Mode), a.RawAnswer,
			boolToInt(a.ValidFormat), boolToInt(a.IsCorrect), a.Score, a.ErrorType,
			a.StartToken, string(letters), a.EndToken, a.AttemptedAt); err != nil {
			return fmt.Errorf("insert attempt %s: %w", a.ID, err)
		}
	}
	return tx.Commit()
}

func (s *SQLStore) List(ctx context.Context) ([]Attempt, error) {
	// attempt IDs of one batch sort in submission order (see NewAttemptID)
	rows, err := s.db.QueryContext(ctx, `SELECT `+attemptColumns+` FROM attempts ORDER BY attempted_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Attempt{}
	for rows.Next() {
		var a Attempt
		var mode, letters string
		var valid, correct int64
		if err := rows.Scan(&a.ID, &a.SessionID, &a.WordID, &a.WordText, &a.Difficulty, &mode, &a.RawAnswer,
			&valid, &correct, &a.Score, &a.ErrorType, &a.StartToken, &letters, &a.EndToken, &a.AttemptedAt); err != nil {
			return nil, err
		}
		a.Mode = grading.Mode(mode)
		a.ValidFormat = valid != 0
		a.IsCorrect = correct != 0
		if letters != "" {
			if err := json.Unmarshal([]byte(letters), &a.LetterTokens); err != nil {
				return nil, fmt.Errorf("attempt %s letters: %w", a.ID, err)
			}
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM attempts`)
	return err
}

func (s *SQLStore) PruneBefore(ctx context.Context, cutoff int64) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM attempts WHERE attempted_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
