package words

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

const wordColumns = `id,text,difficulty,custom_image_url,custom_sentence,custom_translation,source,created_at,is_active`

func (s *SQLStore) List(ctx context.Context) ([]Word, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+wordColumns+` FROM words ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Word{}
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *SQLStore) Get(ctx context.Context, id string) (Word, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+wordColumns+` FROM words WHERE id=$1`, id)
	w, err := scanWord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Word{}, ErrNotFound
	}
	return w, err
}

func (s *SQLStore) Add(ctx context.Context, n NewWord) (Word, error) {
	if err := n.Validate(); err != nil {
		return Word{}, err
	}
	w := fromNew(n, s.now())
	if err := s.insert(ctx, w); err != nil {
		return Word{}, err
	}
	return w, nil
}

// Seed inserts words that are not present yet, keeping their IDs.
func (s *SQLStore) Seed(ctx context.Context, ws []Word) error {
	for _, w := range ws {
		var exist int
		err := s.db.QueryRowContext(ctx, `SELECT 1 FROM words WHERE id=$1`, w.ID).Scan(&exist)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if err := s.insert(ctx, w); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLStore) insert(ctx context.Context, w Word) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO words (`+wordColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		w.ID, w.Text, string(w.Difficulty), w.CustomImageURL, w.CustomSentence, w.CustomTranslation,
		string(w.Source), w.CreatedAt, boolToInt(w.IsActive))
	return err
}

func (s *SQLStore) Update(ctx context.Context, id string, u Update) (Word, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return Word{}, err
	}
	w, err = u.Apply(w)
	if err != nil {
		return Word{}, err
	}
	_, err = s.db.ExecContext(ctx, `UPDATE words SET text=$1, difficulty=$2, custom_image_url=$3,
		custom_sentence=$4, custom_translation=$5, is_active=$6 WHERE id=$7`,
		w.Text, string(w.Difficulty), w.CustomImageURL, w.CustomSentence, w.CustomTranslation,
		boolToInt(w.IsActive), id)
	if err != nil {
		return Word{}, err
	}
	return w, nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM words WHERE id=$1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWord(sc scanner) (Word, error) {
	var w Word
	var diff, src string
	var active int64
	if err := sc.Scan(&w.ID, &w.Text, &diff, &w.CustomImageURL, &w.CustomSentence, &w.CustomTranslation,
		&src, &w.CreatedAt, &active); err != nil {
		return Word{}, err
	}
	w.Difficulty = Difficulty(diff)
	w.Source = Source(src)
	w.IsActive = active != 0
	return w, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
