package words

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// RowError reports a spreadsheet row that could not be imported. Row is
// 1-based and counts the header.
type RowError struct {
	Row int    `json:"row"`
	Err string `json:"error"`
}

type ImportResult struct {
	Added  []Word     `json:"added"`
	Errors []RowError `json:"errors"`
}

var importColumns = []string{"text", "difficulty", "sentence", "translation", "image_url"}

// ImportCSV adds one word per row. The header must name at least the text
// and difficulty columns; bad rows are reported and skipped.
func ImportCSV(ctx context.Context, s Store, r io.Reader) (ImportResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: read csv: %v", ErrInvalid, err)
	}
	return importRows(ctx, s, records)
}

// ImportXLSX reads the first sheet of a workbook with the same layout as
// ImportCSV.
func ImportXLSX(ctx context.Context, s Store, r io.Reader) (ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: open xlsx: %v", ErrInvalid, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ImportResult{}, fmt.Errorf("%w: xlsx has no sheets", ErrInvalid)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ImportResult{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return importRows(ctx, s, rows)
}

func importRows(ctx context.Context, s Store, rows [][]string) (ImportResult, error) {
	res := ImportResult{Added: []Word{}, Errors: []RowError{}}
	if len(rows) == 0 {
		return res, fmt.Errorf("%w: empty sheet", ErrInvalid)
	}

	idx := map[string]int{}
	for i, h := range rows[0] {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range importColumns[:2] {
		if _, ok := idx[col]; !ok {
			return res, fmt.Errorf("%w: missing %q column", ErrInvalid, col)
		}
	}

	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	for n, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		nw := NewWord{
			Text:              cell(row, "text"),
			Difficulty:        Difficulty(cell(row, "difficulty")),
			CustomSentence:    cell(row, "sentence"),
			CustomTranslation: cell(row, "translation"),
			CustomImageURL:    cell(row, "image_url"),
		}
		w, err := s.Add(ctx, nw)
		if err != nil {
			if !errors.Is(err, ErrInvalid) {
				return res, err
			}
			res.Errors = append(res.Errors, RowError{Row: n + 2, Err: err.Error()})
			continue
		}
		res.Added = append(res.Added, w)
	}
	return res, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
