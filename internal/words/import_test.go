package words

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestImportCSV(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	in := "Text,Difficulty,Sentence,Translation\n" +
		"tiger,easy,The tiger sleeps.,Tigre\n" +
		",medium,,\n" +
		"zebra,wild,,\n" +
		"penguin,HARD,,\n"

	res, err := ImportCSV(ctx, s, strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Added) != 2 {
		t.Fatalf("want 2 added, got %+v", res.Added)
	}
	if res.Added[0].CustomTranslation != "Tigre" || res.Added[1].Difficulty != DifficultyHard {
		t.Fatalf("unexpected rows: %+v", res.Added)
	}
	if len(res.Errors) != 2 || res.Errors[0].Row != 3 || res.Errors[1].Row != 4 {
		t.Fatalf("unexpected row errors: %+v", res.Errors)
	}
}

func TestImportCSVMissingColumn(t *testing.T) {
	_, err := ImportCSV(context.Background(), NewInMemoryStore(), strings.NewReader("text,sentence\ncat,hi\n"))
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
}

func TestImportXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"text", "difficulty", "image_url"},
		{"koala", "medium", "https://example.com/koala.png"},
		{"lion", "", ""},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	s := NewInMemoryStore()
	res, err := ImportXLSX(context.Background(), s, buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Added) != 1 || res.Added[0].CustomImageURL != "https://example.com/koala.png" {
		t.Fatalf("unexpected added: %+v", res.Added)
	}
	if len(res.Errors) != 1 || res.Errors[0].Row != 3 {
		t.Fatalf("unexpected errors: %+v", res.Errors)
	}
}

func TestImportXLSXRejectsGarbage(t *testing.T) {
	if _, err := ImportXLSX(context.Background(), NewInMemoryStore(), strings.NewReader("not a zip")); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.yaml")
	body := `words:
  - text: " owl "
    difficulty: easy
    sentence: The owl hoots.
  - text: platypus
    difficulty: hard
    translation: Ornitorrinco
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := LoadSeedFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Text != "owl" || got[0].CustomSentence != "The owl hoots." || got[1].CustomTranslation != "Ornitorrinco" {
		t.Fatalf("got %+v", got)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	_ = os.WriteFile(bad, []byte("words:\n  - text: x\n    difficulty: brutal\n"), 0o600)
	if _, err := LoadSeedFile(bad); !errors.Is(err, ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
}
