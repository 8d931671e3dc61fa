package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTPAddr != ":8080" || cfg.DBDriver != "memory" || cfg.AdminPin != "0000" || cfg.WordsPerGame != 5 {
		t.Fatalf("defaults: %+v", cfg)
	}
	if cfg.TranslationLanguage != "es" || cfg.SessionTTL != 2*time.Hour || !cfg.EnableMetrics {
		t.Fatalf("defaults: %+v", cfg)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("USE_ADMIN_WORDS", "true")
	t.Setenv("WORDS_PER_GAME", "8")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBDriver != "sqlite" || !cfg.UseAdminWords || cfg.WordsPerGame != 8 || cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("overrides: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("cors: %v", cfg.CORSOrigins)
	}
}

func TestFromEnvInvalid(t *testing.T) {
	t.Setenv("WORDS_PER_GAME", "many")
	if _, err := FromEnv(); err == nil {
		t.Fatal("expected error for WORDS_PER_GAME")
	}
	t.Setenv("WORDS_PER_GAME", "0")
	if _, err := FromEnv(); err == nil {
		t.Fatal("expected error for zero words")
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "spellquest.toml")
	body := `
http_addr = ":9000"
db_driver = "sqlite"
words_per_game = 7
session_ttl = "45m"
use_mock_images = true
`
	if err := os.WriteFile(file, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", file)
	t.Setenv("WORDS_PER_GAME", "3")

	prevWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prevWD) })
	if err := os.WriteFile(".env", []byte("TRANSLATION_LANGUAGE=fr\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TRANSLATION_LANGUAGE", "")
	os.Unsetenv("TRANSLATION_LANGUAGE")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTPAddr != ":9000" || cfg.DBDriver != "sqlite" || cfg.SessionTTL != 45*time.Minute || !cfg.UseMockImages {
		t.Fatalf("file values: %+v", cfg)
	}
	if cfg.WordsPerGame != 3 {
		t.Fatalf("env should beat file: %d", cfg.WordsPerGame)
	}
	if cfg.TranslationLanguage != "fr" {
		t.Fatalf(".env not loaded: %q", cfg.TranslationLanguage)
	}
	if cfg.AdminPin != "0000" {
		t.Fatalf("default lost: %q", cfg.AdminPin)
	}
}

func TestLoadFileUnknownKey(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bad.toml")
	_ = os.WriteFile(file, []byte("nonsense = 1\n"), 0o600)
	cfg := Defaults()
	if err := LoadFile(file, &cfg); err == nil {
		t.Fatal("expected unknown key error")
	}
}
