package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr  string
	PublicURL string
	LogFormat string // text|json
	LogLevel  string

	DBDriver string // memory|sqlite|postgres
	DBDSN    string

	BlobBasePath string

	CORSOrigins []string

	AuthHMACSecret string
	TokenTTL       time.Duration
	AdminPin       string // seeded only when no PIN is stored

	UseAdminWords  bool
	UseMockWords   bool
	UseMockImages  bool
	WordsSeedFile  string
	WordsPerGame   int
	OverrunPenalty float64

	OpenAIAPIKey     string
	OpenAIModel      string
	OpenAIImageModel string
	OpenAIBaseURL    string

	TranslationLanguage string

	SessionTTL           time.Duration
	AttemptRetentionDays int
	EnableMetrics        bool
}

// fileConfig mirrors Config for the optional TOML file. Pointers tell
// "absent" apart from zero values.
type fileConfig struct {
	HTTPAddr             *string   `toml:"http_addr"`
	PublicURL            *string   `toml:"public_url"`
	LogFormat            *string   `toml:"log_format"`
	LogLevel             *string   `toml:"log_level"`
	DBDriver             *string   `toml:"db_driver"`
	DBDSN                *string   `toml:"db_dsn"`
	BlobBasePath         *string   `toml:"blob_base_path"`
	CORSOrigins          *[]string `toml:"cors_origins"`
	TokenTTL             *string   `toml:"token_ttl"`
	AdminPin             *string   `toml:"admin_pin"`
	UseAdminWords        *bool     `toml:"use_admin_words"`
	UseMockWords         *bool     `toml:"use_mock_words"`
	UseMockImages        *bool     `toml:"use_mock_images"`
	WordsSeedFile        *string   `toml:"words_seed_file"`
	WordsPerGame         *int      `toml:"words_per_game"`
	OverrunPenalty       *float64  `toml:"overrun_penalty"`
	OpenAIModel          *string   `toml:"openai_model"`
	OpenAIImageModel     *string   `toml:"openai_image_model"`
	OpenAIBaseURL        *string   `toml:"openai_base_url"`
	TranslationLanguage  *string   `toml:"translation_language"`
	SessionTTL           *string   `toml:"session_ttl"`
	AttemptRetentionDays *int      `toml:"attempt_retention_days"`
	EnableMetrics        *bool     `toml:"enable_metrics"`
}

func Defaults() Config {
	return Config{
		HTTPAddr:            ":8080",
		LogFormat:           "text",
		LogLevel:            "info",
		DBDriver:            "memory",
		BlobBasePath:        "./data",
		CORSOrigins:         []string{"http://localhost:3000", "http://localhost:9002"},
		AuthHMACSecret:      "supersecret-dev-key",
		TokenTTL:            8 * time.Hour,
		AdminPin:            "0000",
		WordsPerGame:        5,
		OverrunPenalty:      0.5,
		OpenAIModel:         "gpt-4o-mini",
		OpenAIImageModel:    "dall-e-3",
		TranslationLanguage: "es",
		SessionTTL:          2 * time.Hour,
		EnableMetrics:       true,
	}
}

// Load applies, in order: defaults, .env (if present), the TOML file named
// by CONFIG_FILE, then environment variables.
func Load() (Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	return applyEnv(cfg)
}

// FromEnv is defaults plus environment variables.
func FromEnv() (Config, error) { return applyEnv(Defaults()) }

// LoadDotEnv exports the file's variables without overriding ones already
// set. A missing file is fine.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func LoadFile(path string, cfg *Config) error {
	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return fmt.Errorf("config file %s: unknown key %q", path, undec[0].String())
	}

	setStr := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setBool := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	setDur := func(dst *time.Duration, v *string, key string) error {
		if v == nil {
			return nil
		}
		d, err := time.ParseDuration(*v)
		if err != nil {
			return fmt.Errorf("config file %s: %s: %w", path, key, err)
		}
		*dst = d
		return nil
	}

	setStr(&cfg.HTTPAddr, fc.HTTPAddr)
	setStr(&cfg.PublicURL, fc.PublicURL)
	setStr(&cfg.LogFormat, fc.LogFormat)
	setStr(&cfg.LogLevel, fc.LogLevel)
	setStr(&cfg.DBDriver, fc.DBDriver)
	setStr(&cfg.DBDSN, fc.DBDSN)
	setStr(&cfg.BlobBasePath, fc.BlobBasePath)
	if fc.CORSOrigins != nil {
		cfg.CORSOrigins = *fc.CORSOrigins
	}
	if err := setDur(&cfg.TokenTTL, fc.TokenTTL, "token_ttl"); err != nil {
		return err
	}
	setStr(&cfg.AdminPin, fc.AdminPin)
	setBool(&cfg.UseAdminWords, fc.UseAdminWords)
	setBool(&cfg.UseMockWords, fc.UseMockWords)
	setBool(&cfg.UseMockImages, fc.UseMockImages)
	setStr(&cfg.WordsSeedFile, fc.WordsSeedFile)
	if fc.WordsPerGame != nil {
		cfg.WordsPerGame = *fc.WordsPerGame
	}
	if fc.OverrunPenalty != nil {
		cfg.OverrunPenalty = *fc.OverrunPenalty
	}
	setStr(&cfg.OpenAIModel, fc.OpenAIModel)
	setStr(&cfg.OpenAIImageModel, fc.OpenAIImageModel)
	setStr(&cfg.OpenAIBaseURL, fc.OpenAIBaseURL)
	setStr(&cfg.TranslationLanguage, fc.TranslationLanguage)
	if err := setDur(&cfg.SessionTTL, fc.SessionTTL, "session_ttl"); err != nil {
		return err
	}
	if fc.AttemptRetentionDays != nil {
		cfg.AttemptRetentionDays = *fc.AttemptRetentionDays
	}
	setBool(&cfg.EnableMetrics, fc.EnableMetrics)
	return nil
}

func applyEnv(c Config) (Config, error) {
	var errs []error
	c.HTTPAddr = envOr("HTTP_ADDR", c.HTTPAddr)
	c.PublicURL = envOr("PUBLIC_URL", c.PublicURL)
	c.LogFormat = envOr("LOG_FORMAT", c.LogFormat)
	c.LogLevel = envOr("LOG_LEVEL", c.LogLevel)
	c.DBDriver = envOr("DB_DRIVER", c.DBDriver)
	c.DBDSN = envOr("DB_DSN", c.DBDSN)
	c.BlobBasePath = envOr("BLOB_BASE_PATH", c.BlobBasePath)
	c.CORSOrigins = csvOr("CORS_ORIGINS", c.CORSOrigins)
	c.AuthHMACSecret = envOr("AUTH_HMAC_SECRET", c.AuthHMACSecret)
	c.TokenTTL = envDuration("TOKEN_TTL", c.TokenTTL, &errs)
	c.AdminPin = envOr("ADMIN_PIN", c.AdminPin)
	c.UseAdminWords = envBool("USE_ADMIN_WORDS", c.UseAdminWords)
	c.UseMockWords = envBool("USE_MOCK_WORDS", c.UseMockWords)
	c.UseMockImages = envBool("USE_MOCK_IMAGES", c.UseMockImages)
	c.WordsSeedFile = envOr("WORDS_SEED_FILE", c.WordsSeedFile)
	c.WordsPerGame = envInt("WORDS_PER_GAME", c.WordsPerGame, &errs)
	c.OpenAIAPIKey = envOr("OPENAI_API_KEY", c.OpenAIAPIKey)
	c.OpenAIModel = envOr("OPENAI_MODEL", c.OpenAIModel)
	c.OpenAIImageModel = envOr("OPENAI_IMAGE_MODEL", c.OpenAIImageModel)
	c.OpenAIBaseURL = envOr("OPENAI_BASE_URL", c.OpenAIBaseURL)
	c.TranslationLanguage = envOr("TRANSLATION_LANGUAGE", c.TranslationLanguage)
	c.SessionTTL = envDuration("SESSION_TTL", c.SessionTTL, &errs)
	c.AttemptRetentionDays = envInt("ATTEMPT_RETENTION_DAYS", c.AttemptRetentionDays, &errs)
	c.EnableMetrics = envBool("ENABLE_METRICS", c.EnableMetrics)

	if c.WordsPerGame <= 0 {
		errs = append(errs, fmt.Errorf("WORDS_PER_GAME must be positive, got %d", c.WordsPerGame))
	}
	return c, errors.Join(errs...)
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func envInt(k string, def int, errs *[]error) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", k, err))
		return def
	}
	return n
}
func envDuration(k string, def time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", k, err))
		return def
	}
	return d
}
func csvOr(k string, def []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
