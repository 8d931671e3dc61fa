package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	api "github.com/mind-engage/spellquest/internal/api/http"
	"github.com/mind-engage/spellquest/internal/auth"
	authmw "github.com/mind-engage/spellquest/internal/auth/middleware"
	"github.com/mind-engage/spellquest/internal/config"
	"github.com/mind-engage/spellquest/internal/content"
	"github.com/mind-engage/spellquest/internal/db"
	"github.com/mind-engage/spellquest/internal/grading"
	"github.com/mind-engage/spellquest/internal/observe"
	"github.com/mind-engage/spellquest/internal/scheduler"
	"github.com/mind-engage/spellquest/internal/session"
	"github.com/mind-engage/spellquest/internal/stats"
	"github.com/mind-engage/spellquest/internal/storage"
	"github.com/mind-engage/spellquest/internal/words"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

type stores struct {
	words words.Store
	stats stats.Store
	pins  auth.PinStore
	conn  *sql.DB
}

func (s stores) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// openStores picks memory or SQL backends. A fresh word list gets the
// built-in words plus the seed file; an existing one is left alone.
func openStores(ctx context.Context, cfg config.Config, logger *slog.Logger) (stores, error) {
	driver, err := db.ParseDriver(cfg.DBDriver)
	if err != nil {
		return stores{}, err
	}

	var extra []words.NewWord
	if cfg.WordsSeedFile != "" {
		extra, err = words.LoadSeedFile(cfg.WordsSeedFile)
		if err != nil {
			return stores{}, err
		}
	}

	var st stores
	fresh := true
	if driver == db.DriverMemory {
		st = stores{
			words: words.NewInMemoryStore(words.DefaultWords()...),
			stats: stats.NewInMemoryStore(),
			pins:  auth.NewInMemoryPinStore(),
		}
	} else {
		openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		conn, err := db.Open(openCtx, driver, cfg.DBDSN)
		if err != nil {
			return stores{}, fmt.Errorf("db open: %w", err)
		}
		ws := words.NewSQLStore(conn)
		existing, err := ws.List(ctx)
		if err != nil {
			conn.Close()
			return stores{}, err
		}
		if fresh = len(existing) == 0; fresh {
			if err := ws.Seed(ctx, words.DefaultWords()); err != nil {
				conn.Close()
				return stores{}, fmt.Errorf("seed words: %w", err)
			}
		}
		st = stores{words: ws, stats: stats.NewSQLStore(conn), pins: auth.NewSQLPinStore(conn), conn: conn}
	}

	if fresh {
		for _, nw := range extra {
			if _, err := st.words.Add(ctx, nw); err != nil {
				st.Close()
				return stores{}, fmt.Errorf("seed %q: %w", nw.Text, err)
			}
		}
		logger.Info("word list seeded", "seed_file", cfg.WordsSeedFile, "extra", len(extra))
	}
	return st, nil
}

func newProvider(cfg config.Config) (content.Provider, error) {
	if cfg.OpenAIAPIKey == "" {
		return content.Placeholder{}, nil
	}
	opts := []content.OpenAIOption{content.WithImageModel(cfg.OpenAIImageModel)}
	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, content.WithBaseURL(cfg.OpenAIBaseURL))
	}
	return content.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel, opts...)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Metrics ---
	var (
		metrics     *observe.Metrics
		metricsH    http.Handler
		shutdownOtl = func(context.Context) error { return nil }
	)
	if cfg.EnableMetrics {
		metrics, metricsH, shutdownOtl, err = observe.InitProvider(ctx, "spellquest", version)
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}

	// --- Stores ---
	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	bs, err := storage.NewFSStore(cfg.BlobBasePath, cfg.PublicURL)
	if err != nil {
		return fmt.Errorf("blob store: %w", err)
	}

	// --- Auth ---
	pins := auth.NewPinService(st.pins)
	if err := pins.EnsureDefault(ctx, cfg.AdminPin); err != nil {
		return fmt.Errorf("tutor pin: %w", err)
	}
	authSvc := authmw.NewAuthService(cfg.AuthHMACSecret, cfg.TokenTTL)

	// --- Game ---
	provider, err := newProvider(cfg)
	if err != nil {
		return fmt.Errorf("content provider: %w", err)
	}
	svc := content.NewService(provider, content.ServiceConfig{
		UseMockImages: cfg.UseMockImages,
		Language:      cfg.TranslationLanguage,
	}, metrics, logger)
	var gen words.Generator
	if cfg.OpenAIAPIKey != "" {
		gen = provider
	}
	picker := words.NewPicker(st.words, gen, words.PickerConfig{
		UseAdminWords: cfg.UseAdminWords,
		UseMockWords:  cfg.UseMockWords,
	}, logger)
	eval := grading.NewEvaluator(grading.WithOverrunPenalty(cfg.OverrunPenalty))
	sessions := session.NewManager(picker, eval, st.stats, metrics, logger)

	sched := scheduler.New(sessions, st.stats, scheduler.Config{
		SessionTTL:    cfg.SessionTTL,
		RetentionDays: cfg.AttemptRetentionDays,
	}, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: api.NewRouter(api.Deps{
			Words:          st.words,
			Stats:          st.stats,
			Sessions:       sessions,
			Content:        svc,
			Eval:           eval,
			Blobs:          bs,
			Auth:           authSvc,
			Pins:           pins,
			Metrics:        metrics,
			MetricsHandler: metricsH,
			CORSOrigins:    cfg.CORSOrigins,
			WordsPerGame:   cfg.WordsPerGame,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr, "db", cfg.DBDriver, "admin_words", cfg.UseAdminWords, "openai", cfg.OpenAIAPIKey != "")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "err", err)
	}
	if err := shutdownOtl(shutdownCtx); err != nil {
		logger.Error("metrics shutdown", "err", err)
	}
	return nil
}
