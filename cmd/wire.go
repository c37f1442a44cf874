package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/page-push/internal/adapters/llm/gemini"
	"github.com/bnema/page-push/internal/adapters/notion"
	"github.com/bnema/page-push/internal/adapters/page"
	"github.com/bnema/page-push/internal/adapters/render/report"
	sqlitestore "github.com/bnema/page-push/internal/adapters/settings/sqlite"
	tomlstore "github.com/bnema/page-push/internal/adapters/settings/toml"
	"github.com/bnema/page-push/internal/application"
	"github.com/bnema/page-push/internal/domain"
	"github.com/bnema/page-push/internal/ports"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	settingsBackendKey    = "settings.backend"
	settingsBackendTOML   = "toml"
	settingsBackendSQLite = "sqlite"
	defaultSQLiteFile     = "settings.db"
	defaultListenAddr     = "127.0.0.1:8787"
)

type app struct {
	profiles        *application.ProfileStore
	summarizer      *application.Summarizer
	persister       *application.Persister
	extractor       ports.PageExtractor
	profileRenderer func([]domain.Profile, report.ProfileOptions) (string, error)
	resultRenderer  func(application.RunResult) (string, error)
	settingsPath    string
	listenAddr      string
	allowedOrigins  []string
	logger          *slog.Logger
	closers         []io.Closer
}

func wireApp() (*app, error) {
	_ = godotenv.Load()

	logger := newLogger(os.Stderr, envOrDefault("PP_LOG_LEVEL", "warn"))

	cfg := viper.New()
	cfg.SetDefault(settingsBackendKey, settingsBackendTOML)
	_ = cfg.BindEnv(settingsBackendKey, "PP_SETTINGS_BACKEND")
	_ = cfg.BindEnv(tomlstore.SettingsPathKey, "PP_SETTINGS_PATH")

	settings, settingsPath, closers, err := openSettings(cfg)
	if err != nil {
		return nil, err
	}

	httpClient := http.DefaultClient
	clock := ports.SystemClock{}

	generator := gemini.Client{
		BaseURL:    envOrDefault("PP_GEMINI_BASE_URL", gemini.DefaultBaseURL),
		Model:      envOrDefault("PP_GEMINI_MODEL", gemini.DefaultModel),
		HTTPClient: httpClient,
		Logger:     logger,
	}
	sink := notion.Client{
		BaseURL:    envOrDefault("PP_NOTION_BASE_URL", notion.DefaultBaseURL),
		HTTPClient: httpClient,
		Logger:     logger,
	}

	return &app{
		profiles:        application.NewProfileStore(settings, clock, logger),
		summarizer:      application.NewSummarizer(generator, logger),
		persister:       application.NewPersister(sink, clock),
		extractor:       page.Web{HTTPClient: httpClient, Logger: logger},
		profileRenderer: report.RenderProfiles,
		resultRenderer:  report.RenderResult,
		settingsPath:    settingsPath,
		listenAddr:      envOrDefault("PP_LISTEN", defaultListenAddr),
		allowedOrigins:  splitList(os.Getenv("PP_ALLOWED_ORIGINS")),
		logger:          logger,
		closers:         closers,
	}, nil
}

func openSettings(cfg *viper.Viper) (ports.SettingsStore, string, []io.Closer, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.GetString(settingsBackendKey)))

	switch backend {
	case settingsBackendTOML:
		store, err := tomlstore.NewStore(cfg)
		if err != nil {
			return nil, "", nil, fmt.Errorf("wire settings store: %w", err)
		}
		return store, store.Path(), nil, nil
	case settingsBackendSQLite:
		path := cfg.GetString(tomlstore.SettingsPathKey)
		if path == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return nil, "", nil, fmt.Errorf("resolve home directory: %w", err)
			}
			path = filepath.Join(homeDir, ".pagepush", defaultSQLiteFile)
		}
		store, err := sqlitestore.Open(context.Background(), path)
		if err != nil {
			return nil, "", nil, fmt.Errorf("wire settings store: %w", err)
		}
		return store, path, []io.Closer{store}, nil
	default:
		return nil, "", nil, fmt.Errorf("unsupported settings backend %q", backend)
	}
}

func (a *app) newPipeline(notifier ports.Notifier) *application.Pipeline {
	return application.NewPipeline(a.extractor, a.summarizer, a.persister, a.profiles, notifier, a.logger)
}

func (a *app) newDispatcher(notifier ports.Notifier) *application.Dispatcher {
	return application.NewDispatcher(a.summarizer, a.persister, a.profiles, notifier, a.logger)
}

func (a *app) Close() error {
	var errs []error
	for _, closer := range a.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil

	return errors.Join(errs...)
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// splitList parses a comma-separated env value, dropping blanks.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
