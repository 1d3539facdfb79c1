package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/MikeSquared-Agency/mira/internal/api"
	"github.com/MikeSquared-Agency/mira/internal/browser"
	"github.com/MikeSquared-Agency/mira/internal/config"
	"github.com/MikeSquared-Agency/mira/internal/events"
	"github.com/MikeSquared-Agency/mira/internal/openai"
	"github.com/MikeSquared-Agency/mira/internal/page"
	"github.com/MikeSquared-Agency/mira/internal/persona"
	"github.com/MikeSquared-Agency/mira/internal/pipeline"
	"github.com/MikeSquared-Agency/mira/internal/store"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("mira starting", "port", cfg.Port, "lang", cfg.PromptLang)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Log store: Postgres when DATABASE_URL is set, embedded SQLite
	// otherwise.
	var logs store.LogStore
	if cfg.DatabaseURL != "" {
		pg, err := store.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		logs = pg
		slog.Info("postgres connected")
	} else {
		sq, err := store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			slog.Error("failed to open sqlite store", "error", err, "path", cfg.SQLitePath)
			os.Exit(1)
		}
		logs = sq
		slog.Info("sqlite store ready", "path", cfg.SQLitePath)
	}
	defer logs.Close()

	// Persona catalog
	catalog := persona.Default()
	if cfg.PersonaFile != "" {
		data, err := os.ReadFile(cfg.PersonaFile)
		if err != nil {
			slog.Error("failed to read persona file", "error", err, "path", cfg.PersonaFile)
			os.Exit(1)
		}
		catalog, err = persona.NewCatalog(data)
		if err != nil {
			slog.Error("invalid persona file", "error", err, "path", cfg.PersonaFile)
			os.Exit(1)
		}
		slog.Info("persona catalog loaded", "path", cfg.PersonaFile, "personas", len(catalog.All()))
	}

	// Retriever: rendered capture through Chrome when enabled, plain
	// HTTP fetch otherwise.
	var retriever pipeline.Retriever
	if cfg.Browser || cfg.BrowserURL != "" {
		br := browser.New(browser.Config{RemoteURL: cfg.BrowserURL, Logger: slog.Default()})
		if err := br.Start(); err != nil {
			slog.Error("failed to start browser", "error", err)
			os.Exit(1)
		}
		defer br.Close()
		retriever = br
	} else {
		retriever = page.NewFetcher()
		slog.Info("static fetcher ready")
	}

	// Inference (optional — without a key every run takes the
	// placeholder path)
	var llm pipeline.Inferencer
	if cfg.OpenAIKey != "" {
		llm = openai.NewClient(cfg.OpenAIKey, cfg.OpenAIModel, cfg.Temperature)
		slog.Info("openai client ready", "model", cfg.OpenAIModel)
	} else {
		slog.Warn("OPENAI_API_KEY not set — replies are placeholders")
	}

	// Events (optional)
	var notifier pipeline.Notifier
	if cfg.NatsURL != "" {
		pub, err := events.NewPublisher(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer pub.Close()
		notifier = pub
		slog.Info("NATS connected", "url", cfg.NatsURL)
	}

	runner := pipeline.New(catalog, retriever, llm, logs, notifier, cfg.PromptLang, slog.Default())

	srv := api.NewServer(cfg.Port, runner, logs, catalog, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("mira ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("mira stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
