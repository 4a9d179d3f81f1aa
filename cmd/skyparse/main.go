package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bookmesky/skyparse/internal/api"
	"github.com/bookmesky/skyparse/internal/config"
	"github.com/bookmesky/skyparse/internal/events"
	"github.com/bookmesky/skyparse/internal/extract"
	"github.com/bookmesky/skyparse/internal/repl"
	"github.com/bookmesky/skyparse/internal/search"
	"github.com/bookmesky/skyparse/internal/sky"
	"github.com/bookmesky/skyparse/internal/store"
)

func main() {
	interactive := flag.Bool("repl", false, "run an interactive extraction loop instead of the HTTP server")
	flag.Parse()

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	extractor := extract.New(slog.Default(), nil)

	// Search is disabled without sky credentials; extraction still
	// works.
	var searcher api.FlightSearcher
	if cfg.SkyUsername != "" && cfg.SkyPassword != "" {
		client := sky.NewClient(sky.Config{
			AuthURL:      cfg.SkyAuthURL,
			SearchURL:    cfg.SkySearchURL,
			ProvidersURL: cfg.SkyProviders,
			Username:     cfg.SkyUsername,
			Password:     cfg.SkyPassword,
		})
		if err := client.Authenticate(ctx); err != nil {
			slog.Error("sky authentication failed", "error", err)
			os.Exit(1)
		}
		searcher = search.NewSearcher(client, cfg.Workers, cfg.ResultCap, slog.Default())
		slog.Info("sky client ready", "workers", cfg.Workers)
	} else {
		slog.Warn("sky credentials not configured, search disabled")
	}

	if *interactive {
		r := repl.New(extractor, searcher, os.Stdin, os.Stdout)
		if err := r.Run(ctx); err != nil {
			slog.Error("repl error", "error", err)
			os.Exit(1)
		}
		return
	}

	if searcher == nil {
		slog.Error("SKY_USERNAME and SKY_PASSWORD are required for the server")
		os.Exit(1)
	}

	slog.Info("skyparse starting", "port", cfg.Port)

	// Search log (optional)
	var searchLog api.SearchLog
	if cfg.DatabaseURL != "" {
		db, err := store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		searchLog = db
		slog.Info("database connected")
	} else {
		slog.Warn("DATABASE_URL not set, search logging disabled")
	}

	// Events (optional)
	var publisher *events.Publisher
	if cfg.NatsURL != "" {
		var err error
		publisher, err = events.NewPublisher(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS_URL not set, events disabled")
	}

	srv := api.NewServer(cfg.Port, extractor, searcher, searchLog, publisher, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("skyparse ready", "port", cfg.Port)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("skyparse stopped")
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
