package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"alchemist/internal/auditlog"
	"alchemist/internal/classify"
	"alchemist/internal/config"
	"alchemist/internal/daemon"
	"alchemist/internal/extract"
	"alchemist/internal/logging"
	"alchemist/internal/organize"
	"alchemist/internal/services/llm"
	"alchemist/internal/watcher"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Optional; real deployments usually put the key in the environment.
	_ = godotenv.Load()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("ensure directories: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	store, err := auditlog.Open(cfg)
	if err != nil {
		logger.Error("open audit store", logging.Error(err))
		os.Exit(1)
	}
	defer store.Close()

	client := llm.NewClient(llm.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		Model:          cfg.LLM.Model,
		TimeoutSeconds: cfg.LLM.TimeoutSeconds,
	})
	if err := client.HealthCheck(ctx); err != nil {
		logger.Warn("classification service unreachable; documents will be quarantined until it recovers",
			logging.Error(err))
	}

	pipeline := watcher.NewPipeline(
		cfg,
		extract.New(cfg.Classifier.MaxWords, logger),
		classify.New(cfg, client, logger),
		organize.New(cfg.Paths.LibraryDir, logger),
		store,
		logger,
	)
	d, err := daemon.New(cfg, store, logger, watcher.New(cfg, pipeline, logger))
	if err != nil {
		logger.Error("construct daemon", logging.Error(err))
		os.Exit(1)
	}
	if err := d.Start(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	<-ctx.Done()
	d.Stop()
}
