package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"alchemist/internal/auditlog"
	"alchemist/internal/classify"
	"alchemist/internal/daemon"
	"alchemist/internal/extract"
	"alchemist/internal/logging"
	"alchemist/internal/organize"
	"alchemist/internal/services/llm"
	"alchemist/internal/watcher"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Watch the inbox folder and organize documents until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			store, err := auditlog.Open(cfg)
			if err != nil {
				return fmt.Errorf("open audit store: %w", err)
			}
			defer store.Close()

			client := llm.NewClient(llm.Config{
				APIKey:         cfg.LLM.APIKey,
				BaseURL:        cfg.LLM.BaseURL,
				Model:          cfg.LLM.Model,
				TimeoutSeconds: cfg.LLM.TimeoutSeconds,
			})
			if err := client.HealthCheck(signalCtx); err != nil {
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
				return err
			}
			if err := d.Start(signalCtx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (library: %s). Press Ctrl-C to stop.\n",
				cfg.Paths.WatchDir, cfg.Paths.LibraryDir)
			<-signalCtx.Done()
			d.Stop()
			return nil
		},
	}
}
