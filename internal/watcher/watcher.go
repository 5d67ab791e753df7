package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"alchemist/internal/config"
	"alchemist/internal/logging"
)

// Watcher monitors the watch folder and feeds new files to the pipeline.
type Watcher struct {
	cfg      *config.Config
	pipeline *Pipeline
	logger   *slog.Logger

	// settle overrides the configured delay in tests.
	settle time.Duration
}

// New returns a Watcher over cfg's watch folder.
func New(cfg *config.Config, pipeline *Pipeline, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Watcher{
		cfg:      cfg,
		pipeline: pipeline,
		logger:   logging.NewComponentLogger(logger, "watcher"),
		settle:   time.Duration(cfg.Watcher.SettleDelaySeconds) * time.Second,
	}
}

// Run watches for file-creation events until ctx is canceled. Each event is
// handled synchronously; an in-flight document finishes before Run returns.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create filesystem watcher: %w", err)
	}
	defer fsw.Close()

	if err := w.addWatches(fsw); err != nil {
		return err
	}
	w.logger.Info("watching for documents",
		logging.String("watch_dir", w.cfg.Paths.WatchDir),
		logging.Bool("recursive", w.cfg.Watcher.Recursive),
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, fsw, event)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", logging.Error(err))
		}
	}
}

// addWatches registers the watch folder and, when recursive, every existing
// subdirectory.
func (w *Watcher) addWatches(fsw *fsnotify.Watcher) error {
	root := w.cfg.Paths.WatchDir
	if err := fsw.Add(root); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	if !w.cfg.Watcher.Recursive {
		return nil
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || path == root {
			return nil
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) handleEvent(ctx context.Context, fsw *fsnotify.Watcher, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		// Already gone; nothing to do.
		return
	}
	if info.IsDir() {
		if w.cfg.Watcher.Recursive {
			if err := fsw.Add(event.Name); err != nil {
				w.logger.Warn("failed to watch new subdirectory",
					logging.String("dir", event.Name),
					logging.Error(err),
				)
			}
		}
		return
	}

	name := filepath.Base(event.Name)
	if shouldSkip(name) {
		w.logger.Debug("skipping filtered file", logging.String(logging.FieldFile, name))
		return
	}

	// Let the writer finish before we read. Heuristic, not a guarantee.
	if !w.wait(ctx, w.settle) {
		return
	}
	w.pipeline.Process(ctx, event.Name)
}

// wait sleeps for d unless ctx is canceled first.
func (w *Watcher) wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
