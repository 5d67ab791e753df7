package watcher

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"alchemist/internal/auditlog"
	"alchemist/internal/classify"
	"alchemist/internal/config"
	"alchemist/internal/extract"
	"alchemist/internal/logging"
	"alchemist/internal/organize"
	"alchemist/internal/services"
)

// OutcomeStatus tags how a single document's pipeline run ended.
type OutcomeStatus string

const (
	// StatusDone means the document was classified, placed, and logged.
	StatusDone OutcomeStatus = "done"
	// StatusSkipped means the file was filtered out or vanished before
	// processing started.
	StatusSkipped OutcomeStatus = "skipped"
	// StatusQuarantinedUnsupported means the file type has no extractor and
	// the file was parked in the unsupported bucket.
	StatusQuarantinedUnsupported OutcomeStatus = "quarantined_unsupported"
	// StatusQuarantinedEmpty means extraction produced no text and the file
	// was parked in the unclassified bucket.
	StatusQuarantinedEmpty OutcomeStatus = "quarantined_empty"
	// StatusFailed means the run aborted and the file remains at its
	// original path.
	StatusFailed OutcomeStatus = "failed"
)

// Outcome describes the result of one pipeline run.
type Outcome struct {
	RunID     string
	Status    OutcomeStatus
	Source    string
	FinalPath string
	Category  string
	Err       error
}

// Pipeline sequences one document through extraction, classification,
// placement, and audit logging.
type Pipeline struct {
	cfg        *config.Config
	extractor  *extract.Extractor
	classifier *classify.Classifier
	placer     *organize.Placer
	store      *auditlog.Store
	logger     *slog.Logger
}

// NewPipeline wires the pipeline stages together.
func NewPipeline(cfg *config.Config, extractor *extract.Extractor, classifier *classify.Classifier, placer *organize.Placer, store *auditlog.Store, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		cfg:        cfg,
		extractor:  extractor,
		classifier: classifier,
		placer:     placer,
		store:      store,
		logger:     logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Process runs one document through the full pipeline. It never returns an
// error to the caller; failures are captured in the Outcome so the watch
// loop keeps running.
func (p *Pipeline) Process(ctx context.Context, path string) Outcome {
	outcome := Outcome{
		RunID:  uuid.NewString(),
		Status: StatusFailed,
		Source: path,
	}
	filename := filepath.Base(path)
	logger := p.logger.With(
		logging.String(logging.FieldRunID, outcome.RunID),
		logging.String(logging.FieldFile, filename),
	)
	logger.Info("processing document")

	text, err := p.extractor.Extract(path)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrNotFound):
		logger.Info("file vanished before processing")
		outcome.Status = StatusSkipped
		return outcome
	case errors.Is(err, services.ErrUnsupportedType):
		return p.quarantine(outcome, logger, classify.CategoryUnsupported, StatusQuarantinedUnsupported)
	default:
		logger.Error("extraction failed", logging.Error(err))
		outcome.Err = err
		return outcome
	}

	if strings.TrimSpace(text) == "" {
		logger.Info("no text extracted")
		return p.quarantine(outcome, logger, classify.CategoryUnclassified, StatusQuarantinedEmpty)
	}

	result := p.classifier.Classify(ctx, text, filename)
	if result.Quarantined {
		logger.Warn("classification degraded to quarantine", logging.Error(result.Reason))
	}

	finalPath, err := p.placer.Place(path, result.Category, result.Filename)
	if err != nil {
		logger.Error("placement failed; file left in place", logging.Error(err))
		outcome.Err = err
		return outcome
	}
	outcome.FinalPath = finalPath
	outcome.Category = result.Category

	record := auditlog.Record{
		OriginalFilename: filename,
		NewFilename:      filepath.Base(finalPath),
		Category:         result.Category,
		Summary:          result.Summary,
		DestPath:         finalPath,
	}
	if _, err := p.store.Append(ctx, record); err != nil {
		// The move already happened; the filesystem is the source of truth.
		logger.Warn("audit append failed",
			logging.Error(services.Wrap(services.ErrAuditWrite, "logging", "append record", "Failed to record organized document", err)),
		)
	}

	outcome.Status = StatusDone
	logger.Info("document organized",
		logging.String(logging.FieldCategory, result.Category),
		logging.String("final_path", finalPath),
	)
	return outcome
}

// quarantine parks the file in a reserved category under its original name
// without writing an audit entry, since no classification happened.
func (p *Pipeline) quarantine(outcome Outcome, logger *slog.Logger, category string, status OutcomeStatus) Outcome {
	finalPath, err := p.placer.Place(outcome.Source, category, filepath.Base(outcome.Source))
	if err != nil {
		logger.Error("quarantine placement failed; file left in place", logging.Error(err))
		outcome.Err = err
		return outcome
	}
	outcome.Status = status
	outcome.FinalPath = finalPath
	outcome.Category = category
	logger.Info("document quarantined",
		logging.String(logging.FieldCategory, category),
		logging.String("final_path", finalPath),
	)
	return outcome
}
