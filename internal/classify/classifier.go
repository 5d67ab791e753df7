package classify

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"alchemist/internal/config"
	"alchemist/internal/logging"
	"alchemist/internal/services"
	"alchemist/internal/services/llm"
)

const (
	summaryUnparseable = "Could not classify this document."
	summaryServiceDown = "Classification service was unavailable."
)

// Result is the decision for one document. It is always well formed: the
// category is non-empty and path-safe and the filename carries the source
// file's extension.
type Result struct {
	Summary  string
	Category string
	Filename string

	// Quarantined reports that classification degraded and Reason carries the
	// tagged error that caused it. The pipeline still proceeds to placement.
	Quarantined bool
	Reason      error
}

// Classifier turns extracted text into a placement decision via an LLM call.
type Classifier struct {
	client     *llm.Client
	base       []string
	libraryDir string
	logger     *slog.Logger
}

// New constructs a Classifier over the supplied client.
func New(cfg *config.Config, client *llm.Client, logger *slog.Logger) *Classifier {
	return &Classifier{
		client:     client,
		base:       cfg.Classifier.BaseCategories,
		libraryDir: cfg.Paths.LibraryDir,
		logger:     logging.NewComponentLogger(logger, "classify"),
	}
}

// Classify requests a decision for the document. It never returns an error:
// transport failures and malformed replies degrade to a quarantine Result
// with the original filename retained.
func (c *Classifier) Classify(ctx context.Context, text, filename string) Result {
	vocabulary := Vocabulary(c.base, c.libraryDir)

	raw, err := c.client.CompleteJSON(ctx, systemPrompt(vocabulary), userPrompt(filename, text))
	if err != nil {
		wrapped := services.Wrap(services.ErrService, "classifying", "request completion", filename, err)
		c.logger.Warn("classification request failed",
			logging.String(logging.FieldFile, filename),
			logging.Error(err))
		return c.quarantine(filename, summaryServiceDown, wrapped)
	}

	var payload struct {
		Summary  *string `json:"summary_sentence"`
		Category *string `json:"category"`
		Filename *string `json:"suggested_filename"`
	}
	if err := llm.DecodeLLMJSON(raw, &payload); err != nil {
		wrapped := services.Wrap(services.ErrMalformedResponse, "classifying", "parse response", filename, err)
		c.logger.Warn("could not parse model response",
			logging.String(logging.FieldFile, filename),
			logging.Error(err))
		return c.quarantine(filename, summaryUnparseable, wrapped)
	}

	summary, err := requiredField("summary_sentence", payload.Summary)
	if err != nil {
		return c.missingField(filename, err)
	}
	category, err := requiredField("category", payload.Category)
	if err != nil {
		return c.missingField(filename, err)
	}
	suggested, err := requiredField("suggested_filename", payload.Filename)
	if err != nil {
		return c.missingField(filename, err)
	}

	suggested = ensureExtension(suggested, filename)

	category = SanitizeCategory(category)
	if category == "" {
		return c.missingField(filename, services.MissingField("category"))
	}
	if !contains(vocabulary, category) {
		c.logger.Info("model introduced a new category",
			logging.String(logging.FieldFile, filename),
			logging.String(logging.FieldCategory, category))
	}

	return Result{Summary: summary, Category: category, Filename: suggested}
}

func (c *Classifier) missingField(filename string, err error) Result {
	c.logger.Warn("model response missing a required field",
		logging.String(logging.FieldFile, filename),
		logging.Error(err))
	return c.quarantine(filename, summaryUnparseable, err)
}

func (c *Classifier) quarantine(filename, summary string, reason error) Result {
	return Result{
		Summary:     summary,
		Category:    CategoryUnclassified,
		Filename:    filename,
		Quarantined: true,
		Reason:      reason,
	}
}

func requiredField(name string, value *string) (string, error) {
	if value == nil {
		return "", services.MissingField(name)
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return "", services.MissingField(name)
	}
	return trimmed, nil
}

// ensureExtension appends the original file's extension when the suggestion
// lacks it, so a rename never detaches a document from its type.
func ensureExtension(suggested, original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if ext == "" {
		return suggested
	}
	if strings.HasSuffix(strings.ToLower(suggested), ext) {
		return suggested
	}
	return suggested + ext
}

func contains(values []string, want string) bool {
	for _, value := range values {
		if value == want {
			return true
		}
	}
	return false
}
