package extract

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"alchemist/internal/logging"
	"alchemist/internal/services"
)

// DefaultMaxWords bounds extracted text when no limit is configured.
const DefaultMaxWords = 3000

// Extractor resolves a handler by file extension and produces truncated text.
type Extractor struct {
	maxWords int
	logger   *slog.Logger
}

// New constructs an Extractor. maxWords <= 0 selects DefaultMaxWords.
func New(maxWords int, logger *slog.Logger) *Extractor {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	return &Extractor{
		maxWords: maxWords,
		logger:   logging.NewComponentLogger(logger, "extract"),
	}
}

// Supported reports whether the extension of name has an extraction handler.
func Supported(name string) bool {
	switch normalizeExt(name) {
	case ".txt", ".md", ".text", ".pdf":
		return true
	default:
		return false
	}
}

// Extract reads the file at path and returns its text truncated to the
// configured word limit. A missing file and an unsupported extension are
// reported with the services.ErrNotFound and services.ErrUnsupportedType
// markers respectively.
func (e *Extractor) Extract(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", services.Wrap(services.ErrNotFound, "extracting", "stat file", filepath.Base(path), err)
		}
		return "", fmt.Errorf("stat %s: %w", filepath.Base(path), err)
	}
	if info.IsDir() {
		return "", services.Wrap(services.ErrUnsupportedType, "extracting", "dispatch", "path is a directory", nil)
	}

	var raw string
	switch ext := normalizeExt(path); ext {
	case ".txt", ".md", ".text":
		raw, err = e.extractText(path)
	case ".pdf":
		raw, err = e.extractPDF(path)
	default:
		return "", services.Wrap(services.ErrUnsupportedType, "extracting", "dispatch", "extension "+ext, nil)
	}
	if err != nil {
		return "", err
	}

	return TruncateWords(raw, e.maxWords), nil
}

// TruncateWords keeps the first maxWords whitespace-separated words of text.
func TruncateWords(text string, maxWords int) string {
	if maxWords <= 0 {
		return ""
	}
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:maxWords], " ")
}

func normalizeExt(name string) string {
	return strings.ToLower(filepath.Ext(name))
}
