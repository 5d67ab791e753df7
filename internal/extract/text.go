package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"alchemist/internal/logging"
)

// extractText reads a plain-text file as UTF-8. Invalid UTF-8 falls back to a
// Latin-1 decode, which maps every byte and therefore cannot fail.
func (e *Extractor) extractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read text file: %w", err)
	}
	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		// Latin-1 decoding has no invalid inputs; reaching this means a bug.
		return "", fmt.Errorf("latin-1 fallback: %w", err)
	}
	e.logger.Debug("text file was not valid UTF-8, used latin-1 fallback",
		logging.String(logging.FieldFile, filepath.Base(path)))
	return string(decoded), nil
}
