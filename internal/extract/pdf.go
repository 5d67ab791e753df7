package extract

import (
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"alchemist/internal/logging"
)

// extractPDF reads every page of a PDF and concatenates the extracted text.
// A page whose text cannot be extracted is skipped with a warning. A document
// that cannot be opened at all yields empty text rather than an error, so the
// caller sees "nothing extracted" and routes accordingly.
func (e *Extractor) extractPDF(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		e.logger.Warn("could not open pdf, treating as empty",
			logging.String(logging.FieldFile, filepath.Base(path)),
			logging.Error(err))
		return "", nil
	}
	defer file.Close()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Warn("skipping unextractable pdf page",
				logging.String(logging.FieldFile, filepath.Base(path)),
				logging.Int("page", i),
				logging.Error(err))
			continue
		}
		if content == "" {
			continue
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String()), nil
}
