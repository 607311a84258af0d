package pdf

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/voicebook/server/domain/repositories"
)

// Extractor pulls plain text out of PDF documents.
type Extractor struct {
	logger *zap.Logger
}

var _ repositories.Extractor = (*Extractor)(nil)

// New creates a PDF text extractor.
func New(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// ExtractText returns the plain text of the PDF at path.
func (e *Extractor) ExtractText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	raw, err := io.ReadAll(textReader)
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	text := strings.TrimSpace(string(raw))
	if text == "" {
		return "", fmt.Errorf("pdf contains no extractable text")
	}

	e.logger.Info("Extracted book text",
		zap.String("path", path),
		zap.Int("pages", reader.NumPage()),
		zap.Int("characters", len(text)))

	return text, nil
}
