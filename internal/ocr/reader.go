// Package ocr provides the text-reading collaborator, backed by
// Tesseract through gosseract. With CGO disabled the reader degrades
// to a stub that reports not-implemented, which the estimator treats
// like any other absent signal.
package ocr

import (
	"context"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/logger"
)

// Compile-time interface check.
var _ domain.TextReader = (*Reader)(nil)

// DefaultLanguages covers English plus Devanagari for Hindi/Marathi
// spice labels.
const DefaultLanguages = "eng+deva"

// Reader extracts printed text (labels, measuring marks) from frames.
type Reader struct {
	languages string
	log       *logger.Logger
}

// NewReader creates a reader for the given Tesseract language string
// (e.g. "eng" or "eng+deva"). Empty defaults to DefaultLanguages.
func NewReader(languages string, log *logger.Logger) *Reader {
	if languages == "" {
		languages = DefaultLanguages
	}
	return &Reader{languages: languages, log: log}
}

// ReadText extracts all text from the image at the given path.
func (r *Reader) ReadText(ctx context.Context, imagePath string) (string, error) {
	return r.extract(ctx, imagePath)
}
