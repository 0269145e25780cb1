//go:build cgo

package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// extract runs Tesseract over the image. A fresh client per call keeps
// this safe for concurrent use; OCR cost dwarfs client setup anyway.
func (r *Reader) extract(ctx context.Context, imagePath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(strings.Split(r.languages, "+")...); err != nil {
		return "", fmt.Errorf("ocr: setting languages %q: %w", r.languages, err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("ocr: setting image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: extraction failed: %w", err)
	}

	text = strings.TrimSpace(text)
	r.log.Debug("ocr: read %d chars from %s", len(text), imagePath)
	return text, nil
}
