//go:build !cgo

package ocr

import (
	"context"

	"github.com/hammamikhairi/souschef/internal/domain"
)

// extract is the CGO-less stub. The caller treats the error like an
// empty frame: the ocr_mark signal is simply never produced.
func (r *Reader) extract(ctx context.Context, imagePath string) (string, error) {
	r.log.Warn("ocr: built without cgo, text reading unavailable")
	return "", domain.ErrNotImplemented
}
