package application

import (
	"context"
	"io"

	"github.com/yourplaces/api/internal/domain/entity"
)

// Geocoder resolves a free-text address to coordinates. Errors propagate to
// the caller as-is; the service layer never retries.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (entity.Location, error)
}

// ImageStore is the file storage collaborator: it accepts an uploaded binary
// and returns a stable URL, and supports best-effort delete by that URL.
type ImageStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
	Remove(ctx context.Context, imageURL string) error
}

// ImageUpload carries a single multipart upload into the service layer.
type ImageUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}
