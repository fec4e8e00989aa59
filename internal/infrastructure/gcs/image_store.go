package gcs

import (
	"context"
	"errors"
	"io"

	"cloud.google.com/go/storage"

	"github.com/yourplaces/api/pkg/helpers"
)

// ImageStore persists uploaded images in a GCS bucket and serves their
// public URLs back to the API.
type ImageStore struct {
	client *storage.Client
	bucket string
}

func NewImageStore(client *storage.Client, bucket string) *ImageStore {
	return &ImageStore{client: client, bucket: bucket}
}

func (s *ImageStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	if s.client == nil || s.bucket == "" {
		return "", errors.New("gcs not configured")
	}
	return helpers.UploadObject(ctx, s.client, s.bucket, objectPath, contentType, r)
}

// Remove deletes the object behind a previously returned URL.
// URLs outside the configured bucket are ignored.
func (s *ImageStore) Remove(ctx context.Context, imageURL string) error {
	if s.client == nil || s.bucket == "" {
		return errors.New("gcs not configured")
	}
	objectPath := helpers.ObjectPathFromURL(s.bucket, imageURL)
	if objectPath == "" {
		return nil
	}
	return helpers.DeleteObject(ctx, s.client, s.bucket, objectPath)
}
