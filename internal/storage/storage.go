package storage

import (
	"context"
	"io"
)

// UploadedImage identifies a stored image: the public URL served to clients
// and the object key used for deletion.
type UploadedImage struct {
	URL string
	Key string
}

// ImageStore captures the minimal object-store operations the delivery
// records need: upload a photo, delete it by key when the record expires.
type ImageStore interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader, size int64) (*UploadedImage, error)
	Delete(ctx context.Context, key string) error
}
