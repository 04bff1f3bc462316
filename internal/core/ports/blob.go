package ports

import (
	"context"
	"io"
)

// BlobStore keeps uploaded file contents under generated keys.
type BlobStore interface {
	Save(ctx context.Context, content io.Reader, suggestedName string) (key string, size int64, err error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
