package storage

import (
	"context"
	"io"
)

// BlobStore persists attachment bytes. Save returns the locator under which
// the bytes can later be addressed; the core stores the locator, nothing else.
type BlobStore interface {
	Save(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}
