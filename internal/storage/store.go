package storage

import (
	"context"
	"io"
)

// Store keeps uploaded files between the admin's form post and the call that
// forwards them to the content backend.
type Store interface {
	Save(ctx context.Context, path string, reader io.Reader) (int64, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}
