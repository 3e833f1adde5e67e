package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// AferoStore implements Store on an afero filesystem: a base-path OS
// filesystem in production and a MemMapFs in tests.
type AferoStore struct {
	fs afero.Fs
}

// NewAferoStore creates a new AferoStore.
func NewAferoStore(fs afero.Fs) *AferoStore {
	return &AferoStore{fs: fs}
}

// NewStagingStore returns a store rooted at dir/writerfolio-staging on disk.
func NewStagingStore(dir string) (*AferoStore, error) {
	root := filepath.Join(dir, "writerfolio-staging")
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, err
	}
	return NewAferoStore(afero.NewBasePathFs(afero.NewOsFs(), root)), nil
}

// Save writes the content of the reader to path, creating parent directories.
func (s *AferoStore) Save(ctx context.Context, path string, reader io.Reader) (int64, error) {
	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}
	f, err := s.fs.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return io.Copy(f, reader)
}

// Open opens a stored file for reading.
func (s *AferoStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return s.fs.OpenFile(path, os.O_RDONLY, 0)
}

// Delete removes a stored file.
func (s *AferoStore) Delete(ctx context.Context, path string) error {
	return s.fs.Remove(path)
}
