// internal/app/bootstrap/storage.go
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dalemusser/waffle/pantry/storage"
)

// localBlobStore persists uploaded blobs under a base directory on the
// local filesystem. It satisfies the narrow uploads.BlobPutter interface;
// the stored paths are served back by the static file handler mounted in
// BuildHandler.
type localBlobStore struct {
	base string
}

func newLocalBlobStore(base string) (*localBlobStore, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &localBlobStore{base: base}, nil
}

// Put writes the blob to base/path, creating intermediate directories.
// Paths are produced by the uploads feature and never contain "..".
func (s *localBlobStore) Put(ctx context.Context, path string, r io.Reader, opts *storage.PutOptions) error {
	full := filepath.Join(s.base, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create blob dir: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("create blob: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("write blob: %w", err)
	}
	return f.Close()
}
