// internal/app/features/uploads/handler.go
package uploads

import (
	"context"
	"io"

	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"
)

// BlobPutter is the subset of the storage backend the upload handlers
// need. *storage.Local and the other waffle backends satisfy it.
type BlobPutter interface {
	Put(ctx context.Context, path string, r io.Reader, opts *storage.PutOptions) error
}

// Handler owns the image upload handlers.
type Handler struct {
	Storage   BlobPutter
	URLPrefix string
	Log       *zap.Logger
}

// NewHandler constructs an uploads Handler. urlPrefix is the public URL
// under which stored paths are served.
func NewHandler(store BlobPutter, urlPrefix string, logger *zap.Logger) *Handler {
	return &Handler{
		Storage:   store,
		URLPrefix: urlPrefix,
		Log:       logger,
	}
}
