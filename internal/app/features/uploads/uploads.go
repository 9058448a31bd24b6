// internal/app/features/uploads/uploads.go
package uploads

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dalemusser/heartfund/internal/app/system/apiutil"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxImageBytes caps upload size at 8 MiB.
const maxImageBytes = 8 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// uploadResult carries the public URL of the stored image. The URL is
// opaque to the rest of the system; campaigns and activities store it as
// a plain string.
type uploadResult struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

// Image accepts a multipart image upload and stores it under a unique
// date-partitioned path.
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		apiutil.Error(w, http.StatusBadRequest, "INVALID_UPLOAD", "Upload must be a multipart form of at most 8 MB")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		apiutil.Error(w, http.StatusBadRequest, "MISSING_FILE", "An image file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		apiutil.Error(w, http.StatusBadRequest, "UNSUPPORTED_TYPE", "Only JPEG, PNG, GIF, and WebP images are accepted")
		return
	}

	// Unique path: images/YYYY/MM/uuid-filename
	now := time.Now().UTC()
	path := fmt.Sprintf("images/%04d/%02d/%s-%s",
		now.Year(), now.Month(), uuid.New().String()[:8], sanitizeFilename(header.Filename))

	opts := &storage.PutOptions{ContentType: contentType}
	if err := h.Storage.Put(r.Context(), path, file, opts); err != nil {
		h.Log.Error("image upload failed", zap.Error(err), zap.String("path", path))
		apiutil.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Something went wrong")
		return
	}

	apiutil.Created(w, uploadResult{
		URL:      strings.TrimSuffix(h.URLPrefix, "/") + "/" + path,
		FileName: header.Filename,
	}, "Image uploaded")
}

// sanitizeFilename strips path components and replaces characters that
// could be problematic in stored names.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == ".." || name == "/" {
		return "file"
	}

	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
			c == '-' || c == '_' || c == '.' {
			out = append(out, c)
		} else {
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "file"
	}
	if len(out) > 100 {
		ext := filepath.Ext(string(out))
		if len(ext) > 0 && len(ext) < 10 {
			out = append(out[:100-len(ext)], ext...)
		} else {
			out = out[:100]
		}
	}
	return string(out)
}
