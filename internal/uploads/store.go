// Package uploads owns the on-disk image store: saving multipart uploads
// with rename-on-conflict and deleting stale files off the request path.
package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// DefaultImage is the sentinel filename stored when a product has no image.
// It is never deleted from disk.
const DefaultImage = "default-image.png"

type Store struct {
	Dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{Dir: dir}, nil
}

func (s *Store) Path(name string) string {
	return filepath.Join(s.Dir, filepath.Base(name))
}

// Save writes the uploaded file under its sanitized original name. When that
// name is taken, a numeric suffix is inserted before the extension until a
// free name is found. Returns the stored filename.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := sanitize(fh.Filename)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			name = fmt.Sprintf("%s-%d%s", stem, attempt, ext)
		}
		dst, err := os.OpenFile(s.Path(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if os.IsExist(err) {
				continue
			}
			return "", fmt.Errorf("create upload file: %w", err)
		}
		if _, err := io.Copy(dst, src); err != nil {
			dst.Close()
			os.Remove(s.Path(name))
			return "", fmt.Errorf("write upload: %w", err)
		}
		if err := dst.Close(); err != nil {
			return "", fmt.Errorf("close upload: %w", err)
		}
		return name, nil
	}
}

func sanitize(raw string) string {
	name := filepath.Base(filepath.Clean(raw))
	name = strings.ReplaceAll(name, " ", "-")
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "upload"
	}
	return name
}

// Deletable reports whether a stored image value refers to a local file we
// own: the sentinel default and externally hosted URLs are never removed.
func Deletable(image string) bool {
	return image != "" && image != DefaultImage && !strings.HasPrefix(image, "http")
}
