package objectstore

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists evaluation images and returns public URLs for them.
type Store interface {
	Upload(filename string, r io.Reader) (string, error)
	Delete(url string) error
}

// DiskStore writes objects under a local directory. Keys are random so
// uploaded filenames never collide or escape the directory.
type DiskStore struct {
	dir     string
	baseURL string
	logger  *slog.Logger
}

// NewDiskStore creates the backing directory if missing.
func NewDiskStore(dir, baseURL string, logger *slog.Logger) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/"), logger: logger}, nil
}

// Upload stores the object under a generated key, keeping the original
// extension so browsers infer the content type.
func (s *DiskStore) Upload(filename string, r io.Reader) (string, error) {
	key := uuid.NewString()
	if ext := filepath.Ext(filename); ext != "" && len(ext) <= 8 {
		key += strings.ToLower(ext)
	}

	dst, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", fmt.Errorf("create object: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("write object: %w", err)
	}

	url := s.baseURL + "/" + key
	s.logger.Info("image stored", slog.String("key", key))
	return url, nil
}

// Delete removes a previously uploaded object. Unknown URLs are ignored.
func (s *DiskStore) Delete(url string) error {
	key := filepath.Base(url)
	if key == "." || key == "/" || key == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

// Dir exposes the backing directory for static serving.
func (s *DiskStore) Dir() string {
	return s.dir
}
