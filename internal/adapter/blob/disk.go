// Package blob stores uploaded file contents on the local disk.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

const maxExtensionLength = 16

// DiskStore keeps every blob as one file under dir, named by a random key
// that keeps the extension of the uploaded name.
type DiskStore struct {
	dir      string
	maxBytes int64
}

// NewDiskStore creates dir when missing. A maxBytes of zero disables the
// size limit.
func NewDiskStore(dir string, maxBytes int64) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{dir: dir, maxBytes: maxBytes}, nil
}

func (s *DiskStore) Save(_ context.Context, content io.Reader, suggestedName string) (string, int64, error) {
	key := uuid.NewString() + extension(suggestedName)

	f, err := os.OpenFile(s.path(key), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", 0, err
	}

	reader := content
	if s.maxBytes > 0 {
		reader = io.LimitReader(content, s.maxBytes+1)
	}

	size, err := io.Copy(f, reader)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil && s.maxBytes > 0 && size > s.maxBytes {
		err = fmt.Errorf("%w: limit is %d bytes", domain.ErrFileTooLarge, s.maxBytes)
	}
	if err != nil {
		_ = os.Remove(s.path(key))
		return "", 0, err
	}

	return key, size, nil
}

func (s *DiskStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	if !validKey(key) {
		return nil, fmt.Errorf("blob %q: %w", key, domain.ErrNotFound)
	}

	f, err := os.Open(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("blob %q: %w", key, domain.ErrNotFound)
		}
		return nil, err
	}
	return f, nil
}

// Delete treats a missing blob as already deleted.
func (s *DiskStore) Delete(_ context.Context, key string) error {
	if !validKey(key) {
		return nil
	}

	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// PingContext checks that the upload directory still exists and accepts
// new files.
func (s *DiskStore) PingContext(_ context.Context) error {
	f, err := os.CreateTemp(s.dir, ".health-*")
	if err != nil {
		return err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return err
	}
	return os.Remove(name)
}

func (s *DiskStore) path(key string) string {
	return filepath.Join(s.dir, key)
}

func validKey(key string) bool {
	return key != "" && key == filepath.Base(key) && !strings.HasPrefix(key, ".")
}

func extension(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(strings.ReplaceAll(name, "\\", "/"))))
	if len(ext) > maxExtensionLength {
		return ""
	}
	for _, r := range strings.TrimPrefix(ext, ".") {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return ""
		}
	}
	return ext
}

var _ ports.BlobStore = (*DiskStore)(nil)
