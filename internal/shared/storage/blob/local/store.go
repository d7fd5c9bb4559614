package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"imageshare-backend/internal/shared/storage/blob"
)

// Store implements blob.Store using the local filesystem. It exists for
// development and tests; URLs it hands out are plain routes served by the
// dev file endpoint, not signed.
type Store struct {
	baseDir string
	urlBase string
}

// New creates a local blob store rooted at baseDir. urlBase is prepended to
// storage keys by PresignedURL; empty means "/api/v1/files".
func New(baseDir, urlBase string) *Store {
	if urlBase == "" {
		urlBase = "/api/v1/files"
	}
	return &Store{baseDir: baseDir, urlBase: strings.TrimRight(urlBase, "/")}
}

// Put writes the reader contents to disk under a generated key.
func (s *Store) Put(ctx context.Context, r io.Reader, displayName, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	storageKey := blob.NewKey(displayName)
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: mkdir: %v", blob.ErrStorage, err)
	}

	f, err := os.OpenFile(filepath.Join(s.baseDir, storageKey), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("%w: open file: %v", blob.ErrStorage, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("%w: write body: %v", blob.ErrStorage, err)
	}

	return storageKey, nil
}

// Delete removes the file under storageKey. Absent files are not an error.
func (s *Store) Delete(ctx context.Context, storageKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean, err := cleanKey(storageKey)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.baseDir, clean)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: remove: %v", blob.ErrStorage, err)
	}
	return nil
}

// PresignedURL returns a routable path for the dev file endpoint. The TTL is
// accepted for interface parity but not enforced locally.
func (s *Store) PresignedURL(ctx context.Context, storageKey string, ttl time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean, err := cleanKey(storageKey)
	if err != nil {
		return "", err
	}
	return s.urlBase + "/" + clean, nil
}

// Open opens a stored object for reading; used by the dev file endpoint.
func (s *Store) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean, err := cleanKey(storageKey)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.baseDir, clean))
	if err != nil {
		return nil, err
	}
	return f, nil
}

func cleanKey(storageKey string) (string, error) {
	clean := filepath.Clean(storageKey)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) || strings.ContainsAny(clean, `/\`) {
		return "", fmt.Errorf("%w: invalid storage key %q", blob.ErrStorage, storageKey)
	}
	return clean, nil
}

var _ blob.Store = (*Store)(nil)
