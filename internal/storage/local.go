package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage stores attachments on the local filesystem. It backs
// development setups where no object-store bucket is configured.
type LocalStorage struct {
	root string
}

// NewLocalStorage creates the root directory if needed and returns a store
// writing beneath it.
func NewLocalStorage(root string) (*LocalStorage, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("local storage: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("local storage: create root: %w", err)
	}
	return &LocalStorage{root: root}, nil
}

// Save writes the attachment bytes under the given name and returns the
// path relative to the storage root.
func (s *LocalStorage) Save(_ context.Context, name string, r io.Reader) (string, error) {
	key := strings.TrimLeft(filepath.ToSlash(name), "/")
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("local storage: invalid key %q", name)
	}

	path := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("local storage: create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("local storage: create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("local storage: write %s: %w", key, err)
	}

	return key, nil
}
