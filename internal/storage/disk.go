package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"openboard/internal/middleware"
)

// PublicPathPrefix is the URL path under which stored objects are served.
const PublicPathPrefix = "/media"

// DiskStore is a local-filesystem Store. Objects live under Root and
// are served by the HTTP layer at PublicPathPrefix. BaseURL, when set,
// is prepended so stored URLs are absolute.
type DiskStore struct {
	Root    string
	BaseURL string
}

// NewDiskStore creates a DiskStore rooted at the given directory.
func NewDiskStore(root, baseURL string) *DiskStore {
	return &DiskStore{
		Root:    root,
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *DiskStore) Save(ctx context.Context, key string, data []byte) (string, error) {
	cleaned, ok := cleanKey(key)
	if !ok {
		middleware.StorageOperations.WithLabelValues("save", "error").Inc()
		return "", fmt.Errorf("invalid object key %q", key)
	}

	path := filepath.Join(s.Root, filepath.FromSlash(cleaned))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		middleware.StorageOperations.WithLabelValues("save", "error").Inc()
		return "", fmt.Errorf("failed to create object directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		middleware.StorageOperations.WithLabelValues("save", "error").Inc()
		return "", fmt.Errorf("failed to write object: %w", err)
	}

	middleware.StorageOperations.WithLabelValues("save", "ok").Inc()
	return s.BaseURL + PublicPathPrefix + "/" + cleaned, nil
}

func (s *DiskStore) Remove(ctx context.Context, key string) error {
	cleaned, ok := cleanKey(key)
	if !ok {
		middleware.StorageOperations.WithLabelValues("remove", "error").Inc()
		return fmt.Errorf("invalid object key %q", key)
	}

	if err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(cleaned))); err != nil {
		middleware.StorageOperations.WithLabelValues("remove", "error").Inc()
		return fmt.Errorf("failed to remove object: %w", err)
	}

	middleware.StorageOperations.WithLabelValues("remove", "ok").Inc()
	return nil
}

// KeyFromURL resolves a public URL produced by Save back to its key.
func (s *DiskStore) KeyFromURL(url string) (string, bool) {
	trimmed := url
	if s.BaseURL != "" {
		trimmed = strings.TrimPrefix(trimmed, s.BaseURL)
	}
	if !strings.HasPrefix(trimmed, PublicPathPrefix+"/") {
		return "", false
	}
	key := strings.TrimPrefix(trimmed, PublicPathPrefix+"/")
	return cleanKey(key)
}
