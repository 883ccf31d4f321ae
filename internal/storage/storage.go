// Package storage abstracts the binary object store that holds avatar
// and post images. Objects are addressed by generated keys and exposed
// through public URLs.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/http"
	"path/filepath"
	"strings"

	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder

	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Store is the file store collaborator. Save persists an object under
// the given key and returns its public URL; Remove deletes the object;
// KeyFromURL resolves a previously returned URL back to its key.
type Store interface {
	Save(ctx context.Context, key string, data []byte) (string, error)
	Remove(ctx context.Context, key string) error
	KeyFromURL(url string) (string, bool)
}

var extByMIME = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// SniffImage detects the content type of an uploaded file and verifies
// it decodes as an image. It returns the canonical file extension.
func SniffImage(content []byte) (string, bool) {
	mimeType := http.DetectContentType(content)
	ext, ok := extByMIME[mimeType]
	if !ok {
		return "", false
	}
	if _, _, err := image.Decode(bytes.NewReader(content)); err != nil {
		return "", false
	}
	return ext, true
}

// NewObjectKey generates a collision-resistant object key scoped by the
// owning user, e.g. "avatars/42/2f3a....png".
func NewObjectKey(prefix string, userID uint, ext string) string {
	return fmt.Sprintf("%s/%d/%s%s", prefix, userID, uuid.New().String(), ext)
}

// cleanKey rejects keys that would escape the store root.
func cleanKey(key string) (string, bool) {
	if key == "" || strings.Contains(key, "..") {
		return "", false
	}
	cleaned := filepath.ToSlash(filepath.Clean(key))
	if strings.HasPrefix(cleaned, "/") || strings.HasPrefix(cleaned, "..") {
		return "", false
	}
	return cleaned, true
}
