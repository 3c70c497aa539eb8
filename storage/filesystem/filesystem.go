package filesystem

import (
	"context"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store writes media blobs into a local directory. The returned reference
// is the generated file name, never a path supplied by the caller.
type Store struct {
	basePath string
}

// NewStore creates a filesystem-backed media store rooted at basePath.
func NewStore(basePath string) *Store {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		log.Fatalf("failed to create media directory %s: %v", basePath, err)
	}
	return &Store{basePath: basePath}
}

func (s *Store) Store(ctx context.Context, data []byte, contentType string) (string, error) {
	name := uuid.NewString() + extensionFor(contentType)
	path := filepath.Join(s.basePath, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}
	return name, nil
}

func (s *Store) Delete(ctx context.Context, ref string) error {
	// Refs are plain generated names; reject anything that resolves
	// outside the base directory.
	if filepath.Base(ref) != ref || ref == "" || ref == "." || ref == ".." {
		return fmt.Errorf("invalid media ref %q", ref)
	}
	if err := os.Remove(filepath.Join(s.basePath, ref)); err != nil {
		return fmt.Errorf("failed to delete media file %s: %w", ref, err)
	}
	return nil
}

func extensionFor(contentType string) string {
	exts, err := mime.ExtensionsByType(contentType)
	if err != nil || len(exts) == 0 {
		return ".bin"
	}
	return exts[0]
}
