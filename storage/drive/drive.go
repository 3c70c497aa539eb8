package drive

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Store keeps media blobs as files in a Google Drive folder, authorized
// through a service account.
type Store struct {
	service  *drive.Service
	folderID string
}

// NewStore creates a Drive-backed media store from a service account
// credentials file. folderID may be empty, in which case files land in
// the account's root.
func NewStore(credsFile, folderID string) (*Store, error) {
	b, err := os.ReadFile(credsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account file: %w", err)
	}

	cfg, err := google.JWTConfigFromJSON(b, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	ctx := context.Background()
	service, err := drive.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	return &Store{service: service, folderID: folderID}, nil
}

func (s *Store) Store(ctx context.Context, data []byte, contentType string) (string, error) {
	driveFile := &drive.File{
		Name:     uuid.NewString(),
		MimeType: contentType,
	}
	if s.folderID != "" {
		driveFile.Parents = []string{s.folderID}
	}

	uploaded, err := s.service.Files.Create(driveFile).
		Media(bytes.NewReader(data)).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return uploaded.Id, nil
}

func (s *Store) Delete(ctx context.Context, ref string) error {
	if err := s.service.Files.Delete(ref).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", ref, err)
	}
	return nil
}
