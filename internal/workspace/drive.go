package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"google.golang.org/api/drive/v3"
)

// UploadFile uploads a local file to Drive, optionally into a folder, and
// returns the file ID.
func (s *Stack) UploadFile(ctx context.Context, path, folderID string) (string, error) {
	svc, err := s.driveService(ctx)
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	meta := &drive.File{Name: filepath.Base(path)}
	if folderID != "" {
		meta.Parents = []string{folderID}
	}
	created, err := svc.Files.Create(meta).Media(f).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("uploading file: %w", err)
	}
	return created.Id, nil
}
