// Package drive ingests inventory batches dropped into a Google Drive folder.
package drive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const csvMimeType = "text/csv"

// Service is a read-only Drive client authenticated with a service account.
type Service struct {
	srv *drive.Service
}

// NewService builds the client from service-account credentials JSON.
func NewService(credentialsJSON string) (*Service, error) {
	config, err := google.JWTConfigFromJSON(
		[]byte(credentialsJSON),
		drive.DriveReadonlyScope,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to parse drive credentials: %w", err)
	}

	client := config.Client(context.Background())

	srv, err := drive.NewService(context.Background(), option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create drive client: %w", err)
	}

	return &Service{srv: srv}, nil
}

// File is the subset of Drive file metadata the ingestion flow needs.
type File struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType"`
	ModifiedTime string `json:"modifiedTime,omitempty"`
	Size         int64  `json:"size,string,omitempty"`
}

// ListFiles returns every non-trashed file in the folder. An empty folderID
// lists the Drive root.
func (s *Service) ListFiles(folderID string) ([]*File, error) {
	return s.list(fmt.Sprintf("'%s' in parents and trashed=false", orRoot(folderID)))
}

// ListCSVFiles returns only the folder's inventory candidates: files served
// as text/csv, or named *.csv when Drive reports a generic MIME type.
func (s *Service) ListCSVFiles(folderID string) ([]*File, error) {
	query := fmt.Sprintf(
		"'%s' in parents and trashed=false and (mimeType='%s' or name contains '.csv')",
		orRoot(folderID), csvMimeType)

	return s.list(query)
}

func (s *Service) list(query string) ([]*File, error) {
	result, err := s.srv.Files.List().
		Q(query).
		Fields("files(id, name, mimeType, modifiedTime, size)").
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list drive files: %w", err)
	}

	files := make([]*File, 0, len(result.Files))
	for _, f := range result.Files {
		files = append(files, &File{
			ID:           f.Id,
			Name:         f.Name,
			MimeType:     f.MimeType,
			ModifiedTime: f.ModifiedTime,
			Size:         f.Size,
		})
	}

	return files, nil
}

// DownloadFile streams the file's content into w.
func (s *Service) DownloadFile(fileID string, w io.Writer) error {
	resp, err := s.srv.Files.Get(fileID).Download()
	if err != nil {
		return fmt.Errorf("unable to download drive file: %w", err)
	}
	defer resp.Body.Close()

	_, err = io.Copy(w, resp.Body)
	return err
}

// FindFolderByPath resolves a slash-separated folder path ("imports/inventory")
// to a folder id, walking down from the Drive root.
func (s *Service) FindFolderByPath(path string) (string, error) {
	currentID := "root"

	for _, folder := range strings.Split(path, "/") {
		if folder == "" {
			continue
		}

		result, err := s.srv.Files.List().
			Q(fmt.Sprintf("'%s' in parents and name='%s' and mimeType='application/vnd.google-apps.folder' and trashed=false",
				currentID, folder)).
			Fields("files(id, name)").
			Do()
		if err != nil {
			return "", fmt.Errorf("error finding folder %s: %w", folder, err)
		}

		if len(result.Files) == 0 {
			return "", fmt.Errorf("folder not found: %s", folder)
		}

		currentID = result.Files[0].Id
	}

	return currentID, nil
}

func orRoot(folderID string) string {
	if folderID == "" {
		return "root"
	}

	return folderID
}
