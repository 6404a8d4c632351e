package uploader

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/Unknowmyt1M/DIRECTTOYT/internal/db/repository"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/errs"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/metrics"
	"github.com/Unknowmyt1M/DIRECTTOYT/pkg/logger"
)

// Folder identifies one Drive folder an upload can target.
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DriveClient is the Drive API boundary. The real implementation lives
// in google.go; tests substitute a fake.
type DriveClient interface {
	UploadFile(ctx context.Context, token *oauth2.Token, path, name string, folderID *string) (string, error)
	ListFolders(ctx context.Context, token *oauth2.Token) ([]Folder, error)
}

// StorageUploader sends artifacts to Google Drive and records the
// outcome. It never deletes the artifact: the same file may still be
// needed for publishing.
type StorageUploader struct {
	creds  *CredentialManager
	client DriveClient
	videos repository.VideoRepository
}

func NewStorageUploader(creds *CredentialManager, client DriveClient, videos repository.VideoRepository) *StorageUploader {
	return &StorageUploader{creds: creds, client: client, videos: videos}
}

// Upload pushes the file at path into the given folder (root when nil)
// and persists the Drive file id on the video record before returning.
func (u *StorageUploader) Upload(ctx context.Context, videoID int64, path string, folderID *string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", errs.NotFound("file not found")
	}

	token, _, err := u.creds.Current(ctx)
	if err != nil {
		return "", err
	}

	logger.Log.Info("uploading to google drive",
		zap.Int64("video_id", videoID),
		zap.String("path", path),
	)

	fileID, err := u.client.UploadFile(ctx, token, path, filepath.Base(path), folderID)
	if err != nil {
		metrics.Uploads.WithLabelValues("drive", metrics.OutcomeFailure).Inc()
		return "", errs.Wrap(errs.KindUpload, "drive upload failed", err)
	}

	if err := u.videos.SetDriveUploadResult(ctx, videoID, fileID, folderID); err != nil {
		metrics.Uploads.WithLabelValues("drive", metrics.OutcomeFailure).Inc()
		return "", errs.Wrap(errs.KindStoreUnavailable, "record drive upload", err)
	}

	metrics.Uploads.WithLabelValues("drive", metrics.OutcomeSuccess).Inc()
	logger.Log.Info("drive upload complete",
		zap.Int64("video_id", videoID),
		zap.String("file_id", fileID),
	)
	return fileID, nil
}

// Folders lists the folders the grant can see, sorted by name for
// stable display.
func (u *StorageUploader) Folders(ctx context.Context) ([]Folder, error) {
	token, _, err := u.creds.Current(ctx)
	if err != nil {
		return nil, err
	}

	folders, err := u.client.ListFolders(ctx, token)
	if err != nil {
		return nil, errs.Wrap(errs.KindUpload, "list drive folders", err)
	}

	sort.Slice(folders, func(i, j int) bool {
		return strings.ToLower(folders[i].Name) < strings.ToLower(folders[j].Name)
	})
	return folders, nil
}
