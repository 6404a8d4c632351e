package repository

import (
	"context"
	"testing"

	"github.com/Unknowmyt1M/DIRECTTOYT/internal/db/models"
)

// The invariant guards run before any SQL, so they are checkable with
// no database behind the repository.

func TestCreateRejectsRecordsWithoutArtifact(t *testing.T) {
	repo := NewVideoRepository(nil)

	_, err := repo.Create(context.Background(), &models.Video{
		YoutubeID:       "abc",
		Title:           "t",
		DownloadSuccess: true,
	})
	if err == nil {
		t.Fatal("Create accepted a record without a filename")
	}

	_, err = repo.Create(context.Background(), &models.Video{
		YoutubeID: "abc",
		Title:     "t",
		Filename:  "/tmp/x.mp4",
	})
	if err == nil {
		t.Fatal("Create accepted a failed download")
	}
}

func TestUploadResultsRejectEmptyRemoteIDs(t *testing.T) {
	repo := NewVideoRepository(nil)

	if err := repo.SetDriveUploadResult(context.Background(), 1, "", nil); err == nil {
		t.Error("SetDriveUploadResult accepted an empty file id")
	}
	if err := repo.SetYoutubeUploadResult(context.Background(), 1, ""); err == nil {
		t.Error("SetYoutubeUploadResult accepted an empty video id")
	}
}
