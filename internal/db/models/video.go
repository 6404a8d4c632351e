// Package models contains the persisted entities for the download and
// upload lifecycle.
package models

import "time"

// Video represents one acquired video and the state of its two upload
// targets. A record exists only for downloads that produced a verified
// local artifact; FileSize is captured at creation time and stays
// unchanged even after the artifact is reclaimed.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Video struct {
	ID                int64     `json:"id"`
	YoutubeID         string    `json:"youtube_id"`
	Title             string    `json:"title"`
	URL               string    `json:"url"`
	Uploader          string    `json:"uploader"`
	ThumbnailURL      string    `json:"thumbnail_url"`
	Duration          int       `json:"duration"`
	Filename          string    `json:"filename"`
	FileSize          int64     `json:"file_size"`
	DownloadSuccess   bool      `json:"download_success"`
	UploadedToDrive   bool      `json:"uploaded_to_drive"`
	DriveFileID       *string   `json:"drive_file_id"`
	DriveFolderID     *string   `json:"drive_folder_id"`
	UploadedToYoutube bool      `json:"uploaded_to_youtube"`
	YoutubeUploadID   *string   `json:"youtube_upload_id"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewVideo creates a record for a successfully downloaded artifact.
func NewVideo(youtubeID, title, url, uploader, thumbnailURL, filename string, duration int, fileSize int64) *Video {
	return &Video{
		YoutubeID:       youtubeID,
		Title:           title,
		URL:             url,
		Uploader:        uploader,
		ThumbnailURL:    thumbnailURL,
		Duration:        duration,
		Filename:        filename,
		FileSize:        fileSize,
		DownloadSuccess: true,
		CreatedAt:       time.Now(),
	}
}
