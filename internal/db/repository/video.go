// Package repository provides database operations for the download and
// upload lifecycle.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Unknowmyt1M/DIRECTTOYT/internal/db"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/db/models"
)

// VideoRepository defines operations for managing video records.
type VideoRepository interface {
	// Create inserts a record for a downloaded artifact and returns its id.
	Create(ctx context.Context, video *models.Video) (int64, error)

	// GetByID retrieves a single record. A missing id yields
	// db.ErrNotFound; transport failures yield db.ErrUnavailable.
	GetByID(ctx context.Context, id int64) (*models.Video, error)

	// ListByRecency retrieves all records, newest first.
	ListByRecency(ctx context.Context) ([]*models.Video, error)

	// SetDriveUploadResult marks the record as uploaded to Drive and
	// stores the remote file id and destination folder id. The remote
	// file id must be non-empty.
	SetDriveUploadResult(ctx context.Context, id int64, fileID string, folderID *string) error

	// SetYoutubeUploadResult marks the record as uploaded to YouTube
	// and stores the remote video id, which must be non-empty.
	SetYoutubeUploadResult(ctx context.Context, id int64, uploadID string) error
}

type videoRepository struct {
	pool *pgxpool.Pool
}

// NewVideoRepository creates a new VideoRepository.
func NewVideoRepository(pool *pgxpool.Pool) VideoRepository {
	return &videoRepository{pool: pool}
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) (int64, error) {
	if video.Filename == "" {
		return 0, fmt.Errorf("create video: filename is required")
	}
	if !video.DownloadSuccess {
		return 0, fmt.Errorf("create video: only successful downloads produce records")
	}

	query := `
		INSERT INTO videos
		(youtube_id, title, url, uploader, thumbnail_url, duration, filename, file_size,
		 download_success, uploaded_to_drive, uploaded_to_youtube, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, false, false, $10)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		video.YoutubeID,
		video.Title,
		video.URL,
		video.Uploader,
		video.ThumbnailURL,
		video.Duration,
		video.Filename,
		video.FileSize,
		video.DownloadSuccess,
		video.CreatedAt,
	).Scan(&video.ID)

	if err != nil {
		return 0, db.WrapError(err, "create video")
	}

	return video.ID, nil
}

func (r *videoRepository) GetByID(ctx context.Context, id int64) (*models.Video, error) {
	query := selectColumns + ` WHERE id = $1`

	video, err := scanVideo(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, db.WrapError(err, "get video by id")
	}

	return video, nil
}

func (r *videoRepository) ListByRecency(ctx context.Context) ([]*models.Video, error) {
	query := selectColumns + ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, db.WrapError(err, "list videos")
	}
	defer rows.Close()

	var videos []*models.Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, db.WrapError(err, "list videos")
		}
		videos = append(videos, video)
	}

	return videos, db.WrapError(rows.Err(), "list videos")
}

// SetDriveUploadResult updates only the Drive state columns in a single
// statement, so a concurrent YouTube result on the same record cannot
// be lost and a reader can never observe a half-written Drive result.
func (r *videoRepository) SetDriveUploadResult(ctx context.Context, id int64, fileID string, folderID *string) error {
	if fileID == "" {
		return fmt.Errorf("set drive upload result: remote file id is required")
	}

	query := `
		UPDATE videos
		SET uploaded_to_drive = true, drive_file_id = $2, drive_folder_id = $3
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, fileID, folderID)
	if err != nil {
		return db.WrapError(err, "set drive upload result")
	}
	if tag.RowsAffected() == 0 {
		return db.WrapError(pgx.ErrNoRows, "set drive upload result")
	}

	return nil
}

func (r *videoRepository) SetYoutubeUploadResult(ctx context.Context, id int64, uploadID string) error {
	if uploadID == "" {
		return fmt.Errorf("set youtube upload result: remote video id is required")
	}

	query := `
		UPDATE videos
		SET uploaded_to_youtube = true, youtube_upload_id = $2
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, uploadID)
	if err != nil {
		return db.WrapError(err, "set youtube upload result")
	}
	if tag.RowsAffected() == 0 {
		return db.WrapError(pgx.ErrNoRows, "set youtube upload result")
	}

	return nil
}

const selectColumns = `
	SELECT id, youtube_id, title, url, uploader, thumbnail_url, duration, filename, file_size,
	       download_success, uploaded_to_drive, drive_file_id, drive_folder_id,
	       uploaded_to_youtube, youtube_upload_id, created_at
	FROM videos`

func scanVideo(row pgx.Row) (*models.Video, error) {
	video := &models.Video{}
	err := row.Scan(
		&video.ID,
		&video.YoutubeID,
		&video.Title,
		&video.URL,
		&video.Uploader,
		&video.ThumbnailURL,
		&video.Duration,
		&video.Filename,
		&video.FileSize,
		&video.DownloadSuccess,
		&video.UploadedToDrive,
		&video.DriveFileID,
		&video.DriveFolderID,
		&video.UploadedToYoutube,
		&video.YoutubeUploadID,
		&video.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return video, nil
}
