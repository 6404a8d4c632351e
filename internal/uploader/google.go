package uploader

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// uploadChunkSize is the resumable-upload chunk size for both APIs.
const uploadChunkSize = 1024 * 1024

// googleDriveClient is the production DriveClient.
type googleDriveClient struct {
	cfg *oauth2.Config
}

func NewDriveClient(cfg *oauth2.Config) DriveClient {
	return &googleDriveClient{cfg: cfg}
}

func (g *googleDriveClient) service(ctx context.Context, token *oauth2.Token) (*drive.Service, error) {
	svc, err := drive.NewService(ctx, option.WithHTTPClient(g.cfg.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return svc, nil
}

func (g *googleDriveClient) UploadFile(ctx context.Context, token *oauth2.Token, path, name string, folderID *string) (string, error) {
	svc, err := g.service(ctx, token)
	if err != nil {
		return "", err
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat file: %w", err)
	}

	meta := &drive.File{Name: name}
	if folderID != nil && *folderID != "" {
		meta.Parents = []string{*folderID}
	}

	progress := progressLogger("drive")
	created, err := svc.Files.Create(meta).
		Media(file, googleapi.ChunkSize(uploadChunkSize)).
		Fields("id").
		Context(ctx).
		ProgressUpdater(func(current, total int64) {
			if total == 0 {
				total = info.Size()
			}
			progress(current, total)
		}).
		Do()
	if err != nil {
		return "", err
	}
	return created.Id, nil
}

func (g *googleDriveClient) ListFolders(ctx context.Context, token *oauth2.Token) ([]Folder, error) {
	svc, err := g.service(ctx, token)
	if err != nil {
		return nil, err
	}

	// Include shared drives so every folder the grant can reach is a
	// valid upload target.
	results, err := svc.Files.List().
		Q("mimeType='application/vnd.google-apps.folder' and trashed=false").
		PageSize(1000).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	folders := make([]Folder, 0, len(results.Files))
	for _, f := range results.Files {
		folders = append(folders, Folder{ID: f.Id, Name: f.Name})
	}
	return folders, nil
}

// googlePublishClient is the production PublishClient.
type googlePublishClient struct {
	cfg *oauth2.Config
}

func NewPublishClient(cfg *oauth2.Config) PublishClient {
	return &googlePublishClient{cfg: cfg}
}

func (g *googlePublishClient) Upload(ctx context.Context, token *oauth2.Token, path string, meta PublishMetadata, progress func(uploaded, total int64)) (string, error) {
	svc, err := youtube.NewService(ctx, option.WithHTTPClient(g.cfg.Client(ctx, token)))
	if err != nil {
		return "", fmt.Errorf("failed to create youtube service: %w", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat file: %w", err)
	}

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       meta.Title,
			Description: meta.Description,
			Tags:        meta.Tags,
			CategoryId:  meta.CategoryID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus: meta.Privacy,
			Embeddable:    true,
		},
	}

	var body io.Reader = file
	if progress != nil {
		body = &progressReader{reader: file, total: info.Size(), onProgress: progress}
	}

	response, err := svc.Videos.Insert([]string{"snippet", "status"}, video).
		Media(body, googleapi.ChunkSize(uploadChunkSize)).
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	return response.Id, nil
}

// progressReader reports cumulative bytes read to a callback.
type progressReader struct {
	reader     io.Reader
	total      int64
	read       int64
	onProgress func(uploaded, total int64)
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	if n > 0 {
		r.read += int64(n)
		r.onProgress(r.read, r.total)
	}
	return n, err
}
