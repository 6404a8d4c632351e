package uploader

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/Unknowmyt1M/DIRECTTOYT/internal/db/repository"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/errs"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/extractor"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/metrics"
	"github.com/Unknowmyt1M/DIRECTTOYT/pkg/logger"
)

const (
	// UploadScope must be present in the grant before any publish
	// attempt; a grant without it gets a permission error telling the
	// operator to re-consent.
	UploadScope = "https://www.googleapis.com/auth/youtube.upload"

	// People & Blogs. A safe default the API accepts for any content.
	defaultCategoryID = "22"

	defaultPrivacy = "private"

	// progressStep is the minimum percentage delta between progress
	// log lines.
	progressStep = 5
)

// PublishMetadata is the video listing sent alongside the media.
type PublishMetadata struct {
	Title       string
	Description string
	Tags        []string
	CategoryID  string
	Privacy     string
}

// PublishClient is the YouTube API boundary. progress receives byte
// counts as chunks are accepted.
type PublishClient interface {
	Upload(ctx context.Context, token *oauth2.Token, path string, meta PublishMetadata, progress func(uploaded, total int64)) (string, error)
}

// PublishRequest describes one publish operation. When OriginalMetadata
// is set, the caller-supplied listing fields are ignored and the
// source video's own title, description and tags are fetched instead.
type PublishRequest struct {
	VideoID          int64
	Path             string
	Title            string
	Description      string
	Tags             []string
	Privacy          string
	OriginalMetadata bool
}

// PublishResult carries the outcome of a successful publish.
type PublishResult struct {
	YoutubeVideoID string
	WatchURL       string
}

// PublishUploader sends artifacts to YouTube. After a successful
// publish it deletes the artifact, but only once the storage upload
// has also happened; otherwise the file stays for a later attempt.
type PublishUploader struct {
	creds  *CredentialManager
	client PublishClient
	videos repository.VideoRepository
	probe  *extractor.Probe
}

func NewPublishUploader(creds *CredentialManager, client PublishClient, videos repository.VideoRepository, probe *extractor.Probe) *PublishUploader {
	return &PublishUploader{creds: creds, client: client, videos: videos, probe: probe}
}

// Publish uploads the artifact and persists the returned video id.
func (u *PublishUploader) Publish(ctx context.Context, req PublishRequest) (*PublishResult, error) {
	if _, err := os.Stat(req.Path); err != nil {
		return nil, errs.NotFound("file not found")
	}

	meta, err := u.resolveMetadata(ctx, req)
	if err != nil {
		return nil, err
	}

	token, scopes, err := u.creds.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !HasScope(scopes, UploadScope) {
		return nil, errs.Permission("YouTube upload permission not granted")
	}

	logger.Log.Info("uploading to youtube",
		zap.Int64("video_id", req.VideoID),
		zap.String("title", meta.Title),
		zap.String("privacy", meta.Privacy),
	)

	uploadID, err := u.client.Upload(ctx, token, req.Path, meta, progressLogger("youtube"))
	if err != nil {
		metrics.Uploads.WithLabelValues("youtube", metrics.OutcomeFailure).Inc()
		return nil, classifyPublishError(err)
	}

	if err := u.videos.SetYoutubeUploadResult(ctx, req.VideoID, uploadID); err != nil {
		metrics.Uploads.WithLabelValues("youtube", metrics.OutcomeFailure).Inc()
		return nil, errs.Wrap(errs.KindStoreUnavailable, "record youtube upload", err)
	}

	metrics.Uploads.WithLabelValues("youtube", metrics.OutcomeSuccess).Inc()
	logger.Log.Info("youtube upload complete",
		zap.Int64("video_id", req.VideoID),
		zap.String("youtube_video_id", uploadID),
	)

	u.cleanup(ctx, req.VideoID, req.Path)

	return &PublishResult{
		YoutubeVideoID: uploadID,
		WatchURL:       fmt.Sprintf("https://www.youtube.com/watch?v=%s", uploadID),
	}, nil
}

// resolveMetadata builds the listing either from the request fields or,
// for original-metadata publishes, by re-probing the stored source
// video. A failed probe fails the whole operation: publishing with
// half-right metadata is worse than not publishing.
func (u *PublishUploader) resolveMetadata(ctx context.Context, req PublishRequest) (PublishMetadata, error) {
	meta := PublishMetadata{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		CategoryID:  defaultCategoryID,
		Privacy:     req.Privacy,
	}
	if meta.Privacy == "" {
		meta.Privacy = defaultPrivacy
	}
	if !req.OriginalMetadata {
		return meta, nil
	}

	record, err := u.videos.GetByID(ctx, req.VideoID)
	if err != nil {
		return PublishMetadata{}, errs.NotFound("video record not found")
	}
	if record.YoutubeID == "" {
		return PublishMetadata{}, errs.New(errs.KindPublish, "video record has no source id for original metadata")
	}

	sourceURL := fmt.Sprintf("https://www.youtube.com/watch?v=%s", record.YoutubeID)
	info, err := u.probe.VideoInfo(ctx, sourceURL)
	if err != nil {
		return PublishMetadata{}, errs.Wrap(errs.KindExtraction, "could not fetch original metadata", err)
	}

	meta.Title = info.Title
	meta.Description = info.Description
	meta.Tags = info.Tags
	return meta, nil
}

// cleanup removes the artifact once both destinations hold a copy.
// Failures here are logged and swallowed: the uploads already
// succeeded and a stale temp file is not worth surfacing.
func (u *PublishUploader) cleanup(ctx context.Context, videoID int64, path string) {
	record, err := u.videos.GetByID(ctx, videoID)
	if err != nil {
		logger.Log.Warn("could not check drive state before cleanup",
			zap.Int64("video_id", videoID),
			zap.Error(err),
		)
		return
	}
	if !record.UploadedToDrive {
		logger.Log.Info("keeping artifact, drive upload not done yet",
			zap.Int64("video_id", videoID),
			zap.String("path", path),
		)
		return
	}

	logger.Log.Info("cleaning up artifact after both uploads",
		zap.String("path", path),
	)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Log.Error("failed to remove artifact", zap.String("path", path), zap.Error(err))
	}
}

// progressLogger converts byte progress into percentage log lines,
// emitting only when the percentage moved by at least progressStep.
func progressLogger(target string) func(uploaded, total int64) {
	last := 0
	return func(uploaded, total int64) {
		if total <= 0 {
			return
		}
		pct := int(uploaded * 100 / total)
		if pct-last < progressStep {
			return
		}
		last = pct
		logger.Log.Info("upload progress",
			zap.String("target", target),
			zap.Int("percent", pct),
		)
	}
}

// classifyPublishError maps the API's scope failures, which surface
// only as message text, onto the permission error the frontend knows
// how to react to.
func classifyPublishError(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "insufficientPermissions") || strings.Contains(msg, "insufficient authentication scopes") {
		return errs.Permission("YouTube API permissions are missing. Please log out and log back in to grant all required permissions.")
	}
	return errs.Wrap(errs.KindPublish, "youtube upload failed", err)
}
