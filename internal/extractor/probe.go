package extractor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Unknowmyt1M/DIRECTTOYT/internal/errs"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/validation"
	"github.com/Unknowmyt1M/DIRECTTOYT/pkg/logger"
)

// thumbnailPreference is the fixed quality-label order for picking the
// best candidate; first match wins.
var thumbnailPreference = []string{"maxres", "high", "medium", "default", "standard"}

// Metadata is the rich field set returned by a metadata-only probe.
type Metadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Channel     string   `json:"channel"`
	Duration    string   `json:"duration"`
	Tags        []string `json:"tags"`
}

// VideoInfo is the display-oriented field set, including the selected
// thumbnail and the raw metadata needed by the publish flow.
type VideoInfo struct {
	YoutubeID   string   `json:"youtube_id"`
	Title       string   `json:"title"`
	Duration    int      `json:"duration"`
	Thumbnail   string   `json:"thumbnail"`
	Uploader    string   `json:"uploader"`
	Description string   `json:"-"`
	Tags        []string `json:"-"`
	Categories  []string `json:"-"`
}

// Probe queries the extraction backend for video metadata. It never
// transfers media and is independent of the download pipeline.
type Probe struct {
	backend Backend
}

// NewProbe creates a Probe over the given backend.
func NewProbe(backend Backend) *Probe {
	return &Probe{backend: backend}
}

// Metadata extracts title, description, uploader, formatted duration
// and tags for a URL. Invalid URL shapes fail before any backend call.
func (p *Probe) Metadata(ctx context.Context, url string) (*Metadata, error) {
	if !validation.IsValidVideoURL(url) {
		return nil, errs.InvalidURL(url)
	}

	info, err := p.backend.Extract(ctx, url, Options{
		Quiet:          true,
		NoWarnings:     true,
		FlatExtraction: true,
	})
	if err != nil {
		return nil, errs.Extraction(err)
	}

	meta := &Metadata{
		Title:       info.Title,
		Description: info.Description,
		Channel:     info.Uploader,
		Duration:    FormatDuration(int(info.Duration)),
		Tags:        info.Tags,
	}
	if meta.Title == "" {
		meta.Title = "Unknown title"
	}
	if meta.Description == "" {
		meta.Description = "No description available"
	}
	if meta.Channel == "" {
		meta.Channel = "Unknown channel"
	}

	return meta, nil
}

// VideoInfo extracts display metadata for a URL. The full extraction is
// tried first; if the backend rejects it, a lighter flat extraction
// with geo bypass is attempted before giving up.
func (p *Probe) VideoInfo(ctx context.Context, url string) (*VideoInfo, error) {
	if !validation.IsValidVideoURL(url) {
		return nil, errs.InvalidURL(url)
	}

	info, err := p.backend.Extract(ctx, url, Options{
		Quiet:              true,
		NoWarnings:         true,
		NoPlaylist:         true,
		NoCheckCertificate: true,
		IgnoreErrors:       true,
	})
	if err != nil {
		logger.Log.Warn("primary extraction failed, trying fallback options",
			zap.String("url", url),
			zap.Error(err),
		)
		info, err = p.backend.Extract(ctx, url, Options{
			Quiet:              true,
			NoWarnings:         true,
			FlatExtraction:     true,
			NoPlaylist:         true,
			NoCheckCertificate: true,
			GeoBypass:          true,
			IgnoreErrors:       true,
		})
		if err != nil {
			return nil, errs.Extraction(err)
		}
	}

	result := &VideoInfo{
		YoutubeID:   info.ID,
		Title:       info.Title,
		Duration:    int(info.Duration),
		Thumbnail:   BestThumbnail(info),
		Uploader:    info.Uploader,
		Description: info.Description,
		Tags:        info.Tags,
		Categories:  info.Categories,
	}
	if result.Title == "" {
		result.Title = "Unknown title"
	}
	if result.Uploader == "" {
		result.Uploader = "Unknown uploader"
	}

	return result, nil
}

// BestThumbnail picks a thumbnail URL from the backend's candidates in
// fixed quality-label preference order. If no labelled candidate
// matches, the backend's single default thumbnail is used; a missing
// thumbnail yields the empty string, never an error.
func BestThumbnail(info *Info) string {
	for _, quality := range thumbnailPreference {
		for _, thumb := range info.Thumbnails {
			if thumb.ID == quality && thumb.URL != "" {
				return thumb.URL
			}
		}
	}
	return info.Thumbnail
}

// FormatDuration renders a duration in seconds as HH:MM:SS, or MM:SS
// when under an hour.
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "00:00"
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
