package downloader

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kkdai/youtube/v2"
)

// StreamSource is the secondary download library boundary. Resolve may
// fail on URL-parse or unavailable-video conditions; the pipeline
// classifies those as strategy failure, never a crash.
type StreamSource interface {
	Resolve(ctx context.Context, url string) (ResolvedVideo, error)
}

// ResolvedVideo enumerates the streams of a resolved video and carries
// its metadata.
type ResolvedVideo interface {
	ID() string
	Title() string
	Duration() int
	Thumbnail() string
	Author() string

	// ProgressiveStream returns the highest-resolution combined
	// audio+video stream in the given container, or an error if none
	// exists.
	ProgressiveStream(container string) (Stream, error)

	// HighestResolutionStream returns the highest-resolution combined
	// stream of any container.
	HighestResolutionStream() (Stream, error)
}

// Stream downloads one selected format to a local path.
type Stream interface {
	Download(ctx context.Context, path string) error
}

// NewStreamSource returns the library-backed StreamSource.
func NewStreamSource() StreamSource {
	return &ytSource{}
}

type ytSource struct {
	client youtube.Client
}

func (s *ytSource) Resolve(ctx context.Context, url string) (ResolvedVideo, error) {
	video, err := s.client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to get video info: %w", err)
	}
	return &ytVideo{client: &s.client, video: video}, nil
}

type ytVideo struct {
	client *youtube.Client
	video  *youtube.Video
}

func (v *ytVideo) ID() string    { return v.video.ID }
func (v *ytVideo) Title() string { return v.video.Title }
func (v *ytVideo) Duration() int { return int(v.video.Duration.Seconds()) }
func (v *ytVideo) Author() string {
	return v.video.Author
}

func (v *ytVideo) Thumbnail() string {
	var best youtube.Thumbnail
	for _, t := range v.video.Thumbnails {
		if t.Width >= best.Width {
			best = t
		}
	}
	return best.URL
}

func (v *ytVideo) ProgressiveStream(container string) (Stream, error) {
	best := v.selectFormat(func(f *youtube.Format) bool {
		return isProgressive(f) && strings.HasPrefix(f.MimeType, "video/"+container)
	})
	if best == nil {
		return nil, fmt.Errorf("no progressive %s stream available", container)
	}
	return &ytStream{client: v.client, video: v.video, format: best}, nil
}

func (v *ytVideo) HighestResolutionStream() (Stream, error) {
	best := v.selectFormat(isProgressive)
	if best == nil {
		return nil, fmt.Errorf("no combined audio+video stream available")
	}
	return &ytStream{client: v.client, video: v.video, format: best}, nil
}

// selectFormat returns the matching format with the greatest height.
func (v *ytVideo) selectFormat(match func(*youtube.Format) bool) *youtube.Format {
	var best *youtube.Format
	for i := range v.video.Formats {
		f := &v.video.Formats[i]
		if !match(f) {
			continue
		}
		if best == nil || f.Height > best.Height {
			best = f
		}
	}
	return best
}

// isProgressive reports whether the format carries both audio and video
// in a single stream.
func isProgressive(f *youtube.Format) bool {
	return f.AudioChannels > 0 && f.Height > 0
}

type ytStream struct {
	client *youtube.Client
	video  *youtube.Video
	format *youtube.Format
}

func (s *ytStream) Download(ctx context.Context, path string) error {
	stream, _, err := s.client.GetStreamContext(ctx, s.video, s.format)
	if err != nil {
		return fmt.Errorf("failed to get stream: %w", err)
	}
	defer stream.Close()

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, stream); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to save stream: %w", err)
	}
	return nil
}
