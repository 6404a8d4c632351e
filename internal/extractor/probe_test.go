package extractor

import (
	"context"
	"errors"
	"testing"

	"github.com/Unknowmyt1M/DIRECTTOYT/internal/errs"
	"github.com/Unknowmyt1M/DIRECTTOYT/pkg/logger"
)

func init() {
	if err := logger.Init("error", ""); err != nil {
		panic(err)
	}
}

// stubBackend records calls and returns canned responses in order.
type stubBackend struct {
	calls     int
	responses []*Info
	errs      []error
}

func (s *stubBackend) Extract(ctx context.Context, url string, opts Options) (*Info, error) {
	i := s.calls
	s.calls++
	var info *Info
	var err error
	if i < len(s.responses) {
		info = s.responses[i]
	}
	if i < len(s.errs) {
		err = s.errs[i]
	}
	return info, err
}

func TestMetadataInvalidURLSkipsBackend(t *testing.T) {
	backend := &stubBackend{}
	probe := NewProbe(backend)

	_, err := probe.Metadata(context.Background(), "https://example.com/watch?v=abc")
	if !errs.IsKind(err, errs.KindInvalidURL) {
		t.Fatalf("expected InvalidURL error, got %v", err)
	}
	if backend.calls != 0 {
		t.Errorf("backend was called %d times for an invalid URL, want 0", backend.calls)
	}
}

func TestVideoInfoInvalidURLSkipsBackend(t *testing.T) {
	backend := &stubBackend{}
	probe := NewProbe(backend)

	_, err := probe.VideoInfo(context.Background(), "https://www.youtube.com/playlist?list=x")
	if !errs.IsKind(err, errs.KindInvalidURL) {
		t.Fatalf("expected InvalidURL error, got %v", err)
	}
	if backend.calls != 0 {
		t.Errorf("backend was called %d times for an invalid URL, want 0", backend.calls)
	}
}

func TestBestThumbnailPreferenceOrder(t *testing.T) {
	// Candidate set {high, default} must always select high, in either
	// ordering.
	orderings := [][]Thumbnail{
		{{ID: "high", URL: "http://img/high"}, {ID: "default", URL: "http://img/default"}},
		{{ID: "default", URL: "http://img/default"}, {ID: "high", URL: "http://img/high"}},
	}

	for _, thumbs := range orderings {
		info := &Info{Thumbnails: thumbs, Thumbnail: "http://img/basic"}
		if got := BestThumbnail(info); got != "http://img/high" {
			t.Errorf("BestThumbnail(%v) = %q, want http://img/high", thumbs, got)
		}
	}
}

func TestBestThumbnailFallsBackToDefault(t *testing.T) {
	info := &Info{
		Thumbnails: []Thumbnail{{ID: "oddball", URL: "http://img/odd"}},
		Thumbnail:  "http://img/basic",
	}
	if got := BestThumbnail(info); got != "http://img/basic" {
		t.Errorf("BestThumbnail = %q, want the backend default", got)
	}
}

func TestBestThumbnailMissingEverything(t *testing.T) {
	if got := BestThumbnail(&Info{}); got != "" {
		t.Errorf("BestThumbnail = %q, want empty string", got)
	}
}

func TestVideoInfoNoThumbnailsArray(t *testing.T) {
	// A well-formed URL with no thumbnails array returns the backend's
	// default thumbnail string, not an error.
	backend := &stubBackend{
		responses: []*Info{{
			ID:        "abc123",
			Title:     "A Video",
			Duration:  42,
			Thumbnail: "http://img/basic",
			Uploader:  "Someone",
		}},
	}
	probe := NewProbe(backend)

	info, err := probe.VideoInfo(context.Background(), "https://www.youtube.com/watch?v=abc123")
	if err != nil {
		t.Fatalf("VideoInfo failed: %v", err)
	}
	if info.Thumbnail != "http://img/basic" {
		t.Errorf("Thumbnail = %q, want the backend default", info.Thumbnail)
	}
	if info.Duration != 42 {
		t.Errorf("Duration = %d, want 42", info.Duration)
	}
}

func TestVideoInfoFallbackExtraction(t *testing.T) {
	backend := &stubBackend{
		responses: []*Info{nil, {ID: "abc123", Title: "Recovered"}},
		errs:      []error{errors.New("boom"), nil},
	}
	probe := NewProbe(backend)

	info, err := probe.VideoInfo(context.Background(), "https://www.youtube.com/watch?v=abc123")
	if err != nil {
		t.Fatalf("VideoInfo failed: %v", err)
	}
	if backend.calls != 2 {
		t.Errorf("backend called %d times, want 2 (primary + fallback)", backend.calls)
	}
	if info.Title != "Recovered" {
		t.Errorf("Title = %q, want Recovered", info.Title)
	}
}

func TestVideoInfoBothExtractionsFail(t *testing.T) {
	backend := &stubBackend{
		errs: []error{errors.New("primary"), errors.New("fallback")},
	}
	probe := NewProbe(backend)

	_, err := probe.VideoInfo(context.Background(), "https://www.youtube.com/watch?v=abc123")
	if !errs.IsKind(err, errs.KindExtraction) {
		t.Fatalf("expected Extraction error, got %v", err)
	}
}

func TestMetadataDefaults(t *testing.T) {
	backend := &stubBackend{responses: []*Info{{Duration: 3725}}}
	probe := NewProbe(backend)

	meta, err := probe.Metadata(context.Background(), "https://youtu.be/abc123")
	if err != nil {
		t.Fatalf("Metadata failed: %v", err)
	}
	if meta.Title != "Unknown title" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Channel != "Unknown channel" {
		t.Errorf("Channel = %q", meta.Channel)
	}
	if meta.Duration != "01:02:05" {
		t.Errorf("Duration = %q, want 01:02:05", meta.Duration)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{61, "01:01"},
		{3599, "59:59"},
		{3600, "01:00:00"},
		{7325, "02:02:05"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
