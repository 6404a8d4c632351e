// Package extractor wraps the metadata extraction backend and the probe
// logic built on top of it. No media is transferred here; everything in
// this package is a read-only network call.
package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"
)

const (
	defaultYtdlpPath    = "yt-dlp"
	defaultYtdlpTimeout = 2 * time.Minute
)

// Options mirror the flags understood by the extraction backend.
type Options struct {
	Quiet              bool
	NoWarnings         bool
	FlatExtraction     bool
	NoCheckCertificate bool
	GeoBypass          bool
	NoPlaylist         bool
	IgnoreErrors       bool
}

// Thumbnail is one candidate thumbnail, tagged by quality label.
type Thumbnail struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Info is the backend's best-effort metadata for a single video. All
// fields except ID and Title are optional; callers must tolerate zero
// values.
type Info struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Uploader    string      `json:"uploader"`
	Duration    float64     `json:"duration"`
	Tags        []string    `json:"tags"`
	Categories  []string    `json:"categories"`
	Thumbnails  []Thumbnail `json:"thumbnails"`
	Thumbnail   string      `json:"thumbnail"`
}

// Backend extracts metadata for a URL without downloading media.
type Backend interface {
	Extract(ctx context.Context, url string, opts Options) (*Info, error)
}

// YtdlpBackend implements Backend by invoking yt-dlp as a subprocess
// with JSON output.
type YtdlpBackend struct {
	// Path is the yt-dlp executable. Defaults to "yt-dlp".
	Path string

	// Timeout bounds a single extraction call. Defaults to 2 minutes.
	Timeout time.Duration
}

// NewYtdlpBackend creates a backend with default settings.
func NewYtdlpBackend() *YtdlpBackend {
	return &YtdlpBackend{Path: defaultYtdlpPath, Timeout: defaultYtdlpTimeout}
}

// Extract runs yt-dlp -J against the URL and parses its JSON dump.
func (b *YtdlpBackend) Extract(ctx context.Context, url string, opts Options) (*Info, error) {
	args := []string{"-J", "--skip-download"}
	if opts.Quiet {
		args = append(args, "--quiet")
	}
	if opts.NoWarnings {
		args = append(args, "--no-warnings")
	}
	if opts.FlatExtraction {
		args = append(args, "--flat-playlist")
	}
	if opts.NoCheckCertificate {
		args = append(args, "--no-check-certificates")
	}
	if opts.GeoBypass {
		args = append(args, "--geo-bypass")
	}
	if opts.NoPlaylist {
		args = append(args, "--no-playlist")
	}
	if opts.IgnoreErrors {
		args = append(args, "--ignore-errors")
	}
	args = append(args, url)

	timeout := b.Timeout
	if timeout == 0 {
		timeout = defaultYtdlpTimeout
	}
	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, b.path(), args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if cmdCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("extraction timed out after %s", timeout)
		}
		return nil, fmt.Errorf("yt-dlp failed: %w: %s", err, stderr.String())
	}

	var info Info
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return nil, fmt.Errorf("parse extraction output: %w", err)
	}

	return &info, nil
}

func (b *YtdlpBackend) path() string {
	if b.Path != "" {
		return b.Path
	}
	return defaultYtdlpPath
}
