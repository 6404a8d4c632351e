// Package downloader implements the media acquisition pipeline: an
// ordered ladder of download strategies with per-strategy failure
// capture, tried until one produces a verified local artifact.
package downloader

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/Unknowmyt1M/DIRECTTOYT/internal/errs"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/extractor"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/metrics"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/validation"
	"github.com/Unknowmyt1M/DIRECTTOYT/pkg/logger"
)

const (
	defaultTimeout   = 15 * time.Minute
	defaultMaxHeight = 360
	defaultContainer = "mp4"
)

// Artifact is the product of a successful acquisition: a verified local
// file plus best-effort metadata.
type Artifact struct {
	Path      string
	Size      int64
	YoutubeID string
	Title     string
	Duration  int
	Thumbnail string
	Uploader  string
}

// CommandRunner invokes the shell downloader process. The pipeline
// depends only on its exit status; file presence is verified
// separately.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) error
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.Run()
}

// Config holds the pipeline settings.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Config struct {
	TempDir            string
	YtdlpPath          string
	Timeout            time.Duration
	MaxHeight          int
	PreferredContainer string
}

// Pipeline runs the download strategies in fixed order. Strategy A
// shells out to yt-dlp with a capped resolution; Strategy B resolves
// streams through the secondary library. Failure of a strategy is
// expected and ordinary, not exceptional.
type Pipeline struct {
	cfg     Config
	runner  CommandRunner
	probe   *extractor.Probe
	streams StreamSource
}

// New creates a Pipeline. probe supplies metadata enrichment after a
// successful shell download; streams is the Strategy B fallback.
func New(cfg Config, probe *extractor.Probe, streams StreamSource) *Pipeline {
	if cfg.YtdlpPath == "" {
		cfg.YtdlpPath = "yt-dlp"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxHeight == 0 {
		cfg.MaxHeight = defaultMaxHeight
	}
	if cfg.PreferredContainer == "" {
		cfg.PreferredContainer = defaultContainer
	}
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	return &Pipeline{cfg: cfg, runner: execRunner{}, probe: probe, streams: streams}
}

// WithRunner replaces the shell runner. Used by tests.
func (p *Pipeline) WithRunner(r CommandRunner) *Pipeline {
	p.runner = r
	return p
}

// TempDir returns the directory artifacts are written to.
func (p *Pipeline) TempDir() string {
	return p.cfg.TempDir
}

// Acquire downloads the media at url into the temp directory and
// returns the artifact with best-effort metadata. It fails only after
// every strategy is exhausted, aggregating the per-strategy causes.
func (p *Pipeline) Acquire(ctx context.Context, url string) (*Artifact, error) {
	if !validation.IsValidVideoURL(url) {
		return nil, errs.InvalidURL(url)
	}

	if err := os.MkdirAll(p.cfg.TempDir, 0o755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}

	path := filepath.Join(p.cfg.TempDir, artifactName())

	primaryErr := p.runPrimary(ctx, url, path)
	if primaryErr == nil {
		// Exit success does not guarantee file presence on this
		// backend; check before declaring success.
		size, statErr := artifactSize(path)
		if statErr == nil {
			metrics.AcquisitionAttempts.WithLabelValues("primary", metrics.OutcomeSuccess).Inc()
			art := p.enrich(ctx, url, path)
			art.Size = size
			return art, nil
		}
		metrics.AcquisitionAttempts.WithLabelValues("primary", metrics.OutcomeFailure).Inc()
		logger.Log.Error("downloader exited cleanly but produced no file",
			zap.String("url", url),
			zap.String("path", path),
		)
		return nil, errs.Acquisition(fmt.Errorf("primary downloader produced no file at %s", path))
	}

	metrics.AcquisitionAttempts.WithLabelValues("primary", metrics.OutcomeFailure).Inc()
	logger.Log.Warn("primary download strategy failed, trying stream fallback",
		zap.String("url", url),
		zap.Error(primaryErr),
	)

	art, fallbackErr := p.runFallback(ctx, url, path)
	if fallbackErr == nil {
		metrics.AcquisitionAttempts.WithLabelValues("fallback", metrics.OutcomeSuccess).Inc()
		return art, nil
	}
	metrics.AcquisitionAttempts.WithLabelValues("fallback", metrics.OutcomeFailure).Inc()

	var causes error
	causes = multierror.Append(causes, multierror.Prefix(primaryErr, "[primary]"))
	causes = multierror.Append(causes, multierror.Prefix(fallbackErr, "[fallback]"))
	return nil, errs.Acquisition(causes)
}

// runPrimary shells out to yt-dlp with a capped combined format. The
// resolution ceiling bounds artifact size and bandwidth.
func (p *Pipeline) runPrimary(ctx context.Context, url, path string) error {
	format := fmt.Sprintf("bestvideo[height<=%d]+bestaudio/best[height<=%d]",
		p.cfg.MaxHeight, p.cfg.MaxHeight)

	args := []string{
		"-f", format,
		"--no-check-certificates",
		"--geo-bypass",
		"--ignore-errors",
		"--no-playlist",
		"-o", path,
		url,
	}

	cmdCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	logger.Log.Info("running shell downloader",
		zap.String("url", url),
		zap.String("format", format),
		zap.String("path", path),
	)

	if err := p.runner.Run(cmdCtx, p.cfg.YtdlpPath, args...); err != nil {
		if cmdCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("downloader timed out after %s", p.cfg.Timeout)
		}
		return fmt.Errorf("downloader process failed: %w", err)
	}
	return nil
}

// enrich probes the source for rich metadata after the artifact is on
// disk. Probe failure never fails the acquisition; degraded metadata is
// derived from the URL and filename instead.
func (p *Pipeline) enrich(ctx context.Context, url, path string) *Artifact {
	info, err := p.probe.VideoInfo(ctx, url)
	if err != nil {
		logger.Log.Warn("metadata enrichment failed, using degraded metadata",
			zap.String("url", url),
			zap.Error(err),
		)
		return &Artifact{
			Path:      path,
			YoutubeID: validation.FallbackVideoID(url),
			Title:     filepath.Base(path),
			Duration:  0,
			Thumbnail: "",
			Uploader:  "Unknown",
		}
	}

	return &Artifact{
		Path:      path,
		YoutubeID: info.YoutubeID,
		Title:     info.Title,
		Duration:  info.Duration,
		Thumbnail: info.Thumbnail,
		Uploader:  info.Uploader,
	}
}

// runFallback resolves the video through the secondary library and
// tries its selection sub-steps in order: progressive streams in the
// preferred container first, then the overall highest resolution.
// Sub-step errors are logged and the next sub-step is tried.
func (p *Pipeline) runFallback(ctx context.Context, url, path string) (*Artifact, error) {
	video, err := p.streams.Resolve(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("resolve video: %w", err)
	}

	stream, err := video.ProgressiveStream(p.cfg.PreferredContainer)
	if err != nil {
		logger.Log.Warn("no progressive stream in preferred container",
			zap.String("container", p.cfg.PreferredContainer),
			zap.Error(err),
		)
		stream, err = video.HighestResolutionStream()
		if err != nil {
			logger.Log.Warn("no highest-resolution stream either", zap.Error(err))
			return nil, fmt.Errorf("no suitable stream found: %w", err)
		}
	}

	if err := stream.Download(ctx, path); err != nil {
		return nil, fmt.Errorf("stream download: %w", err)
	}

	size, err := artifactSize(path)
	if err != nil {
		return nil, fmt.Errorf("stream reported success but no file at %s", path)
	}

	return &Artifact{
		Path:      path,
		Size:      size,
		YoutubeID: video.ID(),
		Title:     video.Title(),
		Duration:  video.Duration(),
		Thumbnail: video.Thumbnail(),
		Uploader:  video.Author(),
	}, nil
}

func artifactSize(path string) (int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

// artifactName builds a temp filename that cannot collide across
// concurrent requests: a wall-clock token plus a random suffix, so two
// requests in the same clock tick still get distinct paths.
func artifactName() string {
	return fmt.Sprintf("yt_video_%d_%s.mp4", time.Now().Unix(), uuid.NewString()[:8])
}
