// Package render downloads broadcast clips and converts them into size-bounded GIFs.
package render

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/preston-bernstein/mlb-gif-service/internal/logging"
	"github.com/preston-bernstein/mlb-gif-service/internal/video"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config wires a Renderer to its collaborators.
type Config struct {
	TempDir          string
	MaxDownloadBytes int64
	HTTPClient       *http.Client
	Transcoder       Transcoder
	Logger           *slog.Logger
}

// Renderer produces GIF artifacts. Every call works in its own temp directory
// which is removed before Render returns.
type Renderer struct {
	tempDir     string
	maxDownload int64
	httpClient  httpDoer
	transcoder  Transcoder
	logger      *slog.Logger
	now         func() time.Time
}

// DefaultTempDir is the service-owned directory work dirs live under when none is configured.
// Stale cleanup globs inside it, so it must not be shared with other programs.
func DefaultTempDir() string {
	return filepath.Join(os.TempDir(), tempSubdir)
}

// New constructs a Renderer.
func New(cfg Config) *Renderer {
	tempDir := cfg.TempDir
	if tempDir == "" {
		tempDir = DefaultTempDir()
	}
	maxDownload := cfg.MaxDownloadBytes
	if maxDownload <= 0 {
		maxDownload = defaultMaxDownloadBytes
	}
	var doer httpDoer = &http.Client{Timeout: 30 * time.Second}
	if cfg.HTTPClient != nil {
		doer = cfg.HTTPClient
	}
	transcoder := cfg.Transcoder
	if transcoder == nil {
		transcoder = NewFFmpeg("", "")
	}
	return &Renderer{
		tempDir:     tempDir,
		maxDownload: maxDownload,
		httpClient:  doer,
		transcoder:  transcoder,
		logger:      cfg.Logger,
		now:         time.Now,
	}
}

// Render downloads ref and converts it according to opts. Output over
// MaxBytes is re-encoded once at reduced quality before giving up.
func (r *Renderer) Render(ctx context.Context, ref video.Ref, opts Options) (Artifact, error) {
	start := r.now()
	opts = opts.withDefaults()

	if err := os.MkdirAll(r.tempDir, 0o700); err != nil {
		return Artifact{}, newError(ErrDownloadFailed, "create temp dir: %w", err)
	}
	workDir, err := os.MkdirTemp(r.tempDir, tempPattern)
	if err != nil {
		return Artifact{}, newError(ErrDownloadFailed, "create work dir: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(workDir); rmErr != nil {
			logging.Warn(r.logger, "clip cleanup failed", "dir", workDir, "error", rmErr)
		}
	}()

	source := filepath.Join(workDir, "source.mp4")
	size, err := r.download(ctx, ref.URL, source)
	if err != nil {
		return Artifact{}, err
	}
	logging.Info(r.logger, "clip downloaded", logging.FieldBytes, size)

	offset := r.offset(ctx, source, opts)

	job := fullQuality(opts)
	data, err := r.transcode(ctx, job, source, workDir, offset, "full.gif")
	if err != nil {
		return Artifact{}, err
	}
	if int64(len(data)) <= opts.MaxBytes {
		return Artifact{Data: data, Width: job.Width, FPS: job.FPS, Elapsed: r.now().Sub(start)}, nil
	}

	logging.Warn(r.logger, "gif over size bound, re-encoding",
		logging.FieldBytes, len(data),
		"max_bytes", opts.MaxBytes,
	)
	first := len(data)
	job = reducedQuality(opts)
	data, err = r.transcode(ctx, job, source, workDir, offset, "reduced.gif")
	if err != nil {
		return Artifact{}, err
	}
	if int64(len(data)) > opts.MaxBytes {
		return Artifact{}, newError(ErrSizeBoundExceeded, "%d bytes after re-encode (first pass %d, limit %d)", len(data), first, opts.MaxBytes)
	}
	return Artifact{Data: data, Width: job.Width, FPS: job.FPS, Reencoded: true, Elapsed: r.now().Sub(start)}, nil
}

// CleanupStale removes work directories left behind by a previous process.
func (r *Renderer) CleanupStale() (int, error) {
	matches, err := filepath.Glob(filepath.Join(r.tempDir, tempPattern))
	if err != nil {
		return 0, err
	}
	removed := 0
	var errs []error
	for _, m := range matches {
		if err := os.RemoveAll(m); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	return removed, errors.Join(errs...)
}

func (r *Renderer) download(ctx context.Context, rawURL, dest string) (int64, error) {
	if rawURL == "" {
		return 0, newError(ErrDownloadFailed, "empty video url")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, newError(ErrDownloadFailed, "build request: %w", err)
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return 0, newError(ErrDownloadFailed, "get: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, newError(ErrDownloadFailed, "unexpected status %d", resp.StatusCode)
	}

	f, err := os.Create(dest)
	if err != nil {
		return 0, newError(ErrDownloadFailed, "create source: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, io.LimitReader(resp.Body, r.maxDownload+1))
	if err != nil {
		return n, newError(ErrDownloadFailed, "copy: %w", err)
	}
	if n > r.maxDownload {
		return n, newError(ErrDownloadFailed, "source larger than %d bytes", r.maxDownload)
	}
	if n == 0 {
		return 0, newError(ErrDownloadFailed, "empty source")
	}
	return n, nil
}

// offset picks the clip start. Probe failures fall back to the beginning.
func (r *Renderer) offset(ctx context.Context, source string, opts Options) time.Duration {
	if opts.LeadIn <= 0 {
		return 0
	}
	total, err := r.transcoder.Probe(ctx, source)
	if err != nil {
		logging.Warn(r.logger, "clip probe failed, starting at zero", "error", err)
		return 0
	}
	return clipOffset(opts.LeadIn, total, opts.MaxDuration)
}

func clipOffset(leadIn, total, clip time.Duration) time.Duration {
	offset := min(leadIn, total-clip)
	if offset < 0 {
		return 0
	}
	return offset
}

func (r *Renderer) transcode(ctx context.Context, job Job, source, workDir string, offset time.Duration, name string) ([]byte, error) {
	job.Input = source
	job.WorkDir = workDir
	job.Output = filepath.Join(workDir, name)
	job.Offset = offset

	if err := r.transcoder.Transcode(ctx, job); err != nil {
		return nil, &Error{Kind: ErrTranscodeFailed, Err: err}
	}
	data, err := os.ReadFile(job.Output)
	if err != nil {
		return nil, newError(ErrTranscodeFailed, "read output: %w", err)
	}
	if len(data) == 0 {
		return nil, newError(ErrTranscodeFailed, "empty output")
	}
	return data, nil
}

