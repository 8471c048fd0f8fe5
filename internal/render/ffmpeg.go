package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	maxStderrBytes  = 8 * 1024
	defaultFFmpeg   = "ffmpeg"
	defaultFFprobe  = "ffprobe"
	defaultStepTime = 60 * time.Second
)

// Transcoder turns a downloaded source into an animated GIF.
type Transcoder interface {
	Probe(ctx context.Context, input string) (time.Duration, error)
	Transcode(ctx context.Context, job Job) error
}

// commandFunc runs a binary and returns its stdout and a bounded stderr tail.
type commandFunc func(ctx context.Context, name string, args ...string) ([]byte, string, error)

// FFmpeg shells out to ffmpeg and ffprobe.
type FFmpeg struct {
	FFmpegPath  string
	FFprobePath string
	// StepTimeout bounds each ffmpeg invocation.
	StepTimeout time.Duration
	run         commandFunc
}

// NewFFmpeg constructs an FFmpeg transcoder, falling back to binaries on PATH.
func NewFFmpeg(ffmpegPath, ffprobePath string) *FFmpeg {
	if ffmpegPath == "" {
		ffmpegPath = defaultFFmpeg
	}
	if ffprobePath == "" {
		ffprobePath = defaultFFprobe
	}
	return &FFmpeg{
		FFmpegPath:  ffmpegPath,
		FFprobePath: ffprobePath,
		StepTimeout: defaultStepTime,
		run:         runCommand,
	}
}

// Available reports whether the ffmpeg binary can be found.
func (f *FFmpeg) Available() error {
	if _, err := exec.LookPath(f.FFmpegPath); err != nil {
		return fmt.Errorf("ffmpeg not found at %q: %w", f.FFmpegPath, err)
	}
	return nil
}

// Probe returns the container duration of input.
func (f *FFmpeg) Probe(ctx context.Context, input string) (time.Duration, error) {
	ctx, cancel := f.stepContext(ctx)
	defer cancel()

	out, tail, err := f.run(ctx, f.FFprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		input,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w: %s", err, tail)
	}
	secs, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil || secs <= 0 {
		return 0, fmt.Errorf("ffprobe: unreadable duration %q", strings.TrimSpace(string(out)))
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// Transcode runs the two-pass palette conversion.
func (f *FFmpeg) Transcode(ctx context.Context, job Job) error {
	palette := filepath.Join(job.WorkDir, fmt.Sprintf("palette-%d.png", job.Width))

	ctx1, cancel1 := f.stepContext(ctx)
	defer cancel1()
	if _, tail, err := f.run(ctx1, f.FFmpegPath, paletteArgs(job, palette)...); err != nil {
		return fmt.Errorf("palettegen: %w: %s", err, tail)
	}

	ctx2, cancel2 := f.stepContext(ctx)
	defer cancel2()
	if _, tail, err := f.run(ctx2, f.FFmpegPath, gifArgs(job, palette)...); err != nil {
		return fmt.Errorf("paletteuse: %w: %s", err, tail)
	}
	return nil
}

func (f *FFmpeg) stepContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if f.StepTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, f.StepTimeout)
}

func filterChain(job Job) string {
	return fmt.Sprintf("fps=%d,scale=%d:-1:flags=lanczos", job.FPS, job.Width)
}

func seekArgs(job Job) []string {
	args := []string{"-hide_banner", "-loglevel", "error"}
	if job.Offset > 0 {
		args = append(args, "-ss", formatSeconds(job.Offset))
	}
	return append(args, "-t", formatSeconds(job.Duration), "-i", job.Input)
}

func paletteArgs(job Job, palette string) []string {
	args := seekArgs(job)
	return append(args,
		"-vf", fmt.Sprintf("%s,palettegen=max_colors=%d:stats_mode=diff", filterChain(job), job.Colors),
		"-y", palette,
	)
}

func gifArgs(job Job, palette string) []string {
	args := seekArgs(job)
	return append(args,
		"-i", palette,
		"-lavfi", fmt.Sprintf("%s[x];[x][1:v]paletteuse=dither=bayer:bayer_scale=%d", filterChain(job), bayerScale),
		"-y", job.Output,
	)
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = io.Writer(&limitedWriter{w: &stderr, limit: maxStderrBytes})

	err := cmd.Run()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			err = fmt.Errorf("exit code %d", exitErr.ExitCode())
		}
		if ctx.Err() != nil {
			err = fmt.Errorf("%w (%v)", ctx.Err(), err)
		}
	}
	return stdout.Bytes(), strings.TrimSpace(stderr.String()), err
}

// limitedWriter keeps only the last limit bytes written to it.
type limitedWriter struct {
	w     *bytes.Buffer
	limit int
}

func (lw *limitedWriter) Write(p []byte) (int, error) {
	n := len(p)
	lw.w.Write(p)
	if lw.w.Len() > lw.limit {
		b := lw.w.Bytes()
		tail := append([]byte(nil), b[len(b)-lw.limit:]...)
		lw.w.Reset()
		lw.w.Write(tail)
	}
	return n, nil
}
