package render

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type recordedCall struct {
	name string
	args []string
}

func fakeCommand(calls *[]recordedCall, stdout string, err error) commandFunc {
	return func(ctx context.Context, name string, args ...string) ([]byte, string, error) {
		*calls = append(*calls, recordedCall{name: name, args: args})
		return []byte(stdout), "stderr tail", err
	}
}

func TestTranscodeRunsTwoPasses(t *testing.T) {
	var calls []recordedCall
	f := NewFFmpeg("/usr/bin/ffmpeg", "")
	f.run = fakeCommand(&calls, "", nil)

	job := Job{Input: "/w/source.mp4", WorkDir: "/w", Output: "/w/out.gif", Offset: 1500 * time.Millisecond, Duration: 8 * time.Second, Width: 480, FPS: 15, Colors: 256}
	if err := f.Transcode(context.Background(), job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != 2 {
		t.Fatalf("expected two ffmpeg calls, got %d", len(calls))
	}
	palette := strings.Join(calls[0].args, " ")
	if calls[0].name != "/usr/bin/ffmpeg" {
		t.Fatalf("unexpected binary %s", calls[0].name)
	}
	for _, want := range []string{"-ss 1.500", "-t 8.000", "-i /w/source.mp4", "fps=15,scale=480:-1:flags=lanczos,palettegen=max_colors=256:stats_mode=diff", "/w/palette-480.png"} {
		if !strings.Contains(palette, want) {
			t.Fatalf("palette pass missing %q: %s", want, palette)
		}
	}
	gif := strings.Join(calls[1].args, " ")
	for _, want := range []string{"-i /w/palette-480.png", "paletteuse=dither=bayer:bayer_scale=5", "-y /w/out.gif"} {
		if !strings.Contains(gif, want) {
			t.Fatalf("gif pass missing %q: %s", want, gif)
		}
	}
}

func TestTranscodeStopsAfterFailedPalette(t *testing.T) {
	var calls []recordedCall
	f := NewFFmpeg("", "")
	f.run = fakeCommand(&calls, "", errors.New("exit code 1"))

	err := f.Transcode(context.Background(), Job{Input: "in", WorkDir: "/w", Output: "out", Width: 480, FPS: 15})
	if err == nil || !strings.Contains(err.Error(), "palettegen") || !strings.Contains(err.Error(), "stderr tail") {
		t.Fatalf("expected palettegen error with stderr, got %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("expected a single call, got %d", len(calls))
	}
}

func TestSeekArgsOmitZeroOffset(t *testing.T) {
	args := strings.Join(seekArgs(Job{Input: "in", Duration: 8 * time.Second}), " ")
	if strings.Contains(args, "-ss") {
		t.Fatalf("expected no seek for zero offset: %s", args)
	}
}

func TestProbeParsesDuration(t *testing.T) {
	var calls []recordedCall
	f := NewFFmpeg("", "/opt/ffprobe")
	f.run = fakeCommand(&calls, "12.480000\n", nil)

	d, err := f.Probe(context.Background(), "in.mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != 12480*time.Millisecond {
		t.Fatalf("unexpected duration %v", d)
	}
	if calls[0].name != "/opt/ffprobe" {
		t.Fatalf("expected ffprobe binary, got %s", calls[0].name)
	}

	f.run = fakeCommand(&calls, "N/A", nil)
	if _, err := f.Probe(context.Background(), "in.mp4"); err == nil {
		t.Fatalf("expected error for unreadable duration")
	}
}

func TestLimitedWriterKeepsTail(t *testing.T) {
	var buf bytes.Buffer
	lw := &limitedWriter{w: &buf, limit: 5}
	n, err := lw.Write([]byte("abcdefgh"))
	if err != nil || n != 8 {
		t.Fatalf("unexpected write result n=%d err=%v", n, err)
	}
	_, _ = lw.Write([]byte("ij"))
	if buf.String() != "fghij" {
		t.Fatalf("expected tail fghij, got %q", buf.String())
	}
}

func TestRunCommandReportsMissingBinary(t *testing.T) {
	_, _, err := runCommand(context.Background(), "definitely-not-a-real-binary-xyz")
	if err == nil {
		t.Fatalf("expected error for missing binary")
	}
}
