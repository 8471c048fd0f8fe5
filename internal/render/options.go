package render

import "time"

const (
	DefaultMaxDuration = 8 * time.Second
	DefaultWidth       = 480
	DefaultFPS         = 15
	DefaultMaxBytes    = 50 << 20

	defaultMaxDownloadBytes = 200 << 20
	defaultColors           = 256
	reducedColors           = 128
	minReducedFPS           = 8
	bayerScale              = 5
	tempPattern             = "clip-*"
	tempSubdir              = "mlb-gif-service"
)

// Options bound the produced animation.
type Options struct {
	MaxDuration time.Duration
	Width       int
	FPS         int
	MaxBytes    int64
	// LeadIn skips into the source before the clip starts, capped so a full
	// MaxDuration clip still fits.
	LeadIn time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxDuration <= 0 {
		o.MaxDuration = DefaultMaxDuration
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.FPS <= 0 {
		o.FPS = DefaultFPS
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	if o.LeadIn < 0 {
		o.LeadIn = 0
	}
	return o
}

// Artifact is a finished animation held in memory; nothing of it remains on disk.
type Artifact struct {
	Data      []byte
	Width     int
	FPS       int
	Reencoded bool
	Elapsed   time.Duration
}

// Size reports the artifact length in bytes.
func (a Artifact) Size() int64 {
	return int64(len(a.Data))
}

// Job describes one transcode of a downloaded source.
type Job struct {
	Input    string
	WorkDir  string
	Output   string
	Offset   time.Duration
	Duration time.Duration
	Width    int
	FPS      int
	Colors   int
}

func fullQuality(o Options) Job {
	return Job{Duration: o.MaxDuration, Width: o.Width, FPS: o.FPS, Colors: defaultColors}
}

func reducedQuality(o Options) Job {
	fps := o.FPS * 2 / 3
	if fps < minReducedFPS {
		fps = min(minReducedFPS, o.FPS)
	}
	width := o.Width * 2 / 3
	// Even widths keep the scaler happy.
	width -= width % 2
	return Job{Duration: o.MaxDuration, Width: width, FPS: fps, Colors: reducedColors}
}
