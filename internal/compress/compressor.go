// Package compress performs single encode attempts through a configured
// encoder backend. One Compressor wraps one backend; the smart scheduler
// and the fixed-quality pipeline both drive it.
package compress

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cliang-dev/vpress/internal/encoder"
	"github.com/cliang-dev/vpress/internal/ffmpeg"
	"github.com/cliang-dev/vpress/internal/fsutil"
)

// Compressor executes encode attempts for one backend.
type Compressor struct {
	enc       encoder.Encoder
	ffmpegBin string
	tee       bool // Mirror ffmpeg stderr for live progress.
}

// New returns a Compressor for enc invoking ffmpegBin. When tee is true,
// ffmpeg progress output is passed through to the terminal.
func New(enc encoder.Encoder, ffmpegBin string, tee bool) *Compressor {
	return &Compressor{enc: enc, ffmpegBin: ffmpegBin, tee: tee}
}

// Encoder returns the wrapped backend.
func (c *Compressor) Encoder() encoder.Encoder { return c.enc }

// Profile returns the backend's quality configuration.
func (c *Compressor) Profile() encoder.Profile { return c.enc.Profile() }

// ValidQuality reports whether the backend considers q worth encoding at.
func (c *Compressor) ValidQuality(q int) bool { return c.enc.ValidQuality(q) }

// Encode runs one encode of source to dest at the given quality and
// returns the output size in bytes. A quality below zero selects the
// backend default. The partial output is removed on failure.
func (c *Compressor) Encode(ctx context.Context, source, dest string, quality int) (int64, error) {
	if quality < 0 {
		quality = c.enc.Profile().Default
	}
	if _, err := os.Stat(source); err != nil {
		return 0, fmt.Errorf("input %q: %w", source, err)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return 0, err
	}

	args := c.enc.Args(source, dest, quality)
	res := ffmpeg.Execute(ctx, c.ffmpegBin, args, c.tee)
	if res.Err != nil {
		os.Remove(dest)
		if tail := stderrTail(res.Stderr); tail != "" {
			return 0, fmt.Errorf("encode %s (q=%d): %w: %s", filepath.Base(source), quality, res.Err, tail)
		}
		return 0, fmt.Errorf("encode %s (q=%d): %w", filepath.Base(source), quality, res.Err)
	}

	size := fsutil.FileSize(dest)
	if size == 0 {
		os.Remove(dest)
		return 0, fmt.Errorf("encode %s (q=%d): ffmpeg produced no output", filepath.Base(source), quality)
	}
	return size, nil
}

// stderrTail returns the last non-empty stderr line for error context.
func stderrTail(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
