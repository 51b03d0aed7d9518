// Package vmaf scores encoded candidates against their originals using
// ffmpeg's libvmaf filter.
package vmaf

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/cliang-dev/vpress/internal/ffmpeg"
	"github.com/cliang-dev/vpress/internal/probe"
)

// reScore extracts the aggregate score from libvmaf's summary line,
// e.g. "VMAF score: 95.123456".
var reScore = regexp.MustCompile(`VMAF score[:=]\s*([0-9.]+)`)

// Analyzer runs VMAF comparisons. The zero value is not usable; construct
// with [New].
type Analyzer struct {
	ffmpegBin  string
	ffprobeBin string
	threads    int
	negModel   bool
}

// New returns an Analyzer using the given binaries. threads sets libvmaf's
// n_threads (values below 1 fall back to 4). negModel selects the NEG
// variant of the model, which discounts sharpening artifacts.
func New(ffmpegBin, ffprobeBin string, threads int, negModel bool) *Analyzer {
	if threads < 1 {
		threads = 4
	}
	return &Analyzer{
		ffmpegBin:  ffmpegBin,
		ffprobeBin: ffprobeBin,
		threads:    threads,
		negModel:   negModel,
	}
}

// Model returns the libvmaf model selector in filter-argument form.
func (a *Analyzer) Model() string {
	if a.negModel {
		return "version=vmaf_v0.6.1neg"
	}
	return "version=vmaf_v0.6.1"
}

// Score compares dist against ref and returns the aggregate VMAF score.
// [0:v] is the reference input, [1:v] the distorted one; libvmaf wants
// them in distorted-first filter order.
func (a *Analyzer) Score(ctx context.Context, ref, dist string) (float64, error) {
	filter := fmt.Sprintf("[1:v][0:v]libvmaf=model=%s:n_threads=%d", a.Model(), a.threads)
	args := []string{
		"-i", ref,
		"-i", dist,
		"-filter_complex", filter,
		"-f", "null",
		"-",
	}

	res := ffmpeg.Execute(ctx, a.ffmpegBin, args, false)
	if score, ok := ParseScore(res.Stderr); ok {
		return score, nil
	}
	if res.Err != nil {
		return 0, fmt.Errorf("vmaf %s vs %s: %w", filepath.Base(ref), filepath.Base(dist), res.Err)
	}
	return 0, fmt.Errorf("vmaf %s vs %s: no score in ffmpeg output", filepath.Base(ref), filepath.Base(dist))
}

// ParseScore scans ffmpeg stderr for the VMAF summary line, preferring the
// last occurrence. Exported for testing without a real ffmpeg binary.
func ParseScore(stderr string) (float64, bool) {
	lines := strings.Split(stderr, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		m := reScore.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		score, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		return score, true
	}
	return 0, false
}

// Bitrate returns the video bitrate of path in kbps.
func (a *Analyzer) Bitrate(ctx context.Context, path string) (float64, error) {
	pr, err := probe.Probe(ctx, a.ffprobeBin, path)
	if err != nil {
		return 0, err
	}
	return pr.BitrateKbps(), nil
}

// ErrNoLibvmaf is returned by CheckSupport when the configured ffmpeg
// build lacks the libvmaf filter.
var ErrNoLibvmaf = errors.New("ffmpeg build has no libvmaf filter (install a full build, e.g. ffmpeg-full)")

// CheckSupport verifies that the configured ffmpeg was built with libvmaf.
// The filter list is the only reliable probe; -h filter=libvmaf exits zero
// even on builds without it.
func (a *Analyzer) CheckSupport(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, a.ffmpegBin, "-hide_banner", "-filters")
	out, err := cmd.Output()
	if err != nil {
		return fmt.Errorf("%s -filters: %w", a.ffmpegBin, err)
	}
	if !strings.Contains(string(out), "libvmaf") {
		return ErrNoLibvmaf
	}
	return nil
}
