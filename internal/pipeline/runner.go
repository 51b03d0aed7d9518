package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cliang-dev/vpress/internal/compress"
	"github.com/cliang-dev/vpress/internal/config"
	"github.com/cliang-dev/vpress/internal/display"
	"github.com/cliang-dev/vpress/internal/encoder"
	"github.com/cliang-dev/vpress/internal/logging"
	"github.com/cliang-dev/vpress/internal/naming"
	"github.com/cliang-dev/vpress/internal/probe"
)

const minFileSize = 1000

// Fixed compresses every discovered file at one fixed quality value,
// mirroring the input tree under the output root.
func Fixed(ctx context.Context, cfg *config.Config, comp *compress.Compressor, log *logging.Logger) RunStats {
	var stats RunStats

	files, err := Discover(cfg.Input)
	if err != nil {
		log.Error("File discovery failed: %v", err)
		return stats
	}
	stats.Total = len(files)

	quality := cfg.Quality
	if quality < 0 {
		quality = comp.Profile().Default
	}
	log.Info("Compressing %d files with %s (%s) at quality %d",
		stats.Total, comp.Encoder().Name(), comp.Encoder().Codec(), quality)
	fmt.Println()

	for i, path := range files {
		stats.Current = i + 1
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}

		out, err := mirror(cfg.Input, cfg.Output, path)
		if err != nil {
			log.Error("Cannot resolve output path for %s: %v", path, err)
			stats.Failed++
			continue
		}
		processFile(ctx, cfg, comp, log, path, out, quality, &stats)
	}

	logSummary(log, &stats)
	return stats
}

// Sweep encodes every discovered file at every quality in the configured
// range, writing parameter-suffixed outputs side by side for later
// comparison with analyze.
func Sweep(ctx context.Context, cfg *config.Config, comp *compress.Compressor, log *logging.Logger) RunStats {
	var stats RunStats

	files, err := Discover(cfg.Input)
	if err != nil {
		log.Error("File discovery failed: %v", err)
		return stats
	}
	qualities := sweepQualities(comp.Encoder(), cfg.RangeStart, cfg.RangeEnd)
	stats.Total = len(files) * len(qualities)

	log.Info("Sweeping %d files over %d quality values with %s",
		len(files), len(qualities), comp.Encoder().Name())
	fmt.Println()

	for _, path := range files {
		for _, q := range qualities {
			stats.Current++
			if ctx.Err() != nil {
				log.Warn("Interrupted")
				logSummary(log, &stats)
				return stats
			}

			name, err := naming.SweepFilename(path, comp.Encoder().Name(), q)
			if err != nil {
				log.Error("%v", err)
				stats.Failed++
				continue
			}
			processFile(ctx, cfg, comp, log, path, filepath.Join(cfg.Output, name), q, &stats)
		}
	}

	logSummary(log, &stats)
	return stats
}

// processFile handles one encode: validate, probe, skip-existing, encode,
// account.
func processFile(
	ctx context.Context,
	cfg *config.Config,
	comp *compress.Compressor,
	log *logging.Logger,
	path, out string,
	quality int,
	stats *RunStats,
) {
	basename := filepath.Base(path)
	log.Info("[%d/%d] %s", stats.Current, stats.Total, basename)

	fi, err := os.Stat(path)
	if err != nil {
		log.Error("File not found: %s", path)
		stats.Failed++
		fmt.Println()
		return
	}
	if fi.Size() < minFileSize {
		log.Error("File too small (possibly corrupt): %s", path)
		stats.Failed++
		fmt.Println()
		return
	}

	pr, err := probe.Probe(ctx, cfg.FFprobeBin, path)
	if err != nil {
		log.Error("Cannot probe file (possibly corrupt): %v", err)
		stats.Failed++
		fmt.Println()
		return
	}
	if pr.PrimaryVideo == nil {
		log.Warn("No video stream found, skipping")
		stats.Skipped++
		fmt.Println()
		return
	}
	log.Debug("%s, %s", pr.Resolution(), display.FormatBitrateLabel(int64(pr.BitrateKbps())))

	if !cfg.Force {
		if _, err := os.Stat(out); err == nil {
			log.Warn("Skip (exists): %s", filepath.Base(out))
			stats.Skipped++
			fmt.Println()
			return
		}
	}

	log.Info("Encoding at quality %d -> %s", quality, filepath.Base(out))
	start := time.Now()
	size, err := comp.Encode(ctx, path, out, quality)
	if err != nil {
		log.Error("Encode failed: %v", err)
		stats.Failed++
		fmt.Println()
		return
	}

	elapsed := time.Since(start)
	ratio := int64(100)
	if fi.Size() > 0 {
		ratio = size * 100 / fi.Size()
	}
	stats.TotalInputBytes += fi.Size()
	stats.TotalOutputBytes += size
	stats.Encoded++
	log.Success("Encoded in %ds (%d%% of original)", int(elapsed.Seconds()), ratio)
	fmt.Println()
}

// mirror resolves the output path for one input file. Directory inputs
// mirror their tree under the output root; single-file inputs land at the
// output path itself when it names a file, else inside it.
func mirror(inputRoot, outputRoot, path string) (string, error) {
	if path == inputRoot {
		if IsVideo(outputRoot) {
			return outputRoot, nil
		}
		return filepath.Join(outputRoot, filepath.Base(path)), nil
	}
	return naming.MirrorPath(inputRoot, outputRoot, path)
}

// sweepQualities expands [start, end] into the encodable quality values:
// clamped to the backend's bounds, duplicates skipped, ascending.
func sweepQualities(enc encoder.Encoder, start, end int) []int {
	if start > end {
		start, end = end, start
	}
	p := enc.Profile()
	if start < p.Min {
		start = p.Min
	}
	if end > p.Max {
		end = p.Max
	}
	var qs []int
	for q := start; q <= end; q++ {
		if enc.ValidQuality(q) {
			qs = append(qs, q)
		}
	}
	return qs
}

func logSummary(log *logging.Logger, stats *RunStats) {
	log.Info("Done: %d encoded, %d skipped, %d failed", stats.Encoded, stats.Skipped, stats.Failed)
	if stats.Encoded > 0 {
		log.Info("Total size: %s -> %s (saved %s)",
			display.FormatBytes(stats.TotalInputBytes),
			display.FormatBytes(stats.TotalOutputBytes),
			display.FormatBytesWithSign(stats.SpaceSaved()))
	}
}
