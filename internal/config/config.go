// Package config holds runtime configuration: defaults, viper-backed
// loading, and validation. Defaults match the calibrated per-encoder
// settings established by the original measurement batches.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/cliang-dev/vpress/internal/term"
)

// Config holds all runtime settings. It is populated by [Default] and then
// overlaid by [Load] from viper (flags > env > config file) before being
// passed (by pointer) to the packages that need it.
type Config struct {
	// Display and logging.
	ColorMode term.Mode // Default: "auto".
	Verbose   bool
	LogFile   string // Optional log file path.

	// External binaries.
	FFmpegBin  string // Default: "ffmpeg".
	FFprobeBin string // Default: "ffprobe".

	// Paths (set from positional args).
	Input  string
	Output string

	// Encoder selection.
	EncoderName string // "intel" | "nvidia" | "mac".
	Quality     int    // Fixed quality override; -1 means encoder default.
	Force       bool   // Overwrite existing outputs.

	// Smart search tuning.
	TargetVMAF float64 // Default: 95. Minimum acceptable perceptual score.
	SizeLimit  float64 // Default: 0.8. Max output/input size ratio.
	Workers    int     // Default: 4. VMAF assessment pool size.
	NegModel   bool    // Use the vmaf_v0.6.1neg model.

	// Batch sweep bounds (inclusive).
	RangeStart int
	RangeEnd   int

	// Analysis.
	RefDir      string   // Reference directory for analyze.
	CompDirs    []string // Compressed directories to scan.
	ResultsPath string   // Default: "Results/FFMetrics.Results.csv".
	Jobs        int      // Default: 1. Parallel VMAF jobs for analyze.
}

// Default returns a Config with all defaults. Used as the base before
// [Load] applies viper overrides.
func Default() Config {
	return Config{
		ColorMode:   term.ModeAuto,
		FFmpegBin:   "ffmpeg",
		FFprobeBin:  "ffprobe",
		Quality:     -1,
		TargetVMAF:  95,
		SizeLimit:   0.8,
		Workers:     4,
		ResultsPath: "Results/FFMetrics.Results.csv",
		Jobs:        1,
	}
}

// Load overlays the given viper instance onto the defaults. Keys unset in
// viper keep their default value.
func Load(v *viper.Viper) Config {
	c := Default()
	if v.IsSet("color") {
		c.ColorMode = term.Mode(v.GetString("color"))
	}
	c.Verbose = v.GetBool("verbose")
	c.LogFile = v.GetString("log_file")
	if v.IsSet("ffmpeg_bin") {
		c.FFmpegBin = v.GetString("ffmpeg_bin")
	}
	if v.IsSet("ffprobe_bin") {
		c.FFprobeBin = v.GetString("ffprobe_bin")
	}
	c.EncoderName = v.GetString("encoder")
	if v.IsSet("quality") {
		c.Quality = v.GetInt("quality")
	}
	c.Force = v.GetBool("force")
	if v.IsSet("target_vmaf") {
		c.TargetVMAF = v.GetFloat64("target_vmaf")
	}
	if v.IsSet("size_limit") {
		c.SizeLimit = v.GetFloat64("size_limit")
	}
	if v.IsSet("workers") {
		c.Workers = v.GetInt("workers")
	}
	c.NegModel = v.GetBool("neg_model")
	c.RangeStart = v.GetInt("range_start")
	c.RangeEnd = v.GetInt("range_end")
	c.RefDir = v.GetString("ref_dir")
	c.CompDirs = v.GetStringSlice("comp_dirs")
	if v.IsSet("results") {
		c.ResultsPath = v.GetString("results")
	}
	if v.IsSet("jobs") {
		c.Jobs = v.GetInt("jobs")
	}
	return c
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks the fields every command depends on.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case term.ModeAuto, term.ModeAlways, term.ModeNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}
	if c.FFmpegBin == "" || c.FFprobeBin == "" {
		return errors.New("ffmpeg and ffprobe binary names must not be empty")
	}
	return nil
}

// ValidateSmart checks the settings the smart search needs on top of
// [Config.Validate].
func (c *Config) ValidateSmart() error {
	if c.Input == "" || c.Output == "" {
		return errors.New("need exactly input and output paths")
	}
	if c.SizeLimit <= 0 || c.SizeLimit > 1 {
		return fmt.Errorf("size limit %v out of range (0, 1]", c.SizeLimit)
	}
	if c.TargetVMAF <= 0 || c.TargetVMAF > 100 {
		return fmt.Errorf("target VMAF %v out of range (0, 100]", c.TargetVMAF)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	return nil
}

// ValidateBatch checks the parameter-sweep bounds.
func (c *Config) ValidateBatch() error {
	if c.Input == "" || c.Output == "" {
		return errors.New("need exactly source and output directories")
	}
	if c.RangeEnd < c.RangeStart {
		return fmt.Errorf("range end %d below range start %d", c.RangeEnd, c.RangeStart)
	}
	return nil
}

// ValidateAnalyze checks the analyze inputs.
func (c *Config) ValidateAnalyze() error {
	if c.RefDir == "" {
		return errors.New("reference directory must not be empty")
	}
	if len(c.CompDirs) == 0 {
		return errors.New("need at least one compressed directory")
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be >= 1, got %d", c.Jobs)
	}
	return nil
}

// ValidatePaths ensures the resolved output directory is not inside (or equal
// to) the resolved input directory. This prevents the pipeline from
// recursively discovering its own output files. Both arguments must be
// absolute, symlink-resolved paths.
func (c *Config) ValidatePaths(inputAbs, outputAbs string) error {
	sep := string(filepath.Separator)
	if outputAbs == inputAbs || strings.HasPrefix(outputAbs+sep, inputAbs+sep) {
		return errors.New("output directory must not be inside input directory")
	}
	return nil
}
