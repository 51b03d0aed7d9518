package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cliang-dev/vpress/internal/check"
	"github.com/cliang-dev/vpress/internal/compress"
	"github.com/cliang-dev/vpress/internal/config"
	"github.com/cliang-dev/vpress/internal/display"
	"github.com/cliang-dev/vpress/internal/encoder"
	"github.com/cliang-dev/vpress/internal/pipeline"
)

var batchCmd = &cobra.Command{
	Use:   "batch <input> <output>",
	Short: "Encode every file at every quality in a range, for calibration sweeps",
	Long: `Batch produces one parameter-suffixed output per (file, quality)
pair, e.g. clip_intel_q25.mp4. Pair it with analyze to measure how each
quality value scores on your own content.`,
	Args: cobra.ExactArgs(2),
	PreRunE: bindLocalFlags(map[string]string{
		"encoder":     "encoder",
		"range_start": "range-start",
		"range_end":   "range-end",
		"force":       "force",
	}),
	RunE: runBatch,
}

func init() {
	fs := batchCmd.Flags()
	fs.StringP("encoder", "e", "intel", "hardware backend: intel | nvidia | mac")
	fs.Int("range-start", 0, "first quality value of the sweep (inclusive)")
	fs.Int("range-end", 0, "last quality value of the sweep (inclusive)")
	fs.BoolP("force", "f", false, "overwrite existing outputs")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Close()

	cfg.Input = config.NormalizeDirArg(args[0])
	cfg.Output = config.NormalizeDirArg(args[1])

	enc, err := encoder.New(cfg.EncoderName)
	if err != nil {
		return err
	}
	// An unset range sweeps a small band around the calibrated default.
	if !cmd.Flags().Changed("range-start") && !cmd.Flags().Changed("range-end") {
		p := enc.Profile()
		cfg.RangeStart = p.Default - 2
		cfg.RangeEnd = p.Default + 2
		if cfg.RangeStart > cfg.RangeEnd {
			cfg.RangeStart, cfg.RangeEnd = cfg.RangeEnd, cfg.RangeStart
		}
	}
	if err := cfg.ValidateBatch(); err != nil {
		return err
	}
	if err := validatePathNesting(&cfg, log); err != nil {
		return err
	}
	if err := check.CheckDeps(&cfg); err != nil {
		return err
	}

	display.PrintBanner()

	ctx, stop := signalContext()
	defer stop()

	comp := compress.New(enc, cfg.FFmpegBin, cfg.Verbose)
	stats := pipeline.Sweep(ctx, &cfg, comp, log)
	if stats.Failed > 0 {
		return fmt.Errorf("%d of %d encodes failed", stats.Failed, stats.Total)
	}
	return ctx.Err()
}
