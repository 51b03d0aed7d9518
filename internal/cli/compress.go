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

var compressCmd = &cobra.Command{
	Use:   "compress <input> <output>",
	Short: "Compress at one fixed quality value, no search",
	Args: cobra.ExactArgs(2),
	PreRunE: bindLocalFlags(map[string]string{
		"encoder": "encoder",
		"quality": "quality",
		"force":   "force",
	}),
	RunE: runCompress,
}

func init() {
	fs := compressCmd.Flags()
	fs.StringP("encoder", "e", "intel", "hardware backend: intel | nvidia | mac")
	fs.IntP("quality", "q", -1, "quality value (default: the backend's calibrated default)")
	fs.BoolP("force", "f", false, "overwrite existing outputs")
}

func runCompress(_ *cobra.Command, args []string) error {
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
	if cfg.Quality >= 0 && !enc.Profile().Contains(cfg.Quality) {
		return fmt.Errorf("quality %d outside %s range [%d, %d]",
			cfg.Quality, enc.Name(), enc.Profile().Min, enc.Profile().Max)
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
	stats := pipeline.Fixed(ctx, &cfg, comp, log)
	if stats.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", stats.Failed, stats.Total)
	}
	return ctx.Err()
}
