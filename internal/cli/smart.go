package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cliang-dev/vpress/internal/check"
	"github.com/cliang-dev/vpress/internal/config"
	"github.com/cliang-dev/vpress/internal/display"
	"github.com/cliang-dev/vpress/internal/pipeline"
	"github.com/cliang-dev/vpress/internal/scheduler"
)

var smartCmd = &cobra.Command{
	Use:   "smart <input> <output>",
	Short: "Search the lowest quality that meets the VMAF target within the size budget",
	Long: `Smart runs the adaptive quality search: each file is encoded at
increasing fidelity until its VMAF score reaches the target, the output
grows past the size limit, or the encoder's quality range is exhausted.
One encode runs at a time; scoring is parallel.`,
	Args: cobra.ExactArgs(2),
	PreRunE: bindLocalFlags(map[string]string{
		"encoder":     "encoder",
		"target_vmaf": "target-vmaf",
		"size_limit":  "size-limit",
		"workers":     "workers",
		"neg_model":   "neg-model",
		"force":       "force",
		"results":     "results",
	}),
	RunE: runSmart,
}

func init() {
	fs := smartCmd.Flags()
	fs.StringP("encoder", "e", "intel", "hardware backend: intel | nvidia | mac")
	fs.Float64P("target-vmaf", "t", 95, "minimum acceptable VMAF score")
	fs.Float64P("size-limit", "s", 0.8, "maximum output size as a fraction of the original")
	fs.IntP("workers", "w", 4, "parallel VMAF assessment workers")
	fs.Bool("neg-model", false, "use the vmaf_v0.6.1neg model (discounts sharpening)")
	fs.BoolP("force", "f", false, "overwrite existing outputs")
	fs.String("results", "", "TSV results file (default Results/FFMetrics.Results.csv)")
}

func runSmart(_ *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Close()

	cfg.Input = config.NormalizeDirArg(args[0])
	cfg.Output = config.NormalizeDirArg(args[1])
	if err := cfg.ValidateSmart(); err != nil {
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

	outcomes, err := pipeline.Smart(ctx, &cfg, log)
	if err != nil {
		return err
	}

	sum := scheduler.Summarize(outcomes)
	if sum.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", sum.Failed, sum.Total())
	}
	return ctx.Err()
}
