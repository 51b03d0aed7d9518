package cli

import (
	"github.com/spf13/cobra"

	"github.com/cliang-dev/vpress/internal/config"
	"github.com/cliang-dev/vpress/internal/pipeline"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <ref-dir> <comp-dir>...",
	Short: "Score compressed files against their references and write a results table",
	Long: `Analyze matches every video under the compressed directories to a
reference in ref-dir (by stem, with any parameter suffix stripped), runs a
VMAF comparison per pair, and writes a tab-separated results table.`,
	Args: cobra.MinimumNArgs(2),
	PreRunE: bindLocalFlags(map[string]string{
		"jobs":      "jobs",
		"neg_model": "neg-model",
		"results":   "results",
	}),
	RunE: runAnalyze,
}

func init() {
	fs := analyzeCmd.Flags()
	fs.IntP("jobs", "j", 1, "parallel VMAF comparisons")
	fs.Bool("neg-model", false, "use the vmaf_v0.6.1neg model (discounts sharpening)")
	fs.String("results", "", "TSV results file (default Results/FFMetrics.Results.csv)")
}

func runAnalyze(_ *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Close()

	cfg.RefDir = config.NormalizeDirArg(args[0])
	for _, dir := range args[1:] {
		cfg.CompDirs = append(cfg.CompDirs, config.NormalizeDirArg(dir))
	}
	if err := cfg.ValidateAnalyze(); err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	return pipeline.Analyze(ctx, &cfg, log)
}
