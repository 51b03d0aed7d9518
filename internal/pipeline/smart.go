package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cliang-dev/vpress/internal/compress"
	"github.com/cliang-dev/vpress/internal/config"
	"github.com/cliang-dev/vpress/internal/encoder"
	"github.com/cliang-dev/vpress/internal/logging"
	"github.com/cliang-dev/vpress/internal/results"
	"github.com/cliang-dev/vpress/internal/scheduler"
	"github.com/cliang-dev/vpress/internal/vmaf"
)

// Smart runs the adaptive quality search over every discovered file and
// returns the per-file outcomes in discovery order.
func Smart(ctx context.Context, cfg *config.Config, log *logging.Logger) ([]scheduler.Outcome, error) {
	enc, err := encoder.New(cfg.EncoderName)
	if err != nil {
		return nil, err
	}
	comp := compress.New(enc, cfg.FFmpegBin, cfg.Verbose)
	analyzer := vmaf.New(cfg.FFmpegBin, cfg.FFprobeBin, 0, cfg.NegModel)

	if err := analyzer.CheckSupport(ctx); err != nil {
		return nil, err
	}

	files, err := Discover(cfg.Input)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no video files found in %s", cfg.Input)
	}

	var inputs []scheduler.Input
	for _, path := range files {
		out, err := mirror(cfg.Input, cfg.Output, path)
		if err != nil {
			log.Error("Cannot resolve output path for %s: %v", path, err)
			continue
		}
		if !cfg.Force {
			if _, err := os.Stat(out); err == nil {
				log.Warn("Skip (exists): %s", filepath.Base(out))
				continue
			}
		}
		inputs = append(inputs, scheduler.Input{Source: path, Output: out})
	}
	if len(inputs) == 0 {
		return nil, nil
	}

	profile := comp.Profile()
	log.Info("Searching %d files with %s (%s): target VMAF %.1f, size limit %s, start quality %d",
		len(inputs), enc.Name(), enc.Codec(), cfg.TargetVMAF,
		fmt.Sprintf("%.0f%%", cfg.SizeLimit*100), profile.StartQuality())

	sched := scheduler.New(comp, analyzer, scheduler.Options{
		TargetScore: cfg.TargetVMAF,
		SizeLimit:   cfg.SizeLimit,
		Workers:     cfg.Workers,
		Log:         log,
	})
	outcomes := sched.Run(ctx, inputs)

	if err := writeResults(ctx, cfg, analyzer, outcomes); err != nil {
		log.Warn("Could not write results file: %v", err)
	}

	fmt.Println()
	log.Info("Summary: %s", scheduler.Summarize(outcomes))
	return outcomes, nil
}

// writeResults persists the scored outcomes in the same TSV layout the
// analyze command produces, so both feed the same downstream tooling.
func writeResults(ctx context.Context, cfg *config.Config, analyzer *vmaf.Analyzer, outcomes []scheduler.Outcome) error {
	var recs []results.Record
	for _, o := range outcomes {
		if !o.Scored {
			continue
		}
		kbps, _ := analyzer.Bitrate(ctx, o.Output)
		recs = append(recs, results.Record{
			FileSpec:    filepath.Base(o.Output),
			VMAF:        o.FinalScore,
			BitrateKbps: kbps,
		})
	}
	if len(recs) == 0 {
		return nil
	}
	return results.Write(cfg.ResultsPath, recs)
}
