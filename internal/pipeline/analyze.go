package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cliang-dev/vpress/internal/config"
	"github.com/cliang-dev/vpress/internal/logging"
	"github.com/cliang-dev/vpress/internal/naming"
	"github.com/cliang-dev/vpress/internal/results"
	"github.com/cliang-dev/vpress/internal/vmaf"
)

// Analyze scores every compressed file against its reference and writes
// the results table. Each compressed directory is scanned independently;
// files with no resolvable reference are skipped with a warning.
func Analyze(ctx context.Context, cfg *config.Config, log *logging.Logger) error {
	analyzer := vmaf.New(cfg.FFmpegBin, cfg.FFprobeBin, 0, cfg.NegModel)
	if err := analyzer.CheckSupport(ctx); err != nil {
		return err
	}

	var pairs []vmaf.Pair
	for _, dir := range cfg.CompDirs {
		files, err := Discover(dir)
		if err != nil {
			log.Error("Cannot scan %s: %v", dir, err)
			continue
		}
		for _, comp := range files {
			ref, ok := naming.FindReference(cfg.RefDir, comp)
			if !ok {
				log.Warn("No reference for %s, skipping", filepath.Base(comp))
				continue
			}
			pairs = append(pairs, vmaf.Pair{Ref: ref, Comp: comp})
		}
	}
	if len(pairs) == 0 {
		return fmt.Errorf("nothing to analyze: no compressed files matched a reference in %s", cfg.RefDir)
	}

	log.Info("Analyzing %d files against %s (%d parallel)", len(pairs), cfg.RefDir, cfg.Jobs)
	recs := analyzer.ProcessPairs(ctx, pairs, cfg.Jobs, log)
	if len(recs) == 0 {
		return fmt.Errorf("all %d comparisons failed", len(pairs))
	}

	if err := results.Write(cfg.ResultsPath, recs); err != nil {
		return err
	}
	log.Success("Wrote %d results to %s", len(recs), cfg.ResultsPath)
	return nil
}
