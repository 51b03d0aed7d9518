package vmaf

import (
	"context"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/cliang-dev/vpress/internal/results"
)

// Logger is the minimal logging interface the batch needs.
type Logger interface {
	Info(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// Pair is one reference/compressed comparison in a batch.
type Pair struct {
	Ref  string
	Comp string
}

// ProcessPairs scores every pair with at most jobs comparisons in flight
// and returns one record per successfully scored file, sorted by FileSpec
// for deterministic output. Individual failures are logged and skipped;
// only context cancellation aborts the batch.
func (a *Analyzer) ProcessPairs(ctx context.Context, pairs []Pair, jobs int, log Logger) []results.Record {
	if jobs < 1 {
		jobs = 1
	}

	var (
		mu   sync.Mutex
		recs []results.Record
		done int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for _, p := range pairs {
		p := p
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			score, err := a.Score(gctx, p.Ref, p.Comp)
			if err != nil {
				log.Error("%v", err)
				return nil
			}
			kbps, err := a.Bitrate(gctx, p.Comp)
			if err != nil {
				log.Warn("bitrate unavailable for %s: %v", filepath.Base(p.Comp), err)
			}

			mu.Lock()
			recs = append(recs, results.Record{
				FileSpec:    filepath.Base(p.Comp),
				VMAF:        score,
				BitrateKbps: kbps,
			})
			done++
			log.Info("[%d/%d] %s: VMAF=%.2f", done, len(pairs), filepath.Base(p.Comp), score)
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()

	sort.Slice(recs, func(i, j int) bool { return recs[i].FileSpec < recs[j].FileSpec })
	return recs
}
