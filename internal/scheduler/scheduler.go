// Package scheduler drives the adaptive quality search: one strictly
// serial compression lane feeding a pool of parallel assessment lanes,
// connected by buffered channels that carry task ownership back and
// forth until every task reaches a terminal status.
package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/cliang-dev/vpress/internal/display"
	"github.com/cliang-dev/vpress/internal/encoder"
	"github.com/cliang-dev/vpress/internal/fsutil"
	"github.com/cliang-dev/vpress/internal/naming"
)

// Encoder is the compression lane's view of a hardware backend.
// Satisfied by *compress.Compressor.
type Encoder interface {
	Profile() encoder.Profile
	ValidQuality(q int) bool
	Encode(ctx context.Context, source, dest string, quality int) (int64, error)
}

// Scorer evaluates a candidate against its original.
// Satisfied by *vmaf.Analyzer.
type Scorer interface {
	Score(ctx context.Context, ref, dist string) (float64, error)
}

// Logger is the subset of logging the scheduler emits.
type Logger interface {
	Info(format string, args ...interface{})
	Success(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	Score(format string, args ...interface{})
	Debug(format string, args ...interface{})
}

// Input names one file to search: the original and where the accepted
// output must land.
type Input struct {
	Source string
	Output string
}

// Options tune one run.
type Options struct {
	// TargetScore is the minimum acceptable perceptual score.
	TargetScore float64
	// SizeLimit is the maximum output/original size ratio.
	SizeLimit float64
	// Workers is the assessment pool size. Values below 1 become 1.
	Workers int
	Log     Logger
}

// Scheduler owns the two lanes and every task's lifecycle for one run.
type Scheduler struct {
	enc    Encoder
	scorer Scorer
	opts   Options
	runID  string

	encodeQ chan *task
	scoreQ  chan *task
	pending sync.WaitGroup // one count per non-terminal task
}

func New(enc Encoder, scorer Scorer, opts Options) *Scheduler {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Log == nil {
		opts.Log = nopLogger{}
	}
	return &Scheduler{
		enc:    enc,
		scorer: scorer,
		opts:   opts,
		runID:  uuid.New().String()[:8],
	}
}

// Run searches every input and blocks until each task is terminal or ctx
// is cancelled. Outcomes are returned in input order. Per-file failures
// never abort the batch.
func (s *Scheduler) Run(ctx context.Context, inputs []Input) []Outcome {
	profile := s.enc.Profile()

	tasks := make([]*task, 0, len(inputs))
	var live []*task
	for _, in := range inputs {
		t := &task{source: in.Source, output: in.Output}
		tasks = append(tasks, t)

		info, err := os.Stat(in.Source)
		if err != nil || info.Size() == 0 {
			if err == nil {
				err = fmt.Errorf("%s: empty file", in.Source)
			}
			t.status = StatusFailed
			t.err = err
			s.opts.Log.Error("%s: %v", filepath.Base(in.Source), err)
			continue
		}
		t.sourceSize = info.Size()
		t.quality = profile.StartQuality()
		if !profile.Contains(t.quality) {
			t.quality = profile.Default
		}
		t.status = StatusPending
		live = append(live, t)
	}

	// Each task has at most one message in flight, so full-capacity
	// buffers guarantee that no lane ever blocks on a send. That is
	// what lets an assessment worker resubmit to the compression lane
	// while the compression worker is itself mid-send.
	s.encodeQ = make(chan *task, len(live))
	s.scoreQ = make(chan *task, len(live))
	s.pending.Add(len(live))

	rctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var workers sync.WaitGroup
	workers.Add(1 + s.opts.Workers)
	go func() {
		defer workers.Done()
		s.encodeLoop(rctx)
	}()
	for i := 0; i < s.opts.Workers; i++ {
		go func() {
			defer workers.Done()
			s.scoreLoop(rctx)
		}()
	}

	for _, t := range live {
		s.encodeQ <- t
	}

	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.opts.Log.Warn("run cancelled, waiting for in-flight work")
	}
	cancel()
	workers.Wait()

	// Workers have exited; tasks still sitting in a queue were never
	// picked up and are safe to finalize here.
	for _, t := range live {
		if !t.status.Terminal() {
			s.finalizeCancelled(t)
		}
	}

	outcomes := make([]Outcome, len(tasks))
	for i, t := range tasks {
		outcomes[i] = Outcome{
			Source:       t.source,
			Output:       t.output,
			Status:       t.status,
			FinalQuality: t.finalQuality,
			FinalScore:   t.finalScore,
			Scored:       t.scored,
			Attempts:     t.attempts,
			Err:          t.err,
		}
	}
	return outcomes
}

// encodeLoop is the single compression lane. Encodes never overlap
// because only this goroutine calls Encode.
func (s *Scheduler) encodeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-s.encodeQ:
			if !ok {
				return
			}
			s.encode(ctx, t)
		}
	}
}

func (s *Scheduler) encode(ctx context.Context, t *task) {
	profile := s.enc.Profile()

	// Some quality scales have dead values that produce identical
	// output to a neighbour; skip over them in the search direction.
	for profile.Contains(t.quality) && !s.enc.ValidQuality(t.quality) {
		s.opts.Log.Debug("%s: skipping duplicate quality %d", filepath.Base(t.source), t.quality)
		t.quality += profile.Step
	}
	if !profile.Contains(t.quality) {
		s.finalizeExhausted(t)
		return
	}

	t.status = StatusEncoding
	s.opts.Log.Info("%s: encoding at quality %d", filepath.Base(t.source), t.quality)

	cand := naming.CandidatePath(t.output, t.quality, s.runID)
	size, err := s.enc.Encode(ctx, t.source, cand, t.quality)
	if err != nil {
		if ctx.Err() != nil {
			s.finalizeCancelled(t)
			return
		}
		t.record(t.quality, 0, 0, false)
		t.err = fmt.Errorf("%w: %s: %v", ErrEncodeFailed, filepath.Base(t.source), err)
		t.status = StatusFailed
		s.opts.Log.Error("%v", t.err)
		s.finalize(t)
		return
	}

	t.status = StatusSizeCheck
	ratio := float64(size) / float64(t.sourceSize)
	if ratio > s.opts.SizeLimit {
		os.Remove(cand)
		t.record(t.quality, ratio, 0, false)
		s.opts.Log.Warn("%s: quality %d output is %s of original (limit %s)",
			filepath.Base(t.source), t.quality,
			display.FormatRatio(ratio), display.FormatRatio(s.opts.SizeLimit))
		s.finalizeOversize(t)
		return
	}

	t.candidate = cand
	t.sizeRatio = ratio
	t.status = StatusScoring
	s.scoreQ <- t
}

// scoreLoop is one assessment lane; Options.Workers of these run
// concurrently.
func (s *Scheduler) scoreLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-s.scoreQ:
			if !ok {
				return
			}
			s.assess(ctx, t)
		}
	}
}

func (s *Scheduler) assess(ctx context.Context, t *task) {
	profile := s.enc.Profile()

	score, err := s.scorer.Score(ctx, t.source, t.candidate)
	if err != nil {
		if ctx.Err() != nil {
			s.finalizeCancelled(t)
			return
		}
		t.record(t.quality, t.sizeRatio, 0, false)
		os.Remove(t.candidate)
		t.candidate = ""
		if t.best != nil {
			s.opts.Log.Warn("%s: scoring failed at quality %d, falling back to best effort: %v",
				filepath.Base(t.source), t.quality, err)
			s.promoteBest(t)
			s.finalize(t)
			return
		}
		t.err = fmt.Errorf("%w: %s: %v", ErrScoreFailed, filepath.Base(t.source), err)
		t.status = StatusFailed
		s.opts.Log.Error("%v", t.err)
		s.finalize(t)
		return
	}

	t.record(t.quality, t.sizeRatio, score, true)
	s.opts.Log.Score("%s: quality %d scored %.2f (size %s)",
		filepath.Base(t.source), t.quality, score, display.FormatRatio(t.sizeRatio))

	if score >= s.opts.TargetScore {
		if err := fsutil.MoveFile(t.candidate, t.output); err != nil {
			os.Remove(t.candidate)
			t.candidate = ""
			if t.best != nil {
				os.Remove(t.best.path)
			}
			t.err = fmt.Errorf("%s: accepting candidate: %w", filepath.Base(t.source), err)
			t.status = StatusFailed
			s.opts.Log.Error("%v", t.err)
			s.finalize(t)
			return
		}
		t.candidate = ""
		if t.best != nil {
			os.Remove(t.best.path)
		}
		t.finalQuality = t.quality
		t.finalScore = score
		t.scored = true
		t.status = StatusTargetMet
		s.opts.Log.Success("%s: target met at quality %d (score %.2f)",
			filepath.Base(t.source), t.quality, score)
		s.finalize(t)
		return
	}

	// Below target but within the size bound: this candidate is the new
	// best effort. The walk only moves toward higher fidelity, so it
	// strictly improves on any previous one.
	bestPath := naming.BestEffortPath(t.output)
	if err := fsutil.MoveFile(t.candidate, bestPath); err != nil {
		s.opts.Log.Warn("%s: keeping best effort: %v", filepath.Base(t.source), err)
		os.Remove(t.candidate)
	} else {
		t.best = &bestEffort{quality: t.quality, score: score, path: bestPath}
	}
	t.candidate = ""

	next := t.quality + profile.Step
	if !profile.Contains(next) {
		s.finalizeExhausted(t)
		return
	}
	t.quality = next
	t.status = StatusPending
	s.encodeQ <- t
}

// finalizeExhausted ends a task whose quality walk ran out of range.
func (s *Scheduler) finalizeExhausted(t *task) {
	if t.best != nil {
		s.opts.Log.Info("%s: quality range exhausted, using best effort", filepath.Base(t.source))
		s.promoteBest(t)
	} else {
		s.retainOriginal(t)
	}
	s.finalize(t)
}

// finalizeOversize ends a task whose latest candidate blew the size
// budget: the original is retained verbatim. Any parked best-effort
// candidate is discarded; a budget violation reverts the file, it does
// not fall back.
func (s *Scheduler) finalizeOversize(t *task) {
	if t.best != nil {
		os.Remove(t.best.path)
		t.best = nil
	}
	s.retainOriginal(t)
	s.finalize(t)
}

func (s *Scheduler) finalizeCancelled(t *task) {
	if t.candidate != "" {
		os.Remove(t.candidate)
		t.candidate = ""
	}
	if t.best != nil {
		s.promoteBest(t)
	} else {
		t.err = fmt.Errorf("%w: %s", ErrCancelled, filepath.Base(t.source))
		t.status = StatusCancelled
	}
	s.finalize(t)
}

// promoteBest accepts the best-effort candidate as the final output.
func (s *Scheduler) promoteBest(t *task) {
	if err := fsutil.MoveFile(t.best.path, t.output); err != nil {
		t.err = fmt.Errorf("%s: promoting best effort: %w", filepath.Base(t.source), err)
		t.status = StatusFailed
		s.opts.Log.Error("%v", t.err)
		return
	}
	t.finalQuality = t.best.quality
	t.finalScore = t.best.score
	t.scored = true
	t.status = StatusBestEffort
	s.opts.Log.Success("%s: best effort at quality %d (score %.2f)",
		filepath.Base(t.source), t.best.quality, t.best.score)
}

// retainOriginal copies the source verbatim as the output.
func (s *Scheduler) retainOriginal(t *task) {
	if err := fsutil.CopyFile(t.source, t.output); err != nil {
		t.err = fmt.Errorf("%s: retaining original: %w", filepath.Base(t.source), err)
		t.status = StatusFailed
		s.opts.Log.Error("%v", t.err)
		return
	}
	t.status = StatusAbortedSize
	s.opts.Log.Warn("%s: no candidate fit the size budget, original retained", filepath.Base(t.source))
}

func (s *Scheduler) finalize(t *task) {
	s.pending.Done()
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})    {}
func (nopLogger) Success(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})    {}
func (nopLogger) Error(string, ...interface{})   {}
func (nopLogger) Score(string, ...interface{})   {}
func (nopLogger) Debug(string, ...interface{})   {}
