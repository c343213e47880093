package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/postlint/internal/logging"
	"github.com/yaklabco/postlint/pkg/gate"
)

// Runner orchestrates multi-posting processing using a gate.Pipeline.
type Runner struct {
	// Pipeline handles per-posting processing with safety guarantees.
	Pipeline *gate.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *gate.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers postings per opts and processes them concurrently. The
// result lists outcomes in deterministic path order regardless of worker
// scheduling. Per-posting failures are recorded on the outcome; only
// discovery failures and cancellation surface as errors.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	var (
		mu       sync.Mutex
		outcomes = make(map[string]FileOutcome, len(files))
	)

	logger := logging.FromContext(ctx)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for _, path := range files {
		group.Go(func() error {
			select {
			case <-groupCtx.Done():
				return groupCtx.Err()
			default:
			}

			logger.Debug("processing posting", logging.FieldPath, path)

			outcome := FileOutcome{Path: path}
			pr, err := r.Pipeline.ProcessFile(groupCtx, path, opts.Config)
			if err != nil {
				outcome.Error = err
			} else {
				outcome.Result = pr
			}

			mu.Lock()
			outcomes[path] = outcome
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	// Accumulate in discovery order for deterministic output.
	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	return result, nil
}
