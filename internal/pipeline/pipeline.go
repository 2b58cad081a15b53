// Package pipeline runs analysis stages as a task graph. Every stage
// declares the artifacts it needs and the artifacts it makes; the runner
// orders stages by those declarations, runs independent stages
// concurrently, applies a per-stage timeout, and keeps going past a
// failed stage so unrelated stages still run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Stage is one unit of work with declared input and output artifacts.
type Stage struct {
	Name  string
	Desc  string
	Needs []string
	Makes []string
	Run   func(ctx context.Context) error
}

// Status is the outcome of one stage.
type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusTimeout Status = "timeout"
	StatusSkipped Status = "skipped"
)

// Result records the outcome of one stage run.
type Result struct {
	Stage    string
	Status   Status
	Duration time.Duration
	Err      error
}

// DefaultStageTimeout bounds a single stage's wall-clock time.
const DefaultStageTimeout = 5 * time.Minute

// Runner executes a set of stages.
type Runner struct {
	stages  []Stage
	timeout time.Duration
	logger  *zap.Logger
}

// NewRunner creates a runner over stages with the given per-stage
// timeout. A non-positive timeout falls back to DefaultStageTimeout.
func NewRunner(stages []Stage, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = DefaultStageTimeout
	}
	return &Runner{stages: stages, timeout: timeout, logger: zap.NewNop()}
}

// SetLogger sets the logger for stage progress and failures.
func (r *Runner) SetLogger(l *zap.Logger) { r.logger = l }

// Run executes all stages. Stages whose declared inputs are produced by
// other stages wait for their producers; stages with no unmet producer
// run concurrently in the same wave. Results come back in stage order.
func (r *Runner) Run(ctx context.Context) []Result {
	producers := make(map[string]string)
	for _, s := range r.stages {
		for _, out := range s.Makes {
			producers[out] = s.Name
		}
	}

	results := make(map[string]*Result, len(r.stages))
	finished := make(map[string]bool, len(r.stages))
	remaining := append([]Stage(nil), r.stages...)

	for len(remaining) > 0 {
		var wave, blocked []Stage
		for _, s := range remaining {
			ready := true
			for _, need := range s.Needs {
				if p, ok := producers[need]; ok && p != s.Name && !finished[p] {
					ready = false
					break
				}
			}
			if ready {
				wave = append(wave, s)
			} else {
				blocked = append(blocked, s)
			}
		}

		if len(wave) == 0 {
			// Dependency cycle in the declarations; nothing left can run.
			for _, s := range blocked {
				results[s.Name] = &Result{
					Stage:  s.Name,
					Status: StatusFailed,
					Err:    &StageError{Stage: s.Name, Err: fmt.Errorf("dependency cycle")},
				}
			}
			break
		}

		waveResults := make([]Result, len(wave))
		var g errgroup.Group
		for i, s := range wave {
			i, s := i, s
			g.Go(func() error {
				waveResults[i] = r.runStage(ctx, s)
				return nil
			})
		}
		g.Wait()

		for i := range waveResults {
			res := waveResults[i]
			results[res.Stage] = &res
			finished[res.Stage] = true
		}
		remaining = blocked
	}

	ordered := make([]Result, 0, len(r.stages))
	for _, s := range r.stages {
		if res, ok := results[s.Name]; ok {
			ordered = append(ordered, *res)
		}
	}
	return ordered
}

// runStage checks declared inputs, runs the stage body under the timeout,
// and verifies declared outputs afterwards.
func (r *Runner) runStage(ctx context.Context, s Stage) Result {
	log := r.logger.With(zap.String("stage", s.Name))

	for _, need := range s.Needs {
		if _, err := os.Stat(need); err != nil {
			err := &MissingDependencyError{Stage: s.Name, Path: need}
			log.Warn("skipping stage", zap.Error(err))
			return Result{Stage: s.Name, Status: StatusSkipped, Err: err}
		}
	}

	log.Info("running stage", zap.String("desc", s.Desc))
	start := time.Now()

	stageCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(stageCtx) }()

	var err error
	select {
	case err = <-errCh:
	case <-stageCtx.Done():
		err = stageCtx.Err()
	}
	// A stage body that returns its context error counts as a timeout too.
	if errors.Is(err, context.DeadlineExceeded) {
		err = &StageTimeoutError{Stage: s.Name, Timeout: r.timeout}
	}
	elapsed := time.Since(start)

	if err != nil {
		status := StatusFailed
		if _, ok := err.(*StageTimeoutError); ok {
			status = StatusTimeout
		} else {
			err = &StageError{Stage: s.Name, Err: err}
		}
		log.Warn("stage failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		return Result{Stage: s.Name, Status: status, Duration: elapsed, Err: err}
	}

	for _, out := range s.Makes {
		if _, statErr := os.Stat(out); statErr != nil {
			err := &StageError{Stage: s.Name, Err: fmt.Errorf("declared output %s was not produced", out)}
			log.Warn("stage failed", zap.Error(err))
			return Result{Stage: s.Name, Status: StatusFailed, Duration: elapsed, Err: err}
		}
	}

	log.Info("stage complete", zap.Duration("elapsed", elapsed))
	return Result{Stage: s.Name, Status: StatusOK, Duration: elapsed}
}

// AllOK reports whether every stage succeeded.
func AllOK(results []Result) bool {
	for _, r := range results {
		if r.Status != StatusOK {
			return false
		}
	}
	return true
}

// WriteSummary writes a human-readable run summary.
func WriteSummary(w io.Writer, results []Result) {
	ok := 0
	for _, r := range results {
		if r.Status == StatusOK {
			ok++
		}
	}
	fmt.Fprintf(w, "\nPipeline Summary:\n")
	fmt.Fprintf(w, "  Stages run:  %d\n", len(results))
	fmt.Fprintf(w, "  Succeeded:   %d\n", ok)
	fmt.Fprintf(w, "  Failed:      %d\n", len(results)-ok)
	for _, r := range results {
		line := fmt.Sprintf("  %-20s %-8s %s", r.Stage, r.Status, r.Duration.Round(time.Millisecond))
		if r.Err != nil {
			line += "  " + r.Err.Error()
		}
		fmt.Fprintln(w, line)
	}
}

// Select returns the subset of stages with the given names, in the
// original order, or an error naming the first unknown stage.
func Select(stages []Stage, names []string) ([]Stage, error) {
	if len(names) == 0 {
		return stages, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []Stage
	for _, s := range stages {
		if want[s.Name] {
			out = append(out, s)
			delete(want, s.Name)
		}
	}
	for n := range want {
		return nil, fmt.Errorf("unknown stage %q", n)
	}
	return out, nil
}
