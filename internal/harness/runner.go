package harness

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/mahdiidarabi/keyderive/internal/vectors"
)

// Outcome classifies a single case.
type Outcome string

// Case outcomes.  Everything other than OutcomePassed counts as a failure.
const (
	OutcomePassed         Outcome = "passed"
	OutcomeMismatch       Outcome = "mismatch"
	OutcomeMalformed      Outcome = "malformed_output"
	OutcomeTimeout        Outcome = "timeout"
	OutcomeCrashed        Outcome = "crashed"
	OutcomeReferenceError Outcome = "reference_error"
	OutcomeSkipped        Outcome = "skipped"
	OutcomeBuildFailed    Outcome = "build_failed"
)

// RunConfig configures a Runner.
type RunConfig struct {
	// Timeout bounds a single candidate invocation (0 = no timeout)
	Timeout time.Duration

	// NumWorkers controls parallelization (0 = auto-detect)
	NumWorkers int
}

// DefaultRunConfig returns a sensible default configuration.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Timeout:    10 * time.Second,
		NumWorkers: 0, // Auto-detect
	}
}

// CaseResult is the outcome of running one vector.  It carries the mismatch
// flags but never the expected values.
type CaseResult struct {
	Index     int           `json:"index" yaml:"index"`
	Name      string        `json:"name" yaml:"name"`
	KeyPrefix string        `json:"key_prefix" yaml:"key_prefix"`
	Outcome   Outcome       `json:"outcome" yaml:"outcome"`
	Mismatch  Mismatch      `json:"mismatch,omitempty" yaml:"mismatch,omitempty"`
	Detail    string        `json:"detail,omitempty" yaml:"detail,omitempty"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}

// Passed reports whether the case passed.
func (r CaseResult) Passed() bool {
	return r.Outcome == OutcomePassed
}

// Runner executes candidates over vectors with a bounded worker pool.
type Runner struct {
	config RunConfig
	logger *zap.Logger
}

// NewRunner creates a runner.  A nil logger disables logging.
func NewRunner(config RunConfig, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{config: config, logger: logger}
}

// Run executes c once per vector and collects the results in vector order.
// Cases that never start because ctx ended are reported as skipped.  A
// candidate implementing Builder is built once first; if that fails every
// case is reported as build_failed.
func (r *Runner) Run(ctx context.Context, c Candidate, vs []vectors.Vector) *Report {
	numWorkers := r.config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(vs) {
		numWorkers = len(vs)
	}

	started := time.Now()
	results := make([]CaseResult, len(vs))
	for i, v := range vs {
		results[i] = CaseResult{
			Index:     i,
			Name:      v.Name,
			KeyPrefix: keyPrefix(&vs[i]),
			Outcome:   OutcomeSkipped,
		}
	}

	r.logger.Info("starting run",
		zap.String("candidate", c.Name()),
		zap.Int("cases", len(vs)),
		zap.Int("workers", numWorkers),
		zap.Duration("timeout", r.config.Timeout))

	if b, ok := c.(Builder); ok {
		buildStart := time.Now()
		if err := b.Build(ctx); err != nil {
			if ctx.Err() == nil {
				for i := range results {
					results[i].Outcome = OutcomeBuildFailed
					results[i].Detail = err.Error()
				}
			}
			r.logger.Warn("build failed",
				zap.String("candidate", c.Name()),
				zap.Error(err))
			return newReport(c.Name(), results, time.Since(started))
		}
		r.logger.Debug("build finished",
			zap.String("candidate", c.Name()),
			zap.Duration("elapsed", time.Since(buildStart)))
	}

	var completed int64
	workChan := make(chan int, len(vs))

	// Start workers
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case idx, ok := <-workChan:
					if !ok {
						return
					}
					results[idx] = r.runCase(ctx, c, idx, &vs[idx])
					n := atomic.AddInt64(&completed, 1)
					r.logger.Debug("case finished",
						zap.Int("worker", workerID),
						zap.Int("case", idx),
						zap.String("outcome", string(results[idx].Outcome)),
						zap.Int64("completed", n))
				}
			}
		}(w)
	}

	// Generate work
	for i := range vs {
		workChan <- i
	}
	close(workChan)
	wg.Wait()

	report := newReport(c.Name(), results, time.Since(started))
	r.logger.Info("run finished",
		zap.String("candidate", c.Name()),
		zap.Int("passed", report.Passed),
		zap.Int("total", report.Total))
	return report
}

// runCase runs one vector.  The expected output is computed in-process.
func (r *Runner) runCase(ctx context.Context, c Candidate, idx int, v *vectors.Vector) CaseResult {
	res := CaseResult{
		Index:     idx,
		Name:      v.Name,
		KeyPrefix: keyPrefix(v),
	}

	want, err := ReferenceOutput(&v.PrivateKey)
	if err != nil {
		res.Outcome = OutcomeReferenceError
		res.Detail = err.Error()
		return res
	}
	if v.Expected != nil && !expectationHolds(v.Expected, want) {
		res.Outcome = OutcomeReferenceError
		res.Detail = "reference output disagrees with the vector's recorded expectation"
		return res
	}

	caseCtx := ctx
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		caseCtx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := c.Run(caseCtx, []byte(v.PrivateKey.String()))
	res.Duration = time.Since(start)

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		res.Outcome = OutcomeTimeout
		res.Detail = "test timed out"
		return res
	case errors.Is(err, context.Canceled):
		res.Outcome = OutcomeSkipped
		res.Detail = "run cancelled"
		return res
	case err != nil:
		res.Outcome = OutcomeCrashed
		res.Detail = err.Error()
		return res
	}

	got, err := ValidateShape(out)
	if err != nil {
		res.Outcome = OutcomeMalformed
		res.Detail = err.Error()
		return res
	}

	res.Mismatch = Compare(got, want)
	if res.Mismatch.Any() {
		res.Outcome = OutcomeMismatch
		res.Detail = "incorrect cryptographic outputs"
		return res
	}

	res.Outcome = OutcomePassed
	return res
}

func expectationHolds(exp *vectors.Expectation, want *Output) bool {
	if exp.PubKey != "" && exp.PubKey != want.PubKey {
		return false
	}
	if exp.WIF != "" && exp.WIF != want.WIF {
		return false
	}
	if exp.Address != "" && exp.Address != want.Address {
		return false
	}
	return true
}

// keyPrefix returns the first 16 hex characters of the vector key.
func keyPrefix(v *vectors.Vector) string {
	return v.PrivateKey.String()[:16]
}
