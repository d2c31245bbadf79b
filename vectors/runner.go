package vectors

import (
	"context"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/interledger/cryptoconditions/log"
	"github.com/interledger/cryptoconditions/metrics"
)

// DefaultConcurrency bounds how many fixtures are checked at once.
const DefaultConcurrency = 4

// Result is the outcome for one fixture file.
type Result struct {
	File     string
	Duration time.Duration
	Err      error
}

// Metric names recorded by Runner.
const (
	MetricPassed   = "vectors/passed"
	MetricFailed   = "vectors/failed"
	MetricInflight = "vectors/inflight"
	MetricCheck    = "vectors/check"
)

// Runner checks fixture files concurrently.
type Runner struct {
	Concurrency int
	Logger      *log.Logger
	Metrics     *metrics.Registry
}

// NewRunner returns a Runner with the default concurrency and logger and a
// fresh metrics registry.
func NewRunner() *Runner {
	return &Runner{
		Concurrency: DefaultConcurrency,
		Logger:      log.Default().Module("vectors"),
		Metrics:     metrics.NewRegistry(),
	}
}

// Run checks every file and returns one result per file, in input order.
// Fixture failures are reported in the results; the returned error is only
// set when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, files []string) ([]Result, error) {
	if r.Logger == nil {
		r.Logger = log.Default().Module("vectors")
	}
	if r.Metrics == nil {
		r.Metrics = metrics.NewRegistry()
	}
	var (
		passed   = r.Metrics.Counter(MetricPassed)
		failed   = r.Metrics.Counter(MetricFailed)
		inflight = r.Metrics.Gauge(MetricInflight)
		timing   = r.Metrics.Histogram(MetricCheck)
	)

	results := make([]Result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	if r.Concurrency > 0 {
		g.SetLimit(r.Concurrency)
	}
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			inflight.Inc()
			timer := metrics.NewTimer(timing)
			err := checkFile(file)
			results[i] = Result{File: file, Duration: timer.Stop(), Err: err}
			inflight.Dec()
			if err != nil {
				failed.Inc()
				r.Logger.Warn("vector failed", "file", filepath.Base(file), "err", err)
			} else {
				passed.Inc()
				r.Logger.Debug("vector passed", "file", filepath.Base(file), "elapsed", results[i].Duration)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func checkFile(path string) error {
	v, err := Load(path)
	if err != nil {
		return err
	}
	return Check(v)
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var out []Result
	for _, res := range results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}
