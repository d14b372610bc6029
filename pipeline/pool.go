package pipeline

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/fwojciec/doctext"
)

// Job is a single queued extraction request.
type Job struct {
	// ID identifies the job in results and logs. Assigned automatically
	// when empty.
	ID string

	Data     []byte
	MimeType string
	Filename string
	Options  doctext.ExtractionOptions
}

// JobResult pairs a job with its extraction outcome.
type JobResult struct {
	ID       string
	Filename string
	Result   *doctext.Result
	Report   *doctext.Report
	Err      error
}

// Pool runs extractions on a bounded set of workers. PDF and Word parsing
// are CPU-bound, so callers should route extraction through a Pool instead
// of running it inline on request-handling goroutines.
type Pool struct {
	extractor doctext.Extractor
	limiter   *rate.Limiter
	sem       chan struct{}
	workers   int
}

// NewPool creates a Pool with the given worker limit. A non-positive limit
// defaults to 4 workers. The rate limiter is optional; when set, each job
// waits for a token before extracting.
func NewPool(extractor doctext.Extractor, workers int, limiter *rate.Limiter) *Pool {
	if workers <= 0 {
		workers = 4
	}
	return &Pool{
		extractor: extractor,
		limiter:   limiter,
		sem:       make(chan struct{}, workers),
		workers:   workers,
	}
}

// Submit runs a single job on the pool, rejecting immediately with
// EUNAVAILABLE when every worker is busy. Callers needing queueing rather
// than rejection should use Process.
func (p *Pool) Submit(ctx context.Context, job Job) (*JobResult, error) {
	select {
	case p.sem <- struct{}{}:
		defer func() { <-p.sem }()
	default:
		return nil, doctext.Errorf(doctext.EUNAVAILABLE, "extraction pool saturated (%d workers busy)", p.workers)
	}

	return p.run(ctx, job), nil
}

// Process runs a batch of jobs, at most the pool's worker count at a time,
// and returns results in job order. Individual job failures are recorded
// in the corresponding JobResult rather than aborting the batch.
func (p *Pool) Process(ctx context.Context, jobs []Job) []JobResult {
	results := make([]JobResult, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			results[i] = *p.run(gctx, job)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// run executes one job, waiting on the rate limiter first when configured.
func (p *Pool) run(ctx context.Context, job Job) *JobResult {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}

	out := &JobResult{ID: job.ID, Filename: job.Filename}

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			out.Err = err
			return out
		}
	}

	out.Result, out.Report, out.Err = p.extractor.Extract(ctx, job.Data, job.MimeType, job.Filename, job.Options)
	return out
}
