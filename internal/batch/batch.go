// Package batch formats many documents concurrently on a bounded worker pool.
package batch

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/panjf2000/ants/v2"

	"github.com/mcncl/jsonobj/internal/errors"
	"github.com/mcncl/jsonobj/internal/formatter"
	"github.com/mcncl/jsonobj/internal/models"
	"github.com/mcncl/jsonobj/internal/parser"
)

// DefaultWorkers is the pool size used when none is configured.
const DefaultWorkers = 4

// Job is one document to format. When Path is set the document is read from
// disk and Text is ignored.
type Job struct {
	Name string
	Path string
	Text string
}

// Result is the outcome of one Job. Results are returned in job order.
type Result struct {
	Name   string
	Output string
	Err    error
}

// RenderFunc turns a parsed document into output text.
type RenderFunc func(models.Container) string

// Runner owns the pool. Each task parses with its own Parser while all tasks
// share one render function, which must therefore be safe for concurrent use.
type Runner struct {
	pool   *ants.Pool
	render RenderFunc
	logger log.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for per-document failures.
func WithLogger(logger log.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithRender replaces the output renderer.
func WithRender(render RenderFunc) Option {
	return func(r *Runner) {
		r.render = render
	}
}

// NewRunner creates a runner with the given number of workers rendering with
// f unless WithRender overrides it.
func NewRunner(workers int, f *formatter.Formatter, opts ...Option) (*Runner, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if f == nil {
		f = formatter.NewFormatter(formatter.StylePretty)
	}

	r := &Runner{
		render: f.Format,
		logger: log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}

	pool, err := ants.NewPool(workers, ants.WithPanicHandler(func(p any) {
		level.Error(r.logger).Log("msg", "worker panicked", "panic", fmt.Sprint(p))
	}))
	if err != nil {
		return nil, errors.NewConfigError("failed to create worker pool", err)
	}
	r.pool = pool
	return r, nil
}

// Workers returns the pool capacity.
func (r *Runner) Workers() int {
	return r.pool.Cap()
}

// Run processes jobs and blocks until all of them finish or ctx is cancelled.
// Jobs not yet started when ctx is cancelled report ctx.Err().
func (r *Runner) Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	var wg sync.WaitGroup

	for i, job := range jobs {
		results[i].Name = job.Name
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}

		wg.Add(1)
		err := r.pool.Submit(func() {
			defer wg.Done()
			defer func() {
				if p := recover(); p != nil {
					level.Error(r.logger).Log("msg", "worker panicked", "name", job.Name, "panic", fmt.Sprint(p))
					results[i] = Result{
						Name: job.Name,
						Err:  errors.NewOutputError(fmt.Sprintf("formatting %s panicked: %v", job.Name, p), nil),
					}
				}
			}()
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return
			}
			results[i] = r.process(job)
		})
		if err != nil {
			wg.Done()
			results[i].Err = errors.NewOutputError("failed to schedule "+job.Name, err)
		}
	}

	wg.Wait()
	return results
}

// RunFiles formats each path.
func (r *Runner) RunFiles(ctx context.Context, paths []string) []Result {
	jobs := make([]Job, len(paths))
	for i, path := range paths {
		jobs[i] = Job{Name: path, Path: path}
	}
	return r.Run(ctx, jobs)
}

// Release stops the pool. The runner must not be used afterwards.
func (r *Runner) Release() {
	r.pool.Release()
}

func (r *Runner) process(job Job) Result {
	p := parser.New()

	var (
		doc models.Container
		err error
	)
	if job.Path != "" {
		doc, err = p.ParseFile(job.Path)
	} else {
		doc, err = p.Parse(job.Text)
	}
	if err != nil {
		level.Warn(r.logger).Log("msg", "failed to format document", "name", job.Name, "err", err)
		return Result{Name: job.Name, Err: err}
	}

	out := r.render(doc)
	level.Debug(r.logger).Log("msg", "formatted document", "name", job.Name, "bytes", len(out))
	return Result{Name: job.Name, Output: out}
}

// Failed counts results that carry an error.
func Failed(results []Result) int {
	n := 0
	for _, res := range results {
		if res.Err != nil {
			n++
		}
	}
	return n
}
