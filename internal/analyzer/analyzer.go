package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/datacheck/internal/dataset"
	"github.com/nao1215/datacheck/internal/model"
)

// DefaultIQRMultiplier is the Tukey fence multiplier. 1.5 is the
// conventional value: the fences sit 1.5 interquartile ranges beyond the
// quartiles.
const DefaultIQRMultiplier = 1.5

// Check defines the interface for individual quality checks.
// Each check computes one quality facet from a read-only dataset.
//
// Design decision: We use an interface rather than concrete types because:
//  1. The coordinator treats all checks uniformly (run, time, isolate)
//  2. Tests inject failing and panicking checks to exercise isolation
//  3. New facets slot in without touching the coordinator
type Check interface {
	// Name returns the check's name for logging and failure reporting.
	Name() string

	// Run computes the check's report block from the dataset.
	// Degenerate inputs (no rows, no numeric columns, zero variance)
	// yield well-formed empty or partially-filled blocks, not errors.
	Run(ctx context.Context, ds *dataset.Dataset) (model.Block, error)
}

// Analyzer coordinates the quality checks over one dataset and
// assembles their blocks into a single report.
//
// Design decision: Checks share only read access to the immutable
// dataset and have no side effects on each other, so they run
// concurrently with no synchronization beyond the final join. The result
// slot of each check is written by exactly one goroutine. Published
// block order is fixed by the report, not by completion order, so
// concurrent and sequential execution produce identical reports.
type Analyzer struct {
	// checks is the ordered list of registered checks.
	checks []Check

	// jobs bounds the number of concurrently running checks.
	jobs int

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Options configures analyzer behavior.
type Options struct {
	// IQRMultiplier scales the Tukey fence used by the outlier check.
	IQRMultiplier float64

	// Jobs bounds concurrent check execution. Values below one mean
	// "one goroutine per check".
	Jobs int

	// Logger receives structured execution logs. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns sensible default analyzer options.
func DefaultOptions() Options {
	return Options{
		IQRMultiplier: DefaultIQRMultiplier,
	}
}

// Option mutates Options. This follows the functional options pattern.
type Option func(*Options)

// WithIQRMultiplier sets the Tukey fence multiplier for the outlier check.
func WithIQRMultiplier(m float64) Option {
	return func(o *Options) {
		o.IQRMultiplier = m
	}
}

// WithJobs bounds the number of concurrently running checks.
func WithJobs(jobs int) Option {
	return func(o *Options) {
		o.Jobs = jobs
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// New creates an Analyzer with all built-in checks registered in the
// report's published order.
func New(opts ...Option) *Analyzer {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	a := &Analyzer{
		jobs:   options.Jobs,
		logger: logger,
	}

	a.Register(NewDataTypeCheck())
	a.Register(NewBasicStatsCheck())
	a.Register(NewMissingValueCheck())
	a.Register(NewDuplicateCheck())
	a.Register(NewDistributionCheck())
	a.Register(NewOutlierCheck(options.IQRMultiplier))
	a.Register(NewCorrelationCheck())

	return a
}

// Register adds a check to the list.
func (a *Analyzer) Register(check Check) {
	a.checks = append(a.checks, check)
}

// CheckNames returns the names of all registered checks in order.
func (a *Analyzer) CheckNames() []string {
	names := make([]string, len(a.checks))
	for i, check := range a.checks {
		names[i] = check.Name()
	}
	return names
}

// Run executes every registered check exactly once against the dataset
// and assembles the report. A check failure (error or panic) is logged
// with the check name and cause and recorded as an absent block; it
// never aborts the remaining checks. Run always returns a well-formed
// report, even when every check fails.
func (a *Analyzer) Run(ctx context.Context, ds *dataset.Dataset) *model.Report {
	report := model.NewReport(ds.Source(), ds.Fingerprint(), ds.RowCount(), ds.ColumnCount())

	type outcome struct {
		block model.Block
		err   error
	}
	outcomes := make([]outcome, len(a.checks))

	g := new(errgroup.Group)
	if a.jobs > 0 {
		g.SetLimit(a.jobs)
	}

	for i, check := range a.checks {
		i, check := i, check
		g.Go(func() error {
			start := time.Now()
			block, err := runCheck(ctx, check, ds)
			outcomes[i] = outcome{block: block, err: err}

			if err != nil {
				a.logger.Warn("check failed",
					"check", check.Name(),
					"error", err,
				)
				return nil
			}
			a.logger.Debug("check completed",
				"check", check.Name(),
				"elapsed", time.Since(start),
			)
			return nil
		})
	}
	// Check goroutines record outcomes instead of returning errors, so
	// Wait only acts as the join barrier.
	_ = g.Wait()

	for i, check := range a.checks {
		if outcomes[i].err != nil {
			report.AddFailure(check.Name(), outcomes[i].err)
			continue
		}
		if err := report.Attach(outcomes[i].block); err != nil {
			report.AddFailure(check.Name(), err)
		}
	}

	report.Complete = true
	return report
}

// runCheck executes one check, converting panics into errors so that a
// misbehaving check degrades to a missing block instead of taking down
// the run.
func runCheck(ctx context.Context, check Check, ds *dataset.Dataset) (block model.Block, err error) {
	defer func() {
		if r := recover(); r != nil {
			block = nil
			err = fmt.Errorf("panic in check %s: %v", check.Name(), r)
		}
	}()
	return check.Run(ctx, ds)
}
