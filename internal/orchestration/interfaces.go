//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/hassecalc/internal/algebra"
)

// Evaluator evaluates a single "<lhs> <op> <rhs>" line.
// *algebra.Algebra satisfies it; its tables are immutable, so one engine may
// serve every worker.
type Evaluator interface {
	EvalExpression(line string) (algebra.Expression, algebra.Result, error)
}

// Job is one expression read from a batch source.
type Job struct {
	// Line is the 1-based line number in the source.
	Line int
	// Text is the expression with surrounding whitespace removed.
	Text string
}

// ExpressionResult encapsulates the outcome of evaluating one Job.
// It serves as the shared domain type between orchestration and presentation layers.
type ExpressionResult struct {
	Job Job
	// Expr is the parsed expression. It is zero if parsing failed.
	Expr algebra.Expression
	// Result is the computed value. It is zero if Err is set.
	Result algebra.Result
	// Duration is the time taken by the evaluation.
	Duration time.Duration
	// Err is a ValidationError for malformed input, or the context error
	// when the batch was canceled before the job ran.
	Err error
}

// ProgressUpdate reports how many jobs have completed.
type ProgressUpdate struct {
	Done  int
	Total int
}

// ProgressReporter defines the interface for displaying batch progress.
// Implementations handle the visual representation (spinners, progress bars)
// while the orchestration layer focuses on coordinating evaluations.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed, then
	// calls wg.Done.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving progress updates.
	//   - total: The number of jobs in the batch.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, total int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, total int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, total int, out io.Writer) {
	f(wg, progressChan, total, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter defines the interface for presenting batch results.
type ResultPresenter interface {
	// PresentBatch displays every result in input order.
	PresentBatch(results []ExpressionResult, out io.Writer)
	// PresentSummary displays the aggregate counts of a batch.
	PresentSummary(summary Summary, out io.Writer)
}

// Observer is notified after every evaluation. It is called concurrently
// from the worker goroutines.
type Observer interface {
	Observe(result ExpressionResult)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ExpressionResult)

// Observe calls f.
func (f ObserverFunc) Observe(r ExpressionResult) { f(r) }
