package orchestration

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/hassecalc/internal/algebra"
	apperrors "github.com/agbru/hassecalc/internal/errors"
)

const tracerName = "github.com/agbru/hassecalc/internal/orchestration"

// BatchOptions configures ExecuteBatch.
type BatchOptions struct {
	// Workers caps concurrent evaluations. Values below 1 mean 1.
	Workers int
	// Observer, if non-nil, is notified after every evaluation.
	Observer Observer
}

// ReadJobs reads one expression per line from r. Blank lines and lines
// starting with '#' are skipped but still counted for line numbers.
//
// Parameters:
//   - r: The batch source.
//
// Returns:
//   - []Job: The expressions in input order.
//   - error: An error if reading fails.
func ReadJobs(r io.Reader) ([]Job, error) {
	var jobs []Job
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		jobs = append(jobs, Job{Line: line, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}
	return jobs, nil
}

// ExecuteBatch evaluates jobs concurrently against eval.
//
// It manages the lifecycle of the worker goroutines, collects their results
// in input order, and coordinates the display of progress updates. A failing
// expression never stops the batch; it is reported in its result. When ctx is
// canceled, jobs that have not started are marked with the context error.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - eval: The evaluator shared by every worker.
//   - jobs: The expressions to evaluate.
//   - opts: Worker count and observer.
//   - reporter: The progress reporter (use NullProgressReporter for quiet mode).
//   - out: The io.Writer for progress output.
//
// Returns:
//   - []ExpressionResult: One result per job, in the order of jobs.
//   - error: The context error if the batch was interrupted.
func ExecuteBatch(ctx context.Context, eval Evaluator, jobs []Job, opts BatchOptions, reporter ProgressReporter, out io.Writer) ([]ExpressionResult, error) {
	workers := max(opts.Workers, 1)
	ctx, span := otel.Tracer(tracerName).Start(ctx, "orchestration.ExecuteBatch")
	defer span.End()
	span.SetAttributes(attribute.Int("jobs", len(jobs)), attribute.Int("workers", workers))

	results := make([]ExpressionResult, len(jobs))
	progressChan := make(chan ProgressUpdate, len(jobs)+1)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(jobs), out)

	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, job := range jobs {
		if gctx.Err() != nil {
			results[i] = ExpressionResult{Job: job, Err: gctx.Err()}
			continue
		}
		idx, job := i, job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[idx] = ExpressionResult{Job: job, Err: err}
				return nil
			}
			results[idx] = evaluate(gctx, eval, job)
			if opts.Observer != nil {
				opts.Observer.Observe(results[idx])
			}
			progressChan <- ProgressUpdate{Done: int(done.Add(1)), Total: len(jobs)}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "batch interrupted")
		return results, err
	}
	return results, nil
}

func evaluate(ctx context.Context, eval Evaluator, job Job) ExpressionResult {
	_, span := otel.Tracer(tracerName).Start(ctx, "orchestration.Evaluate")
	defer span.End()
	span.SetAttributes(attribute.Int("line", job.Line), attribute.String("expression", job.Text))

	start := time.Now()
	expr, res, err := eval.EvalExpression(job.Text)
	r := ExpressionResult{Job: job, Expr: expr, Result: res, Duration: time.Since(start)}
	if err != nil {
		r.Err = apperrors.NewValidationError(fmt.Sprintf("line %d", job.Line), err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "evaluation failed")
		return r
	}
	span.SetAttributes(attribute.String("op", res.Op.Name()), attribute.String("kind", res.Value.Kind().String()))
	return r
}

// Summary aggregates the outcome of a batch.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	// Sentinels counts successful results whose value is undefined, full
	// range or overflow.
	Sentinels int
	Elapsed   time.Duration
	// FirstError is the error of the earliest failing job.
	FirstError error
}

// Summarize computes the Summary of results.
func Summarize(results []ExpressionResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		s.Elapsed += r.Duration
		if r.Err != nil {
			s.Failed++
			if s.FirstError == nil {
				s.FirstError = r.Err
			}
			continue
		}
		s.Succeeded++
		if r.Result.Value.Kind() != algebra.KindValue {
			s.Sentinels++
		}
	}
	return s
}

// AnalyzeBatchResults presents results and the batch summary and returns the
// exit code: success when every expression evaluated, otherwise the code of
// the first failure.
//
// Parameters:
//   - results: The results of ExecuteBatch.
//   - presenter: The result presenter for display formatting.
//   - out: The io.Writer for the report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeBatchResults(results []ExpressionResult, presenter ResultPresenter, out io.Writer) int {
	presenter.PresentBatch(results, out)
	summary := Summarize(results)
	presenter.PresentSummary(summary, out)
	return apperrors.ExitCodeFor(summary.FirstError)
}
