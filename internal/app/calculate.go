package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/hassecalc/internal/algebra"
	"github.com/agbru/hassecalc/internal/cli"
	apperrors "github.com/agbru/hassecalc/internal/errors"
	"github.com/agbru/hassecalc/internal/logging"
	"github.com/agbru/hassecalc/internal/orchestration"
)

func (a *Application) outputConfig() cli.OutputConfig {
	return cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}
}

// runEval evaluates --expr (or --op with -a and -b).
func (a *Application) runEval(engine *algebra.Algebra, out io.Writer) int {
	start := time.Now()
	e, res, err := engine.EvalExpression(a.Config.Expr)
	result := orchestration.ExpressionResult{
		Job:      orchestration.Job{Line: 1, Text: a.Config.Expr},
		Expr:     e,
		Result:   res,
		Duration: time.Since(start),
		Err:      apperrors.NewValidationError("expr", err),
	}
	a.Metrics.Observe(result)
	if result.Err != nil {
		return apperrors.HandleError(result.Err, a.ErrWriter)
	}

	if err := cli.DisplayResultWithConfig(out, engine, result, a.outputConfig()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runDigit evaluates --expr with the single-digit tables.
func (a *Application) runDigit(engine *algebra.Algebra, out io.Writer) int {
	e, err := algebra.ParseExpression(a.Config.Expr)
	if err != nil {
		return apperrors.HandleError(apperrors.NewValidationError("expr", err), a.ErrWriter)
	}
	x, y, res, err := cli.EvalDigit(engine, e)
	if err != nil {
		return apperrors.HandleError(apperrors.NewValidationError("digit", err), a.ErrWriter)
	}
	if a.Config.Quiet {
		fmt.Fprintln(out, engine.SymbolText(res.Value, res.Defined))
		return apperrors.ExitSuccess
	}
	cli.DisplayDigitResult(out, engine, x, y, res)
	return apperrors.ExitSuccess
}

// runBatch evaluates every expression of --batch concurrently and prints the
// results in input order.
func (a *Application) runBatch(ctx context.Context, engine *algebra.Algebra, out io.Writer) int {
	jobs, err := a.readJobs()
	if err != nil {
		return apperrors.HandleError(err, a.ErrWriter)
	}

	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, engine, out)
		fmt.Fprintf(out, "\n--- Evaluating %d expressions ---\n", len(jobs))
	}

	// Choose progress reporter based on quiet mode
	var progressReporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	}

	a.Logger.Info("batch started",
		logging.String("source", a.Config.BatchFile),
		logging.Int("jobs", len(jobs)),
		logging.Int("workers", a.Config.Workers))
	done := a.Metrics.BatchStarted()
	start := time.Now()
	results, runErr := orchestration.ExecuteBatch(ctx, engine, jobs,
		orchestration.BatchOptions{Workers: a.Config.Workers, Observer: a.Metrics},
		progressReporter, progressOut)
	done()
	a.Logger.Info("batch finished",
		logging.Int("jobs", len(results)),
		logging.Float64("seconds", time.Since(start).Seconds()))

	presenter := cli.CLIResultPresenter{Algebra: engine, Quiet: a.Config.Quiet, Verbose: a.Config.Verbose}
	code := orchestration.AnalyzeBatchResults(results, presenter, out)

	if a.Config.OutputFile != "" {
		if err := cli.WriteResultsToFile(a.Config.OutputFile, engine, results); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving results: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		a.Logger.Info("results saved", logging.String("path", a.Config.OutputFile))
	}

	if runErr != nil {
		if errors.Is(runErr, context.DeadlineExceeded) {
			runErr = apperrors.TimeoutError{Operation: "batch", Limit: a.Config.Timeout}
		}
		a.Logger.Error("batch interrupted", runErr)
		return apperrors.HandleError(runErr, a.ErrWriter)
	}
	return code
}

// readJobs reads --batch, with "-" meaning a.In.
func (a *Application) readJobs() ([]orchestration.Job, error) {
	var src io.Reader = a.In
	if a.Config.BatchFile != "-" {
		f, err := os.Open(a.Config.BatchFile)
		if err != nil {
			return nil, apperrors.ConfigError{Message: "--batch", Cause: err}
		}
		defer f.Close()
		src = f
	}
	jobs, err := orchestration.ReadJobs(src)
	if err != nil {
		return nil, apperrors.WrapError(err, "read %s", a.Config.BatchFile)
	}
	return jobs, nil
}
