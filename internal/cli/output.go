// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayTables], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatResult], [FormatQuietResult], [FormatExecutionDuration].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultsToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/agbru/hassecalc/internal/algebra"
	"github.com/agbru/hassecalc/internal/orchestration"
	"github.com/agbru/hassecalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save results to (empty for no file output).
	OutputFile string
	// Quiet prints bare results only.
	Quiet bool
	// Verbose adds timing and the raw digit strings.
	Verbose bool
}

// FormatValue renders a multi-digit result with its remainder, if any, in
// group notation: "cf remainder c".
func FormatValue(a *algebra.Algebra, r algebra.Result) string {
	s := a.FormatNumber(r.Value)
	if r.HasRemainder {
		s += " remainder " + a.FormatNumber(r.Remainder)
	}
	return s
}

// FormatResult renders "bab / d = cf remainder c".
func FormatResult(a *algebra.Algebra, e algebra.Expression, r algebra.Result) string {
	return fmt.Sprintf("%s %s %s = %s", a.Format(e.Left), e.Op, a.Format(e.Right), FormatValue(a, r))
}

// FormatQuietResult formats a result for quiet mode output: the value, then
// the remainder separated by a space for division.
func FormatQuietResult(a *algebra.Algebra, r algebra.Result) string {
	s := a.FormatNumber(r.Value)
	if r.HasRemainder {
		s += " " + a.FormatNumber(r.Remainder)
	}
	return s
}

// FormatDigitResult renders a single-digit result, "h + b = a (carry: b)".
// Absent table entries render as "?".
func FormatDigitResult(a *algebra.Algebra, x, y algebra.Symbol, r algebra.DigitResult) string {
	return fmt.Sprintf("%s %s %s = %s", a.SymbolText(x, true), r.Op, a.SymbolText(y, true), FormatDigitValue(a, r))
}

// FormatDigitValue renders the right-hand side of a single-digit result,
// "a (carry: b)".
func FormatDigitValue(a *algebra.Algebra, r algebra.DigitResult) string {
	s := a.SymbolText(r.Value, r.Defined)
	if r.HasCarry && r.Defined {
		s += fmt.Sprintf(" (carry: %s)", a.CarryText(r.Carry))
	}
	return s
}

// EvalDigit evaluates e with the single-digit tables. Both operands must be
// one symbol of the alphabet.
func EvalDigit(a *algebra.Algebra, e algebra.Expression) (x, y algebra.Symbol, r algebra.DigitResult, err error) {
	if x, err = a.ParseSymbol(e.Left); err != nil {
		return
	}
	if y, err = a.ParseSymbol(e.Right); err != nil {
		return
	}
	r, err = a.Digit(e.Op, x, y)
	return
}

// DisplayResult prints a colourised result line. In verbose mode it adds the
// raw digit strings and the evaluation time.
func DisplayResult(out io.Writer, a *algebra.Algebra, e algebra.Expression, r algebra.Result, d time.Duration, verbose bool) {
	color := ui.ColorGreen()
	if r.Value.IsSentinel() {
		color = ui.ColorYellow()
	}
	fmt.Fprintf(out, "%s %s %s = %s%s%s\n",
		a.Format(e.Left), e.Op, a.Format(e.Right), color, FormatValue(a, r), ui.ColorReset())
	if verbose {
		fmt.Fprintf(out, "  %sRaw:%s %s", ui.ColorGrey(), ui.ColorReset(), r.Value)
		if r.HasRemainder {
			fmt.Fprintf(out, " remainder %s", r.Remainder)
		}
		fmt.Fprintf(out, "\n  %sKind:%s %s\n", ui.ColorGrey(), ui.ColorReset(), r.Value.Kind())
		fmt.Fprintf(out, "  %sEvaluation time:%s %s\n", ui.ColorGrey(), ui.ColorReset(), FormatExecutionDuration(d))
	}
}

// DisplayDigitResult prints a single-digit result line.
func DisplayDigitResult(out io.Writer, a *algebra.Algebra, x, y algebra.Symbol, r algebra.DigitResult) {
	color := ui.ColorGreen()
	if !r.Defined {
		color = ui.ColorYellow()
	}
	fmt.Fprintf(out, "Result: %s%s%s\n", color, FormatDigitResult(a, x, y, r), ui.ColorReset())
}

// DisplayResultWithConfig prints one evaluated expression according to
// config and saves it when an output file is set.
//
// Parameters:
//   - out: The output writer.
//   - a: The engine the expression was evaluated with.
//   - res: The evaluated expression.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, a *algebra.Algebra, res orchestration.ExpressionResult, config OutputConfig) error {
	if config.Quiet {
		fmt.Fprintln(out, FormatQuietResult(a, res.Result))
	} else {
		DisplayResult(out, a, res.Expr, res.Result, res.Duration, config.Verbose)
	}

	if config.OutputFile != "" {
		if err := WriteResultsToFile(config.OutputFile, a, []orchestration.ExpressionResult{res}); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}
	return nil
}

// WriteResultsToFile writes evaluated expressions to path, one per line,
// after a header describing the algebra. Failed jobs are written as
// "# line N: error" comments.
//
// Parameters:
//   - path: The destination file; parent directories are created.
//   - a: The engine the results were computed with.
//   - results: The results in input order.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultsToFile(path string, a *algebra.Algebra, results []orchestration.ExpressionResult) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# Hasse Algebra Results\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Size: %d\n", a.Size())
	fmt.Fprintf(file, "# Rule: %s\n", a.Rule())
	fmt.Fprintf(file, "# Cycle length: %d\n", a.CycleLength())
	fmt.Fprintf(file, "# Bounded: %s\n", strconv.FormatBool(a.IsBounded()))
	fmt.Fprintf(file, "\n")

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(file, "# line %d: %v\n", r.Job.Line, r.Err)
			continue
		}
		fmt.Fprintln(file, FormatResult(a, r.Expr, r.Result))
	}
	return file.Close()
}
