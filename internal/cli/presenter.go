package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/agbru/hassecalc/internal/algebra"
	"github.com/agbru/hassecalc/internal/orchestration"
	"github.com/agbru/hassecalc/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner and progress bar.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for a running batch.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, total int, out io.Writer) {
	DisplayProgress(wg, progressChan, total, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for terminal
// output. Quiet prints one bare result per line; failures go to the summary.
type CLIResultPresenter struct {
	Algebra *algebra.Algebra
	Quiet   bool
	Verbose bool
}

// Verify interface compliance.
var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentBatch prints every result in input order as a table with line
// number, expression, result and status.
func (p CLIResultPresenter) PresentBatch(results []orchestration.ExpressionResult, out io.Writer) {
	if p.Quiet {
		for _, r := range results {
			if r.Err == nil {
				fmt.Fprintln(out, FormatQuietResult(p.Algebra, r.Result))
			}
		}
		return
	}
	if len(results) == 0 {
		return
	}

	headers := []string{"Line", "Expression", "Result"}
	if p.Verbose {
		headers = append(headers, "Duration")
	}
	rows := make([][]string, 0, len(results))
	failed := make(map[int]bool)
	for i, r := range results {
		expr, value := r.Job.Text, ""
		if r.Err != nil {
			value = r.Err.Error()
			failed[i] = true
		} else {
			expr = fmt.Sprintf("%s %s %s", p.Algebra.Format(r.Expr.Left), r.Expr.Op, p.Algebra.Format(r.Expr.Right))
			value = FormatValue(p.Algebra, r.Result)
		}
		row := []string{fmt.Sprint(r.Job.Line), expr, value}
		if p.Verbose {
			row = append(row, FormatExecutionDuration(r.Duration))
		}
		rows = append(rows, row)
	}

	theme := ui.GetCurrentTableTheme()
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return cell.Foreground(theme.Header).Bold(true)
			case failed[row]:
				return cell.Foreground(theme.Missing)
			case col == 0:
				return cell.Foreground(theme.Border)
			default:
				return cell.Foreground(theme.Cell)
			}
		})
	fmt.Fprintln(out, t.String())
}

// PresentSummary prints the batch counts. Failures are listed with the
// first error.
func (p CLIResultPresenter) PresentSummary(s orchestration.Summary, out io.Writer) {
	if p.Quiet {
		return
	}
	fmt.Fprintf(out, "\n--- Batch Summary ---\n")
	fmt.Fprintf(out, "Expressions: %s%d%s\n", ui.ColorCyan(), s.Total, ui.ColorReset())
	fmt.Fprintf(out, "Succeeded:   %s%d%s", ui.ColorGreen(), s.Succeeded, ui.ColorReset())
	if s.Sentinels > 0 {
		fmt.Fprintf(out, " (%s%d sentinel%s)", ui.ColorYellow(), s.Sentinels, ui.ColorReset())
	}
	fmt.Fprintln(out)
	if s.Failed > 0 {
		fmt.Fprintf(out, "Failed:      %s%d%s (first: %v)\n", ui.ColorRed(), s.Failed, ui.ColorReset(), s.FirstError)
	}
	fmt.Fprintf(out, "CPU time:    %s\n", FormatExecutionDuration(s.Elapsed))
}
