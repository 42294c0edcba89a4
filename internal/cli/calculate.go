package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/hassecalc/internal/algebra"
	"github.com/agbru/hassecalc/internal/config"
	"github.com/agbru/hassecalc/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration: the
// algebra, the run mode and the environment.
//
// Parameters:
//   - cfg: The application configuration.
//   - a: The engine built from cfg.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, a *algebra.Algebra, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	PrintAlgebraSummary(a, out)
	fmt.Fprintf(out, "Mode: %s%s%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.Mode(), ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, %s%d%s workers, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorCyan(), cfg.Workers, ui.ColorReset(),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintAlgebraSummary displays size, rule, cycle length, bounds and limits.
func PrintAlgebraSummary(a *algebra.Algebra, out io.Writer) {
	bounded := "off"
	if a.IsBounded() {
		bounded = "on"
	}
	l := a.Limits()
	fmt.Fprintf(out, "Algebra: %s%d%s symbols (%s), rule %s%s%s, cycle length %s%d%s.\n",
		ui.ColorCyan(), a.Size(), ui.ColorReset(), a.Alphabet(),
		ui.ColorMagenta(), a.Rule(), ui.ColorReset(),
		ui.ColorCyan(), a.CycleLength(), ui.ColorReset())
	fmt.Fprintf(out, "Bounded mode: %s%s%s (range %s to %s), parity %s.\n",
		ui.ColorYellow(), bounded, ui.ColorReset(),
		a.FormatNumber(a.MinValue()), a.FormatNumber(a.MaxValue()), a.Parity())
	fmt.Fprintf(out, "Limits: divide=%d modulo=%d power=%d gcd=%d width=%d.\n",
		l.Divide, l.Modulo, l.Power, l.GCD, l.BoundsWidth)
	if unmapped := a.Positions().Unmapped(); len(unmapped) > 0 {
		fmt.Fprintf(out, "%sUnmapped symbols: %s%s\n", ui.ColorYellow(), symbolList(unmapped), ui.ColorReset())
	}
}
