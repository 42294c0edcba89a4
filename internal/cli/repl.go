// Package cli provides the command-line presentation layer: the interactive
// REPL, operation tables, Hasse printing, result formatting, file output,
// progress display and shell completion.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/hassecalc/internal/algebra"
	"github.com/agbru/hassecalc/internal/config"
	"github.com/agbru/hassecalc/internal/orchestration"
	"github.com/agbru/hassecalc/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Verbose shows raw digit strings and timings after each result.
	Verbose bool
	// Observer, if set, is notified of every evaluated expression.
	Observer orchestration.Observer
	// HistorySize caps the calculation history (0 = DefaultHistorySize).
	HistorySize int
}

// REPL represents an interactive calculator session over one algebra.
// Commands that change the rule or size replace the engine; the previous one
// stays valid for anything still holding it.
type REPL struct {
	config  REPLConfig
	algebra *algebra.Algebra
	history *History
	in      io.Reader
	out     io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - a: The initial algebra.
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(a *algebra.Algebra, config REPLConfig) *REPL {
	return &REPL{
		config:  config,
		algebra: a,
		history: NewHistory(config.HistorySize),
		in:      os.Stdin,
		out:     os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Algebra returns the current engine.
func (r *REPL) Algebra() *algebra.Algebra { return r.algebra }

// History returns the session's calculation history.
func (r *REPL) History() *History { return r.history }

// Start begins the interactive REPL session.
// It reads commands until the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"hasse> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}
		eof := err != nil

		if input = strings.TrimSpace(input); input != "" {
			if !r.processCommand(input) {
				return
			}
		}
		if eof {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sHasse Algebra Calculator - Interactive Mode%s          %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
	PrintAlgebraSummary(r.algebra, r.out)
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<x> <op> <y>%s        - Evaluate, op is one of + - * / %% ^ gcd lcm\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sdigit <x> <op> <y>%s  - Single-digit lookup with carry\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %srule <rule>%s         - Replace the successor rule\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %ssize <n> [rule]%s     - Change the alphabet size\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sbounded [on|off]%s    - Toggle overflow detection\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %stable <name>%s        - Print a table (%s)\n", ui.ColorYellow(), ui.ColorReset(), strings.Join(TableNames(), ", "))
	fmt.Fprintf(r.out, "  %shasse%s               - Print the Hasse chain\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %smap%s                 - Print the position map\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sformat <digits>%s     - Show a digit string in group notation\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %smax%s / %smin%s           - Show the bounded range\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shistory [clear]%s     - Show or wipe the last %d calculations\n", ui.ColorYellow(), ui.ColorReset(), r.history.Limit())
	fmt.Fprintf(r.out, "  %srecall <n>%s          - Re-evaluate history entry n\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s              - Display the current algebra\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s                - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s         - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	// Single letters are digits, so commands have no one-letter aliases.
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "calc":
		r.cmdCalc(strings.Join(args, " "))
	case "digit":
		r.cmdDigit(args)
	case "rule":
		r.cmdRule(args)
	case "size":
		r.cmdSize(args)
	case "bounded":
		r.cmdBounded(args)
	case "table":
		r.cmdTable(args)
	case "hasse":
		DisplayHasse(r.out, r.algebra)
	case "map":
		DisplayPositionMap(r.out, r.algebra)
	case "format":
		r.cmdFormat(args)
	case "history":
		r.cmdHistory(args)
	case "recall":
		r.cmdRecall(args)
	case "max":
		fmt.Fprintf(r.out, "Max: %s%s%s\n", ui.ColorCyan(), r.algebra.FormatNumber(r.algebra.MaxValue()), ui.ColorReset())
	case "min":
		fmt.Fprintf(r.out, "Min: %s%s%s\n", ui.ColorCyan(), r.algebra.FormatNumber(r.algebra.MinValue()), ui.ColorReset())
	case "status":
		fmt.Fprintln(r.out)
		PrintAlgebraSummary(r.algebra, r.out)
		fmt.Fprintln(r.out)
	case "help", "?":
		r.printHelp()
	case "exit", "quit":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		// Anything else is tried as an expression.
		if _, err := algebra.ParseExpression(input); err == nil {
			r.cmdCalc(input)
		} else {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		}
	}

	return true
}

// cmdCalc evaluates a multi-digit expression with the current engine.
func (r *REPL) cmdCalc(line string) {
	if line == "" {
		fmt.Fprintf(r.out, "%sUsage: calc <x> <op> <y>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	start := time.Now()
	e, res, err := r.algebra.EvalExpression(line)
	d := time.Since(start)
	if r.config.Observer != nil {
		r.config.Observer.Observe(orchestration.ExpressionResult{
			Job: orchestration.Job{Text: line}, Expr: e, Result: res, Duration: d, Err: err,
		})
	}
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	r.history.Add(HistoryEntry{Expr: e, Result: FormatValue(r.algebra, res)})
	DisplayResult(r.out, r.algebra, e, res, d, r.config.Verbose)
}

// cmdDigit handles "digit x op y" and the compact "digit x+y".
func (r *REPL) cmdDigit(args []string) {
	e, err := algebra.ParseExpression(strings.Join(args, " "))
	if err != nil {
		fmt.Fprintf(r.out, "%sUsage: digit <x> <op> <y>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	x, y, res, err := EvalDigit(r.algebra, e)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	r.history.Add(HistoryEntry{Expr: e, Digit: true, Result: FormatDigitValue(r.algebra, res)})
	DisplayDigitResult(r.out, r.algebra, x, y, res)
}

// cmdHistory lists the history, newest first, or wipes it.
func (r *REPL) cmdHistory(args []string) {
	if len(args) > 0 {
		if strings.ToLower(args[0]) != "clear" || len(args) > 1 {
			fmt.Fprintf(r.out, "%sUsage: history [clear]%s\n", ui.ColorRed(), ui.ColorReset())
			return
		}
		r.history.Clear()
		fmt.Fprintln(r.out, "History cleared.")
		return
	}
	if r.history.Len() == 0 {
		fmt.Fprintln(r.out, "History is empty.")
		return
	}
	fmt.Fprint(r.out, FormatHistory(r.history))
}

// cmdRecall re-evaluates a history entry against the current engine. The
// new evaluation is recorded as the newest entry.
func (r *REPL) cmdRecall(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%sUsage: recall <n>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid history index: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}
	entry, ok := r.history.Get(n)
	if !ok {
		fmt.Fprintf(r.out, "%sNo history entry %d (have %d)%s\n", ui.ColorRed(), n, r.history.Len(), ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "Recall [%d]: %s\n", n, entry.Line())
	if entry.Digit {
		r.cmdDigit(strings.Fields(entry.Line()))
		return
	}
	r.cmdCalc(entry.Line())
}

// cmdRule replaces the successor rule.
func (r *REPL) cmdRule(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%sUsage: rule <rule>%s (current: %s)\n", ui.ColorRed(), ui.ColorReset(), r.algebra.Rule())
		return
	}
	next, err := r.algebra.WithRule(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid rule: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	r.algebra = next
	fmt.Fprintf(r.out, "Rule changed to: %s%s%s\n", ui.ColorGreen(), next.Rule(), ui.ColorReset())
	DisplayHasse(r.out, next)
}

// cmdSize changes the alphabet size. Without a rule the identity chain of
// the new size is used.
func (r *REPL) cmdSize(args []string) {
	if len(args) == 0 || len(args) > 2 {
		fmt.Fprintf(r.out, "%sUsage: size <n> [rule]%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid size: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}
	rule := config.DefaultRule(n)
	if len(args) == 2 {
		rule = args[1]
	}
	next, err := algebra.New(n, rule,
		algebra.WithBounded(r.algebra.IsBounded()),
		algebra.WithLimits(r.algebra.Limits()),
		algebra.WithParity(r.algebra.Parity()))
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid algebra: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	r.algebra = next
	fmt.Fprintf(r.out, "Size changed to: %s%d%s (rule %s)\n", ui.ColorGreen(), n, ui.ColorReset(), next.Rule())
}

// cmdBounded toggles or sets overflow detection.
func (r *REPL) cmdBounded(args []string) {
	enabled := !r.algebra.IsBounded()
	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "on", "true", "1", "yes":
			enabled = true
		case "off", "false", "0", "no":
			enabled = false
		default:
			fmt.Fprintf(r.out, "%sUsage: bounded [on|off]%s\n", ui.ColorRed(), ui.ColorReset())
			return
		}
	}
	r.algebra = r.algebra.Bounded(enabled)
	status := "disabled"
	if enabled {
		status = "enabled"
	}
	fmt.Fprintf(r.out, "Bounded mode: %s%s%s\n", ui.ColorGreen(), status, ui.ColorReset())
}

// cmdTable prints one or all operation tables.
func (r *REPL) cmdTable(args []string) {
	name := "all"
	if len(args) > 0 {
		name = args[0]
	}
	kinds, err := ParseTableKinds(name)
	if err != nil {
		fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	DisplayTables(r.out, r.algebra, kinds)
}

// cmdFormat shows digit strings in group notation.
func (r *REPL) cmdFormat(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: format <digits>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	for _, s := range args {
		fmt.Fprintf(r.out, "%s = %s%s%s\n", s, ui.ColorCyan(), r.algebra.Format(s), ui.ColorReset())
	}
}
