// Package config defines the application configuration: command-line flags,
// HASSECALC_* environment overrides and named presets loaded from YAML.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agbru/hassecalc/internal/algebra"
	apperrors "github.com/agbru/hassecalc/internal/errors"
)

// EnvPrefix is prepended to every environment override key.
const EnvPrefix = "HASSECALC_"

// Defaults.
const (
	DefaultSize        = 8
	DefaultTimeout     = 5 * time.Minute
	DefaultHistorySize = 20
)

// Mode is the run mode selected by the flags.
type Mode int

const (
	ModeREPL Mode = iota
	ModeEval
	ModeDigit
	ModeBatch
	ModeTable
	ModeHasse
	ModeDiagram
	ModeCompletion
	ModeTUI
)

func (m Mode) String() string {
	switch m {
	case ModeEval:
		return "eval"
	case ModeDigit:
		return "digit"
	case ModeBatch:
		return "batch"
	case ModeTable:
		return "table"
	case ModeHasse:
		return "hasse"
	case ModeDiagram:
		return "diagram"
	case ModeCompletion:
		return "completion"
	case ModeTUI:
		return "tui"
	default:
		return "repl"
	}
}

// AppConfig aggregates every setting the application needs.
type AppConfig struct {
	// Algebra
	Size        int
	Rule        string
	Preset      string
	PresetsFile string
	Bounded     bool
	Parity      string
	DivLimit    int
	ModLimit    int
	PowLimit    int
	GCDLimit    int
	BoundsWidth int

	// Evaluation
	Op        string
	A, B      string
	Expr      string
	Digit     bool
	BatchFile string
	Workers   int
	Timeout   time.Duration

	// Output
	Table       string
	Hasse       bool
	DiagramFile string
	OutputFile  string
	Quiet       bool
	Verbose     bool
	NoColor     bool
	MetricsAddr string
	Completion  string

	// Interactive
	TUI         bool
	HistorySize int
}

// Mode derives the run mode. Completion wins, then the explicit output
// modes, then evaluation; with nothing selected --tui picks the full-screen
// calculator over the REPL.
func (c AppConfig) Mode() Mode {
	switch {
	case c.Completion != "":
		return ModeCompletion
	case c.BatchFile != "":
		return ModeBatch
	case c.Table != "":
		return ModeTable
	case c.DiagramFile != "":
		return ModeDiagram
	case c.Hasse:
		return ModeHasse
	case c.Expr != "" || c.Op != "":
		if c.Digit {
			return ModeDigit
		}
		return ModeEval
	case c.TUI:
		return ModeTUI
	default:
		return ModeREPL
	}
}

// Limits converts the limit flags into engine caps. Zero fields keep the
// engine defaults.
func (c AppConfig) Limits() algebra.Limits {
	return algebra.Limits{
		Divide:      c.DivLimit,
		Modulo:      c.ModLimit,
		Power:       c.PowLimit,
		GCD:         c.GCDLimit,
		BoundsWidth: c.BoundsWidth,
	}
}

// EngineOptions returns the algebra options implied by the configuration.
func (c AppConfig) EngineOptions() ([]algebra.Option, error) {
	parity, err := algebra.ParseParity(c.Parity)
	if err != nil {
		return nil, apperrors.ConfigError{Message: "--parity", Cause: err}
	}
	return []algebra.Option{
		algebra.WithBounded(c.Bounded),
		algebra.WithLimits(c.Limits()),
		algebra.WithParity(parity),
	}, nil
}

// Validate rejects settings no engine can be built from. It runs before any
// table is computed.
func (c AppConfig) Validate() error {
	if c.Size < algebra.MinSize || c.Size > algebra.MaxSize {
		return apperrors.NewConfigError("size %d out of range: must be between %d and %d", c.Size, algebra.MinSize, algebra.MaxSize)
	}
	if strings.TrimSpace(c.Rule) == "" {
		return apperrors.NewConfigError("successor rule must not be empty")
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("--workers must be non-negative, got %d", c.Workers)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("--timeout must be positive, got %s", c.Timeout)
	}
	for name, v := range map[string]int{"--div-limit": c.DivLimit, "--mod-limit": c.ModLimit, "--pow-limit": c.PowLimit, "--gcd-limit": c.GCDLimit, "--bounds-width": c.BoundsWidth} {
		if v < 0 {
			return apperrors.NewConfigError("%s must be non-negative, got %d", name, v)
		}
	}
	if _, err := algebra.ParseParity(c.Parity); err != nil {
		return apperrors.ConfigError{Message: "--parity", Cause: err}
	}
	if c.Op != "" {
		if _, err := algebra.ParseOp(c.Op); err != nil {
			return apperrors.NewValidationError("op", err)
		}
	}
	if c.HistorySize < 0 {
		return apperrors.NewConfigError("--history-size must be non-negative, got %d", c.HistorySize)
	}
	if c.Completion != "" {
		switch c.Completion {
		case "bash", "zsh", "fish", "powershell":
		default:
			return apperrors.NewConfigError("unsupported shell %q for --completion (bash, zsh, fish, powershell)", c.Completion)
		}
	}
	return nil
}

// DefaultRule returns the identity chain for size: "bc...a".
func DefaultRule(size int) string {
	if size < algebra.MinSize || size > algebra.MaxSize {
		return ""
	}
	alpha, _ := algebra.NewAlphabet(size)
	s := alpha.String()
	return s[1:] + s[:1]
}

// ParseConfig parses args into an AppConfig, applying environment overrides
// and the selected preset. Priority: CLI flags > environment > preset > defaults.
//
// Parameters:
//   - programName: The name used in usage output.
//   - args: The command-line arguments without the program name.
//   - errorWriter: Destination for flag usage and parse errors.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp for -h, a ConfigError for invalid settings.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	cfg := AppConfig{}
	fs.IntVar(&cfg.Size, "size", DefaultSize, "Number of symbols in the alphabet (2-26).")
	fs.IntVar(&cfg.Size, "n", DefaultSize, "Shorthand for --size.")
	fs.StringVar(&cfg.Rule, "rule", "", "Successor rule, e.g. \"bcdefgha\" or \"b{c,d}eea\" (default: identity chain).")
	fs.StringVar(&cfg.Rule, "r", "", "Shorthand for --rule.")
	fs.StringVar(&cfg.Preset, "preset", "", "Named preset from the presets file or the built-ins.")
	fs.StringVar(&cfg.PresetsFile, "presets-file", "", "YAML file of named presets.")
	fs.BoolVar(&cfg.Bounded, "bounded", false, "Report results wider than --bounds-width digits as overflow.")
	fs.StringVar(&cfg.Parity, "parity", "literal", "Sign rule for negative bases in power: literal or exact.")
	fs.IntVar(&cfg.DivLimit, "div-limit", 0, "Iteration cap for division (0 = engine default).")
	fs.IntVar(&cfg.ModLimit, "mod-limit", 0, "Iteration cap for modulo (0 = engine default).")
	fs.IntVar(&cfg.PowLimit, "pow-limit", 0, "Iteration cap for power (0 = engine default).")
	fs.IntVar(&cfg.GCDLimit, "gcd-limit", 0, "Step cap for gcd (0 = engine default).")
	fs.IntVar(&cfg.BoundsWidth, "bounds-width", 0, "Digits of the bounded maximum (0 = engine default).")

	fs.StringVar(&cfg.Op, "op", "", "Operator to apply to -a and -b: + - * / % ^ gcd lcm.")
	fs.StringVar(&cfg.A, "a", "", "Left operand for --op.")
	fs.StringVar(&cfg.B, "b", "", "Right operand for --op.")
	fs.StringVar(&cfg.Expr, "expr", "", "Expression to evaluate, e.g. \"hh + bb\".")
	fs.StringVar(&cfg.Expr, "e", "", "Shorthand for --expr.")
	fs.BoolVar(&cfg.Digit, "digit", false, "Evaluate --op/--expr with the single-digit tables.")
	fs.StringVar(&cfg.BatchFile, "batch", "", "File of expressions, one per line ('-' for stdin).")
	fs.IntVar(&cfg.Workers, "workers", 0, "Concurrent evaluations in batch mode (0 = number of CPUs).")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum time for a batch run.")

	fs.StringVar(&cfg.Table, "table", "", "Print an operation table: add, mul, sub, div, pow, gcd, lcm, addcarry, mulcarry or all.")
	fs.BoolVar(&cfg.Hasse, "hasse", false, "Print the Hasse chain and position map.")
	fs.StringVar(&cfg.DiagramFile, "diagram", "", "Export the Hasse diagram (.svg, .png, .pdf).")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write results to this file.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Shorthand for --output.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print bare results only.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colour output.")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a completion script: bash, zsh, fish or powershell.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Start the full-screen calculator instead of the REPL.")
	fs.IntVar(&cfg.HistorySize, "history-size", DefaultHistorySize, "Calculations kept by the REPL and TUI history.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if cfg.Op != "" && cfg.Expr != "" {
		return AppConfig{}, apperrors.NewConfigError("--op and --expr are mutually exclusive")
	}
	if fs.NArg() > 0 && cfg.Expr == "" && cfg.Op == "" {
		cfg.Expr = strings.Join(fs.Args(), " ")
	}

	applyEnvOverrides(&cfg, fs)

	if err := applyPreset(&cfg, fs); err != nil {
		return AppConfig{}, err
	}
	if cfg.Rule == "" {
		cfg.Rule = DefaultRule(cfg.Size)
	}
	if cfg.Op != "" && cfg.Expr == "" {
		cfg.Expr = fmt.Sprintf("%s %s %s", cfg.A, cfg.Op, cfg.B)
	}

	cfg = ApplyAdaptiveDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// applyPreset fills size, rule and bounded from the selected preset unless
// they were set on the command line or in the environment.
func applyPreset(cfg *AppConfig, fs *flag.FlagSet) error {
	if cfg.Preset == "" {
		return nil
	}
	presets, err := LoadPresets(cfg.PresetsFile)
	if err != nil {
		return err
	}
	p, ok := presets.Lookup(cfg.Preset)
	if !ok {
		return apperrors.NewConfigError("unknown preset %q (available: %s)", cfg.Preset, strings.Join(presets.Names(), ", "))
	}
	if !explicit(fs, "SIZE", "size", "n") && p.Size != 0 {
		cfg.Size = p.Size
	}
	if !explicit(fs, "RULE", "rule", "r") {
		cfg.Rule = p.Rule
	}
	if !explicit(fs, "BOUNDED", "bounded") && p.Bounded != nil {
		cfg.Bounded = *p.Bounded
	}
	return nil
}
