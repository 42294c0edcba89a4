package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/hassecalc/internal/algebra"
	"github.com/agbru/hassecalc/internal/cli"
	"github.com/agbru/hassecalc/internal/config"
	"github.com/agbru/hassecalc/internal/diagram"
	apperrors "github.com/agbru/hassecalc/internal/errors"
	"github.com/agbru/hassecalc/internal/logging"
	"github.com/agbru/hassecalc/internal/metrics"
	"github.com/agbru/hassecalc/internal/tui"
	"github.com/agbru/hassecalc/internal/ui"
)

// Application represents the hassecalc application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	// In feeds the REPL and "--batch -".
	In      io.Reader
	Logger  logging.Logger
	Metrics *metrics.Metrics
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithInput sets the reader used by the REPL and by "--batch -".
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// WithLogger replaces the console logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	programName := "hassecalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app := &Application{Config: cfg, ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}
	if app.Logger == nil {
		app.Logger = logging.NewConsoleLogger(errWriter, "hassecalc", cfg.Verbose, cfg.NoColor)
	}
	app.Metrics = metrics.New()
	return app, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Mode() == config.ModeCompletion {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)

	engine, err := a.buildEngine()
	if err != nil {
		return apperrors.HandleError(err, a.ErrWriter)
	}
	a.Metrics.SetEngine(engine)

	if a.Config.MetricsAddr != "" {
		srv := metrics.NewServer(a.Config.MetricsAddr, a.Metrics, a.Logger)
		if err := srv.Start(ctx); err != nil {
			return apperrors.HandleError(apperrors.ConfigError{Message: "--metrics-addr", Cause: err}, a.ErrWriter)
		}
	}

	switch a.Config.Mode() {
	case config.ModeEval:
		return a.runEval(engine, out)
	case config.ModeDigit:
		return a.runDigit(engine, out)
	case config.ModeBatch:
		return a.runBatch(ctx, engine, out)
	case config.ModeTable:
		return a.runTable(engine, out)
	case config.ModeHasse:
		return a.runHasse(engine, out)
	case config.ModeDiagram:
		return a.runDiagram(engine, out)
	case config.ModeTUI:
		return a.runTUI(ctx, engine, out)
	default:
		return a.runREPL(engine, out)
	}
}

// buildEngine constructs the algebra. Every failure is a ConfigError.
func (a *Application) buildEngine() (*algebra.Algebra, error) {
	opts, err := a.Config.EngineOptions()
	if err != nil {
		return nil, err
	}
	engine, err := algebra.New(a.Config.Size, a.Config.Rule, opts...)
	if err != nil {
		return nil, apperrors.ConfigError{Message: fmt.Sprintf("algebra (size %d, rule %q)", a.Config.Size, a.Config.Rule), Cause: err}
	}
	a.Logger.Info("engine built",
		logging.Int("size", engine.Size()),
		logging.String("rule", engine.Rule().String()),
		logging.Int("cycle_length", engine.CycleLength()),
		logging.Int("unmapped", len(engine.Positions().Unmapped())),
		logging.Bool("bounded", engine.IsBounded()))
	return engine, nil
}

// runCompletion generates shell completion scripts. Preset names are offered
// for --preset.
func (a *Application) runCompletion(out io.Writer) int {
	var names []string
	if presets, err := config.LoadPresets(a.Config.PresetsFile); err == nil {
		names = presets.Names()
	}
	if err := cli.GenerateCompletion(out, a.Config.Completion, names); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive session on a.In.
func (a *Application) runREPL(engine *algebra.Algebra, out io.Writer) int {
	repl := cli.NewREPL(engine, cli.REPLConfig{
		Verbose:     a.Config.Verbose,
		HistorySize: a.Config.HistorySize,
		Observer:    a.Metrics,
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// runTUI launches the full-screen calculator.
func (a *Application) runTUI(ctx context.Context, engine *algebra.Algebra, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	a.Logger.Debug("starting tui", logging.Int("history_size", a.Config.HistorySize))
	return tui.Run(ctx, engine, a.Config, Version, a.Metrics, a.In, out)
}

// runTable prints the tables selected by --table.
func (a *Application) runTable(engine *algebra.Algebra, out io.Writer) int {
	kinds, err := cli.ParseTableKinds(a.Config.Table)
	if err != nil {
		return apperrors.HandleError(apperrors.ConfigError{Message: "--table", Cause: err}, a.ErrWriter)
	}
	if !a.Config.Quiet {
		cli.PrintAlgebraSummary(engine, out)
	}
	cli.DisplayTables(out, engine, kinds)
	return apperrors.ExitSuccess
}

// runHasse prints the Hasse chain and the position map.
func (a *Application) runHasse(engine *algebra.Algebra, out io.Writer) int {
	if a.Config.Quiet {
		fmt.Fprintln(out, cli.FormatHasseChain(engine))
		return apperrors.ExitSuccess
	}
	cli.DisplayHasse(out, engine)
	fmt.Fprintln(out)
	cli.DisplayPositionMap(out, engine)
	return apperrors.ExitSuccess
}

// runDiagram exports the Hasse diagram to --diagram.
func (a *Application) runDiagram(engine *algebra.Algebra, out io.Writer) int {
	if err := diagram.Export(engine, a.Config.DiagramFile); err != nil {
		a.Logger.Error("diagram export failed", err, logging.String("path", a.Config.DiagramFile))
		return apperrors.HandleError(err, a.ErrWriter)
	}
	a.Logger.Info("diagram exported", logging.String("path", a.Config.DiagramFile))
	if !a.Config.Quiet {
		fmt.Fprintf(out, "%s✓ Diagram saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), a.Config.DiagramFile, ui.ColorReset())
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
