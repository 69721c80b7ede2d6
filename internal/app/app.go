// Package app wires the calculator application together: configuration
// parsing, mode dispatch (one-shot, batch, TUI, REPL, completion) and
// process exit codes.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/mlavoie/calcli/internal/calc"
	"github.com/mlavoie/calcli/internal/cli"
	"github.com/mlavoie/calcli/internal/config"
	apperrors "github.com/mlavoie/calcli/internal/errors"
	"github.com/mlavoie/calcli/internal/locale"
	"github.com/mlavoie/calcli/internal/logging"
	"github.com/mlavoie/calcli/internal/metrics"
	"github.com/mlavoie/calcli/internal/tui"
	"github.com/mlavoie/calcli/internal/ui"
)

// Application represents the calcli application instance.
type Application struct {
	Config    config.AppConfig
	Logger    logging.Logger
	Recorder  *metrics.Recorder
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger sets a custom Logger for the application.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, Recorder: metrics.NewRecorder()}
	for _, opt := range opts {
		opt(app)
	}

	programName := "calcli"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	ui.InitTheme(a.Config.NoColor)
	locale.Set(a.Config.Lang)

	if a.Logger == nil {
		if a.Config.Verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
			a.Logger = logging.NewLogger(a.ErrWriter, "calcli")
		} else {
			a.Logger = logging.NopLogger{}
		}
	}

	stopMetrics := a.serveMetricsIfEnabled()
	defer stopMetrics()

	switch {
	case a.Config.Expression != "":
		return a.runOneShot(out)
	case a.Config.InputFile != "":
		return a.runBatch(ctx, out)
	case a.Config.TUI:
		return a.runTUI(ctx)
	default:
		return a.runREPL(out)
	}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runOneShot evaluates the single --expr expression and exits. A calculator
// error is rendered on stderr and mapped to a non-zero exit status so the
// mode is usable from scripts.
func (a *Application) runOneShot(out io.Writer) int {
	start := time.Now()
	result, calcErr := a.evaluateOne(a.Config.Expression)
	duration := time.Since(start)

	if calcErr != nil {
		cli.DisplayError(a.ErrWriter, calcErr)
		return apperrors.ExitErrorGeneric
	}

	cli.DisplayResult(out, result, duration, a.Config.Quiet)
	return apperrors.ExitSuccess
}

// runBatch evaluates the expressions of --file.
func (a *Application) runBatch(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	file, err := os.Open(a.Config.InputFile)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return apperrors.ExitErrorConfig
	}
	defer file.Close()

	opts := cli.BatchOptions{
		Jobs:       a.Config.Jobs,
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
	}
	if _, err := cli.RunBatch(ctx, file, out, opts, a.Recorder, a.Logger); err != nil {
		if apperrors.IsContextError(err) {
			return apperrors.ExitErrorCanceled
		}
		fmt.Fprintf(a.ErrWriter, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runTUI launches the full-screen interactive mode.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return tui.Run(ctx, a.Recorder, a.Logger)
}

// runREPL starts the line-oriented interactive session. Calculator errors
// are rendered and the loop continues; only an unanticipated read failure
// terminates the process with a non-zero status.
func (a *Application) runREPL(out io.Writer) int {
	repl := cli.NewREPL(cli.REPLConfig{Quiet: a.Config.Quiet}, a.Recorder, a.Logger)
	repl.SetOutput(out)
	repl.SetErrorOutput(a.ErrWriter)

	a.Logger.Info("session started", logging.String("lang", a.Config.Lang))
	if err := repl.Start(); err != nil {
		a.Logger.Error("read loop failed", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// evaluateOne runs one expression through the core with instrumentation.
func (a *Application) evaluateOne(expression string) (calc.Result, *calc.CalcError) {
	start := time.Now()
	result, calcErr := calc.ParseAndEvaluate(expression)
	duration := time.Since(start)

	if calcErr != nil {
		a.Recorder.ObserveError(string(calcErr.Code), duration)
		return result, calcErr
	}
	op, _ := calc.OperatorOf(expression)
	a.Recorder.ObserveEvaluation(op, duration)
	return result, nil
}

// serveMetricsIfEnabled exposes the Prometheus endpoint when --metrics-addr
// is set. The returned stop function shuts the listener down.
func (a *Application) serveMetricsIfEnabled() func() {
	if a.Config.MetricsAddr == "" {
		return func() {}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", a.Recorder.Handler())
	server := &http.Server{Addr: a.Config.MetricsAddr, Handler: mux}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.Error("metrics endpoint failed", err)
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
