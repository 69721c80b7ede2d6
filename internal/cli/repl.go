// Package cli provides the REPL (Read-Eval-Print Loop) functionality for
// the interactive calculator, along with result presentation, batch file
// evaluation and shell completion generation.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/mlavoie/calcli/internal/calc"
	apperrors "github.com/mlavoie/calcli/internal/errors"
	"github.com/mlavoie/calcli/internal/format"
	"github.com/mlavoie/calcli/internal/locale"
	"github.com/mlavoie/calcli/internal/logging"
	"github.com/mlavoie/calcli/internal/metrics"
	"github.com/mlavoie/calcli/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Quiet suppresses decorations; results are printed one per line.
	Quiet bool
}

// REPL represents an interactive calculator session. It reads one line per
// iteration, special-cases the reserved command keywords, and hands every
// other line to the calculator core.
type REPL struct {
	config     REPLConfig
	in         io.Reader
	out        io.Writer
	errOut     io.Writer
	recorder   *metrics.Recorder
	logger     logging.Logger
	memory     *metrics.MemoryCollector
	lastResult string
	hasResult  bool
}

// NewREPL creates a new REPL instance reading from stdin and writing to
// stdout. The recorder and logger may not be nil; use metrics.NewRecorder()
// and logging.NopLogger{} when instrumentation is not wanted.
func NewREPL(config REPLConfig, recorder *metrics.Recorder, logger logging.Logger) *REPL {
	return &REPL{
		config:   config,
		in:       os.Stdin,
		out:      os.Stdout,
		errOut:   os.Stderr,
		recorder: recorder,
		logger:   logger,
		memory:   metrics.NewMemoryCollector(),
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

// SetErrorOutput sets a custom writer for diagnostics (useful for testing).
func (r *REPL) SetErrorOutput(errOut io.Writer) {
	r.errOut = errOut
}

// Start begins the interactive session. It continuously reads user input
// and processes lines until the user exits or EOF is reached.
//
// Returns:
//   - error: nil on a normal exit; a ReadLoopError when the input stream
//     fails in an unanticipated way, which the caller maps to a non-zero
//     exit status.
func (r *REPL) Start() error {
	if !r.config.Quiet {
		r.printBanner()
		r.printHelp()
		fmt.Fprintln(r.out)
	}

	reader := bufio.NewReader(r.in)

	for {
		msgs := locale.Current()

		if !r.config.Quiet {
			fmt.Fprint(r.out, ui.ColorGreen()+msgs.Prompt+ui.ColorReset())
		}

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				if line := strings.TrimSpace(input); line != "" {
					r.processLine(line)
				}
				if !r.config.Quiet {
					fmt.Fprintln(r.out, "\n"+msgs.Goodbye)
				}
				return nil
			}
			fmt.Fprintf(r.errOut, "%s%s: %v%s\n", ui.ColorRed(), msgs.ReadError, err, ui.ColorReset())
			return apperrors.ReadLoopError{Cause: err}
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processLine(input) {
			return nil
		}
	}
}

// printBanner displays the welcome banner.
func (r *REPL) printBanner() {
	msgs := locale.Current()
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s  %s🧮 %-44s%s  %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), msgs.BannerTitle, ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	msgs := locale.Current()
	fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorBold(), msgs.HelpHeader, ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<a> <op> <b>%s  - %s\n", ui.ColorYellow(), ui.ColorReset(), msgs.HelpEval)
	fmt.Fprintf(r.out, "  %sops%s           - %s\n", ui.ColorYellow(), ui.ColorReset(), msgs.HelpOps)
	fmt.Fprintf(r.out, "  %slang <fr|en>%s  - %s\n", ui.ColorYellow(), ui.ColorReset(), msgs.HelpLang)
	fmt.Fprintf(r.out, "  %sstatus%s        - %s\n", ui.ColorYellow(), ui.ColorReset(), msgs.HelpStatus)
	fmt.Fprintf(r.out, "  %slast%s          - %s\n", ui.ColorYellow(), ui.ColorReset(), msgs.HelpLast)
	fmt.Fprintf(r.out, "  %shelp%s          - %s\n", ui.ColorYellow(), ui.ColorReset(), msgs.HelpHelp)
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s   - %s\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset(), msgs.HelpQuit)
}

// processLine dispatches one input line: reserved command keywords first,
// everything else goes to the calculator core.
// Returns false if the session should end.
func (r *REPL) processLine(input string) bool {
	msgs := locale.Current()

	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "aide", "h", "?":
		r.printHelp()
	case "ops":
		r.cmdOps()
	case "lang":
		r.cmdLang(args)
	case "status", "st":
		r.cmdStatus()
	case "last":
		r.cmdLast()
	case "exit", "quit", "quitter", "q":
		if !r.config.Quiet {
			fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorGreen(), msgs.Goodbye, ui.ColorReset())
		}
		return false
	default:
		r.evaluate(input)
	}

	return true
}

// evaluate runs one expression through the calculator core and renders the
// outcome. Calculator errors are displayed and the session continues.
func (r *REPL) evaluate(input string) {
	start := time.Now()
	result, calcErr := calc.ParseAndEvaluate(input)
	duration := time.Since(start)

	if calcErr != nil {
		r.recorder.ObserveError(string(calcErr.Code), duration)
		r.logger.Debug("evaluation failed",
			logging.String("expression", calcErr.Expression),
			logging.String("code", string(calcErr.Code)))
		DisplayError(r.out, calcErr)
		return
	}

	op, _ := calc.OperatorOf(input)
	r.recorder.ObserveEvaluation(op, duration)
	r.logger.Debug("evaluation succeeded",
		logging.String("expression", strings.TrimSpace(input)),
		logging.Float64("seconds", duration.Seconds()))

	r.lastResult = result.String()
	r.hasResult = true
	DisplayResult(r.out, result, duration, r.config.Quiet)
}

// cmdOps lists the supported operators.
func (r *REPL) cmdOps() {
	msgs := locale.Current()
	fmt.Fprintf(r.out, "\n%s%s%s\n", ui.ColorBold(), msgs.OpsHeader, ui.ColorReset())
	for i := 0; i < len(calc.Operators); i++ {
		fmt.Fprintf(r.out, "  %s%c%s\n", ui.ColorYellow(), calc.Operators[i], ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

// cmdLang switches the active message catalog.
func (r *REPL) cmdLang(args []string) {
	msgs := locale.Current()
	if len(args) == 0 || !locale.Set(strings.ToLower(args[0])) {
		fmt.Fprintf(r.out, "%s%s%s (fr, en)\n", ui.ColorRed(), msgs.UnknownOption, ui.ColorReset())
		return
	}
}

// cmdStatus displays the session configuration and runtime details.
func (r *REPL) cmdStatus() {
	msgs := locale.Current()
	snap := r.memory.Snapshot()
	fmt.Fprintf(r.out, "\n%s%s%s\n", ui.ColorBold(), msgs.StatusHeader, ui.ColorReset())
	fmt.Fprintf(r.out, "  Lang:    %s%s%s\n", ui.ColorCyan(), msgs.Name, ui.ColorReset())
	fmt.Fprintf(r.out, "  Go:      %s%s%s (%d CPU)\n", ui.ColorCyan(), runtime.Version(), ui.ColorReset(), runtime.NumCPU())
	fmt.Fprintf(r.out, "  Heap:    %s%d KiB%s (%d objects, %d GC)\n",
		ui.ColorCyan(), snap.HeapAlloc/1024, ui.ColorReset(), snap.HeapObjects, snap.NumGC)
	fmt.Fprintln(r.out)
}

// cmdLast redisplays the last successful result.
func (r *REPL) cmdLast() {
	msgs := locale.Current()
	if !r.hasResult {
		fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorYellow(), msgs.NoLastResult, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorGreen(), r.lastResult, ui.ColorReset())
}

// FormatTiming renders an evaluation duration for the result line.
func FormatTiming(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}
