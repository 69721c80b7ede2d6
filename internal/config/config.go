// Package config defines the application configuration and its resolution
// chain: command-line flags take priority over environment variables, which
// take priority over built-in defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"runtime"

	apperrors "github.com/mlavoie/calcli/internal/errors"
)

// EnvPrefix is prepended to every environment variable read by this package.
const EnvPrefix = "CALCLI_"

// DefaultJobs caps the batch-mode parallelism. Expression evaluation is
// CPU-trivial, so there is no benefit in going wider than the machine.
func DefaultJobs() int {
	n := runtime.NumCPU()
	if n > 8 {
		return 8
	}
	return n
}

// AppConfig holds the complete application configuration.
type AppConfig struct {
	// Expression is a single expression to evaluate and exit (one-shot mode).
	Expression string
	// InputFile is a file of expressions to evaluate, one per line (batch mode).
	InputFile string
	// OutputFile receives batch results in addition to stdout (empty for none).
	OutputFile string
	// TUI launches the full-screen interactive mode.
	TUI bool
	// Lang selects the message catalog ("fr" or "en").
	Lang string
	// Jobs is the number of concurrent workers in batch mode.
	Jobs int
	// MetricsAddr is the listen address for the Prometheus endpoint
	// (empty disables it).
	MetricsAddr string
	// Completion requests generation of a shell completion script
	// ("bash", "zsh", "fish").
	Completion string
	// NoColor disables all colorized output.
	NoColor bool
	// Quiet suppresses decorations; results are printed one per line.
	Quiet bool
	// Verbose enables structured logging of session events.
	Verbose bool
}

// ParseConfig parses command-line arguments into an AppConfig and applies
// environment variable overrides for flags that were not explicitly set.
//
// Parameters:
//   - programName: The name used in usage output.
//   - args: The command-line arguments (without the program name).
//   - errWriter: Destination for usage and flag error output.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp when --help was requested, a ConfigError for
//     invalid values, or any flag parsing error.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := AppConfig{
		Lang: "fr",
		Jobs: DefaultJobs(),
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.StringVar(&cfg.Expression, "expr", "", "Evaluate a single expression and exit")
	fs.StringVar(&cfg.Expression, "e", "", "Shorthand for --expr")
	fs.StringVar(&cfg.InputFile, "file", "", "Evaluate expressions from a file, one per line")
	fs.StringVar(&cfg.InputFile, "f", "", "Shorthand for --file")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write batch results to a file as well as stdout")
	fs.StringVar(&cfg.OutputFile, "o", "", "Shorthand for --output")
	fs.BoolVar(&cfg.TUI, "tui", false, "Launch the full-screen interactive mode")
	fs.StringVar(&cfg.Lang, "lang", cfg.Lang, "Message language: fr or en")
	fs.IntVar(&cfg.Jobs, "jobs", cfg.Jobs, "Concurrent workers in batch mode")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Listen address for the Prometheus /metrics endpoint")
	fs.StringVar(&cfg.Completion, "completion", "", "Generate a completion script: bash, zsh or fish")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colorized output")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Minimal output, suitable for scripts")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for --quiet")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Log session events")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for --verbose")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errWriter, "Interactive calculator for binary expressions of the form <number> <operator> <number>.\n")
		fmt.Fprintf(errWriter, "Without options, starts the interactive read loop.\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)

	if err := validate(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// validate rejects configurations the application cannot act on.
func validate(cfg AppConfig) error {
	switch cfg.Lang {
	case "fr", "en":
	default:
		return apperrors.NewConfigError("unsupported language %q (expected fr or en)", cfg.Lang)
	}

	if cfg.Jobs < 1 {
		return apperrors.NewConfigError("jobs must be at least 1, got %d", cfg.Jobs)
	}

	switch cfg.Completion {
	case "", "bash", "zsh", "fish":
	default:
		return apperrors.NewConfigError("unsupported completion shell %q", cfg.Completion)
	}

	if cfg.Expression != "" && cfg.InputFile != "" {
		return apperrors.NewConfigError("--expr and --file are mutually exclusive")
	}
	return nil
}
