package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/mlavoie/calcli/internal/calc"
	apperrors "github.com/mlavoie/calcli/internal/errors"
	"github.com/mlavoie/calcli/internal/format"
	"github.com/mlavoie/calcli/internal/logging"
	"github.com/mlavoie/calcli/internal/metrics"
	"github.com/mlavoie/calcli/internal/ui"
)

// tracerName identifies this instrumentation library to OpenTelemetry.
const tracerName = "github.com/mlavoie/calcli/internal/cli"

// BatchOptions configures a batch run over a file of expressions.
type BatchOptions struct {
	// Jobs is the number of concurrent evaluation workers.
	Jobs int
	// OutputFile receives the results in addition to out (empty for none).
	OutputFile string
	// Quiet suppresses the progress display and the summary.
	Quiet bool
}

// BatchLine is the outcome of one input line. Exactly one of Result and
// Err is meaningful, discriminated by Err being nil.
type BatchLine struct {
	// Index is the zero-based position of the line in the input.
	Index int
	// Expression is the trimmed input line.
	Expression string
	// Result is the evaluation result when Err is nil.
	Result calc.Result
	// Err is the calculator failure, nil on success.
	Err *calc.CalcError
}

// RunBatch evaluates every non-empty line of in and writes the outcomes to
// out in input order. Lines are evaluated concurrently (the core is pure, so
// this is safe); output ordering is restored before rendering. A progress
// display runs while workers are busy unless quiet mode is on.
//
// Returns the lines and an error only for infrastructure failures (input
// read, output file creation, cancellation); calculator errors are part of
// the per-line outcomes.
func RunBatch(ctx context.Context, in io.Reader, out io.Writer, opts BatchOptions, recorder *metrics.Recorder, logger logging.Logger) ([]BatchLine, error) {
	expressions, err := readExpressions(in)
	if err != nil {
		return nil, apperrors.WrapError(err, "reading expressions")
	}
	if len(expressions) == 0 {
		return nil, nil
	}

	lines := make([]BatchLine, len(expressions))

	var (
		wg           sync.WaitGroup
		progressChan chan ProgressUpdate
		doneMu       sync.Mutex
		done         int
	)
	if !opts.Quiet {
		progressChan = make(chan ProgressUpdate, len(expressions))
		wg.Add(1)
		go DisplayProgress(&wg, progressChan, out)
	}

	tracer := otel.Tracer(tracerName)
	start := time.Now()

	// SetLimit(0) would forbid all goroutines; a caller passing a zero-value
	// BatchOptions still gets a working single-worker run.
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, expression := range expressions {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			_, span := tracer.Start(gctx, "calc.evaluate")
			span.SetAttributes(attribute.String("calc.expression", expression))

			evalStart := time.Now()
			result, calcErr := calc.ParseAndEvaluate(expression)
			evalDuration := time.Since(evalStart)

			if calcErr != nil {
				recorder.ObserveError(string(calcErr.Code), evalDuration)
				span.SetAttributes(attribute.String("calc.error_code", string(calcErr.Code)))
			} else {
				op, _ := calc.OperatorOf(expression)
				recorder.ObserveEvaluation(op, evalDuration)
			}
			span.End()

			lines[i] = BatchLine{Index: i, Expression: expression, Result: result, Err: calcErr}

			if progressChan != nil {
				doneMu.Lock()
				done++
				progressChan <- ProgressUpdate{Done: done, Total: len(expressions)}
				doneMu.Unlock()
			}
			return nil
		})
	}

	err = g.Wait()
	if progressChan != nil {
		close(progressChan)
		wg.Wait()
	}
	if err != nil {
		return nil, err
	}

	displayBatchResults(out, lines, opts.Quiet)

	failures := 0
	for _, line := range lines {
		if line.Err != nil {
			failures++
		}
	}
	logger.Info("batch completed",
		logging.Int("expressions", len(lines)),
		logging.Int("failures", failures),
		logging.Float64("seconds", time.Since(start).Seconds()))

	if !opts.Quiet {
		fmt.Fprintf(out, "\n%s%d/%d ok%s  %s(%s)%s\n",
			ui.ColorBold(), len(lines)-failures, len(lines), ui.ColorReset(),
			ui.ColorGrey(), format.FormatExecutionDuration(time.Since(start)), ui.ColorReset())
	}

	if opts.OutputFile != "" {
		if err := WriteBatchResults(opts.OutputFile, lines); err != nil {
			return lines, err
		}
		if !opts.Quiet {
			fmt.Fprintf(out, "%s✓ %s%s\n", ui.ColorGreen(), opts.OutputFile, ui.ColorReset())
		}
	}

	return lines, nil
}

// readExpressions collects the non-empty trimmed lines of in.
func readExpressions(in io.Reader) ([]string, error) {
	var expressions []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			expressions = append(expressions, line)
		}
	}
	return expressions, scanner.Err()
}

// displayBatchResults renders each outcome in input order.
func displayBatchResults(out io.Writer, lines []BatchLine, quiet bool) {
	for _, line := range lines {
		if line.Err != nil {
			if quiet {
				fmt.Fprintf(out, "error: %s\n", line.Err.Details)
			} else {
				DisplayError(out, line.Err)
			}
			continue
		}
		if quiet {
			fmt.Fprintln(out, line.Result.String())
		} else {
			fmt.Fprintf(out, "%s = %s%s%s\n",
				line.Expression, ui.ColorGreen(), line.Result.String(), ui.ColorReset())
		}
	}
}

// WriteBatchResults writes batch outcomes to a file, one line per input
// expression, with a small header identifying the run.
func WriteBatchResults(path string, lines []BatchLine) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return apperrors.WrapError(err, "creating output directory")
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.WrapError(err, "creating output file")
	}
	defer file.Close()

	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Expressions: %d\n\n", len(lines))

	for _, line := range lines {
		if line.Err != nil {
			fmt.Fprintf(file, "%s => %s: %s\n", line.Expression, line.Err.Code, line.Err.Details)
			continue
		}
		fmt.Fprintf(file, "%s => %s\n", line.Expression, line.Result.String())
	}
	return nil
}
