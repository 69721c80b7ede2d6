package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	apperrors "github.com/mlavoie/calcli/internal/errors"
	"github.com/mlavoie/calcli/internal/logging"
	"github.com/mlavoie/calcli/internal/metrics"
)

// runSession feeds a scripted input to a quiet REPL and returns its output
// and the error from Start.
func runSession(t *testing.T, input string) (string, error) {
	t.Helper()
	usePlainOutput(t)

	repl := NewREPL(REPLConfig{Quiet: true}, metrics.NewRecorder(), logging.NopLogger{})
	repl.SetInput(strings.NewReader(input))
	var buf bytes.Buffer
	repl.SetOutput(&buf)

	err := repl.Start()
	return buf.String(), err
}

func TestREPLEvaluatesExpressions(t *testing.T) {
	out, err := runSession(t, "2 + 3\n10 / 4\nexit\n")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if out != "5\n2.5\n" {
		t.Errorf("output = %q, want %q", out, "5\n2.5\n")
	}
}

func TestREPLSurvivesCalculatorErrors(t *testing.T) {
	out, err := runSession(t, "5 / 0\n2 + 2\nexit\n")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !strings.Contains(out, "EVALUATION_ERROR") {
		t.Errorf("error badge missing from output:\n%s", out)
	}
	if !strings.Contains(out, "division par zéro") {
		t.Errorf("error details missing from output:\n%s", out)
	}
	if !strings.HasSuffix(out, "4\n") {
		t.Errorf("session did not continue past the error:\n%s", out)
	}
}

func TestREPLExitsOnEOF(t *testing.T) {
	out, err := runSession(t, "1 + 1\n")
	if err != nil {
		t.Fatalf("Start() error = %v, want nil on EOF", err)
	}
	if out != "2\n" {
		t.Errorf("output = %q, want %q", out, "2\n")
	}
}

func TestREPLEvaluatesFinalLineWithoutNewline(t *testing.T) {
	// A last line not terminated by a newline is still evaluated before the
	// EOF exit.
	out, err := runSession(t, "3 * 3")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if out != "9\n" {
		t.Errorf("output = %q, want %q", out, "9\n")
	}
}

func TestREPLIgnoresWhitespaceFinalLineAtEOF(t *testing.T) {
	// A trailing line of only whitespace with no newline is ordinary input:
	// the session ends cleanly with no output and no panic.
	tests := []struct {
		name  string
		input string
	}{
		{"spaces", "   "},
		{"tab", "\t"},
		{"expression then spaces", "2 + 2\n   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runSession(t, tt.input)
			if err != nil {
				t.Fatalf("Start() error = %v", err)
			}
			if strings.Contains(out, "SYNTAX_ERROR") {
				t.Errorf("whitespace line was evaluated:\n%s", out)
			}
		})
	}
}

func TestREPLSkipsBlankLines(t *testing.T) {
	out, err := runSession(t, "\n   \n2 + 2\nexit\n")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if out != "4\n" {
		t.Errorf("output = %q, want %q", out, "4\n")
	}
}

func TestREPLQuitAliases(t *testing.T) {
	for _, alias := range []string{"exit", "quit", "quitter", "q", "QUIT"} {
		t.Run(alias, func(t *testing.T) {
			out, err := runSession(t, alias+"\nshould not be reached\n")
			if err != nil {
				t.Fatalf("Start() error = %v", err)
			}
			if strings.Contains(out, "SYNTAX_ERROR") {
				t.Errorf("session kept running past %q:\n%s", alias, out)
			}
		})
	}
}

func TestREPLLastCommand(t *testing.T) {
	t.Run("before any result", func(t *testing.T) {
		out, err := runSession(t, "last\nexit\n")
		if err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		if !strings.Contains(out, "Aucun résultat précédent") {
			t.Errorf("missing no-result message:\n%s", out)
		}
	})

	t.Run("after a result", func(t *testing.T) {
		out, err := runSession(t, "6 * 7\nlast\nexit\n")
		if err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		if out != "42\n42\n" {
			t.Errorf("output = %q, want %q", out, "42\n42\n")
		}
	})

	t.Run("errors do not overwrite the last result", func(t *testing.T) {
		out, err := runSession(t, "6 * 7\n1 / 0\nlast\nexit\n")
		if err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		if !strings.HasSuffix(out, "42\n") {
			t.Errorf("last should still show 42:\n%s", out)
		}
	})
}

func TestREPLLangCommand(t *testing.T) {
	t.Run("switches the catalog", func(t *testing.T) {
		out, err := runSession(t, "lang en\n3 = 3\nexit\n")
		if err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		if out != "Yes\n" {
			t.Errorf("output = %q, want %q", out, "Yes\n")
		}
	})

	t.Run("rejects unknown language", func(t *testing.T) {
		out, err := runSession(t, "lang de\n3 = 3\nexit\n")
		if err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		if !strings.Contains(out, "Langue inconnue") {
			t.Errorf("missing unknown-language message:\n%s", out)
		}
		if !strings.Contains(out, "Oui") {
			t.Errorf("catalog should still be French:\n%s", out)
		}
	})
}

func TestREPLOpsCommand(t *testing.T) {
	out, err := runSession(t, "ops\nexit\n")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	for _, op := range []string{"+", "-", "*", "/", "^", "="} {
		if !strings.Contains(out, op) {
			t.Errorf("operator %q missing from ops listing:\n%s", op, out)
		}
	}
}

func TestREPLStatusCommand(t *testing.T) {
	out, err := runSession(t, "status\nexit\n")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !strings.Contains(out, "Configuration courante") {
		t.Errorf("status header missing:\n%s", out)
	}
	if !strings.Contains(out, "Lang:") || !strings.Contains(out, "Heap:") {
		t.Errorf("status fields missing:\n%s", out)
	}
}

func TestREPLBannerInDecoratedMode(t *testing.T) {
	usePlainOutput(t)

	repl := NewREPL(REPLConfig{}, metrics.NewRecorder(), logging.NopLogger{})
	repl.SetInput(strings.NewReader("exit\n"))
	var buf bytes.Buffer
	repl.SetOutput(&buf)

	if err := repl.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Calculatrice interactive") {
		t.Errorf("banner missing:\n%s", out)
	}
	if !strings.Contains(out, "calc> ") {
		t.Errorf("prompt missing:\n%s", out)
	}
	if !strings.Contains(out, "Au revoir !") {
		t.Errorf("goodbye missing:\n%s", out)
	}
}

// failingReader returns an error that is not io.EOF.
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("terminal went away")
}

func TestREPLReadFailure(t *testing.T) {
	usePlainOutput(t)

	repl := NewREPL(REPLConfig{Quiet: true}, metrics.NewRecorder(), logging.NopLogger{})
	repl.SetInput(failingReader{})
	var out, errOut bytes.Buffer
	repl.SetOutput(&out)
	repl.SetErrorOutput(&errOut)

	err := repl.Start()
	var loopErr apperrors.ReadLoopError
	if !errors.As(err, &loopErr) {
		t.Fatalf("Start() error = %v, want ReadLoopError", err)
	}
	if loopErr.Cause == nil || loopErr.Cause.Error() != "terminal went away" {
		t.Errorf("cause = %v", loopErr.Cause)
	}

	// The diagnostic goes to the error writer, not the result stream.
	if out.Len() != 0 {
		t.Errorf("result stream received diagnostics: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "terminal went away") {
		t.Errorf("error writer missing the read failure: %q", errOut.String())
	}
}
