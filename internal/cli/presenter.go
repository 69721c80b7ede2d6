// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their
// behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//   - Write* functions write data to files on the filesystem.

package cli

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mlavoie/calcli/internal/calc"
	"github.com/mlavoie/calcli/internal/format"
	"github.com/mlavoie/calcli/internal/locale"
	"github.com/mlavoie/calcli/internal/ui"
)

// DisplayResult renders a successful evaluation. In quiet mode only the raw
// result value is printed, one per line, suitable for scripting.
func DisplayResult(out io.Writer, result calc.Result, duration time.Duration, quiet bool) {
	if quiet {
		fmt.Fprintln(out, result.String())
		return
	}

	msgs := locale.Current()
	fmt.Fprintf(out, "= %s%s%s  %s(%s: %s)%s\n",
		ui.ColorGreen(), result.String(), ui.ColorReset(),
		ui.ColorGrey(), msgs.TimeLabel, format.FormatExecutionDuration(duration), ui.ColorReset())
}

// DisplayError renders a CalcError without losing the code, description and
// details distinction: a badge with the code and description, then the
// originating expression echoed back with a caret underline, then the full
// explanation.
func DisplayError(out io.Writer, calcErr *calc.CalcError) {
	fmt.Fprintf(out, "%s✗ [%s]%s %s%s%s\n",
		ui.ColorRed(), calcErr.Code, ui.ColorReset(),
		ui.ColorBold(), calcErr.Description, ui.ColorReset())

	if calcErr.Expression != "" {
		fmt.Fprintf(out, "    %s\n", calcErr.Expression)
		fmt.Fprintf(out, "    %s%s%s\n", ui.ColorRed(), FormatCaretUnderline(calcErr.Expression), ui.ColorReset())
	}

	fmt.Fprintf(out, "  %s%s%s\n", ui.ColorYellow(), calcErr.Details, ui.ColorReset())
}

// FormatCaretUnderline returns a row of carets as wide as the expression,
// used to underline the echoed input in error output.
func FormatCaretUnderline(expression string) string {
	return strings.Repeat("^", utf8.RuneCountInString(expression))
}
