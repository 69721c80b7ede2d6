package app

import (
	"fmt"
	"io"
	"runtime"
)

// Version is the application version. It is overridable at build time with
// -ldflags "-X github.com/mlavoie/calcli/internal/app.Version=v1.2.3".
var Version = "dev"

// HasVersionFlag checks whether the version flag appears in the arguments.
// It is checked before full flag parsing so that --version works even
// alongside otherwise invalid flags.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-V", "-version", "--version":
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "calcli %s (%s)\n", Version, runtime.Version())
}
