package main

import (
	"context"
	"os"

	"github.com/mlavoie/calcli/internal/app"
	apperrors "github.com/mlavoie/calcli/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		// Anything New rejects is a configuration problem: bad flag, bad
		// value, conflicting modes.
		os.Exit(apperrors.ExitErrorConfig)
	}

	exitCode := application.Run(context.Background(), os.Stdout)
	os.Exit(exitCode)
}
