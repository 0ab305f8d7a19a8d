// Package main holds the command line interface for spawn-mocha. The package itself is mainly concerned with
// configuring the necessary options before passing control to `internal/cli`, which holds the business logic itself.
package main

import (
	"fmt"
	"os"

	"github.com/rwx-research/spawn-mocha/internal/errors"
)

func main() {
	if len(initializationErrors) > 0 {
		for _, err := range initializationErrors {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}

	// This error is mainly used to communicate the exit code of the test runner. Anything else is printed here since
	// cobra is configured to stay silent.
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errors.WithDecoration(err))

		if e, ok := errors.AsExecutionError(err); ok {
			os.Exit(e.Code)
		}
		os.Exit(1)
	}
}
