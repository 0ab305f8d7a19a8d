package cli

import (
	"github.com/rwx-research/spawn-mocha/internal/errors"
	"github.com/rwx-research/spawn-mocha/internal/options"
)

// RunConfig holds the configuration for running a test suite (used by `Run`)
type RunConfig struct {
	// Options is the configuration record of the stage, including reserved options.
	Options options.Options

	// Paths are file paths or glob patterns, in the order they should be handed to the test runner.
	Paths []string

	// ReadStdin additionally reads newline-separated file paths from stdin, after Paths.
	ReadStdin bool

	// MetricsFile is an optional destination for a Prometheus text-file report of the run.
	MetricsFile string
}

// Validate checks the configuration for obvious mistakes.
func (rc RunConfig) Validate() error {
	for _, path := range rc.Paths {
		if path == "" {
			return errors.NewInputError("file paths cannot be empty")
		}
	}

	return nil
}
