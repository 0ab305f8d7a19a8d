// Package exec exposes task runners that can execute arbitrary commands. This is mostly a thin wrapper around `os/exec`
// plus a mocked implementation in `internal/mocks`.
package exec

import (
	"os/exec"

	"github.com/rwx-research/spawn-mocha/internal/errors"
)

// Local is a local executioner. It wraps `os/exec`
type Local struct{}

// NewCommand returns a new command that can then be executed.
func (l Local) NewCommand(cfg CommandConfig) (Command, error) {
	if cfg.Name == "" {
		return nil, errors.NewInternalError("no executable was provided")
	}

	//nolint:gosec // Spawning a user-configurable sub-process is expected here.
	cmd := exec.Command(cfg.Name, cfg.Args...)

	cmd.Dir = cfg.Dir
	cmd.Stdin = cfg.Stdin
	cmd.Stderr = cfg.Stderr
	cmd.Stdout = cfg.Stdout

	if len(cfg.Env) > 0 {
		// Later entries take precedence, so the overrides win over the inherited environment
		cmd.Env = append(cmd.Environ(), cfg.Env...)
	}

	return cmd, nil
}

// GetExitStatusFromError extracts the exit code from an error
func (l Local) GetExitStatusFromError(err error) (int, error) {
	var exitError *exec.ExitError
	if errors.As(err, &exitError) {
		return exitError.ExitCode(), nil
	}

	return 0, errors.NewInternalError("Expected error to be of type exec.ExitError, received %T", err)
}
