package stage

import (
	"github.com/rwx-research/spawn-mocha/internal/config"
	"github.com/rwx-research/spawn-mocha/internal/exec"
	"github.com/rwx-research/spawn-mocha/internal/resolver"
)

// TaskRunner is an abstraction over various task-runners / execution environments.
// They are expected to implement the `exec.Command` interface in turn, which is mapped to the Command type from
// `os/exec`
type TaskRunner interface {
	NewCommand(cfg exec.CommandConfig) (exec.Command, error)
	GetExitStatusFromError(error) (int, error)
}

// BinaryResolver builds the command line for a set of files.
type BinaryResolver interface {
	Resolve(cfg config.Config, files []string) (resolver.Invocation, error)
}
