package exec

import "io"

// Command is a child process as seen by a stage. It mirrors the subset of `exec.Cmd` from the `os/exec` package that
// is needed to start a process, capture its output through pipes and wait for it to exit.
//
// The pipes need to be requested before calling Start and fully read before calling Wait.
type Command interface {
	StdoutPipe() (io.ReadCloser, error)
	StderrPipe() (io.ReadCloser, error)
	Start() error
	Wait() error
}
