package exec

import "io"

// CommandConfig configures a command for execution
type CommandConfig struct {
	Name string
	Args []string

	// Env holds `KEY=VALUE` overrides. They are applied on top of the environment of the current process.
	Env []string
	Dir string

	// Nil streams are connected to the null device, unless they are later requested as pipes.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}
