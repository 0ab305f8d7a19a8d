package cli

import (
	"fmt"
	"io"

	spawnmocha "github.com/rwx-research/spawn-mocha"
)

// PrintVersion writes the version of this binary to w.
func PrintVersion(w io.Writer) error {
	_, err := fmt.Fprintln(w, spawnmocha.Version)
	return err
}
