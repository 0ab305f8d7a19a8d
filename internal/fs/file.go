package fs

import "io"

// File is an opened file. Output sinks are written to and closed once the test runner exited; package manifests are
// read and closed right away.
type File interface {
	io.ReadWriteCloser
	Name() string
}
