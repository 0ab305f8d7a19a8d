package mocks

import (
	"strings"
)

// File is a mocked implementation of `fs.File`. Reads are served by the embedded `strings.Reader`, writes end up in
// the embedded `strings.Builder`.
type File struct {
	*strings.Builder
	*strings.Reader

	Closed bool

	MockClose func() error
	MockName  func() string
}

// NewFile returns a file that reads content and records writes.
func NewFile(content string) *File {
	return &File{Builder: new(strings.Builder), Reader: strings.NewReader(content)}
}

// Close either calls the configured mock of itself or returns nil. Either way the file is marked as closed.
func (f *File) Close() error {
	f.Closed = true

	if f.MockClose != nil {
		return f.MockClose()
	}

	return nil
}

// Written returns everything that was written to the file so far.
func (f *File) Written() string {
	return f.Builder.String()
}

// Name either calls the configured mock of itself or returns an empty string
func (f *File) Name() string {
	if f.MockName != nil {
		return f.MockName()
	}

	return ""
}
