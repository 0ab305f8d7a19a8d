package mocks

import (
	"io/fs"
	"time"
)

// FileInfo is a mocked implementation of `os.FileInfo`. It describes either a regular file or, with Dir set, a
// directory. Permission bits are fixed.
type FileInfo struct {
	Dir      bool
	FileName string
	FileSize int64
}

// Mode returns `fs.ModeDir` for directories, a regular file mode otherwise.
func (f FileInfo) Mode() fs.FileMode {
	if f.Dir {
		return fs.ModeDir | 0o755
	}

	return 0o644
}

func (f FileInfo) IsDir() bool {
	return f.Dir
}

// ModTime always returns the zero time.
func (f FileInfo) ModTime() time.Time {
	return time.Time{}
}

func (f FileInfo) Name() string {
	return f.FileName
}

func (f FileInfo) Size() int64 {
	return f.FileSize
}

// Sys always returns nil.
func (f FileInfo) Sys() any {
	return nil
}
