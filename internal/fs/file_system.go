package fs

import (
	"os"
)

// FileSystem is implemented by `Local` and by the mocks used in tests.
type FileSystem interface {
	// Create truncates or creates a file for writing.
	Create(filePath string) (File, error)
	Open(name string) (File, error)
	// Glob expands a single pattern, `**` matches any number of directories.
	Glob(pattern string) ([]string, error)
	// GlobMany expands patterns in order. Patterns without glob characters are returned verbatim, even if the file
	// doesn't exist.
	GlobMany(patterns []string) ([]string, error)
	Stat(name string) (os.FileInfo, error)
}
