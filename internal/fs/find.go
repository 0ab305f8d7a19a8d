package fs

import (
	"os"
	"path/filepath"

	"github.com/rwx-research/spawn-mocha/internal/errors"
)

// FindInParentDir starts at dir and walks up to the root of the file-system, returning the first existing file at rel.
// Directories never match. If nothing is found, the returned error wraps `os.ErrNotExist`.
func FindInParentDir(fileSystem FileSystem, dir, rel string) (string, error) {
	base := filepath.Clean(dir)

	for {
		match := filepath.Join(base, rel)

		info, err := fileSystem.Stat(match)
		if err == nil && !info.IsDir() {
			return match, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", errors.WithStack(err)
		}

		parent := filepath.Dir(base)
		if parent == base {
			return "", errors.WithStack(os.ErrNotExist)
		}
		base = parent
	}
}
