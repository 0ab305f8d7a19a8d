// Package fs is a thin wrapper around potential file-systems. By default, it is an abstraction over the `os` package
// from the standard library.
package fs

import (
	"os"
	"sort"
	"strings"

	"github.com/yargevad/filepathx"

	"github.com/rwx-research/spawn-mocha/internal/errors"
)

// Local is a local file-system. It wraps the default `os` package
type Local struct{}

// Create creates or truncates the named file.
func (l Local) Create(filePath string) (File, error) {
	f, err := os.Create(filePath)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return f, nil
}

// Open opens a file for further processing
func (l Local) Open(name string) (File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return f, nil
}

// Glob expands a pattern, including `**` for recursive matches. The results are sorted.
func (l Local) Glob(pattern string) ([]string, error) {
	paths, err := filepathx.Glob(pattern)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	sort.Strings(paths)
	return paths, nil
}

// GlobMany expands several patterns. The matches of each pattern are sorted, patterns keep their order and duplicate
// paths only appear at their first position. Patterns without any glob meta-characters are returned verbatim, even if
// they don't exist - it's up to the consumer to complain about them.
func (l Local) GlobMany(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	paths := make([]string, 0, len(patterns))

	for _, pattern := range patterns {
		var matches []string

		if hasMeta(pattern) {
			expanded, err := l.Glob(pattern)
			if err != nil {
				return nil, errors.Wrapf(err, "unable to expand %q", pattern)
			}
			matches = expanded
		} else {
			matches = []string{pattern}
		}

		for _, match := range matches {
			if _, ok := seen[match]; ok {
				continue
			}

			seen[match] = struct{}{}
			paths = append(paths, match)
		}
	}

	return paths, nil
}

// Stat returns the file info of the named file.
func (l Local) Stat(name string) (os.FileInfo, error) {
	info, err := os.Stat(name)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return info, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, `*?[\`)
}
