// Package helpers sets up throwaway node projects for the integration tests.
package helpers

import (
	"os"
	"path/filepath"

	"github.com/onsi/gomega"
)

// fakeMocha stands in for mocha. It prints its arguments & working directory, and exits with $MOCHA_EXIT_CODE.
const fakeMocha = `#!/bin/sh
echo "mocha $*"
echo "cwd $(pwd)"
if [ -n "$MOCHA_STDERR" ]; then
  echo "$MOCHA_STDERR" >&2
fi
exit "${MOCHA_EXIT_CODE:-0}"
`

// fakeNYC prints its arguments and hands over to the wrapped test runner.
const fakeNYC = `#!/bin/sh
echo "nyc $*"
while [ $# -gt 0 ]; do
  case "$1" in
    -*) shift ;;
    *) break ;;
  esac
done
exec sh "$@"
`

// Project is a directory laid out like a node project with mocha & nyc installed.
type Project struct {
	Dir string
}

// NewProject creates a project in dir.
func NewProject(dir string) Project {
	p := Project{Dir: dir}

	p.WriteFile(filepath.Join("node_modules", "mocha", "bin", "mocha"), fakeMocha)
	p.WriteFile(filepath.Join("node_modules", "nyc", "package.json"), `{"name": "nyc", "bin": {"nyc": "./bin/nyc.js"}}`)
	p.WriteFile(filepath.Join("node_modules", "nyc", "bin", "nyc.js"), fakeNYC)

	return p
}

// WriteFile writes content to a path relative to the project, creating any missing directories.
func (p Project) WriteFile(name, content string) string {
	path := filepath.Join(p.Dir, name)

	gomega.Expect(os.MkdirAll(filepath.Dir(path), 0o755)).To(gomega.Succeed())
	gomega.Expect(os.WriteFile(path, []byte(content), 0o600)).To(gomega.Succeed())

	return path
}

// ReadFile returns the content of a file relative to the project.
func (p Project) ReadFile(name string) string {
	content, err := os.ReadFile(filepath.Join(p.Dir, name))
	gomega.Expect(err).ToNot(gomega.HaveOccurred())

	return string(content)
}
