// Package resolver decides which executable a stage runs and how the test runner is wrapped by a coverage tool.
package resolver

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/rwx-research/spawn-mocha/internal/argv"
	"github.com/rwx-research/spawn-mocha/internal/config"
	"github.com/rwx-research/spawn-mocha/internal/errors"
	"github.com/rwx-research/spawn-mocha/internal/fs"
)

const nodeModules = "node_modules"

// Invocation is a fully resolved command line, minus the interpreter.
type Invocation struct {
	Bin  string
	Args []string
}

// Resolver locates the test runner and coverage binaries.
type Resolver struct {
	FileSystem fs.FileSystem

	// WorkingDirectory is where the search for `node_modules` starts unless the stage configures its own cwd.
	WorkingDirectory string

	// Extension is appended to default binary locations. Explicitly configured binaries are used verbatim.
	Extension string
}

// Resolve returns the invocation for the given files. The returned arguments always end with files, in order.
func (r Resolver) Resolve(cfg config.Config, files []string) (Invocation, error) {
	runnerBin := cfg.Bin
	if runnerBin == "" {
		script := "mocha"
		if cfg.Coverage != nil && cfg.Coverage.Tool == config.CoverageToolIstanbul {
			// istanbul needs to instrument the process running the tests, so it can't be the forking `mocha` wrapper
			script = "_mocha"
		}

		bin, err := r.locate("mocha", filepath.Join("bin", script), cfg.Cwd)
		if err != nil {
			return Invocation{}, errors.WithStack(err)
		}
		runnerBin = bin
	}

	runnerArgs := argv.Serialize(cfg.Flags)

	if cfg.Coverage == nil {
		return Invocation{Bin: runnerBin, Args: concat(runnerArgs, files)}, nil
	}

	coverageBin := cfg.Coverage.Bin
	if coverageBin == "" {
		bin, err := r.locatePackageBin(string(cfg.Coverage.Tool), cfg.Cwd)
		if err != nil {
			return Invocation{}, errors.WithStack(err)
		}
		coverageBin = bin
	}

	coverageArgs := argv.Serialize(cfg.Coverage.Flags)

	var args []string
	switch cfg.Coverage.Tool {
	case config.CoverageToolIstanbul:
		args = concat([]string{"cover"}, coverageArgs, []string{"--", runnerBin}, runnerArgs, files)
	default:
		args = concat(coverageArgs, []string{runnerBin}, runnerArgs, files)
	}

	return Invocation{Bin: coverageBin, Args: args}, nil
}

// locate finds `node_modules/<pkg>/<rel>` in the search directory or any of its parents.
func (r Resolver) locate(pkg, rel, cwd string) (string, error) {
	candidate, err := r.findInParentDir(filepath.Join(nodeModules, pkg, rel+r.Extension), cwd)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", errors.NewConfigurationError(
				"unable to locate %q - make sure %q is installed or configure %q explicitly", rel, pkg, config.KeyBin,
			)
		}

		return "", errors.WithStack(err)
	}

	return candidate, nil
}

// locatePackageBin finds a package's main executable through the `bin` entry of its package.json.
func (r Resolver) locatePackageBin(pkg, cwd string) (string, error) {
	manifestPath, err := r.findInParentDir(filepath.Join(nodeModules, pkg, "package.json"), cwd)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", errors.NewConfigurationError(
				"unable to locate %q - make sure it is installed or configure its %q explicitly", pkg, config.KeyBin,
			)
		}

		return "", errors.WithStack(err)
	}

	fd, err := r.FileSystem.Open(manifestPath)
	if err != nil {
		return "", errors.NewSystemError("unable to open %q: %s", manifestPath, err)
	}
	defer fd.Close()

	rel, err := packageBin(fd, pkg)
	if err != nil {
		return "", errors.Wrapf(err, "unable to read %q", manifestPath)
	}

	return filepath.Join(filepath.Dir(manifestPath), rel+r.Extension), nil
}

type packageManifest struct {
	Bin json.RawMessage `json:"bin"`
}

// packageBin extracts the executable of pkg from a package.json. `bin` is either a single path or a mapping from
// command names to paths.
func packageBin(r io.Reader, pkg string) (string, error) {
	var manifest packageManifest
	if err := json.NewDecoder(r).Decode(&manifest); err != nil {
		return "", errors.NewConfigurationError("malformed package.json: %s", err)
	}

	if len(manifest.Bin) == 0 {
		return "", errors.NewConfigurationError("package.json of %q does not declare a binary", pkg)
	}

	var single string
	if err := json.Unmarshal(manifest.Bin, &single); err == nil && single != "" {
		return filepath.FromSlash(single), nil
	}

	var named map[string]string
	if err := json.Unmarshal(manifest.Bin, &named); err != nil {
		return "", errors.NewConfigurationError("unexpected \"bin\" in package.json of %q: %s", pkg, err)
	}

	bin, ok := named[pkg]
	if !ok || bin == "" {
		return "", errors.NewConfigurationError("package.json of %q does not declare a %q binary", pkg, pkg)
	}

	return filepath.FromSlash(bin), nil
}

// findInParentDir searches rel from the stage's working directory upwards.
func (r Resolver) findInParentDir(rel, cwd string) (string, error) {
	base := r.WorkingDirectory
	if cwd != "" {
		if filepath.IsAbs(cwd) {
			base = cwd
		} else {
			base = filepath.Join(base, cwd)
		}
	}

	return fs.FindInParentDir(r.FileSystem, base, rel)
}

func concat(parts ...[]string) []string {
	size := 0
	for _, part := range parts {
		size += len(part)
	}

	out := make([]string, 0, size)
	for _, part := range parts {
		out = append(out, part...)
	}

	return out
}
