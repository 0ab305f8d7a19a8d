//go:build mage
// +build mage

package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/magefile/mage/sh"
)

const binary = "spawn-mocha"

// Default is the default build target.
var Default = Build

// Build builds the spawn-mocha CLI. Set VERSION to stamp a release version into the binary.
func Build(ctx context.Context) error {
	ldflags := make([]string, 0, 2)
	if extra := os.Getenv("LDFLAGS"); extra != "" {
		ldflags = append(ldflags, extra)
	}

	if version := os.Getenv("VERSION"); version != "" {
		ldflags = append(ldflags, fmt.Sprintf("-X github.com/rwx-research/spawn-mocha.Version=%s", version))
	}

	args := []string{"-o", binary, "./cmd/spawn-mocha"}
	if len(ldflags) > 0 {
		args = append([]string{"-ldflags", strings.Join(ldflags, " ")}, args...)
	}

	if cgoEnabled := os.Getenv("CGO_ENABLED"); cgoEnabled == "0" {
		args = append([]string{"-a"}, args...)
	}

	return sh.RunV("go", append([]string{"build"}, args...)...)
}

// Clean removes any generated artifacts from the repository.
func Clean(ctx context.Context) error {
	return sh.Rm("./" + binary)
}

// Lint runs the linter & performs static-analysis checks.
func Lint(ctx context.Context) error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Test executes the test-suite of spawn-mocha. Set REPORT to write a JUnit report.
func Test(ctx context.Context) error {
	if report := os.Getenv("REPORT"); report != "" {
		return sh.RunV("ginkgo", "-p", "--junit-report=report.xml", "./...")
	}

	if _, err := exec.LookPath("ginkgo"); err != nil {
		return sh.RunV("go", "test", "./...")
	}

	return sh.RunV("ginkgo", "-p", "./...")
}

// IntegrationTest builds spawn-mocha and runs it against throwaway node projects.
func IntegrationTest(ctx context.Context) error {
	if err := Build(ctx); err != nil {
		return err
	}

	return sh.RunV("go", "test", "-tags", "integration", "./test/...")
}
