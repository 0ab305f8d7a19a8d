//go:build integration

package integration_test

import (
	"path/filepath"
	"strings"

	"github.com/rwx-research/spawn-mocha/test/helpers"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("spawn-mocha run", func() {
	var (
		project  helpers.Project
		mochaBin string
	)

	BeforeEach(func() {
		dir, err := filepath.EvalSymlinks(GinkgoT().TempDir())
		Expect(err).ToNot(HaveOccurred())

		project = helpers.NewProject(dir)
		project.WriteFile(".spawn-mocha.yaml", "execPath: sh\nreporter: dot\n")
		project.WriteFile("test/a.js", "")
		project.WriteFile("test/b.js", "")

		mochaBin = filepath.Join(dir, "node_modules", "mocha", "bin", "mocha")
	})

	run := func(args ...string) spawnMochaResult {
		return runSpawnMocha(spawnMochaArgs{args: append([]string{"run"}, args...), dir: project.Dir})
	}

	It("runs all test files in a single mocha process", func() {
		result := run("test/a.js", "test/b.js")

		Expect(result.exitCode).To(Equal(0))
		Expect(result.stdout).To(ContainSubstring("mocha --reporter dot test/a.js test/b.js"))
		Expect(result.stdout).To(ContainSubstring("cwd " + project.Dir))
	})

	It("expands globs", func() {
		project.WriteFile("test/unit/nested/c.spec.js", "")
		project.WriteFile("test/unit/d.spec.js", "")

		result := run("test/**/*.spec.js")

		Expect(result.exitCode).To(Equal(0))
		Expect(result.stdout).To(ContainSubstring("test/unit/d.spec.js"))
		Expect(result.stdout).To(ContainSubstring("test/unit/nested/c.spec.js"))
		Expect(result.stdout).NotTo(ContainSubstring("test/a.js"))
	})

	It("mirrors the exit code of mocha", func() {
		result := run("--env", "MOCHA_EXIT_CODE=3", "test/a.js")

		Expect(result.exitCode).To(Equal(3))
		Expect(result.stderr).To(ContainSubstring("mocha exited with code 3"))
	})

	It("runs in the configured working directory", func() {
		result := run("--cwd", "test", "a.js")

		Expect(result.exitCode).To(Equal(0))
		Expect(result.stdout).To(ContainSubstring("cwd " + filepath.Join(project.Dir, "test")))
	})

	It("writes stdout & stderr of mocha to the output file", func() {
		result := run("--output", "mocha.log", "--env", "MOCHA_STDERR=deprecated", "test/a.js")

		Expect(result.exitCode).To(Equal(0))
		Expect(result.stdout).NotTo(ContainSubstring("mocha --reporter"))

		output := project.ReadFile("mocha.log")
		Expect(output).To(ContainSubstring("mocha --reporter dot test/a.js"))
		Expect(output).To(ContainSubstring("deprecated"))
	})

	It("wraps mocha with nyc", func() {
		result := run("--nyc", "test/a.js")

		Expect(result.exitCode).To(Equal(0))
		Expect(result.stdout).To(ContainSubstring("nyc " + mochaBin + " --reporter dot test/a.js"))
		Expect(result.stdout).To(ContainSubstring("mocha --reporter dot test/a.js"))
	})

	It("reads file paths from stdin", func() {
		result := runSpawnMocha(spawnMochaArgs{
			args:  []string{"run", "--stdin", "test/a.js"},
			dir:   project.Dir,
			stdin: strings.NewReader("test/b.js\n"),
		})

		Expect(result.exitCode).To(Equal(0))
		Expect(result.stdout).To(ContainSubstring("mocha --reporter dot test/a.js test/b.js"))
	})

	It("doesn't start mocha without any test files", func() {
		result := run()

		Expect(result.exitCode).To(Equal(0))
		Expect(result.stdout).NotTo(ContainSubstring("mocha"))
	})

	It("writes a run report", func() {
		result := run("--metrics-file", "report.prom", "--env", "MOCHA_EXIT_CODE=2", "test/a.js")

		Expect(result.exitCode).To(Equal(2))

		report := project.ReadFile("report.prom")
		Expect(report).To(ContainSubstring("spawn_mocha_files 1"))
		Expect(report).To(ContainSubstring("spawn_mocha_exit_code 2"))
		Expect(report).To(ContainSubstring("spawn_mocha_success 0"))
	})

	It("fails when mocha isn't installed", func() {
		empty, err := filepath.EvalSymlinks(GinkgoT().TempDir())
		Expect(err).ToNot(HaveOccurred())
		helpers.Project{Dir: empty}.WriteFile("test/a.js", "")

		result := runSpawnMocha(spawnMochaArgs{args: []string{"run", "test/a.js"}, dir: empty})

		Expect(result.exitCode).To(Equal(1))
		Expect(result.stderr).To(ContainSubstring("unable to locate"))
	})

	It("rejects an invalid config file", func() {
		project.WriteFile(".spawn-mocha.yaml", "nyc: true\nistanbul: true\n")

		result := run("test/a.js")

		Expect(result.exitCode).To(Equal(1))
		Expect(result.stderr).To(ContainSubstring("cannot be used at the same time"))
	})
})

var _ = Describe("spawn-mocha version", func() {
	It("prints the version", func() {
		result := runSpawnMocha(spawnMochaArgs{args: []string{"version"}})

		Expect(result.exitCode).To(Equal(0))
		Expect(result.stdout).NotTo(BeEmpty())
	})
})
