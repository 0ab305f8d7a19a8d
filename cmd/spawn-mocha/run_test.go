package main_test

import (
	"os"
	"path/filepath"

	spawnmocha "github.com/rwx-research/spawn-mocha/cmd/spawn-mocha"
	"github.com/rwx-research/spawn-mocha/internal/errors"
	"github.com/rwx-research/spawn-mocha/internal/options"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RunFlags", func() {
	var record options.Options

	BeforeEach(func() {
		record = options.New("bin", "./runner.js", "reporter", "dot")
	})

	It("leaves the record alone without any flags", func() {
		applied, err := spawnmocha.RunFlags{}.Apply(record)

		Expect(err).NotTo(HaveOccurred())
		Expect(applied).To(Equal(record))
	})

	It("overrides reserved keys in place", func() {
		applied, err := spawnmocha.RunFlags{Bin: "./other.js", Output: "mocha.log"}.Apply(record)

		Expect(err).NotTo(HaveOccurred())
		Expect(applied.Keys()).To(Equal([]string{"bin", "reporter", "output"}))

		bin, _ := applied.Get("bin")
		Expect(bin).To(Equal("./other.js"))
		original, _ := record.Get("bin")
		Expect(original).To(Equal("./runner.js"))
	})

	It("merges environment variables over the record", func() {
		record = record.Set("env", options.New("NODE_ENV", "test", "DEBUG", "app"))

		applied, err := spawnmocha.RunFlags{Env: []string{"DEBUG=*", "TZ=UTC", "EMPTY="}}.Apply(record)

		Expect(err).NotTo(HaveOccurred())
		env, _ := applied.Get("env")
		Expect(env).To(Equal(options.New("NODE_ENV", "test", "DEBUG", "*", "TZ", "UTC", "EMPTY", "")))
	})

	It("merges environment variables from an env file", func() {
		envFile := filepath.Join(GinkgoT().TempDir(), ".env.test")
		Expect(os.WriteFile(envFile, []byte("# test env\nTZ=Europe/Berlin\nDEBUG=\"app:*\"\n"), 0o600)).To(Succeed())
		record = record.Set("env", options.New("NODE_ENV", "test"))

		applied, err := spawnmocha.RunFlags{EnvFile: envFile, Env: []string{"TZ=UTC"}}.Apply(record)

		Expect(err).NotTo(HaveOccurred())
		env, _ := applied.Get("env")
		Expect(env).To(Equal(options.New("NODE_ENV", "test", "DEBUG", "app:*", "TZ", "UTC")))
	})

	It("fails on a missing env file", func() {
		_, err := spawnmocha.RunFlags{EnvFile: filepath.Join(GinkgoT().TempDir(), "missing")}.Apply(record)

		_, ok := errors.AsConfigurationError(err)
		Expect(ok).To(BeTrue())
	})

	It("rejects malformed environment variables", func() {
		_, err := spawnmocha.RunFlags{Env: []string{"DEBUG"}}.Apply(record)

		_, ok := errors.AsInputError(err)
		Expect(ok).To(BeTrue())
	})

	It("rejects an env flag when the record's env isn't a mapping", func() {
		record = record.Set("env", "NODE_ENV=test")

		_, err := spawnmocha.RunFlags{Env: []string{"DEBUG=*"}}.Apply(record)

		_, ok := errors.AsConfigurationError(err)
		Expect(ok).To(BeTrue())
	})

	Describe("--nyc", func() {
		It("enables nyc", func() {
			applied, err := spawnmocha.RunFlags{NYC: true}.Apply(record)

			Expect(err).NotTo(HaveOccurred())
			nyc, _ := applied.Get("nyc")
			Expect(nyc).To(BeTrue())
		})

		It("keeps an existing coverage configuration", func() {
			record = record.Set("istanbul", true)

			applied, err := spawnmocha.RunFlags{NYC: true}.Apply(record)

			Expect(err).NotTo(HaveOccurred())
			Expect(applied.Has("nyc")).To(BeFalse())
		})
	})
})
