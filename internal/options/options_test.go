package options_test

import (
	"github.com/rwx-research/spawn-mocha/internal/errors"
	"github.com/rwx-research/spawn-mocha/internal/options"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Options", func() {
	Describe("New", func() {
		It("keeps the order of its arguments", func() {
			opts := options.New("foo", "bar", "b", []any{"oof", "rab"}, "S", true)
			Expect(opts.Keys()).To(Equal([]string{"foo", "b", "S"}))
		})

		It("panics on an odd number of arguments", func() {
			Expect(func() { options.New("foo") }).To(Panic())
		})
	})

	Describe("Set", func() {
		It("replaces existing keys in place", func() {
			opts := options.New("a", 1, "b", 2).Set("a", 3)
			Expect(opts).To(Equal(options.Options{{Key: "a", Value: 3}, {Key: "b", Value: 2}}))
		})

		It("appends new keys", func() {
			opts := options.New("a", 1).Set("c", "x")
			Expect(opts.Keys()).To(Equal([]string{"a", "c"}))
		})

		It("does not modify the receiver", func() {
			original := options.New("a", 1)
			_ = original.Set("a", 2)

			value, _ := original.Get("a")
			Expect(value).To(Equal(1))
		})
	})

	Describe("Without", func() {
		It("removes the given keys and keeps the remaining order", func() {
			opts := options.New("bin", "mocha", "R", "spec", "env", nil, "bail", true)
			Expect(opts.Without("bin", "env").Keys()).To(Equal([]string{"R", "bail"}))
		})
	})

	Describe("Decode", func() {
		It("preserves the order of the document", func() {
			opts, err := options.Decode([]byte(`
zeta: 1
alpha: spec
maxOldSpaceSize: 4096
b: [oof, rab]
T: false
U: ~
`))
			Expect(err).ToNot(HaveOccurred())
			Expect(opts).To(Equal(options.Options{
				{Key: "zeta", Value: 1},
				{Key: "alpha", Value: "spec"},
				{Key: "maxOldSpaceSize", Value: 4096},
				{Key: "b", Value: []any{"oof", "rab"}},
				{Key: "T", Value: false},
				{Key: "U", Value: nil},
			}))
		})

		It("decodes nested mappings into records", func() {
			opts, err := options.Decode([]byte(`
nyc:
  reporter: [lcov, text-summary]
  bin: ./nyc
`))
			Expect(err).ToNot(HaveOccurred())

			nyc, ok := opts.Get("nyc")
			Expect(ok).To(BeTrue())
			Expect(nyc).To(Equal(options.New("reporter", []any{"lcov", "text-summary"}, "bin", "./nyc")))
		})

		It("treats an empty document as an empty record", func() {
			opts, err := options.Decode([]byte(""))
			Expect(err).ToNot(HaveOccurred())
			Expect(opts).To(BeEmpty())
		})

		It("rejects documents that are not mappings", func() {
			_, err := options.Decode([]byte("- foo\n- bar\n"))
			Expect(err).To(HaveOccurred())

			_, ok := errors.AsConfigurationError(err)
			Expect(ok).To(BeTrue())
		})

		It("rejects nested sequences", func() {
			_, err := options.Decode([]byte("b: [[1, 2]]\n"))
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring(`invalid value for "b"`))
		})

		It("rejects malformed YAML", func() {
			_, err := options.Decode([]byte("foo: [bar"))
			Expect(err).To(HaveOccurred())
		})
	})
})
