package fs_test

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rwx-research/spawn-mocha/internal/fs"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("fs.Local", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()

		for _, name := range []string{"a.test.js", "b.test.js", "nested/c.test.js", "nested/deeper/d.test.js", "x.js"} {
			path := filepath.Join(dir, name)
			Expect(os.MkdirAll(filepath.Dir(path), 0o755)).To(Succeed())
			Expect(os.WriteFile(path, []byte("// "+name), 0o600)).To(Succeed())
		}
	})

	Describe("Glob", func() {
		It("expands recursive patterns", func() {
			paths, err := fs.Local{}.Glob(filepath.Join(dir, "**", "*.test.js"))
			Expect(err).ToNot(HaveOccurred())
			Expect(paths).To(ContainElements(
				filepath.Join(dir, "nested", "c.test.js"),
				filepath.Join(dir, "nested", "deeper", "d.test.js"),
			))
			Expect(paths).ToNot(ContainElement(filepath.Join(dir, "x.js")))
		})
	})

	Describe("GlobMany", func() {
		It("keeps the order of the patterns and only returns unique paths", func() {
			paths, err := fs.Local{}.GlobMany([]string{
				filepath.Join(dir, "x.js"),
				filepath.Join(dir, "*.test.js"),
				filepath.Join(dir, "a.test.js"),
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(paths).To(Equal([]string{
				filepath.Join(dir, "x.js"),
				filepath.Join(dir, "a.test.js"),
				filepath.Join(dir, "b.test.js"),
			}))
		})

		It("passes literal paths through even if they don't exist", func() {
			paths, err := fs.Local{}.GlobMany([]string{"does/not/exist.js"})
			Expect(err).ToNot(HaveOccurred())
			Expect(paths).To(Equal([]string{"does/not/exist.js"}))
		})

		It("drops patterns without matches", func() {
			paths, err := fs.Local{}.GlobMany([]string{filepath.Join(dir, "*.ts")})
			Expect(err).ToNot(HaveOccurred())
			Expect(paths).To(BeEmpty())
		})
	})

	Describe("Create", func() {
		It("creates a writable file", func() {
			path := filepath.Join(dir, "output.log")

			file, err := fs.Local{}.Create(path)
			Expect(err).ToNot(HaveOccurred())
			_, err = io.WriteString(file, "hello")
			Expect(err).ToNot(HaveOccurred())
			Expect(file.Close()).To(Succeed())

			Expect(os.ReadFile(path)).To(Equal([]byte("hello")))
		})

		It("fails for missing directories", func() {
			_, err := fs.Local{}.Create(filepath.Join(dir, "missing", "output.log"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Stat", func() {
		It("returns an error for missing files", func() {
			_, err := fs.Local{}.Stat(filepath.Join(dir, "missing"))
			Expect(err).To(MatchError(os.ErrNotExist))
		})
	})
})
