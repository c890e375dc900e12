package termbox_test

import (
	"os"
	"path/filepath"
	"runtime"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/frontend/termbox"
)

var _ = Describe("IsTerminal", func() {
	BeforeEach(func() {
		if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
			Skip("terminal detection reads termios on linux and darwin only")
		}
	})

	It("should reject a regular file", func() {
		f, err := os.Create(filepath.Join(GinkgoT().TempDir(), "out"))
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		Expect(termbox.IsTerminal(f)).To(BeFalse())
	})

	It("should reject a pipe", func() {
		r, w, err := os.Pipe()
		Expect(err).NotTo(HaveOccurred())
		defer r.Close()
		defer w.Close()

		Expect(termbox.IsTerminal(r)).To(BeFalse())
		Expect(termbox.IsTerminal(w)).To(BeFalse())
	})
})
