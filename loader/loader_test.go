package loader_test

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/loader"
)

var _ = Describe("Loader", func() {
	var tempDir string

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "rom-loader-test")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		_ = os.RemoveAll(tempDir)
	})

	Describe("Load", func() {
		It("should load a program byte for byte", func() {
			path := filepath.Join(tempDir, "add.ch8")
			Expect(os.WriteFile(path, []byte{0x60, 0x05, 0x70, 0x03}, 0644)).To(Succeed())

			prog, err := loader.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Path).To(Equal(path))
			Expect(prog.Data).To(Equal([]byte{0x60, 0x05, 0x70, 0x03}))
			Expect(prog.Size()).To(Equal(4))
		})

		It("should load an empty file", func() {
			path := filepath.Join(tempDir, "empty.ch8")
			Expect(os.WriteFile(path, nil, 0644)).To(Succeed())

			prog, err := loader.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Data).To(BeEmpty())
		})

		It("should return error for non-existent file", func() {
			_, err := loader.Load(filepath.Join(tempDir, "missing.ch8"))
			Expect(err).To(MatchError(os.ErrNotExist))
		})

		It("should reject an image that does not fit", func() {
			path := filepath.Join(tempDir, "big.ch8")
			Expect(os.WriteFile(path, make([]byte, emu.MaxProgramSize+1), 0644)).To(Succeed())

			_, err := loader.Load(path)
			Expect(err).To(MatchError(loader.ErrProgramTooLarge))
		})
	})

	Describe("Read", func() {
		It("should accept an image that fills memory exactly", func() {
			image := make([]byte, emu.MaxProgramSize)
			image[len(image)-1] = 0xEE

			prog, err := loader.Read(bytes.NewReader(image))
			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Size()).To(Equal(emu.MaxProgramSize))
			Expect(prog.Path).To(BeEmpty())
		})

		It("should produce an image the emulator can run", func() {
			prog, err := loader.Read(bytes.NewReader([]byte{0x60, 0x05, 0x70, 0x03}))
			Expect(err).NotTo(HaveOccurred())

			e := emu.NewEmulator()
			Expect(e.LoadProgram(prog.Data)).To(Succeed())
			e.Step()
			e.Step()

			Expect(e.RegFile().ReadReg(0)).To(Equal(uint8(8)))
		})
	})
})
