package headless_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/frontend/headless"
)

var _ = Describe("Headless", func() {
	Describe("Input", func() {
		script := [][emu.NumKeys]bool{{1: true}, {}}

		It("should replay the script and then quit", func() {
			in := headless.NewInput(script)

			keys, ok := in.Poll()
			Expect(ok).To(BeTrue())
			Expect(keys[1]).To(BeTrue())

			keys, ok = in.Poll()
			Expect(ok).To(BeTrue())
			Expect(keys).To(Equal([emu.NumKeys]bool{}))

			_, ok = in.Poll()
			Expect(ok).To(BeFalse())
			Expect(in.Polls()).To(Equal(uint64(3)))
		})

		It("should hold the last state when asked to", func() {
			in := headless.NewHoldingInput([][emu.NumKeys]bool{{}, {7: true}})
			in.Poll()
			in.Poll()

			for i := 0; i < 3; i++ {
				keys, ok := in.Poll()
				Expect(ok).To(BeTrue())
				Expect(keys[7]).To(BeTrue())
			}
		})

		It("should hold no keys with an empty script", func() {
			in := headless.NewHoldingInput(nil)

			keys, ok := in.Poll()
			Expect(ok).To(BeTrue())
			Expect(keys).To(Equal([emu.NumKeys]bool{}))
		})
	})

	Describe("ParseScript", func() {
		It("should parse steps of hex keys", func() {
			script, err := headless.ParseScript("5,5f, ,A")
			Expect(err).NotTo(HaveOccurred())
			Expect(script).To(HaveLen(4))
			Expect(script[0]).To(Equal([emu.NumKeys]bool{5: true}))
			Expect(script[1]).To(Equal([emu.NumKeys]bool{5: true, 0xF: true}))
			Expect(script[2]).To(Equal([emu.NumKeys]bool{}))
			Expect(script[3]).To(Equal([emu.NumKeys]bool{0xA: true}))
		})

		It("should return nothing for an empty script", func() {
			script, err := headless.ParseScript("")
			Expect(err).NotTo(HaveOccurred())
			Expect(script).To(BeEmpty())
		})

		It("should reject keys that are not hex digits", func() {
			_, err := headless.ParseScript("1,G")
			Expect(err).To(MatchError(headless.ErrBadScript))
		})
	})

	Describe("Renderer", func() {
		It("should keep the last frame and count frames", func() {
			r := headless.NewRenderer()
			var frame emu.Frame
			frame[0] = true

			Expect(r.Render(emu.Frame{})).To(Succeed())
			Expect(r.Render(frame)).To(Succeed())

			Expect(r.Frames()).To(Equal(uint64(2)))
			Expect(r.Last()).To(Equal(frame))
		})

		It("should dump a frame as text", func() {
			r := headless.NewRenderer()
			var frame emu.Frame
			frame[emu.DisplayWidth+2] = true
			Expect(r.Render(frame)).To(Succeed())

			var sb strings.Builder
			Expect(r.Dump(&sb)).To(Succeed())

			lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
			Expect(lines).To(HaveLen(emu.DisplayHeight))
			Expect(lines[0]).To(Equal(strings.Repeat(".", emu.DisplayWidth)))
			Expect(lines[1][:4]).To(Equal("..#."))
		})
	})

	Describe("Beeper", func() {
		It("should count beeps", func() {
			b := &headless.Beeper{}
			b.Beep()
			b.Beep()

			Expect(b.Count()).To(Equal(uint64(2)))
		})
	})
})
