package insts_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/insts"
)

var _ = Describe("Disassemble", func() {
	It("should list each word with its address", func() {
		var sb strings.Builder
		image := []byte{0x60, 0x05, 0x70, 0x03, 0x12, 0x00}

		Expect(insts.Disassemble(&sb, image, 0x200)).To(Succeed())

		Expect(sb.String()).To(Equal(
			"200  6005  LD V0, $05\n" +
				"202  7003  ADD V0, $03\n" +
				"204  1200  JP $200\n"))
	})

	It("should ignore a trailing odd byte", func() {
		var sb strings.Builder

		Expect(insts.Disassemble(&sb, []byte{0x00, 0xE0, 0xFF}, 0x200)).To(Succeed())

		Expect(sb.String()).To(Equal("200  00E0  CLS\n"))
	})

	It("should show unknown words raw", func() {
		var sb strings.Builder

		Expect(insts.Disassemble(&sb, []byte{0xFF, 0xFF}, 0x300)).To(Succeed())

		Expect(sb.String()).To(Equal("300  FFFF  UNKNOWN $FFFF\n"))
	})
})
