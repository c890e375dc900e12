package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/insts"
)

var _ = Describe("Disassembly", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	DescribeTable("String",
		func(word uint16, text string) {
			Expect(decoder.Decode(word).String()).To(Equal(text))
		},
		Entry("CLS", uint16(0x00E0), "CLS"),
		Entry("RET", uint16(0x00EE), "RET"),
		Entry("SYS", uint16(0x0123), "SYS $123"),
		Entry("JP", uint16(0x1200), "JP $200"),
		Entry("CALL", uint16(0x2ABC), "CALL $ABC"),
		Entry("SE imm", uint16(0x3A05), "SE VA, $05"),
		Entry("SE reg", uint16(0x5AB0), "SE VA, VB"),
		Entry("LD imm", uint16(0x6005), "LD V0, $05"),
		Entry("ADD imm", uint16(0x7003), "ADD V0, $03"),
		Entry("SUBN", uint16(0x8127), "SUBN V1, V2"),
		Entry("SHL", uint16(0x834E), "SHL V3"),
		Entry("LD I", uint16(0xA2F0), "LD I, $2F0"),
		Entry("JP V0", uint16(0xB300), "JP V0, $300"),
		Entry("RND", uint16(0xC10F), "RND V1, $0F"),
		Entry("DRW", uint16(0xD125), "DRW V1, V2, $5"),
		Entry("SKP", uint16(0xE49E), "SKP V4"),
		Entry("LD Vx, DT", uint16(0xF507), "LD V5, DT"),
		Entry("LD Vx, K", uint16(0xF50A), "LD V5, K"),
		Entry("LD DT, Vx", uint16(0xF515), "LD DT, V5"),
		Entry("LD ST, Vx", uint16(0xF518), "LD ST, V5"),
		Entry("ADD I", uint16(0xF51E), "ADD I, V5"),
		Entry("LD F", uint16(0xF529), "LD F, V5"),
		Entry("LD B", uint16(0xF533), "LD B, V5"),
		Entry("store", uint16(0xF555), "LD [I], V5"),
		Entry("restore", uint16(0xF565), "LD V5, [I]"),
		Entry("unknown", uint16(0xFFFF), "UNKNOWN $FFFF"),
	)

	It("should name ops", func() {
		Expect(insts.OpDRW.String()).To(Equal("DRW"))
		Expect(insts.Op(200).String()).To(Equal("Op(200)"))
	})
})
