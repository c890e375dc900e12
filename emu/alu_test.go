package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/emu"
)

var _ = Describe("ALU", func() {
	var (
		regFile *emu.RegFile
		alu     *emu.ALU
	)

	BeforeEach(func() {
		regFile = &emu.RegFile{}
		alu = emu.NewALU(regFile)
	})

	Describe("Immediate operations", func() {
		It("should load an immediate", func() {
			alu.LDImm(3, 0x42)

			Expect(regFile.V[3]).To(Equal(uint8(0x42)))
		})

		It("should add an immediate with wrap and leave VF alone", func() {
			regFile.V[1] = 0xFE
			regFile.V[0xF] = 7

			alu.ADDImm(1, 0x03)

			Expect(regFile.V[1]).To(Equal(uint8(0x01)))
			Expect(regFile.V[0xF]).To(Equal(uint8(7)))
		})
	})

	Describe("Logic operations", func() {
		BeforeEach(func() {
			regFile.V[1] = 0b1100
			regFile.V[2] = 0b1010
		})

		It("should copy", func() {
			alu.LD(1, 2)
			Expect(regFile.V[1]).To(Equal(uint8(0b1010)))
		})

		It("should OR", func() {
			alu.OR(1, 2)
			Expect(regFile.V[1]).To(Equal(uint8(0b1110)))
		})

		It("should AND", func() {
			alu.AND(1, 2)
			Expect(regFile.V[1]).To(Equal(uint8(0b1000)))
		})

		It("should XOR", func() {
			alu.XOR(1, 2)
			Expect(regFile.V[1]).To(Equal(uint8(0b0110)))
		})
	})

	Describe("ADD with carry", func() {
		It("should set VF to 1 iff the sum exceeds 255 for every pair", func() {
			for a := 0; a < 256; a++ {
				for b := 0; b < 256; b++ {
					regFile.V[0] = uint8(a)
					regFile.V[1] = uint8(b)

					alu.ADD(0, 1)

					Expect(regFile.V[0]).To(Equal(uint8((a + b) % 256)))
					if a+b > 255 {
						Expect(regFile.V[0xF]).To(Equal(uint8(1)))
					} else {
						Expect(regFile.V[0xF]).To(Equal(uint8(0)))
					}
				}
			}
		})
	})

	Describe("SUB and SUBN", func() {
		It("should set VF to 1 iff no borrow for every pair", func() {
			for a := 0; a < 256; a++ {
				for b := 0; b < 256; b++ {
					regFile.V[0] = uint8(a)
					regFile.V[1] = uint8(b)

					alu.SUB(0, 1)

					Expect(regFile.V[0]).To(Equal(uint8(a - b)))
					Expect(regFile.V[0xF] == 1).To(Equal(a >= b))
				}
			}
		})

		It("should subtract reversed with the same polarity", func() {
			for a := 0; a < 256; a++ {
				for b := 0; b < 256; b++ {
					regFile.V[0] = uint8(a)
					regFile.V[1] = uint8(b)

					alu.SUBN(0, 1)

					Expect(regFile.V[0]).To(Equal(uint8(b - a)))
					Expect(regFile.V[0xF] == 1).To(Equal(b >= a))
				}
			}
		})

		It("should report no borrow for equal operands", func() {
			regFile.V[2] = 9
			regFile.V[3] = 9

			alu.SUB(2, 3)

			Expect(regFile.V[2]).To(Equal(uint8(0)))
			Expect(regFile.V[0xF]).To(Equal(uint8(1)))
		})
	})

	Describe("Shifts", func() {
		It("should shift right and put the old LSB in VF", func() {
			regFile.V[4] = 0b1000_0011

			alu.SHR(4)

			Expect(regFile.V[4]).To(Equal(uint8(0b0100_0001)))
			Expect(regFile.V[0xF]).To(Equal(uint8(1)))
		})

		It("should clear VF when the LSB was zero", func() {
			regFile.V[4] = 0b10
			regFile.V[0xF] = 1

			alu.SHR(4)

			Expect(regFile.V[4]).To(Equal(uint8(1)))
			Expect(regFile.V[0xF]).To(Equal(uint8(0)))
		})

		It("should shift left and put the old MSB in VF", func() {
			regFile.V[5] = 0b1100_0001

			alu.SHL(5)

			Expect(regFile.V[5]).To(Equal(uint8(0b1000_0010)))
			Expect(regFile.V[0xF]).To(Equal(uint8(1)))
		})

		It("should clear VF when the MSB was zero", func() {
			regFile.V[5] = 0b0100_0000

			alu.SHL(5)

			Expect(regFile.V[5]).To(Equal(uint8(0b1000_0000)))
			Expect(regFile.V[0xF]).To(Equal(uint8(0)))
		})

		It("should shift the flag when shifting VF right", func() {
			regFile.V[0xF] = 3

			alu.SHR(0xF)

			Expect(regFile.V[0xF]).To(Equal(uint8(0)))
		})

		It("should shift the flag when shifting VF left", func() {
			regFile.V[0xF] = 0x81

			alu.SHL(0xF)

			Expect(regFile.V[0xF]).To(Equal(uint8(2)))
		})
	})
})
