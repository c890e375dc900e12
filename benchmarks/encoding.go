package benchmarks

// BuildProgram lays out instruction words big-endian, as they sit in
// CHIP-8 memory.
func BuildProgram(words ...uint16) []byte {
	program := make([]byte, 0, len(words)*2)
	for _, w := range words {
		program = append(program, byte(w>>8), byte(w))
	}
	return program
}

func encodeAddr(op uint16, addr uint16) uint16 {
	return op<<12 | addr&0xFFF
}

func encodeRegImm(op uint16, x, nn uint8) uint16 {
	return op<<12 | uint16(x&0xF)<<8 | uint16(nn)
}

func encodeRegReg(op uint16, x, y uint8, n uint8) uint16 {
	return op<<12 | uint16(x&0xF)<<8 | uint16(y&0xF)<<4 | uint16(n&0xF)
}

func encodeMisc(x uint8, sub uint8) uint16 {
	return 0xF<<12 | uint16(x&0xF)<<8 | uint16(sub)
}

// EncodeCLS encodes 00E0.
func EncodeCLS() uint16 { return 0x00E0 }

// EncodeRET encodes 00EE.
func EncodeRET() uint16 { return 0x00EE }

// EncodeJP encodes 1nnn.
func EncodeJP(addr uint16) uint16 { return encodeAddr(0x1, addr) }

// EncodeCALL encodes 2nnn.
func EncodeCALL(addr uint16) uint16 { return encodeAddr(0x2, addr) }

// EncodeSEImm encodes 3xnn.
func EncodeSEImm(x, nn uint8) uint16 { return encodeRegImm(0x3, x, nn) }

// EncodeSNEImm encodes 4xnn.
func EncodeSNEImm(x, nn uint8) uint16 { return encodeRegImm(0x4, x, nn) }

// EncodeLDImm encodes 6xnn.
func EncodeLDImm(x, nn uint8) uint16 { return encodeRegImm(0x6, x, nn) }

// EncodeADDImm encodes 7xnn.
func EncodeADDImm(x, nn uint8) uint16 { return encodeRegImm(0x7, x, nn) }

// EncodeLDReg encodes 8xy0.
func EncodeLDReg(x, y uint8) uint16 { return encodeRegReg(0x8, x, y, 0x0) }

// EncodeADDReg encodes 8xy4.
func EncodeADDReg(x, y uint8) uint16 { return encodeRegReg(0x8, x, y, 0x4) }

// EncodeSUB encodes 8xy5.
func EncodeSUB(x, y uint8) uint16 { return encodeRegReg(0x8, x, y, 0x5) }

// EncodeLDI encodes Annn.
func EncodeLDI(addr uint16) uint16 { return encodeAddr(0xA, addr) }

// EncodeDRW encodes Dxyn.
func EncodeDRW(x, y, n uint8) uint16 { return encodeRegReg(0xD, x, y, n) }

// EncodeADDI encodes Fx1E.
func EncodeADDI(x uint8) uint16 { return encodeMisc(x, 0x1E) }

// EncodeLDF encodes Fx29.
func EncodeLDF(x uint8) uint16 { return encodeMisc(x, 0x29) }

// EncodeLDB encodes Fx33.
func EncodeLDB(x uint8) uint16 { return encodeMisc(x, 0x33) }

// EncodeStore encodes Fx55, which stores V0 up to but not including Vx.
func EncodeStore(x uint8) uint16 { return encodeMisc(x, 0x55) }

// EncodeRestore encodes Fx65, which loads V0 through Vx.
func EncodeRestore(x uint8) uint16 { return encodeMisc(x, 0x65) }

// EncodeHalt encodes a jump to its own address, the usual way a CHIP-8
// program stops.
func EncodeHalt(addr uint16) uint16 { return EncodeJP(addr) }
