// Package benchmarks provides fetch timing benchmarks for C8Sim.
package benchmarks

// GetMicrobenchmarks returns the standard set of microbenchmarks. Each one
// ends in a self-jump and leaves its result in V0.
func GetMicrobenchmarks() []Benchmark {
	return []Benchmark{
		arithmeticSequential(),
		dependencyChain(),
		loopCounter(),
		functionCalls(),
		storeRestore(),
		bcdDigits(),
		spriteDraw(),
		selfModifying(),
	}
}

// GetCoreBenchmarks returns a minimal set of 3 core benchmarks for quick
// validation: a loop, display work and self-modifying code.
func GetCoreBenchmarks() []Benchmark {
	return []Benchmark{
		loopCounter(),
		spriteDraw(),
		selfModifying(),
	}
}

// 1. Arithmetic Sequential - straight-line code, every fetch on a new word
func arithmeticSequential() Benchmark {
	words := make([]uint16, 0, 21)
	for i := 0; i < 20; i++ {
		words = append(words, EncodeADDImm(uint8(i%5), 1))
	}
	words = append(words, EncodeHalt(0x228))

	return Benchmark{
		Name:           "arithmetic_sequential",
		Description:    "20 ADDs over V0-V4 - measures straight-line fetch",
		Program:        BuildProgram(words...),
		ExpectedResult: 4,
	}
}

// 2. Dependency Chain
func dependencyChain() Benchmark {
	return Benchmark{
		Name:           "dependency_chain",
		Description:    "20 dependent ADDs (V0 = V0 + 1)",
		Program:        buildDependencyChain(20),
		ExpectedResult: 20,
	}
}

func buildDependencyChain(n int) []byte {
	words := make([]uint16, 0, n+1)
	for i := 0; i < n; i++ {
		words = append(words, EncodeADDImm(0, 1))
	}
	words = append(words, EncodeHalt(uint16(0x200+2*n)))
	return BuildProgram(words...)
}

// 3. Loop Counter - a tight loop that stays in one cache line
func loopCounter() Benchmark {
	return Benchmark{
		Name:        "loop_counter",
		Description: "50 iterations of ADD/SE/JP - measures fetch reuse in a loop",
		Program: BuildProgram(
			EncodeLDImm(0, 0),  // 200
			EncodeADDImm(0, 1), // 202 loop:
			EncodeSEImm(0, 50), // 204
			EncodeJP(0x202),    // 206
			EncodeHalt(0x208),  // 208
		),
		ExpectedResult: 50,
	}
}

// 4. Function Calls - CALL/RET pairs
func functionCalls() Benchmark {
	return Benchmark{
		Name:        "function_calls",
		Description: "5 calls to a subroutine that increments V0",
		Program: BuildProgram(
			EncodeCALL(0x20C),  // 200
			EncodeCALL(0x20C),  // 202
			EncodeCALL(0x20C),  // 204
			EncodeCALL(0x20C),  // 206
			EncodeCALL(0x20C),  // 208
			EncodeHalt(0x20A),  // 20A
			EncodeADDImm(0, 1), // 20C
			EncodeRET(),        // 20E
		),
		ExpectedResult: 5,
	}
}

// 5. Store/Restore - register block moves through memory outside the code
func storeRestore() Benchmark {
	return Benchmark{
		Name:        "store_restore",
		Description: "Store V0-V1, clear them, restore and add",
		Program: BuildProgram(
			EncodeLDImm(0, 7),  // 200
			EncodeLDImm(1, 9),  // 202
			EncodeLDI(0x300),   // 204
			EncodeStore(2),     // 206 V0, V1
			EncodeLDImm(0, 0),  // 208
			EncodeLDImm(1, 0),  // 20A
			EncodeRestore(1),   // 20C V0, V1
			EncodeADDReg(0, 1), // 20E
			EncodeHalt(0x210),  // 210
		),
		ExpectedResult: 16,
	}
}

// 6. BCD - decimal digits of 157 summed
func bcdDigits() Benchmark {
	return Benchmark{
		Name:        "bcd_digits",
		Description: "BCD of 157, restore the digits and sum them",
		Program: BuildProgram(
			EncodeLDImm(5, 157), // 200
			EncodeLDI(0x300),    // 202
			EncodeLDB(5),        // 204
			EncodeRestore(2),    // 206
			EncodeADDReg(0, 1),  // 208
			EncodeADDReg(0, 2),  // 20A
			EncodeHalt(0x20C),   // 20C
		),
		ExpectedResult: 13,
	}
}

// 7. Sprite Draw - all 16 font glyphs across the top of the screen
func spriteDraw() Benchmark {
	return Benchmark{
		Name:        "sprite_draw",
		Description: "Draw the 16 hex glyphs - exercises DRW and LD F",
		Program: BuildProgram(
			EncodeCLS(),        // 200
			EncodeLDImm(0, 0),  // 202 x
			EncodeLDImm(1, 0),  // 204 y
			EncodeLDImm(2, 0),  // 206 digit
			EncodeLDF(2),       // 208 loop:
			EncodeDRW(0, 1, 5), // 20A
			EncodeADDImm(0, 5), // 20C
			EncodeADDImm(2, 1), // 20E
			EncodeSEImm(2, 16), // 210
			EncodeJP(0x208),    // 212
			EncodeHalt(0x214),  // 214
		),
		ExpectedResult: 80,
	}
}

// 8. Self-Modifying - patches the immediate of an ADD in its own line on
// every iteration, so each patch invalidates the fetch cache line.
func selfModifying() Benchmark {
	return Benchmark{
		Name:        "self_modifying",
		Description: "Sum 1..10 by patching an ADD immediate in place",
		Program: BuildProgram(
			EncodeLDImm(0, 0),  // 200
			EncodeLDImm(2, 0),  // 202
			EncodeLDI(0x20B),   // 204 low byte of the ADD at 20A
			EncodeADDImm(0, 1), // 206 loop:
			EncodeStore(1),     // 208 V0 -> [20B]
			EncodeADDImm(2, 0), // 20A patched
			EncodeSEImm(0, 10), // 20C
			EncodeJP(0x206),    // 20E
			EncodeLDReg(0, 2),  // 210
			EncodeHalt(0x212),  // 212
		),
		ExpectedResult: 55,
	}
}
