// Package main provides c8dis, a CHIP-8 ROM disassembler.
//
// Usage:
//
//	c8dis <rom>
//
// Each complete instruction word is printed as its address, raw opcode
// and assembler text, assuming the ROM is loaded at 0x200.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/insts"
	"github.com/sarchlab/c8sim/loader"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: c8dis <rom>\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	prog, err := loader.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	if err := insts.Disassemble(os.Stdout, prog.Data, emu.ProgramStart); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
