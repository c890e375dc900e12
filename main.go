// Package main provides the entry point for C8Sim.
// C8Sim is a CHIP-8 virtual machine with an instruction fetch timing model
// built on Akita.
//
// For the full CLI, use: go run ./cmd/c8sim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("C8Sim - CHIP-8 Virtual Machine")
	fmt.Println("Built on Akita simulation framework")
	fmt.Println("")
	fmt.Println("Usage: c8sim [options] <rom>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -debug      Log every decoded instruction before it executes")
	fmt.Println("  -config     Path to configuration JSON file")
	fmt.Println("  -headless   Run without a terminal display")
	fmt.Println("  -cache      Enable the instruction fetch cache model")
	fmt.Println("  -timing     Charge execute latencies on top of fetch cycles")
	fmt.Println("  -max-instr  Max instructions to execute")
	fmt.Println("  -v          Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/c8sim' for the full CLI, 'go run ./cmd/c8dis' to disassemble a ROM.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/c8sim' instead.")
	}
}
