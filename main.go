// Package main provides the entry point for TomaSim.
// TomaSim is a cycle-accurate Tomasulo out-of-order core simulator built on
// Akita.
//
// For the full CLI, use: go run ./cmd/tomasim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("TomaSim - Tomasulo Out-of-Order Core Simulator")
	fmt.Println("Built on Akita simulation framework")
	fmt.Println("")
	fmt.Println("Usage: tomasim [options] <trace.txt>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config      Path to timing configuration JSON file")
	fmt.Println("  -engine      Drive the core with the akita event engine")
	fmt.Println("  -dump        Print per-instruction scheduling cycles")
	fmt.Println("  -cpuprofile  Write CPU profile to file")
	fmt.Println("  -v           Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/tomasim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/tomasim' instead.")
	}
}
