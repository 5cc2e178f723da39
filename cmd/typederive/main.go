package main

import (
	"fmt"
	"os"
	"strings"
)

const version = "0.1.0-dev"

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		// No subcommand — default to derive
		return runDerive(os.Args[1:])
	}

	switch os.Args[1] {
	case "derive":
		return runDerive(os.Args[2:])
	case "--version", "-v":
		fmt.Println("typederive", version)
		return 0
	case "--help", "-h":
		printUsage()
		return 0
	default:
		// Check if first arg starts with - (it's a flag, not a subcommand)
		if strings.HasPrefix(os.Args[1], "-") {
			return runDerive(os.Args[1:])
		}
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Println("typederive - derive OpenAPI component schemas from a type-descriptor graph")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  typederive [flags]            Derive schemas (default)")
	fmt.Println("  typederive derive [flags]     Derive schemas")
	fmt.Println()
	fmt.Println("Global Flags:")
	fmt.Println("  --version, -v          Print version and exit")
	fmt.Println("  --help, -h             Print this help message")
	fmt.Println()
	fmt.Println("Derive Flags:")
	fmt.Println("  --input, -i <path>     Type-descriptor graph JSON, '-' for stdin (default: -)")
	fmt.Println("  --output, -o <path>    Document output path, '-' for stdout (default: -)")
	fmt.Println("  --root <id>            Derive only this descriptor ID (repeatable)")
	fmt.Println("  --config <path>        Path to typederive.config.json")
	fmt.Println("  --strict               Treat warnings as errors")
	fmt.Println("  --quiet                Suppress warnings")
}
