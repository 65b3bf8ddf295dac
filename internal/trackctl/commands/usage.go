package commands

import "fmt"

// PrintUsage writes basic command help to stdout.
func PrintUsage() {
	fmt.Println("Usage: trackctl <command> [options]")
	fmt.Println()
	fmt.Println("Available commands:")
	fmt.Println("  ping       Check that the relay answers")
	fmt.Println("  version    Show the version the running relay reports")
	fmt.Println("  indexes    Create the MongoDB indexes the relay relies on")
	fmt.Println("  help       Show this help text")
}
