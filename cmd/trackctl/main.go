package main

import (
	"fmt"
	"os"

	"pixeltrack/internal/trackctl/commands"
)

func main() {
	if len(os.Args) < 2 {
		commands.PrintUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error

	switch cmd {
	case "help", "--help", "-h":
		commands.PrintUsage()
		return
	case "ping":
		err = commands.RunPing(args)
	case "version":
		err = commands.RunVersion(args)
	case "indexes":
		err = commands.RunIndexes(args)
	default:
		fmt.Fprintf(os.Stderr, "trackctl: unknown command %q\n", cmd)
		commands.PrintUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "trackctl %s: %v\n", cmd, err)
		os.Exit(1)
	}
}
