package commands

import (
	"flag"
	"fmt"
	"io"

	"pixeltrack/internal/trackctl/health"
)

// RunPing handles the `trackctl ping` subcommand.
func RunPing(args []string) error {
	fs := flag.NewFlagSet("ping", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	host := fs.String("host", health.Host(), "relay host:port")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("ping: unexpected arguments")
	}

	if err := health.CheckOnce(*host); err != nil {
		return fmt.Errorf("relay is not responding: %w", err)
	}

	fmt.Println("PONG")
	return nil
}
