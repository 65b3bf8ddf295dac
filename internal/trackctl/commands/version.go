package commands

import (
	"flag"
	"fmt"
	"io"

	"pixeltrack/internal/trackctl/health"
)

// RunVersion handles the `trackctl version` subcommand.
func RunVersion(args []string) error {
	fs := flag.NewFlagSet("version", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	host := fs.String("host", health.Host(), "relay host:port")

	if err := fs.Parse(args); err != nil {
		return err
	}

	version, err := health.Version(*host)
	if err != nil || version == "" {
		fmt.Println("No version detected")
		return nil
	}

	fmt.Println(version)
	return nil
}
