package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"pixeltrack/internal/db"
	"pixeltrack/internal/env"
	"pixeltrack/internal/store"
)

// RunIndexes handles the `trackctl indexes` subcommand. It connects with the
// relay's own configuration and creates the unique and query indexes.
func RunIndexes(args []string) error {
	fs := flag.NewFlagSet("indexes", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	envRoot := fs.String("env-root", "", "directory containing the .env file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	env.Init(*envRoot, "")

	if err := db.InitDB(env.MONGO_DATABASE); err != nil {
		return fmt.Errorf("connect to MongoDB: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	defer db.Close(ctx)

	if err := store.EnsureIndexes(ctx, db.Database); err != nil {
		return err
	}

	fmt.Printf("indexes ready on %s\n", env.MONGO_DATABASE)
	return nil
}
