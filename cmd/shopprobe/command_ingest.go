package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	shopprobe "github.com/shibukawa/shopprobe"
	"github.com/shibukawa/shopprobe/ingest"
	"github.com/shibukawa/shopprobe/inspect"
)

// IngestCmd represents the ingest command
type IngestCmd struct {
	Dir string `help:"Directory containing the CSV files" default:"." type:"path"`
	DB  string `help:"Database connection string"`
	Env string `help:"Environment name from configuration"`
}

// Run executes the ingest command
func (cmd *IngestCmd) Run(ctx *Context) error {
	config, err := shopprobe.LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbURL, err := resolveDatabaseURL(config, cmd.DB, cmd.Env)
	if err != nil {
		return err
	}

	connector := inspect.NewConnector()
	db, _, err := connector.Connect(dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := connector.Ping(db); err != nil {
		return err
	}

	loader := ingest.NewLoader(db)
	runCtx := context.Background()

	for _, def := range ingest.Tables {
		if ctx.Verbose {
			color.Blue("Creating table '%s' and loading from %s...", def.Table, def.File)
		}
		count, err := loader.Load(runCtx, cmd.Dir, def)
		if err != nil {
			if errors.Is(err, ingest.ErrCSVNotFound) {
				if !ctx.Quiet {
					color.Yellow("Warning: %s not found, skipping.", def.File)
				}
				continue
			}
			return err
		}
		if !ctx.Quiet {
			fmt.Printf("Inserted %d rows into %s\n", count, def.Table)
		}
	}

	counts, err := loader.Counts(runCtx)
	if err != nil {
		return err
	}

	if !ctx.Quiet {
		color.Green("\nLoaded tables:")
		for _, tc := range counts {
			fmt.Printf(" - %s: %d rows\n", tc.Table, tc.Count)
		}
	}

	return nil
}
