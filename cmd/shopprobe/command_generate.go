package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	shopprobe "github.com/shibukawa/shopprobe"
	"github.com/shibukawa/shopprobe/gen"
)

// GenerateCmd represents the generate command
type GenerateCmd struct {
	Out  string `short:"o" help:"Output directory for CSV files" type:"path"`
	Rows int    `help:"Rows per generated table" default:"0"`
	Seed int64  `help:"Random seed (0 uses the clock)" default:"0"`
}

// Run executes the generate command
func (cmd *GenerateCmd) Run(ctx *Context) error {
	config, err := shopprobe.LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	outDir := cmd.Out
	if outDir == "" {
		outDir = config.Generation.OutputDir
	}
	rows := cmd.Rows
	if rows == 0 {
		rows = config.Generation.Rows
	}
	seed := cmd.Seed
	if seed == 0 {
		seed = config.Generation.Seed
	}

	if ctx.Verbose {
		color.Blue("Generating %d rows per table into %s", rows, outDir)
	}

	dataset := gen.Generate(rows, seed)
	files, err := dataset.WriteCSVFiles(outDir)
	if err != nil {
		return fmt.Errorf("failed to write CSV files: %w", err)
	}

	if !ctx.Quiet {
		color.Green("Generated: %s", strings.Join(files, ", "))
	}

	return nil
}
