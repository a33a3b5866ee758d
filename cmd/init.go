/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnvern/internal/iodb"
	"github.com/gnames/gnvern/internal/ioschema"
	"github.com/spf13/cobra"
)

// getInitCmd returns the init command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getInitCmd() *cobra.Command {
	var forceInit bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create database schema",
		Long: `Create the gnvern database schema from scratch.

This command:
  1. Opens (or creates) the SQLite database file
  2. Checks for existing tables and prompts for confirmation
  3. Creates all tables and indexes from the DDL-tagged models

Use --force to skip confirmation and drop existing tables.

Examples:
  gnvern init
  gnvern init --force
  gnvern init -f`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, args, forceInit)
		},
	}

	initCmd.Flags().BoolVarP(&forceInit, "force", "f",
		false, "drop existing tables without confirmation")

	return initCmd
}

func runInit(
	_ *cobra.Command,
	_ []string,
	force bool,
) error {
	ctx := context.Background()

	op := iodb.NewSqliteOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	gn.Info("Using database <em>%s</em>", cfg.Database.Path)

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if hasTables {
		if force {
			gn.Info("Dropping all existing tables " +
				"(--force enabled)...")
			if err := op.DropAllTables(ctx); err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			gn.Info("All tables dropped")
		} else {
			gn.Warn("\nWarning: Database contains " +
				"existing tables.")
			gn.Warn("Creating schema will drop ALL " +
				"existing tables and data.")
			fmt.Print("\nDo you want to continue? (yes/no): ")

			reader := bufio.NewReader(os.Stdin)
			response, err := reader.ReadString('\n')
			if err != nil {
				gn.Warn("Failed to read user input")
				return err
			}

			response = strings.TrimSpace(
				strings.ToLower(response))
			if response != "yes" && response != "y" {
				gn.Info("Aborted. No changes made.")
				return nil
			}

			gn.Info("Dropping all existing tables...")
			if err := op.DropAllTables(ctx); err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			gn.Info("All tables dropped")
		}
	}

	sm := ioschema.New(cfg, op)

	gn.Info("Creating schema...")
	if err := sm.Create(ctx, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("\nDatabase schema creation complete!")
	gn.Info("\nNext steps:")
	gn.Info("  - Run 'gnvern ingest' to import common names")
	gn.Info("  - Run 'gnvern names' to resolve best names")

	return nil
}
