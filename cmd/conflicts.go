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
	"context"

	"github.com/gnames/gn"
	"github.com/gnames/gnvern/internal/iodb"
	"github.com/gnames/gnvern/internal/ioresolve"
	"github.com/spf13/cobra"
)

// getConflictsCmd returns the conflicts command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getConflictsCmd() *cobra.Command {
	conflictsCmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Rebuild conflict rows",
		Long: `Clear and recompute all conflict rows.

Conflicts are derived data: names owned by several taxa, same-taxon
names that differ only in capitalization, and preferred names that
disagree across sources. Rebuilding after ingest is always safe.

Examples:
  gnvern conflicts`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runConflicts()
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	return conflictsCmd
}

func runConflicts() error {
	ctx := context.Background()

	op := iodb.NewSqliteOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	res := ioresolve.New(cfg, op)
	return res.RebuildConflicts(ctx)
}
