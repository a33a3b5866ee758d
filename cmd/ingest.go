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
	"github.com/gnames/gnvern/internal/ioingest"
	"github.com/gnames/gnvern/pkg/config"
	"github.com/gnames/gnvern/pkg/parserpool"
	"github.com/spf13/cobra"
)

// getIngestCmd returns the ingest command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getIngestCmd() *cobra.Command {
	var (
		sourceNames     []string
		includeSynonyms bool
		limit           int
	)

	ingestCmd := &cobra.Command{
		Use:   "ingest",
		Short: "Import common names from source caches",
		Long: `Import common names from the local source caches listed in
sources.yaml.

Sources run in a fixed order: the checklist (col) builds the taxon
registry first, then iucn, wikidata and wikipedia attach their names
to existing taxa. A name whose scientific name cannot be matched is
counted as skipped, never invented.

Each source pass runs in a single transaction and leaves a row in the
import-run ledger. One bad record never aborts a pass.

Examples:
  # Import all configured sources
  gnvern ingest

  # Import selected sources only
  gnvern ingest --source col,iucn
  gnvern ingest -s wikipedia

  # Also import scientific-name synonyms from the checklist
  gnvern ingest --include-synonyms

  # Smoke-test with the first 1000 records of each source
  gnvern ingest --limit 1000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runIngest(sourceNames, includeSynonyms, limit)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	ingestCmd.Flags().StringSliceVarP(
		&sourceNames, "source", "s", []string{},
		"source names to import (empty or 'all' = all)",
	)
	ingestCmd.Flags().BoolVar(
		&includeSynonyms, "include-synonyms", false,
		"import scientific-name synonyms from the checklist",
	)
	ingestCmd.Flags().IntVarP(
		&limit, "limit", "l", 0,
		"cap the number of records read per source (0 = no cap)",
	)

	return ingestCmd
}

func runIngest(
	sourceNames []string,
	includeSynonyms bool,
	limit int,
) error {
	ctx := context.Background()

	cfg.Update([]config.Option{
		config.OptIngestSources(sourceNames),
		config.OptIngestIncludeSynonyms(includeSynonyms),
	})
	if limit > 0 {
		cfg.Update([]config.Option{config.OptIngestLimit(limit)})
	}

	op := iodb.NewSqliteOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return err
	}
	if !hasTables {
		gn.Warn(`Warning: Database appears to be empty.
Run 'gnvern init' first to create the schema.`)
		return nil
	}

	pool := parserpool.NewPool(cfg.JobsNumber)
	defer pool.Close()

	ing := ioingest.New(cfg, op, pool)
	return ing.Ingest(ctx)
}
