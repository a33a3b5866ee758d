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
	"github.com/gnames/gnvern/internal/ioreport"
	"github.com/gnames/gnvern/internal/ioresolve"
	"github.com/gnames/gnvern/pkg/config"
	"github.com/spf13/cobra"
)

// getReportCmd returns the report command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getReportCmd() *cobra.Command {
	var (
		reportType string
		name       string
		language   string
		kingdom    string
		seedFile   string
	)

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Render read-only views of the aggregated data",
		Long: `Render one of the built-in reports.

Report types:
  summary         database-wide counts
  ambiguous       names owned by more than one taxon
  ambiguous-iucn  ambiguity within IUCN names only
  iucn-preferred  ambiguity among IUCN preferred names
  wiki-disambig   ambiguity among Wikipedia-derived names
  caps            suggested capitalization rules
  trace           selection trace for one scientific name (--name)

Examples:
  gnvern report -t summary
  gnvern report -t ambiguous --language de
  gnvern report -t trace --name "Canis lupus"
  gnvern report -t caps
  gnvern report -t caps --seed caps.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runReport(reportType, name, language, kingdom, seedFile)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	reportCmd.Flags().StringVarP(
		&reportType, "type", "t", ioreport.KindSummary,
		"report type",
	)
	reportCmd.Flags().StringVarP(
		&name, "name", "n", "",
		"scientific name for the trace report",
	)
	reportCmd.Flags().StringVarP(
		&language, "language", "l", "",
		"ISO 639-1 language filter (default from config)",
	)
	reportCmd.Flags().StringVarP(
		&kingdom, "kingdom", "k", "",
		"restrict the report to one kingdom",
	)
	reportCmd.Flags().StringVar(
		&seedFile, "seed", "",
		"seed capitalization rules from a word-per-line file",
	)

	return reportCmd
}

func runReport(
	reportType, name, language, kingdom, seedFile string,
) error {
	ctx := context.Background()

	var resolveOpts []config.Option
	if language != "" {
		resolveOpts = append(resolveOpts,
			config.OptResolveLanguage(language))
	}
	if kingdom != "" {
		resolveOpts = append(resolveOpts,
			config.OptResolveKingdom(kingdom))
	}
	cfg.Update(resolveOpts)

	op := iodb.NewSqliteOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	if seedFile != "" {
		res := ioresolve.New(cfg, op)
		_, err := res.SeedCapsRules(ctx, seedFile)
		return err
	}

	rep := ioreport.New(cfg, op)
	return rep.Report(ctx, reportType, name)
}
