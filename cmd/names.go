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
	"github.com/gnames/gnvern/pkg/config"
	"github.com/spf13/cobra"
)

// getNamesCmd returns the names command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getNamesCmd() *cobra.Command {
	var (
		language       string
		kingdom        string
		allowAmbiguous bool
	)

	namesCmd := &cobra.Command{
		Use:   "names",
		Short: "Resolve best display names",
		Long: `Pick one best common name per valid taxon and cache its
capitalized rendering.

Candidates are ranked by a fixed source priority. A name shared by
several taxa is ambiguous and loses to an unambiguous lower-priority
name, unless --allow-ambiguous is set.

Examples:
  gnvern names
  gnvern names --language fr
  gnvern names --kingdom Animalia
  gnvern names --allow-ambiguous`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runNames(language, kingdom, allowAmbiguous)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	namesCmd.Flags().StringVarP(
		&language, "language", "l", "",
		"ISO 639-1 language to resolve (default from config)",
	)
	namesCmd.Flags().StringVarP(
		&kingdom, "kingdom", "k", "",
		"restrict resolution to one kingdom",
	)
	namesCmd.Flags().BoolVar(
		&allowAmbiguous, "allow-ambiguous", false,
		"let an ambiguous name win (flagged on the taxon)",
	)

	return namesCmd
}

func runNames(language, kingdom string, allowAmbiguous bool) error {
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
	resolveOpts = append(resolveOpts,
		config.OptResolveAllowAmbiguous(allowAmbiguous))
	cfg.Update(resolveOpts)

	op := iodb.NewSqliteOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	res := ioresolve.New(cfg, op)
	return res.BestNames(ctx)
}
