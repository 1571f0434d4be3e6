// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

// Package lookup provides a subcommand which fills in the holdings columns of a sheet of OCLC numbers.
package lookup

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"go.uber.org/zap"

	"github.com/cu-library/holdingstoolkit/api"
	"github.com/cu-library/holdingstoolkit/holdings"
	"github.com/cu-library/holdingstoolkit/sheet"
	"github.com/cu-library/holdingstoolkit/subcommand"
	"github.com/cu-library/holdingstoolkit/symbols"
)

// Config returns a new subcommand config.
func Config() *subcommand.Config {
	fs := flag.NewFlagSet("holdings-lookup", flag.ExitOnError)
	input := fs.String("input", "", "The CSV file or Excel workbook (.xlsx) to read. It must have an \""+sheet.OCLCHeader+"\" column. Required.")
	output := fs.String("output", "", "The file to write, in the same format as the input. Required.")
	rlf := fs.Bool("rlf", true, "Look up NRLF and SRLF holdings in WorldCat.")
	uc := fs.Bool("uc", true, "Look up UC campus holdings in WorldCat.")
	hathiTrust := fs.Bool("hathitrust", true, "Look up HathiTrust record URLs.")
	fs.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "  Read OCLC numbers from a CSV file or the first worksheet of a workbook, look up their holdings, and write")
		fmt.Fprintln(flag.CommandLine.Output(), "  the file back out with the NRLF, SRLF, Other UC, and Hathi Trust columns filled in.")
		fs.PrintDefaults()
	}
	return &subcommand.Config{
		FlagSet: fs,
		ValidateFlags: func() error {
			err := subcommand.RequireFlag("input", *input)
			if err != nil {
				return err
			}
			err = subcommand.RequireFlag("output", *output)
			if err != nil {
				return err
			}
			if !*rlf && !*uc && !*hathiTrust {
				return fmt.Errorf("at least one of -rlf, -uc, or -hathitrust must be set")
			}
			return nil
		},
		UsesWorldCat: func() bool { return *rlf || *uc },
		Run: func(ctx context.Context, env subcommand.Env) error {
			in, err := sheet.Open(*input)
			if err != nil {
				return err
			}
			defer in.Close()
			numbers, err := sheet.OCLCNumbers(in)
			if err != nil {
				return err
			}
			writer, err := sheet.NewWriter(in, sheet.WriterOptions{RLF: *rlf, UC: *uc, HathiTrust: *hathiTrust}, env.Logger)
			if err != nil {
				return err
			}
			syms := []string{}
			if *rlf {
				syms = append(syms, symbols.RLF()...)
			}
			if *uc {
				syms = append(syms, symbols.UC()...)
			}
			numbers = subcommand.Unique(numbers)
			env.Logger.Info("looking up holdings", zap.String("input", *input), zap.Int("oclc_numbers", len(numbers)))

			bar := api.DefaultProgressBar(len(numbers), "looking up holdings")
			opts := []holdings.Option{holdings.WithSymbols(syms), holdings.WithRecordURL(*hathiTrust)}
			results := env.Resolver.ResolveAll(ctx, numbers, opts, func() { _ = bar.Add(1) })
			_ = bar.Finish()

			failed := 0
			for _, r := range results {
				if r.Err() != nil {
					failed++
				}
			}
			errs := writer.WriteAll(results)
			for _, err := range errs {
				env.Logger.Error("writing result failed", zap.Error(err))
			}
			err = in.Save(*output)
			if err != nil {
				return err
			}
			fmt.Fprintf(env.Out, "%v OCLC numbers looked up, %v with errors. Results written to %v.\n", len(results), failed, *output)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if failed != 0 {
				return fmt.Errorf("%v of %v lookups had errors, see the log", failed, len(results))
			}
			return errors.Join(errs...)
		},
	}
}
