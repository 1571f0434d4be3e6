// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

// Package batch provides a subcommand which prints the HathiTrust record URLs for a sheet of OCLC numbers.
package batch

import (
	"context"
	"flag"
	"fmt"

	"go.uber.org/zap"

	"github.com/cu-library/holdingstoolkit/sheet"
	"github.com/cu-library/holdingstoolkit/subcommand"
)

// Config returns a new subcommand config.
func Config() *subcommand.Config {
	fs := flag.NewFlagSet("hathitrust-batch", flag.ExitOnError)
	input := fs.String("input", "", "The CSV file or Excel workbook (.xlsx) to read. It must have an \""+sheet.OCLCHeader+"\" column. Required.")
	fs.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "  Look up HathiTrust record URLs for the OCLC numbers in a CSV file or workbook, 20 at a time.")
		fmt.Fprintln(flag.CommandLine.Output(), "  Numbers with a record are printed as CSV.")
		fs.PrintDefaults()
	}
	return &subcommand.Config{
		FlagSet: fs,
		ValidateFlags: func() error {
			return subcommand.RequireFlag("input", *input)
		},
		UsesWorldCat: func() bool { return false },
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
			numbers = subcommand.Unique(numbers)
			env.Logger.Info("looking up record URLs", zap.String("input", *input), zap.Int("oclc_numbers", len(numbers)))
			recordURLs, errs := env.Resolver.ResolveRecordURLs(ctx, numbers)
			rows := [][]string{}
			for _, n := range numbers {
				if u, ok := recordURLs[n]; ok {
					rows = append(rows, []string{n, u})
				}
			}
			err = subcommand.WriteCSV(env.Out, []string{sheet.OCLCHeader, sheet.HathiTrustHeader}, rows)
			if err != nil {
				return err
			}
			if len(errs) != 0 {
				for _, err := range errs {
					env.Logger.Error("HathiTrust batch failed", zap.Error(err))
				}
				return fmt.Errorf("%v HathiTrust batches failed", len(errs))
			}
			return nil
		},
	}
}
