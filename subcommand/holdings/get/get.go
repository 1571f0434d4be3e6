// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

// Package get provides a subcommand which prints the holdings for one OCLC number.
package get

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/cu-library/holdingstoolkit/holdings"
	"github.com/cu-library/holdingstoolkit/subcommand"
	"github.com/cu-library/holdingstoolkit/symbols"
)

// Header is the CSV header printed before the result.
var Header = []string{"OCLC Number", "Symbols", "NRLF", "SRLF", "Other UC", "Hathi Trust"}

// Config returns a new subcommand config.
func Config() *subcommand.Config {
	fs := flag.NewFlagSet("holdings-get", flag.ExitOnError)
	oclcNumber := fs.String("oclc", "", "The OCLC number to look up. Required.")
	symbolList := fs.String("symbols", "ALL", "Comma separated WorldCat institution symbols or groups (ALL, RLF, NRLF, SRLF, UC). Empty to skip WorldCat.")
	hathiTrust := fs.Bool("hathitrust", true, "Look up the HathiTrust record URL.")
	fs.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "  Look up the holdings for one OCLC number and print them as CSV.")
		fs.PrintDefaults()
	}
	var syms []string
	return &subcommand.Config{
		FlagSet: fs,
		ValidateFlags: func() (err error) {
			err = subcommand.RequireFlag("oclc", *oclcNumber)
			if err != nil {
				return err
			}
			syms = nil
			if strings.TrimSpace(*symbolList) != "" {
				syms, err = symbols.Parse(*symbolList)
				if err != nil {
					return err
				}
			}
			if len(syms) == 0 && !*hathiTrust {
				return holdings.ErrEmptyRequest
			}
			return nil
		},
		UsesWorldCat: func() bool { return len(syms) != 0 },
		Run: func(ctx context.Context, env subcommand.Env) error {
			result, err := env.Resolver.Resolve(ctx, *oclcNumber, holdings.WithSymbols(syms), holdings.WithRecordURL(*hathiTrust))
			if err != nil {
				return err
			}
			err = subcommand.WriteCSV(env.Out, Header, [][]string{Row(result)})
			if err != nil {
				return err
			}
			return result.Err()
		},
	}
}

// Row formats a result to match Header.
func Row(r holdings.Result) []string {
	return []string{
		r.OCLCNumber,
		strings.Join(r.Symbols, ","),
		strconv.FormatBool(r.NRLF()),
		strconv.FormatBool(r.SRLF()),
		strings.Join(r.UCSymbols(), ","),
		r.RecordURL,
	}
}
