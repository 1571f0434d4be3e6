// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

// Package dump provides output about the toolkit's configuration.
package dump

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/cu-library/holdingstoolkit/config"
	"github.com/cu-library/holdingstoolkit/subcommand"
	"github.com/cu-library/holdingstoolkit/symbols"
)

// Groups are the symbol group names printed, in order.
var Groups = []string{"NRLF", "SRLF", "RLF", "UC", "ALL"}

// Config returns a new subcommand config.
func Config() *subcommand.Config {
	fs := flag.NewFlagSet("conf-dump", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "  Print the configured services, the institution symbol groups, and the group of each symbol.")
		fmt.Fprintln(flag.CommandLine.Output(), "  This command is meant to help run other subcommands which need a symbol or group name,")
		fmt.Fprintln(flag.CommandLine.Output(), "  or to check which settings the flags, environment, and config file resolved to.")
		fmt.Fprintln(flag.CommandLine.Output(), "  The API key and secret are never printed.")
		fs.PrintDefaults()
	}
	return &subcommand.Config{
		FlagSet:       fs,
		ValidateFlags: func() error { return nil },
		UsesWorldCat:  func() bool { return false },
		Run: func(ctx context.Context, env subcommand.Env) error {
			cfg := env.Config
			fmt.Fprintln(env.Out, "Services:")
			fmt.Fprintf(env.Out, "WorldCat Protocol: %v\n", cfg.Protocol())
			fmt.Fprintf(env.Out, "WorldCat Base URL: %v\n", cfg.BaseURI(config.WorldCat))
			fmt.Fprintf(env.Out, "WorldCat API Key: %v\n", isSet(cfg.APIKey()))
			if cfg.Protocol() == config.ProtocolV2 {
				fmt.Fprintf(env.Out, "WorldCat API Secret: %v\n", isSet(cfg.APISecret()))
				fmt.Fprintf(env.Out, "OCLC Token URL: %v\n", cfg.TokenURI())
			}
			fmt.Fprintf(env.Out, "HathiTrust Base URL: %v\n", cfg.BaseURI(config.HathiTrust))
			fmt.Fprintln(env.Out)
			fmt.Fprintln(env.Out, "Symbol Groups:")
			for _, name := range Groups {
				syms, _ := symbols.Group(name)
				fmt.Fprintf(env.Out, "%v: %v\n", name, strings.Join(syms, ","))
			}
			fmt.Fprintln(env.Out)
			fmt.Fprintln(env.Out, "Symbols:")
			for _, sym := range symbols.All() {
				group, _ := symbols.GroupOf(sym)
				fmt.Fprintf(env.Out, "%v: %v\n", sym, group)
			}
			return nil
		},
	}
}

func isSet(v string) string {
	if v == "" {
		return "not set"
	}
	return "set"
}
