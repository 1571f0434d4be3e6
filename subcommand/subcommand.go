// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

// Package subcommand defines commands in the holdings toolkit.
package subcommand

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/cu-library/holdingstoolkit/config"
	"github.com/cu-library/holdingstoolkit/holdings"
)

// Env is what a subcommand needs to run.
type Env struct {
	Config   config.Provider
	Resolver *holdings.Resolver
	Logger   *zap.Logger
	// Out receives the subcommand's report or CSV output.
	Out io.Writer
}

// Config stores information about subcommands.
type Config struct {
	FlagSet       *flag.FlagSet                    // The Flag set for this subcommand.
	ValidateFlags func() error                     // A function which validates that the flagset is valid after it is parsed.
	Run           func(context.Context, Env) error // Call this function for this subcommand.
	UsesWorldCat  func() bool                      // Reports whether this run will call WorldCat, after flags are parsed.
}

// Registry maps the string from the command line to the properties of a subcommand.
// The key is always the same as the FlagSet's name.
type Registry map[string]*Config

// Register the config with the registry.
func (r Registry) Register(c *Config) {
	r[c.FlagSet.Name()] = c
}

// RequireFlag returns an error if a required string flag is empty.
func RequireFlag(name, value string) error {
	if value == "" {
		return fmt.Errorf("the -%v flag is required", name)
	}
	return nil
}

// WriteCSV writes a header and rows to w.
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	err := cw.Write(header)
	if err != nil {
		return fmt.Errorf("error writing csv header: %w", err)
	}
	for _, row := range rows {
		err := cw.Write(row)
		if err != nil {
			return fmt.Errorf("error writing line to csv: %w", err)
		}
	}
	cw.Flush()
	err = cw.Error()
	if err != nil {
		return fmt.Errorf("error after flushing csv: %w", err)
	}
	return nil
}

// Unique returns the values without duplicates, keeping the first occurrence of each.
func Unique(values []string) []string {
	seen := map[string]bool{}
	unique := []string{}
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			unique = append(unique, v)
		}
	}
	return unique
}
