// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

package holdings

import (
	"errors"

	"github.com/cu-library/holdingstoolkit/symbols"
)

// Result is the outcome of a holdings request.
// A lookup which wasn't requested leaves its fields at their zero values. A lookup which found
// nothing is not an error: Symbols is empty or RecordURL is "".
type Result struct {
	OCLCNumber string
	// Symbols are the institutions which hold the work, without duplicates, in the order WorldCat returned them.
	// Never nil.
	Symbols []string
	// SymbolsErr is set if the WorldCat lookup failed.
	SymbolsErr error
	// RecordURL is the HathiTrust record URL, or "" if there is none.
	RecordURL string
	// RecordURLErr is set if the HathiTrust lookup failed.
	RecordURLErr error
}

// NRLF reports whether any of the Northern Regional Library Facility symbols hold the work.
func (r Result) NRLF() bool {
	return len(symbols.Intersect(r.Symbols, symbols.NRLF())) != 0
}

// SRLF reports whether any of the Southern Regional Library Facility symbols hold the work.
func (r Result) SRLF() bool {
	return len(symbols.Intersect(r.Symbols, symbols.SRLF())) != 0
}

// UCSymbols returns the UC campus symbols which hold the work.
func (r Result) UCSymbols() []string {
	return symbols.Intersect(r.Symbols, symbols.UC())
}

// OtherSymbols returns the symbols which aren't regional library facilities.
func (r Result) OtherSymbols() []string {
	rlf := map[string]bool{}
	for _, s := range symbols.RLF() {
		rlf[s] = true
	}
	other := []string{}
	for _, s := range r.Symbols {
		if !rlf[s] {
			other = append(other, s)
		}
	}
	return other
}

// Err joins the errors from both lookups. It is nil if neither failed.
func (r Result) Err() error {
	return errors.Join(r.SymbolsErr, r.RecordURLErr)
}

// dedupe drops repeated symbols, keeping the first occurrence. The result is never nil.
func dedupe(syms []string) []string {
	seen := make(map[string]bool, len(syms))
	out := make([]string, 0, len(syms))
	for _, s := range syms {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
