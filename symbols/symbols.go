// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

// Package symbols is the registry of WorldCat institution symbols this toolkit looks up holdings for.
//
// The symbols are split into three disjoint groups: the Northern Regional Library Facility (NRLF),
// the Southern Regional Library Facility (SRLF), and the University of California campuses (UC).
package symbols

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSymbolSet is returned when a list of institution symbols is empty or contains unknown symbols.
var ErrInvalidSymbolSet = errors.New("invalid institution symbols")

var (
	nrlf = []string{"ZAP", "ZAPSP"}
	srlf = []string{"HH0", "ZAS", "ZASSP"}
	uc   = []string{"CLU", "CRU", "CUI", "CUN", "CUS", "CUT", "CUV", "CUX", "CUY", "CUZ", "MERUC"}
)

// universe maps every known symbol to the name of its group.
var universe = func() map[string]string {
	m := map[string]string{}
	for _, s := range nrlf {
		m[s] = "NRLF"
	}
	for _, s := range srlf {
		m[s] = "SRLF"
	}
	for _, s := range uc {
		m[s] = "UC"
	}
	return m
}()

// NRLF returns the Northern Regional Library Facility symbols.
func NRLF() []string { return clone(nrlf) }

// SRLF returns the Southern Regional Library Facility symbols.
func SRLF() []string { return clone(srlf) }

// RLF returns the symbols of both regional library facilities.
func RLF() []string { return concat(nrlf, srlf) }

// UC returns the University of California campus symbols.
func UC() []string { return clone(uc) }

// All returns every known symbol: the RLF symbols followed by the UC symbols.
func All() []string { return concat(nrlf, srlf, uc) }

// Valid reports whether sym is a known institution symbol.
func Valid(sym string) bool {
	_, ok := universe[sym]
	return ok
}

// GroupOf returns the name of the group sym belongs to.
func GroupOf(sym string) (string, bool) {
	g, ok := universe[sym]
	return g, ok
}

// Validate returns syms unchanged if it is non-empty and every symbol is known.
// Otherwise, the returned error wraps ErrInvalidSymbolSet and names every invalid symbol.
func Validate(syms []string) ([]string, error) {
	if len(syms) == 0 {
		return nil, fmt.Errorf("%w: no institution symbols provided", ErrInvalidSymbolSet)
	}
	invalid := []string{}
	for _, s := range syms {
		if !Valid(s) {
			invalid = append(invalid, fmt.Sprintf("%q", s))
		}
	}
	if len(invalid) != 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSymbolSet, strings.Join(invalid, ", "))
	}
	return syms, nil
}

// Group returns the symbols for a named group: ALL, RLF, NRLF, SRLF or UC. Case is ignored.
func Group(name string) ([]string, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "ALL":
		return All(), true
	case "RLF":
		return RLF(), true
	case "NRLF":
		return NRLF(), true
	case "SRLF":
		return SRLF(), true
	case "UC":
		return UC(), true
	}
	return nil, false
}

// Parse expands a comma separated list of group names and symbols, like "NRLF,CLU", into symbols.
// Duplicates are dropped. The result is validated.
func Parse(list string) ([]string, error) {
	syms := []string{}
	seen := map[string]bool{}
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			syms = append(syms, s)
		}
	}
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if group, ok := Group(part); ok {
			for _, s := range group {
				add(s)
			}
			continue
		}
		add(strings.ToUpper(part))
	}
	return Validate(syms)
}

// Intersect returns the members of syms which are also in set, in the order they appear in syms.
// Duplicates in syms are kept.
func Intersect(syms, set []string) []string {
	in := make(map[string]bool, len(set))
	for _, s := range set {
		in[s] = true
	}
	out := []string{}
	for _, s := range syms {
		if in[s] {
			out = append(out, s)
		}
	}
	return out
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}

func concat(groups ...[]string) []string {
	out := []string{}
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
