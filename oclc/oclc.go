// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

// Package oclc validates OCLC numbers, the identifiers WorldCat assigns to bibliographic records.
package oclc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidIdentifier is returned when a string can't be used as an OCLC number.
var ErrInvalidIdentifier = errors.New("invalid OCLC number")

// Validate returns the OCLC number unchanged if it is usable, or an error wrapping ErrInvalidIdentifier.
// Validity is purely syntactic: the number must not be empty or blank. There is no checksum.
func Validate(number string) (string, error) {
	if number == "" {
		return "", fmt.Errorf("%w: OCLC number cannot be empty", ErrInvalidIdentifier)
	}
	if strings.TrimSpace(number) == "" {
		return "", fmt.Errorf("%w: OCLC number %q must not be blank", ErrInvalidIdentifier, number)
	}
	return number, nil
}

// ValidateAll validates every number in the slice, failing on the first invalid one.
func ValidateAll(numbers []string) ([]string, error) {
	for i, number := range numbers {
		if _, err := Validate(number); err != nil {
			return nil, fmt.Errorf("OCLC number at index %v: %w", i, err)
		}
	}
	return numbers, nil
}
