// Copyright 2025 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package unit

import (
	"errors"
	"fmt"
)

var (
	// ErrBaseSymbolTooBig reports a base of more than 30 symbol characters.
	ErrBaseSymbolTooBig = errors.New("unit: base symbol too big")

	// ErrExponentTooBig reports an exponent that does not fit the narrow
	// rational range, on parse or when merging like bases.
	ErrExponentTooBig = errors.New("unit: exponent out of range")

	// ErrMalformedTerm reports a stored term that fails structural
	// validation. Not reachable through correct construction.
	ErrMalformedTerm = errors.New("unit: malformed term")

	// ErrSqrtUndefined reports a square root outside the single-term
	// even-exponent case, which is the only form defined.
	ErrSqrtUndefined = errors.New("unit: square root undefined for sequence")
)

// BadHexCharError identifies the offending byte in an address base.
type BadHexCharError struct {
	Byte byte
	Pos  int
}

func (e *BadHexCharError) Error() string {
	return fmt.Sprintf("unit: bad hex character %q at position %d", e.Byte, e.Pos)
}

// UnexpectedCharError identifies input outside the grammar, or truncated
// input when EOF is set.
type UnexpectedCharError struct {
	Byte byte
	Pos  int
	EOF  bool
}

func (e *UnexpectedCharError) Error() string {
	if e.EOF {
		return "unit: unexpected end of expression"
	}
	return fmt.Sprintf("unit: unexpected character %q at position %d", e.Byte, e.Pos)
}
