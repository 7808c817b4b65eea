// Copyright 2025 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package unit

import (
	"bytes"
	"fmt"

	"unitforge/rational"
)

// Term is one base^exponent factor of a compound unit, kept in its packed
// 32-byte wire layout:
//
//	byte  0      type tag: anchorTag for anchored bases, otherwise the
//	             first symbol character (or zero for the empty base)
//	bytes 0-29   base: left-justified zero-padded symbol text, or for
//	             anchored bases the tag followed by a 20-byte address
//	byte  30     exponent numerator, int8
//	byte  31     exponent denominator, uint8
//
// No symbol character is ever 0x00 or 0x01, so the tag byte is unambiguous.
// Base comparison is plain byte order over the base field, which puts all
// anchored bases in one block ahead of every symbolic base.
type Term [32]byte

const (
	baseLen   = 30 // bytes of the base field
	addrLen   = 20 // bytes of an anchor address
	anchorTag = 0x01

	expNumByte = 30
	expDenByte = 31
)

// Address is an external-token address custodied by an anchored base unit.
type Address [addrLen]byte

// identitySymbol is the textual identity base; it never survives merging and
// an identity unit is the empty term sequence.
const identitySymbol = "1"

// NewSymbolic packs a symbol and exponent into a term. The symbol must be
// 1..30 permitted characters.
func NewSymbolic(symbol string, exp rational.Rational8) (Term, error) {
	var t Term
	if len(symbol) == 0 {
		return t, &UnexpectedCharError{EOF: true}
	}
	if len(symbol) > baseLen {
		return t, ErrBaseSymbolTooBig
	}
	for i := 0; i < len(symbol); i++ {
		if !isSymbolChar(symbol[i]) {
			return t, &UnexpectedCharError{Byte: symbol[i], Pos: i}
		}
	}
	copy(t[:baseLen], symbol)
	return t.WithExponent(exp), nil
}

// NewAnchored packs an external-token address and exponent into a term.
func NewAnchored(addr Address, exp rational.Rational8) Term {
	var t Term
	t[0] = anchorTag
	copy(t[1:1+addrLen], addr[:])
	return t.WithExponent(exp)
}

// Base returns the term with its exponent field masked off.
func (t Term) Base() Term {
	t[expNumByte] = 0
	t[expDenByte] = 0
	return t
}

// CompareBase orders terms by the numeric value of their packed base bits.
func (t Term) CompareBase(o Term) int {
	return bytes.Compare(t[:baseLen], o[:baseLen])
}

// SameBase reports whether two terms share a base.
func (t Term) SameBase(o Term) bool {
	return t.CompareBase(o) == 0
}

func (t Term) Exponent() rational.Rational8 {
	return rational.Rational8{N: int8(t[expNumByte]), D: t[expDenByte]}
}

// WithExponent replaces the exponent field, leaving the base untouched.
func (t Term) WithExponent(exp rational.Rational8) Term {
	t[expNumByte] = byte(exp.N)
	t[expDenByte] = exp.D
	return t
}

// Reciprocal negates the exponent.
func (t Term) Reciprocal() Term {
	return t.WithExponent(t.Exponent().Neg())
}

// IsBaseForm reports an exponent of exactly 1/1.
func (t Term) IsBaseForm() bool {
	return t.Exponent().IsOne()
}

func (t Term) IsAnchored() bool {
	return t[0] == anchorTag
}

// AnchorAddress returns the custodied token address. Only a base-form
// anchored term denotes genuine custody: any other exponent reports no
// anchor, exactly as if the term had no anchor relationship at all.
func (t Term) AnchorAddress() (Address, bool) {
	var addr Address
	if !t.IsAnchored() || !t.IsBaseForm() {
		return addr, false
	}
	copy(addr[:], t[1:1+addrLen])
	return addr, true
}

// SymbolText returns the symbol characters of a symbolic term.
func (t Term) SymbolText() (string, bool) {
	if t.IsAnchored() {
		return "", false
	}
	end := bytes.IndexByte(t[:baseLen], 0)
	if end < 0 {
		end = baseLen
	}
	return string(t[:end]), true
}

// IsIdentity reports the textual identity base "1".
func (t Term) IsIdentity() bool {
	s, ok := t.SymbolText()
	return ok && s == identitySymbol
}

// Validate checks the structural invariants of a stored term: a well-formed
// exponent, zeroed reserved bytes after an anchored address, and for symbolic
// terms no characters after padding starts and only permitted characters
// before it.
func (t Term) Validate() error {
	if err := t.Exponent().Validate(); err != nil {
		return err
	}
	if t.IsAnchored() {
		for i := 1 + addrLen; i < baseLen; i++ {
			if t[i] != 0 {
				return fmt.Errorf("%w: nonzero reserved byte %d", ErrMalformedTerm, i)
			}
		}
		return nil
	}
	if t[0] == 0 {
		return fmt.Errorf("%w: empty base", ErrMalformedTerm)
	}
	padded := false
	for i := 0; i < baseLen; i++ {
		switch {
		case t[i] == 0:
			padded = true
		case padded:
			return fmt.Errorf("%w: character after padding at byte %d", ErrMalformedTerm, i)
		case !isSymbolChar(t[i]):
			return fmt.Errorf("%w: bad symbol character %q", ErrMalformedTerm, t[i])
		}
	}
	return nil
}

// EncodeWire emits the fixed-width wire word. The in-memory form is already
// the wire layout.
func (t Term) EncodeWire() [32]byte {
	return [32]byte(t)
}

// DecodeWire validates and adopts a wire word.
func DecodeWire(w [32]byte) (Term, error) {
	t := Term(w)
	if err := t.Validate(); err != nil {
		return Term{}, err
	}
	return t, nil
}
