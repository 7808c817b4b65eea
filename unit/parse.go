// Copyright 2025 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package unit

import (
	"errors"

	"unitforge/rational"
)

// Parse converts an expression string into a term sequence.
//
//	expr := term (('*'|'/') term)*
//	term := base ('^' SIGNED_INT ('\' UNSIGNED_INT)?)?
//	base := SYMBOL | '$' '0x' HEX20BYTES
//
// A '/' separator negates the following term's exponent; a leading '/' is the
// degenerate form with no numerator terms. Parsing is purely syntactic: the
// result may be unsorted and may repeat bases. Canonicalize is SortedMerge's
// job, not Parse's.
func Parse(s string) ([]Term, error) {
	if len(s) == 0 {
		return nil, &UnexpectedCharError{EOF: true}
	}

	var seq []Term
	pos := 0
	sign := int64(1)
	if s[0] == '/' && len(s) > 1 {
		sign = -1
		pos = 1
	}

	for {
		term, next, err := parseTerm(s, pos, sign)
		if err != nil {
			return nil, err
		}
		seq = append(seq, term)
		pos = next

		if pos == len(s) {
			return seq, nil
		}
		switch s[pos] {
		case '*':
			sign = 1
		case '/':
			sign = -1
		default:
			return nil, &UnexpectedCharError{Byte: s[pos], Pos: pos}
		}
		pos++
		if pos == len(s) { // trailing operator
			return nil, &UnexpectedCharError{EOF: true}
		}
	}
}

func parseTerm(s string, pos int, sign int64) (Term, int, error) {
	var (
		term Term
		err  error
	)

	if s[pos] == '$' {
		var addr Address
		addr, pos, err = parseAddress(s, pos+1)
		if err != nil {
			return term, 0, err
		}
		term = NewAnchored(addr, rational.One())
	} else {
		start := pos
		for pos < len(s) && isSymbolChar(s[pos]) {
			pos++
		}
		switch {
		case pos == start && pos >= len(s):
			return term, 0, &UnexpectedCharError{EOF: true}
		case pos == start:
			return term, 0, &UnexpectedCharError{Byte: s[pos], Pos: pos}
		case pos-start > baseLen:
			return term, 0, ErrBaseSymbolTooBig
		}
		term, err = NewSymbolic(s[start:pos], rational.One())
		if err != nil {
			return term, 0, err
		}
	}

	num, den := int64(1), int64(1)
	if pos < len(s) && s[pos] == '^' {
		pos++
		if pos < len(s) && s[pos] == '-' {
			sign = -sign
			pos++
		}
		num, pos, err = parseMagnitude(s, pos)
		if err != nil {
			return term, 0, err
		}
		if pos < len(s) && s[pos] == '\\' {
			den, pos, err = parseMagnitude(s, pos+1)
			if err != nil {
				return term, 0, err
			}
		}
	}

	exp, err := rational.NarrowFrom(sign*num, den)
	if err != nil {
		if errors.Is(err, rational.ErrZeroDenominator) {
			return term, 0, err
		}
		return term, 0, ErrExponentTooBig
	}
	return term.WithExponent(exp), pos, nil
}

// parseMagnitude scans a nonempty run of decimal digits. Magnitudes beyond
// any representable narrow exponent are rejected here so accumulation cannot
// overflow.
func parseMagnitude(s string, pos int) (int64, int, error) {
	if pos >= len(s) {
		return 0, 0, &UnexpectedCharError{EOF: true}
	}
	if s[pos] < '0' || s[pos] > '9' {
		return 0, 0, &UnexpectedCharError{Byte: s[pos], Pos: pos}
	}
	var v int64
	for pos < len(s) && s[pos] >= '0' && s[pos] <= '9' {
		v = v*10 + int64(s[pos]-'0')
		if v > 1<<16 {
			return 0, 0, ErrExponentTooBig
		}
		pos++
	}
	return v, pos, nil
}

// parseAddress scans the 0x-prefixed 40-hex-digit address body after '$'.
// Case is ignored so checksum-cased output re-parses.
func parseAddress(s string, pos int) (Address, int, error) {
	var addr Address
	if pos+1 >= len(s) {
		return addr, 0, &UnexpectedCharError{EOF: true}
	}
	if s[pos] != '0' {
		return addr, 0, &UnexpectedCharError{Byte: s[pos], Pos: pos}
	}
	if s[pos+1] != 'x' {
		return addr, 0, &UnexpectedCharError{Byte: s[pos+1], Pos: pos + 1}
	}
	pos += 2
	for i := 0; i < 2*addrLen; i++ {
		if pos >= len(s) {
			return addr, 0, &UnexpectedCharError{EOF: true}
		}
		v, ok := hexVal(s[pos])
		if !ok {
			return addr, 0, &BadHexCharError{Byte: s[pos], Pos: pos}
		}
		if i%2 == 0 {
			addr[i/2] = v << 4
		} else {
			addr[i/2] |= v
		}
		pos++
	}
	return addr, pos, nil
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
