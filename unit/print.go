// Copyright 2025 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package unit

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Symbol renders an already canonical term sequence as its canonical
// expression string, the exact inverse of parse-then-canonicalize. Terms with
// positive exponents are joined with '*' in sequence order; terms with
// negative exponents follow as '/'-prefixed reciprocals. The empty sequence
// is the identity unit, "1".
func Symbol(seq []Term) string {
	if len(seq) == 0 {
		return identitySymbol
	}

	var sb strings.Builder
	sep := ""
	for _, t := range seq {
		if t.Exponent().N > 0 {
			sb.WriteString(sep)
			sb.WriteString(t.Symbol())
			sep = "*"
		}
	}
	for _, t := range seq {
		if t.Exponent().N < 0 {
			sb.WriteString("/")
			sb.WriteString(t.Reciprocal().Symbol())
		}
	}
	return sb.String()
}

// Symbol renders one term: the base, then '^' and the signed numerator when
// the exponent is not 1, then '\' and the denominator when it is not 1.
func (t Term) Symbol() string {
	var sb strings.Builder
	if addr, ok := t.anchorBase(); ok {
		sb.WriteString("$")
		sb.WriteString(checksumHex(addr))
	} else {
		s, _ := t.SymbolText()
		sb.WriteString(s)
	}

	exp := t.Exponent()
	if !exp.IsOne() {
		fmt.Fprintf(&sb, "^%d", exp.N)
		if exp.D != 1 {
			fmt.Fprintf(&sb, "\\%d", exp.D)
		}
	}
	return sb.String()
}

// anchorBase is AnchorAddress without the base-form restriction: printing
// needs the address bytes whatever the exponent.
func (t Term) anchorBase() (Address, bool) {
	var addr Address
	if !t.IsAnchored() {
		return addr, false
	}
	copy(addr[:], t[1:1+addrLen])
	return addr, true
}

// checksumHex renders an address as 0x plus 40 hex digits with checksum
// casing: a letter is uppercased when the corresponding nibble of the
// Keccak-256 hash of the lowercase hex body is >= 8.
func checksumHex(addr Address) string {
	const digits = "0123456789abcdef"
	body := make([]byte, 2*addrLen)
	for i, b := range addr {
		body[2*i] = digits[b>>4]
		body[2*i+1] = digits[b&0xf]
	}

	h := sha3.NewLegacyKeccak256()
	h.Write(body)
	sum := h.Sum(nil)

	for i, c := range body {
		if c < 'a' {
			continue
		}
		nibble := sum[i/2] >> 4
		if i%2 == 1 {
			nibble = sum[i/2] & 0xf
		}
		if nibble >= 8 {
			body[i] = c - ('a' - 'A')
		}
	}
	return "0x" + string(body)
}
