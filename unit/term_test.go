// Copyright 2025 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package unit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"unitforge/rational"
)

var testAddr = Address{
	0x5a, 0xae, 0xb6, 0x05, 0x3f, 0x3e, 0x94, 0xc9, 0xb9, 0xa0,
	0x9f, 0x33, 0x66, 0x94, 0x35, 0xe7, 0xef, 0x1b, 0xea, 0xed,
}

func TestNewSymbolic(t *testing.T) {
	term, err := NewSymbolic("kg", rational.One())
	require.NoError(t, err)
	require.NoError(t, term.Validate())
	require.True(t, term.IsBaseForm())
	require.False(t, term.IsAnchored())

	s, ok := term.SymbolText()
	require.True(t, ok)
	require.Equal(t, "kg", s)

	_, err = NewSymbolic("", rational.One())
	require.Error(t, err)

	_, err = NewSymbolic("abcdefghijklmnopqrstuvwxyz01234", rational.One()) // 31 chars
	require.ErrorIs(t, err, ErrBaseSymbolTooBig)

	_, err = NewSymbolic("a b", rational.One())
	var unexpected *UnexpectedCharError
	require.ErrorAs(t, err, &unexpected)
	require.Equal(t, byte(' '), unexpected.Byte)
}

func TestExponentField(t *testing.T) {
	term, err := NewSymbolic("m", rational.Rational8{N: -3, D: 2})
	require.NoError(t, err)
	require.Equal(t, rational.Rational8{N: -3, D: 2}, term.Exponent())
	require.False(t, term.IsBaseForm())

	recip := term.Reciprocal()
	require.Equal(t, rational.Rational8{N: 3, D: 2}, recip.Exponent())
	require.True(t, term.SameBase(recip))
	require.Equal(t, term.Base(), recip.Base())
}

func TestAnchorAddress(t *testing.T) {
	term := NewAnchored(testAddr, rational.One())
	require.NoError(t, term.Validate())
	require.True(t, term.IsAnchored())

	addr, ok := term.AnchorAddress()
	require.True(t, ok)
	require.Equal(t, testAddr, addr)

	// only a base-form anchored term denotes custody
	squared := term.WithExponent(rational.Rational8{N: 2, D: 1})
	_, ok = squared.AnchorAddress()
	require.False(t, ok)

	_, ok = term.Reciprocal().AnchorAddress()
	require.False(t, ok)
}

func TestBaseOrdering(t *testing.T) {
	// plain byte order: digits and uppercase before lowercase, anchored
	// bases as a block before every symbolic base
	anchored := NewAnchored(testAddr, rational.One())
	digit, _ := NewSymbolic("0x.y", rational.One())
	upper, _ := NewSymbolic("Z", rational.One())
	lower, _ := NewSymbolic("a", rational.One())
	longer, _ := NewSymbolic("ab", rational.One())

	require.Negative(t, anchored.CompareBase(digit))
	require.Negative(t, digit.CompareBase(upper))
	require.Negative(t, upper.CompareBase(lower))
	require.Negative(t, lower.CompareBase(longer))
}

func TestValidate(t *testing.T) {
	makeSym := func(s string) Term {
		term, err := NewSymbolic(s, rational.One())
		require.NoError(t, err)
		return term
	}

	t.Run("character after padding", func(t *testing.T) {
		term := makeSym("ab")
		term[1] = 0
		term[2] = 'c'
		require.ErrorIs(t, term.Validate(), ErrMalformedTerm)
	})

	t.Run("bad symbol character", func(t *testing.T) {
		term := makeSym("ab")
		term[1] = '!'
		require.ErrorIs(t, term.Validate(), ErrMalformedTerm)
	})

	t.Run("nonzero reserved byte", func(t *testing.T) {
		term := NewAnchored(testAddr, rational.One())
		term[addrLen+1] = 0xff
		require.ErrorIs(t, term.Validate(), ErrMalformedTerm)
	})

	t.Run("zero exponent denominator", func(t *testing.T) {
		term := makeSym("a")
		term[expDenByte] = 0
		require.ErrorIs(t, term.Validate(), rational.ErrZeroDenominator)
	})

	t.Run("sentinel numerator", func(t *testing.T) {
		term := makeSym("a")
		term[expNumByte] = 0x80 // -128, too negative to negate
		require.ErrorIs(t, term.Validate(), rational.ErrNumeratorTooBig)
	})

	t.Run("empty base", func(t *testing.T) {
		var term Term
		term = term.WithExponent(rational.One())
		require.ErrorIs(t, term.Validate(), ErrMalformedTerm)
	})
}

func TestWireRoundTrip(t *testing.T) {
	term, err := NewSymbolic("kg", rational.Rational8{N: -1, D: 2})
	require.NoError(t, err)

	w := term.EncodeWire()
	require.Equal(t, byte('k'), w[0])
	require.Equal(t, byte('g'), w[1])
	require.Equal(t, byte(0), w[2])
	require.Equal(t, byte(0xff), w[expNumByte]) // -1 as int8
	require.Equal(t, byte(2), w[expDenByte])

	back, err := DecodeWire(w)
	require.NoError(t, err)
	require.Equal(t, term, back)

	w[5] = '!'
	_, err = DecodeWire(w)
	require.Error(t, err)
}

func TestAnchoredWireLayout(t *testing.T) {
	term := NewAnchored(testAddr, rational.One())
	w := term.EncodeWire()

	require.Equal(t, byte(anchorTag), w[0])
	require.Equal(t, testAddr[:], w[1:1+addrLen])
	for i := 1 + addrLen; i < baseLen; i++ {
		require.Zero(t, w[i])
	}

	back, err := DecodeWire(w)
	require.NoError(t, err)
	require.Equal(t, term, back)
}

func TestIsIdentity(t *testing.T) {
	one, _ := NewSymbolic("1", rational.One())
	require.True(t, one.IsIdentity())

	onePow, _ := NewSymbolic("1", rational.Rational8{N: 3, D: 1})
	require.True(t, onePow.IsIdentity())

	ten, _ := NewSymbolic("10", rational.One())
	require.False(t, ten.IsIdentity())

	require.False(t, NewAnchored(testAddr, rational.One()).IsIdentity())
}
