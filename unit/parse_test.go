// Copyright 2025 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package unit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"unitforge/rational"
)

// EIP-55 style checksum casing of testAddr
const testAddrChecksum = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a*b/a", "b"},
		{"m^4\\2", "m^2"},
		{"kg*m/s^2", "kg*m/s^2"},
		{"m/s^2*kg", "kg*m/s^2"},
		{"s^2", "s^2"},
		{"a^-2", "/a^2"},
		{"/a^2", "/a^2"},
		{"/s", "/s"},
		{"1", "1"},
		{"1^5", "1"},
		{"a/a", "1"},
		{"a*1*b", "a*b"},
		{"b*a", "a*b"},
		{"a^2/a^2", "1"},
		{"a^0", "1"},
		{"a^1\\2*a^1\\2", "a"},
		{"s^1\\3*s^2\\3", "s"},
		{"m^2\\4", "m^1\\2"},
		{"Z*a*0", "0*Z*a"},
		{"a*a", "a^2"},
		{"a^3/a", "a^2"},
		{"m^-0", "1"},
		{"x^2\\3/x^1\\6", "x^1\\2"},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			got, seq, err := Canonicalize(test.input)
			require.NoError(t, err)
			require.Equal(t, test.want, got)

			// idempotent: re-parsing the output reproduces it exactly
			again, seq2, err := Canonicalize(got)
			require.NoError(t, err)
			require.Equal(t, got, again)
			require.Equal(t, seq, seq2)
		})
	}
}

func TestCanonicalInvariants(t *testing.T) {
	_, seq, err := Canonicalize("s^2*kg/m*s/kg^2")
	require.NoError(t, err)

	for i, term := range seq {
		require.NoError(t, term.Validate())
		require.False(t, term.Exponent().IsZero())
		require.False(t, term.IsIdentity())
		if i > 0 {
			require.Negative(t, seq[i-1].CompareBase(term))
		}
	}
}

func TestParseNoNormalization(t *testing.T) {
	// parse is purely syntactic: order and duplicate bases survive
	seq, err := Parse("b*a/b")
	require.NoError(t, err)
	require.Len(t, seq, 3)

	b, _ := seq[0].SymbolText()
	a, _ := seq[1].SymbolText()
	require.Equal(t, "b", b)
	require.Equal(t, "a", a)
	require.Equal(t, rational.Rational8{N: -1, D: 1}, seq[2].Exponent())
}

func TestParseExponents(t *testing.T) {
	tests := []struct {
		input string
		want  rational.Rational8
	}{
		{"m", rational.Rational8{N: 1, D: 1}},
		{"m^3", rational.Rational8{N: 3, D: 1}},
		{"m^-3", rational.Rational8{N: -3, D: 1}},
		{"/m^3", rational.Rational8{N: -3, D: 1}},
		{"/m^-3", rational.Rational8{N: 3, D: 1}},
		{"m^1\\2", rational.Rational8{N: 1, D: 2}},
		{"m^4\\2", rational.Rational8{N: 2, D: 1}},
		{"/m^1\\2", rational.Rational8{N: -1, D: 2}},
		{"m^0", rational.Rational8{N: 0, D: 1}},
		{"m^127", rational.Rational8{N: 127, D: 1}},
		{"/m^127", rational.Rational8{N: -127, D: 1}},
		{"m^127\\255", rational.Rational8{N: 127, D: 255}},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			seq, err := Parse(test.input)
			require.NoError(t, err)
			require.Len(t, seq, 1)
			require.Equal(t, test.want, seq[0].Exponent())
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, err error)
	}{
		{"empty", "", wantEOF},
		{"lone slash", "/", wantUnexpected('/', 0)},
		{"leading star", "*a", wantUnexpected('*', 0)},
		{"trailing star", "a*", wantEOF},
		{"trailing slash", "a/", wantEOF},
		{"doubled star", "a**b", wantUnexpected('*', 2)},
		{"star slash", "a*/b", wantUnexpected('/', 2)},
		{"unterminated exponent", "a^", wantEOF},
		{"bad exponent", "a^x", wantUnexpected('x', 2)},
		{"unterminated denominator", "a^1\\", wantEOF},
		{"bad denominator", "a^1\\z", wantUnexpected('z', 4)},
		{"space", "a b", wantUnexpected(' ', 1)},
		{"caret only", "^2", wantUnexpected('^', 0)},
		{
			"base too big",
			"abcdefghijklmnopqrstuvwxyz01234",
			func(t *testing.T, err error) { require.ErrorIs(t, err, ErrBaseSymbolTooBig) },
		},
		{
			"exponent too big",
			"a^130",
			func(t *testing.T, err error) { require.ErrorIs(t, err, ErrExponentTooBig) },
		},
		{
			"negative exponent too big",
			"/a^130",
			func(t *testing.T, err error) { require.ErrorIs(t, err, ErrExponentTooBig) },
		},
		{
			"denominator too big",
			"a^1\\300",
			func(t *testing.T, err error) { require.ErrorIs(t, err, ErrExponentTooBig) },
		},
		{
			"huge magnitude",
			"a^99999999999999999999",
			func(t *testing.T, err error) { require.ErrorIs(t, err, ErrExponentTooBig) },
		},
		{
			"zero exponent denominator",
			"a^1\\0",
			func(t *testing.T, err error) { require.ErrorIs(t, err, rational.ErrZeroDenominator) },
		},
		{"address missing 0x", "$abcd", wantUnexpected('a', 1)},
		{"address truncated", "$0x1234", wantEOF},
		{"address bare", "$", wantEOF},
		{
			"address bad hex",
			"$0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaeg",
			func(t *testing.T, err error) {
				var bad *BadHexCharError
				require.ErrorAs(t, err, &bad)
				require.Equal(t, byte('g'), bad.Byte)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(test.input)
			require.Error(t, err)
			test.check(t, err)
		})
	}
}

func wantEOF(t *testing.T, err error) {
	t.Helper()
	var unexpected *UnexpectedCharError
	require.ErrorAs(t, err, &unexpected)
	require.True(t, unexpected.EOF)
}

func wantUnexpected(c byte, pos int) func(t *testing.T, err error) {
	return func(t *testing.T, err error) {
		t.Helper()
		var unexpected *UnexpectedCharError
		require.ErrorAs(t, err, &unexpected)
		require.False(t, unexpected.EOF)
		require.Equal(t, c, unexpected.Byte)
		require.Equal(t, pos, unexpected.Pos)
	}
}

func TestParseAnchored(t *testing.T) {
	seq, err := Parse("$" + testAddrChecksum)
	require.NoError(t, err)
	require.Len(t, seq, 1)

	addr, ok := seq[0].AnchorAddress()
	require.True(t, ok)
	require.Equal(t, testAddr, addr)

	// all-lowercase input parses to the same term
	lower, err := Parse("$0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	require.NoError(t, err)
	require.Equal(t, seq[0], lower[0])
}

func TestPrintAnchoredChecksum(t *testing.T) {
	term := NewAnchored(testAddr, rational.One())
	require.Equal(t, "$"+testAddrChecksum, term.Symbol())

	got, _, err := Canonicalize("$0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	require.NoError(t, err)
	require.Equal(t, "$"+testAddrChecksum, got)
}

func TestAnchoredSortsBeforeSymbolic(t *testing.T) {
	got, _, err := Canonicalize("kg*$0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	require.NoError(t, err)
	require.Equal(t, "$"+testAddrChecksum+"*kg", got)
}

func TestAnchoredRoundTrip(t *testing.T) {
	got, _, err := Canonicalize("$" + testAddrChecksum + "^2/kg")
	require.NoError(t, err)
	require.Equal(t, "$"+testAddrChecksum+"^2/kg", got)

	again, _, err := Canonicalize(got)
	require.NoError(t, err)
	require.Equal(t, got, again)
}
