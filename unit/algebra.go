// Copyright 2025 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package unit

import (
	"sort"
)

// SortedMerge canonicalizes a term sequence: sorts by base encoding, sums the
// exponents of like bases, drops zero-exponent terms and the identity base.
// The result satisfies the canonical-form invariants: strictly increasing
// bases, no duplicates, no zero exponents, no explicit identity.
func SortedMerge(seq []Term) ([]Term, error) {
	sorted := make([]Term, len(seq))
	copy(sorted, seq)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CompareBase(sorted[j]) < 0
	})

	out := make([]Term, 0, len(sorted))
	for i := 0; i < len(sorted); {
		t := sorted[i]
		exp := t.Exponent()
		j := i + 1
		for ; j < len(sorted) && sorted[j].SameBase(t); j++ {
			// sum via the wide form; a combined exponent that does not
			// narrow back is an error, never a truncation
			sum, err := exp.Add(sorted[j].Exponent())
			if err != nil {
				return nil, ErrExponentTooBig
			}
			exp = sum
		}
		i = j
		if t.IsIdentity() || exp.IsZero() {
			continue
		}
		out = append(out, t.WithExponent(exp))
	}
	return out, nil
}

// Product multiplies two canonical sequences with a linear merge-join:
// advance whichever side has the smaller base, combine when bases are equal
// and drop the term if the exponents cancel. The result is canonical by
// construction; no second sort pass is needed.
func Product(a, b []Term) ([]Term, error) {
	out := make([]Term, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch cmp := a[i].CompareBase(b[j]); {
		case cmp < 0:
			out = append(out, a[i])
			i++
		case cmp > 0:
			out = append(out, b[j])
			j++
		default:
			exp, err := a[i].Exponent().Add(b[j].Exponent())
			if err != nil {
				return nil, ErrExponentTooBig
			}
			if !exp.IsZero() {
				out = append(out, a[i].WithExponent(exp))
			}
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out, nil
}

// ReciprocalSeq negates every exponent. Base order is unchanged, so a
// canonical input stays canonical.
func ReciprocalSeq(seq []Term) []Term {
	out := make([]Term, len(seq))
	for i, t := range seq {
		out[i] = t.Reciprocal()
	}
	return out
}

// Sqrt halves the exponent of a single-term sequence whose exponent
// numerator is even, e.g. a^2 -> a. Any other shape is undefined and
// reports ErrSqrtUndefined; the identity (empty) sequence is its own root.
func Sqrt(seq []Term) ([]Term, error) {
	if len(seq) == 0 {
		return nil, nil
	}
	if len(seq) != 1 {
		return nil, ErrSqrtUndefined
	}
	exp := seq[0].Exponent()
	if exp.N%2 != 0 {
		return nil, ErrSqrtUndefined
	}
	// numerator and denominator are coprime, so an even numerator means an
	// odd denominator and halving keeps the exponent reduced
	half := exp
	half.N /= 2
	return []Term{seq[0].WithExponent(half)}, nil
}

// Canonicalize parses an expression and returns its canonical symbol string
// together with the canonical sequence.
func Canonicalize(expr string) (string, []Term, error) {
	seq, err := Parse(expr)
	if err != nil {
		return "", nil, err
	}
	canon, err := SortedMerge(seq)
	if err != nil {
		return "", nil, err
	}
	return Symbol(canon), canon, nil
}
