// Copyright 2025 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package rational

import (
	"fmt"
	"math/big"
)

// Rational8 is the narrow form used as a term's exponent: an int8 numerator
// over a uint8 denominator, reduced. The numerator excludes -128 so that
// negation is total.
type Rational8 struct {
	N int8
	D uint8
}

// One is the exponent of a base-form term.
func One() Rational8 { return Rational8{N: 1, D: 1} }

// Zero8 is the additive identity in narrow form.
func Zero8() Rational8 { return Rational8{N: 0, D: 1} }

// Narrow converts to the 8-bit form, exact or failing: the reduced value must
// already fit, nothing is clamped or rounded.
func (r Rational) Narrow() (Rational8, error) {
	n, d := r.Num(), r.Den()
	if !n.IsInt64() || n.Int64() > 127 || n.Int64() < -127 {
		return Rational8{}, ErrNumeratorTooBig
	}
	if !d.IsUint64() || d.Uint64() > 255 {
		return Rational8{}, ErrDenominatorTooBig
	}
	return Rational8{N: int8(n.Int64()), D: uint8(d.Uint64())}, nil
}

// NarrowFrom reduces num/den and narrows in one step.
func NarrowFrom(num, den int64) (Rational8, error) {
	r, err := New(num, den)
	if err != nil {
		return Rational8{}, err
	}
	return r.Narrow()
}

// Widen lifts to the wide form. Malformed narrow values (zero denominator,
// the -128 sentinel) cannot be produced by Narrow and widen to 0/1.
func (r Rational8) Widen() Rational {
	if r.D == 0 || r.N == -128 {
		return Rational{num: new(big.Int), den: big.NewInt(1)}
	}
	return Rational{num: big.NewInt(int64(r.N)), den: big.NewInt(int64(r.D))}
}

// Validate rejects the two unrepresentable encodings: a zero denominator and
// the numerator value too negative to negate.
func (r Rational8) Validate() error {
	if r.D == 0 {
		return ErrZeroDenominator
	}
	if r.N == -128 {
		return ErrNumeratorTooBig
	}
	return nil
}

func (r Rational8) Neg() Rational8 {
	return Rational8{N: -r.N, D: r.D}
}

// Add sums via the wide form so intermediate overflow cannot occur; the
// result must narrow back exactly.
func (r Rational8) Add(o Rational8) (Rational8, error) {
	sum, err := r.Widen().Add(o.Widen())
	if err != nil {
		return Rational8{}, err
	}
	return sum.Narrow()
}

func (r Rational8) IsZero() bool { return r.N == 0 }

func (r Rational8) IsOne() bool { return r.N == 1 && r.D == 1 }

func (r Rational8) String() string {
	if r.D == 1 {
		return fmt.Sprintf("%d", r.N)
	}
	return fmt.Sprintf("%d/%d", r.N, r.D)
}
