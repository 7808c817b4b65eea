// Copyright 2025 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package rational

import (
	"fmt"
	"math/big"
)

// Rational is an exact signed rational, always in lowest terms.
// The numerator magnitude and the denominator are each bounded to 128 bits;
// the denominator is never zero. Values are immutable: every operation
// returns a freshly reduced result.
type Rational struct {
	num *big.Int
	den *big.Int // > 0
}

var (
	one = big.NewInt(1)

	// 2^127 - 1: magnitude bound for numerators, symmetric so Neg is total
	maxNumerator = new(big.Int).Sub(new(big.Int).Lsh(one, 127), one)
	// 2^128 - 1: bound for denominators
	maxDenominator = new(big.Int).Sub(new(big.Int).Lsh(one, 128), one)
)

// Reduce builds the rational num/den in lowest terms.
func Reduce(num, den *big.Int) (Rational, error) {
	if den.Sign() == 0 {
		return Rational{}, ErrZeroDenominator
	}
	if den.Sign() < 0 {
		num = new(big.Int).Neg(num)
		den = new(big.Int).Neg(den)
	}
	if num.Sign() == 0 {
		return Rational{num: new(big.Int), den: big.NewInt(1)}, nil
	}

	g := Gcd(num, den)
	n := new(big.Int).Quo(num, g)
	d := new(big.Int).Quo(den, g)

	if new(big.Int).Abs(n).Cmp(maxNumerator) > 0 {
		return Rational{}, ErrNumeratorTooBig
	}
	if d.Cmp(maxDenominator) > 0 {
		return Rational{}, ErrDenominatorTooBig
	}
	return Rational{num: n, den: d}, nil
}

// New is Reduce for machine-word inputs.
func New(num, den int64) (Rational, error) {
	return Reduce(big.NewInt(num), big.NewInt(den))
}

// MustNew is New for constants known to be valid.
func MustNew(num, den int64) Rational {
	r, err := New(num, den)
	if err != nil {
		panic(fmt.Sprintf("rational: %d/%d: %v", num, den, err))
	}
	return r
}

// Num returns a copy of the numerator.
func (r Rational) Num() *big.Int {
	if r.num == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(r.num)
}

// Den returns a copy of the denominator. The zero Rational reads as 0/1.
func (r Rational) Den() *big.Int {
	if r.den == nil {
		return big.NewInt(1)
	}
	return new(big.Int).Set(r.den)
}

func (r Rational) IsZero() bool {
	return r.num == nil || r.num.Sign() == 0
}

func (r Rational) Sign() int {
	if r.num == nil {
		return 0
	}
	return r.num.Sign()
}

// Equal reports exact equality; both sides are reduced so the fields compare directly.
func (r Rational) Equal(o Rational) bool {
	return r.Num().Cmp(o.Num()) == 0 && r.Den().Cmp(o.Den()) == 0
}

// Add computes r + o with the common denominator (rd/g)*od, dividing by the
// gcd before multiplying so intermediates stay small.
func (r Rational) Add(o Rational) (Rational, error) {
	rd, od := r.Den(), o.Den()
	g := Gcd(rd, od)
	d := new(big.Int).Quo(rd, g)
	d.Mul(d, od)

	left := new(big.Int).Quo(d, rd)
	left.Mul(left, r.Num())
	right := new(big.Int).Quo(d, od)
	right.Mul(right, o.Num())

	return Reduce(left.Add(left, right), d)
}

func (r Rational) Sub(o Rational) (Rational, error) {
	return r.Add(o.Neg())
}

func (r Rational) Mul(o Rational) (Rational, error) {
	num := new(big.Int).Mul(r.Num(), o.Num())
	den := new(big.Int).Mul(r.Den(), o.Den())
	return Reduce(num, den)
}

// Div computes r / o. Division by a zero rational reports ErrZeroDenominator.
// A negative divisor numerator would leave the denominator negative, so the
// sign is moved onto the numerator before reducing.
func (r Rational) Div(o Rational) (Rational, error) {
	if o.IsZero() {
		return Rational{}, ErrZeroDenominator
	}
	num := new(big.Int).Mul(r.Num(), o.Den())
	den := new(big.Int).Mul(r.Den(), o.Num())
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	return Reduce(num, den)
}

// Neg is total: the numerator bound is symmetric.
func (r Rational) Neg() Rational {
	return Rational{num: new(big.Int).Neg(r.Num()), den: r.Den()}
}

func (r Rational) String() string {
	if r.Den().Cmp(one) == 0 {
		return r.Num().String()
	}
	return fmt.Sprintf("%s/%s", r.Num(), r.Den())
}

// Gcd returns the greatest common divisor of |a| and |b|; Gcd(0, x) = |x|.
func Gcd(a, b *big.Int) *big.Int {
	x := new(big.Int).Abs(a)
	y := new(big.Int).Abs(b)
	for y.Sign() != 0 {
		x, y = y, x.Mod(x, y)
	}
	return x
}

// Lcm returns the least common multiple of |a| and |b|; Lcm with 0 is 0.
func Lcm(a, b *big.Int) *big.Int {
	if a.Sign() == 0 || b.Sign() == 0 {
		return new(big.Int)
	}
	l := new(big.Int).Quo(new(big.Int).Abs(a), Gcd(a, b))
	return l.Mul(l, new(big.Int).Abs(b))
}
