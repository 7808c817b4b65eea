// Copyright 2025 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package forge

import (
	"math/big"
)

// Supplies are unsigned 256-bit magnitudes, but the invariant squares them:
// any supply of 129 or more bits could overflow the squaring width, so the
// solver rejects it up front rather than assuming callers bounded it.
const maxSupplyBits = 128

// Quote is the solved outcome of a proposed forge: the post-delta supplies,
// the invariant before and after, and the signed numeraire delta owed to
// (positive) or by (negative) the caller.
type Quote struct {
	U1, V1 *big.Int
	W0, W1 *big.Int
	DW     *big.Int
}

// Invariant computes floor(sqrt(u*v)), the geometric mean of a reciprocal
// pair's supplies. Always recomputed from current supplies, never cached.
func Invariant(u, v *big.Int) (*big.Int, error) {
	if err := checkSupply("unit", u); err != nil {
		return nil, err
	}
	if err := checkSupply("reciprocal", v); err != nil {
		return nil, err
	}
	prod := new(big.Int).Mul(u, v)
	return prod.Sqrt(prod), nil
}

// PairQuote solves a proposed delta against a unit/reciprocal pair: the
// numeraire delta is the invariant change w0 - w1, doubled when neither leg
// is anchored. An anchored leg supplies or absorbs real collateral 1:1, so
// its pair settles single.
func PairQuote(u, v, du, dv *big.Int, anchored bool) (*Quote, error) {
	u1, err := applyDelta("unit", u, du)
	if err != nil {
		return nil, err
	}
	v1, err := applyDelta("reciprocal", v, dv)
	if err != nil {
		return nil, err
	}

	w0, err := Invariant(u, v)
	if err != nil {
		return nil, err
	}
	w1, err := Invariant(u1, v1)
	if err != nil {
		return nil, err
	}

	dw := new(big.Int).Sub(w0, w1)
	if !anchored {
		dw.Lsh(dw, 1)
	}
	return &Quote{U1: u1, V1: v1, W0: w0, W1: w1, DW: dw}, nil
}

// CombineQuote solves moving two source units into or out of a compound
// product unit. The compound's balances of the two inputs act as the
// supplies of a synthetic pair, and the delta settles in the compound unit
// itself: dw = 2*(w1 - w0), minted to the caller on deposit and burned on
// withdrawal. No anchor doubling applies on this path.
func CombineQuote(a, b, da, db *big.Int) (*Quote, error) {
	a1, err := applyDelta("first", a, da)
	if err != nil {
		return nil, err
	}
	b1, err := applyDelta("second", b, db)
	if err != nil {
		return nil, err
	}

	w0, err := Invariant(a, b)
	if err != nil {
		return nil, err
	}
	w1, err := Invariant(a1, b1)
	if err != nil {
		return nil, err
	}

	dw := new(big.Int).Sub(w1, w0)
	dw.Lsh(dw, 1)
	return &Quote{U1: a1, V1: b1, W0: w0, W1: w1, DW: dw}, nil
}

// applyDelta adds a signed delta to an unsigned supply, checking for
// underflow before anything is committed.
func applyDelta(leg string, supply, delta *big.Int) (*big.Int, error) {
	next := new(big.Int).Add(supply, delta)
	if next.Sign() < 0 {
		return nil, &NegativeSupplyError{Leg: leg, WouldBe: next}
	}
	if err := checkSupply(leg, next); err != nil {
		return nil, err
	}
	return next, nil
}

func checkSupply(leg string, supply *big.Int) error {
	if supply.Sign() < 0 {
		return &NegativeSupplyError{Leg: leg, WouldBe: new(big.Int).Set(supply)}
	}
	if supply.BitLen() > maxSupplyBits {
		return ErrSupplyTooBig
	}
	return nil
}
