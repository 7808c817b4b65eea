// Copyright 2025 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package forge

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrSupplyTooBig reports a supply whose square would not fit the
	// 256-bit width the invariant computes in.
	ErrSupplyTooBig = errors.New("forge: supply too big")

	// ErrReentryForbidden reports a nested forge within one numeraire scope.
	ErrReentryForbidden = errors.New("forge: reentry forbidden")

	// ErrFunctionCalledOnOne reports a forge against the central unit, which
	// is its own reciprocal and only ever settles deltas.
	ErrFunctionCalledOnOne = errors.New("forge: operation forbidden on central unit")

	// ErrFunctionNotCalledOnOne reports a settlement against anything other
	// than the central unit.
	ErrFunctionNotCalledOnOne = errors.New("forge: operation restricted to central unit")

	// ErrDuplicateUnits reports combining a unit with itself where two
	// distinct units are required.
	ErrDuplicateUnits = errors.New("forge: duplicate units")

	// ErrInsufficientBalance reports a caller balance too small to cover a
	// burn or withdrawal leg of a forge.
	ErrInsufficientBalance = errors.New("forge: insufficient balance")
)

// NegativeSupplyError reports a proposed delta that would drive a supply
// below zero.
type NegativeSupplyError struct {
	Leg     string
	WouldBe *big.Int
}

func (e *NegativeSupplyError) Error() string {
	return fmt.Sprintf("forge: %s supply would be negative (%s)", e.Leg, e.WouldBe)
}
