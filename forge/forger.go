// Copyright 2025 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package forge

import (
	"log/slog"
	"math/big"

	"unitforge/unit"
)

// Ledger is the token bookkeeping collaborator. The forger reads supplies
// and balances during the quote phase and mutates only in the apply phase.
type Ledger interface {
	SupplyOf(unitSym string) *big.Int
	BalanceOf(unitSym, holder string) *big.Int
	CanMint(unitSym string, amount *big.Int) error
	Mint(unitSym, holder string, amount *big.Int) error
	Burn(unitSym, holder string, amount *big.Int) error
	Transfer(unitSym, from, to string, amount *big.Int) error
	CustodyOf(token unit.Address, holder string) *big.Int
	TransferCustody(token unit.Address, from, to string, amount *big.Int) error
}

// Pair names a unit/reciprocal pair by canonical symbol. Anchor is set when
// the unit leg is a base-form anchored term custodying an external token.
type Pair struct {
	Unit       string
	Reciprocal string
	Anchor     *unit.Address
}

// Forger applies invariant-preserving mint/burn operations atomically
// against one numeraire scope: quote from current supplies, verify every
// leg, then apply all of du/dv/dw or nothing.
type Forger struct {
	ledger    Ledger
	guard     Guard
	numeraire string
	vault     string
	log       *slog.Logger
}

func NewForger(ledger Ledger, numeraire string, log *slog.Logger) *Forger {
	if log == nil {
		log = slog.Default()
	}
	return &Forger{
		ledger:    ledger,
		numeraire: numeraire,
		vault:     "vault:" + numeraire,
		log:       log,
	}
}

// Numeraire returns the canonical symbol of the central unit.
func (f *Forger) Numeraire() string { return f.numeraire }

// Forge mints or burns du of a unit and dv of its reciprocal for the caller,
// settling the invariant change against the numeraire. The central unit is
// its own reciprocal and cannot be forged. An anchored unit leg moves real
// custody through the vault instead of doubled numeraire collateral.
func (f *Forger) Forge(caller string, p Pair, du, dv *big.Int) (*Quote, error) {
	if p.Unit == f.numeraire || p.Reciprocal == f.numeraire {
		return nil, ErrFunctionCalledOnOne
	}
	if p.Unit == p.Reciprocal {
		return nil, ErrDuplicateUnits
	}

	if err := f.guard.Enter(); err != nil {
		return nil, err
	}
	defer f.guard.Exit()

	u := f.ledger.SupplyOf(p.Unit)
	v := f.ledger.SupplyOf(p.Reciprocal)
	q, err := PairQuote(u, v, du, dv, p.Anchor != nil)
	if err != nil {
		return nil, err
	}

	// verify every leg before mutating anything
	if err := f.checkBurn(p.Unit, caller, du); err != nil {
		return nil, err
	}
	if err := f.checkBurn(p.Reciprocal, caller, dv); err != nil {
		return nil, err
	}
	if err := f.checkBurn(f.numeraire, caller, q.DW); err != nil {
		return nil, err
	}
	if err := f.checkMint(p.Unit, du); err != nil {
		return nil, err
	}
	if err := f.checkMint(p.Reciprocal, dv); err != nil {
		return nil, err
	}
	if err := f.checkMint(f.numeraire, q.DW); err != nil {
		return nil, err
	}
	if p.Anchor != nil && du.Sign() > 0 && f.ledger.CustodyOf(*p.Anchor, caller).Cmp(du) < 0 {
		return nil, ErrInsufficientBalance
	}

	if p.Anchor != nil {
		if err := f.moveCustody(*p.Anchor, caller, du); err != nil {
			return nil, err
		}
	}
	if err := f.adjust(p.Unit, caller, du); err != nil {
		return nil, err
	}
	if err := f.adjust(p.Reciprocal, caller, dv); err != nil {
		return nil, err
	}
	if err := f.settle(f.numeraire, caller, q.DW); err != nil {
		return nil, err
	}

	f.log.Info("forge applied",
		"unit", p.Unit, "reciprocal", p.Reciprocal, "caller", caller,
		"du", du.String(), "dv", dv.String(), "dw", q.DW.String(),
		"invariant", q.W1.String())
	return q, nil
}

// Combine moves da and db of two distinct source units into (positive) or
// out of (negative) a compound product unit, settling 2*(w1-w0) in the
// compound unit itself.
func (f *Forger) Combine(caller, compound, unitA, unitB string, da, db *big.Int) (*Quote, error) {
	if unitA == unitB {
		return nil, ErrDuplicateUnits
	}
	if compound == f.numeraire || unitA == f.numeraire || unitB == f.numeraire {
		return nil, ErrFunctionCalledOnOne
	}

	if err := f.guard.Enter(); err != nil {
		return nil, err
	}
	defer f.guard.Exit()

	acct := "unit:" + compound
	a := f.ledger.BalanceOf(unitA, acct)
	b := f.ledger.BalanceOf(unitB, acct)
	q, err := CombineQuote(a, b, da, db)
	if err != nil {
		return nil, err
	}

	if da.Sign() > 0 && f.ledger.BalanceOf(unitA, caller).Cmp(da) < 0 {
		return nil, ErrInsufficientBalance
	}
	if db.Sign() > 0 && f.ledger.BalanceOf(unitB, caller).Cmp(db) < 0 {
		return nil, ErrInsufficientBalance
	}
	if err := f.checkBurn(compound, caller, q.DW); err != nil {
		return nil, err
	}
	if err := f.checkMint(compound, q.DW); err != nil {
		return nil, err
	}

	if err := f.move(unitA, caller, acct, da); err != nil {
		return nil, err
	}
	if err := f.move(unitB, caller, acct, db); err != nil {
		return nil, err
	}
	if err := f.adjust(compound, caller, q.DW); err != nil {
		return nil, err
	}

	f.log.Info("combine applied",
		"compound", compound, "unitA", unitA, "unitB", unitB, "caller", caller,
		"da", da.String(), "db", db.String(), "dw", q.DW.String(),
		"invariant", q.W1.String())
	return q, nil
}

// checkMint verifies a positive delta would fit the ledger's supply cap.
// Together with checkBurn this makes the apply phase all-or-nothing: no
// leg can fail after the first one commits.
func (f *Forger) checkMint(unitSym string, delta *big.Int) error {
	if delta.Sign() <= 0 {
		return nil
	}
	return f.ledger.CanMint(unitSym, delta)
}

// checkBurn verifies the caller can cover the burn implied by a negative
// delta.
func (f *Forger) checkBurn(unitSym, caller string, delta *big.Int) error {
	if delta.Sign() >= 0 {
		return nil
	}
	need := new(big.Int).Neg(delta)
	if f.ledger.BalanceOf(unitSym, caller).Cmp(need) < 0 {
		return ErrInsufficientBalance
	}
	return nil
}

// adjust mints a positive delta to the holder or burns a negative one.
func (f *Forger) adjust(unitSym, holder string, delta *big.Int) error {
	switch delta.Sign() {
	case 1:
		return f.ledger.Mint(unitSym, holder, delta)
	case -1:
		return f.ledger.Burn(unitSym, holder, new(big.Int).Neg(delta))
	}
	return nil
}

// settle is adjust restricted to the central unit: every invariant delta
// lands on the numeraire, and any other symbol reports
// ErrFunctionNotCalledOnOne.
func (f *Forger) settle(unitSym, holder string, delta *big.Int) error {
	if unitSym != f.numeraire {
		return ErrFunctionNotCalledOnOne
	}
	return f.adjust(unitSym, holder, delta)
}

// move transfers a positive delta from caller to account, a negative one
// back.
func (f *Forger) move(unitSym, caller, acct string, delta *big.Int) error {
	switch delta.Sign() {
	case 1:
		return f.ledger.Transfer(unitSym, caller, acct, delta)
	case -1:
		return f.ledger.Transfer(unitSym, acct, caller, new(big.Int).Neg(delta))
	}
	return nil
}

// moveCustody deposits external tokens into the vault on mint and returns
// them on burn, 1:1 with the anchored leg's delta.
func (f *Forger) moveCustody(token unit.Address, caller string, du *big.Int) error {
	switch du.Sign() {
	case 1:
		return f.ledger.TransferCustody(token, caller, f.vault, du)
	case -1:
		return f.ledger.TransferCustody(token, f.vault, caller, new(big.Int).Neg(du))
	}
	return nil
}
