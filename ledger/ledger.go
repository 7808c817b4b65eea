// Copyright 2025 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

// Package ledger is an in-memory fungible-token ledger: per-unit supplies,
// per-holder balances, and custody accounts for external anchor tokens. It
// does no invariant math of its own; the forge package quotes against it and
// applies deltas through its mutators.
package ledger

import (
	"log/slog"
	"math/big"

	"unitforge/unit"
)

// DefaultSupplyCap bounds every supply to 128 bits, the largest magnitude
// whose square the invariant solver can compute.
var DefaultSupplyCap = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

type Ledger struct {
	cap      *big.Int
	supplies map[string]*big.Int
	balances map[string]map[string]*big.Int
	custody  map[unit.Address]map[string]*big.Int
	log      *slog.Logger
}

// New builds an empty ledger. A nil cap applies DefaultSupplyCap.
func New(cap *big.Int, log *slog.Logger) *Ledger {
	if cap == nil {
		cap = DefaultSupplyCap
	}
	if log == nil {
		log = slog.Default()
	}
	return &Ledger{
		cap:      cap,
		supplies: make(map[string]*big.Int),
		balances: make(map[string]map[string]*big.Int),
		custody:  make(map[unit.Address]map[string]*big.Int),
		log:      log,
	}
}

// SupplyOf returns a copy of the current supply of a unit.
func (l *Ledger) SupplyOf(unitSym string) *big.Int {
	if s, ok := l.supplies[unitSym]; ok {
		return new(big.Int).Set(s)
	}
	return new(big.Int)
}

// BalanceOf returns a copy of a holder's balance of a unit.
func (l *Ledger) BalanceOf(unitSym, holder string) *big.Int {
	if bal, ok := l.balances[unitSym][holder]; ok {
		return new(big.Int).Set(bal)
	}
	return new(big.Int)
}

// CanMint reports whether minting amount of a unit would fit the supply cap,
// without committing anything.
func (l *Ledger) CanMint(unitSym string, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if new(big.Int).Add(l.SupplyOf(unitSym), amount).Cmp(l.cap) > 0 {
		return ErrSupplyCap
	}
	return nil
}

// Mint creates amount of a unit for the holder.
func (l *Ledger) Mint(unitSym, holder string, amount *big.Int) error {
	if err := l.CanMint(unitSym, amount); err != nil {
		return err
	}
	l.supplies[unitSym] = new(big.Int).Add(l.SupplyOf(unitSym), amount)
	l.credit(unitSym, holder, amount)
	l.log.Debug("mint", "unit", unitSym, "holder", holder, "amount", amount.String())
	return nil
}

// Burn destroys amount of a unit held by the holder.
func (l *Ledger) Burn(unitSym, holder string, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if l.BalanceOf(unitSym, holder).Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	l.supplies[unitSym] = new(big.Int).Sub(l.SupplyOf(unitSym), amount)
	l.debit(unitSym, holder, amount)
	l.log.Debug("burn", "unit", unitSym, "holder", holder, "amount", amount.String())
	return nil
}

// Transfer moves amount of a unit between holders; supply is unchanged.
func (l *Ledger) Transfer(unitSym, from, to string, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if l.BalanceOf(unitSym, from).Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	l.debit(unitSym, from, amount)
	l.credit(unitSym, to, amount)
	return nil
}

// CustodyOf returns a copy of a holder's balance of an external token.
func (l *Ledger) CustodyOf(token unit.Address, holder string) *big.Int {
	if bal, ok := l.custody[token][holder]; ok {
		return new(big.Int).Set(bal)
	}
	return new(big.Int)
}

// DepositCustody credits external tokens to a holder, modelling an inbound
// transfer from outside the system.
func (l *Ledger) DepositCustody(token unit.Address, holder string, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if l.custody[token] == nil {
		l.custody[token] = make(map[string]*big.Int)
	}
	bal := l.custody[token][holder]
	if bal == nil {
		bal = new(big.Int)
	}
	l.custody[token][holder] = new(big.Int).Add(bal, amount)
	return nil
}

// TransferCustody moves external tokens between holders.
func (l *Ledger) TransferCustody(token unit.Address, from, to string, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if l.CustodyOf(token, from).Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	if from == to {
		return nil
	}
	remaining := new(big.Int).Sub(l.CustodyOf(token, from), amount)
	if err := l.DepositCustody(token, to, amount); err != nil {
		return err
	}
	l.custody[token][from] = remaining
	l.log.Debug("custody transfer", "from", from, "to", to, "amount", amount.String())
	return nil
}

func (l *Ledger) credit(unitSym, holder string, amount *big.Int) {
	if l.balances[unitSym] == nil {
		l.balances[unitSym] = make(map[string]*big.Int)
	}
	bal := l.balances[unitSym][holder]
	if bal == nil {
		bal = new(big.Int)
	}
	l.balances[unitSym][holder] = new(big.Int).Add(bal, amount)
}

func (l *Ledger) debit(unitSym, holder string, amount *big.Int) {
	l.credit(unitSym, holder, new(big.Int).Neg(amount))
}
