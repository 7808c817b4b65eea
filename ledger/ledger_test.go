// Copyright 2025 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package ledger

import (
	"io"
	"log/slog"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"unitforge/unit"
)

func newTestLedger(cap *big.Int) *Ledger {
	return New(cap, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestMintBurn(t *testing.T) {
	l := newTestLedger(nil)

	require.NoError(t, l.Mint("kg", "alice", big.NewInt(100)))
	require.Equal(t, int64(100), l.SupplyOf("kg").Int64())
	require.Equal(t, int64(100), l.BalanceOf("kg", "alice").Int64())
	require.Equal(t, int64(0), l.BalanceOf("kg", "bob").Int64())

	require.NoError(t, l.Burn("kg", "alice", big.NewInt(40)))
	require.Equal(t, int64(60), l.SupplyOf("kg").Int64())
	require.Equal(t, int64(60), l.BalanceOf("kg", "alice").Int64())

	require.ErrorIs(t, l.Burn("kg", "alice", big.NewInt(61)), ErrInsufficientBalance)
	require.ErrorIs(t, l.Burn("kg", "bob", big.NewInt(1)), ErrInsufficientBalance)
	require.ErrorIs(t, l.Mint("kg", "alice", big.NewInt(-1)), ErrNegativeAmount)
	require.ErrorIs(t, l.Burn("kg", "alice", big.NewInt(-1)), ErrNegativeAmount)
}

func TestSupplyCap(t *testing.T) {
	l := newTestLedger(big.NewInt(100))

	require.NoError(t, l.CanMint("kg", big.NewInt(100)))
	require.NoError(t, l.Mint("kg", "alice", big.NewInt(100)))
	require.ErrorIs(t, l.CanMint("kg", big.NewInt(1)), ErrSupplyCap)
	require.ErrorIs(t, l.Mint("kg", "bob", big.NewInt(1)), ErrSupplyCap)
	require.Equal(t, int64(100), l.SupplyOf("kg").Int64())
}

func TestTransfer(t *testing.T) {
	l := newTestLedger(nil)
	require.NoError(t, l.Mint("kg", "alice", big.NewInt(10)))

	require.NoError(t, l.Transfer("kg", "alice", "bob", big.NewInt(4)))
	require.Equal(t, int64(6), l.BalanceOf("kg", "alice").Int64())
	require.Equal(t, int64(4), l.BalanceOf("kg", "bob").Int64())
	require.Equal(t, int64(10), l.SupplyOf("kg").Int64())

	require.ErrorIs(t, l.Transfer("kg", "alice", "bob", big.NewInt(7)), ErrInsufficientBalance)
	require.ErrorIs(t, l.Transfer("kg", "alice", "bob", big.NewInt(-1)), ErrNegativeAmount)
}

func TestCustody(t *testing.T) {
	l := newTestLedger(nil)
	token := unit.Address{0x01, 0x02}

	require.NoError(t, l.DepositCustody(token, "alice", big.NewInt(9)))
	require.Equal(t, int64(9), l.CustodyOf(token, "alice").Int64())

	require.NoError(t, l.TransferCustody(token, "alice", "vault", big.NewInt(5)))
	require.Equal(t, int64(4), l.CustodyOf(token, "alice").Int64())
	require.Equal(t, int64(5), l.CustodyOf(token, "vault").Int64())

	require.ErrorIs(t, l.TransferCustody(token, "alice", "vault", big.NewInt(5)), ErrInsufficientBalance)

	other := unit.Address{0xff}
	require.Equal(t, int64(0), l.CustodyOf(other, "alice").Int64())
}
