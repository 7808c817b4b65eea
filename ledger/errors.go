// Copyright 2025 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package ledger

import "errors"

var (
	ErrNegativeAmount      = errors.New("ledger: negative amount")
	ErrInsufficientBalance = errors.New("ledger: insufficient balance")
	ErrSupplyCap           = errors.New("ledger: supply cap exceeded")
)
