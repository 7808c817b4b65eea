// Copyright 2025 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package rational

import "errors"

var (
	ErrZeroDenominator   = errors.New("rational: zero denominator")
	ErrNumeratorTooBig   = errors.New("rational: numerator out of range")
	ErrDenominatorTooBig = errors.New("rational: denominator out of range")
)
