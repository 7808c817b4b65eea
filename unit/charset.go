// Copyright 2025 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package unit

// 128-bit membership bitmap over ASCII, indexed by character code.
var symbolChars [2]uint64

func init() {
	set := func(c byte) { symbolChars[c>>6] |= 1 << (c & 63) }
	for c := byte('A'); c <= 'Z'; c++ {
		set(c)
	}
	for c := byte('a'); c <= 'z'; c++ {
		set(c)
	}
	for c := byte('0'); c <= '9'; c++ {
		set(c)
	}
	set('_')
	set('-')
	set('.')
}

func isSymbolChar(c byte) bool {
	return c < 128 && symbolChars[c>>6]&(1<<(c&63)) != 0
}
