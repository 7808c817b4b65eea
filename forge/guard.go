// Copyright 2025 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package forge

import "sync"

// Guard is the single-flight lock for one numeraire scope. Every unit
// settling against the same central token shares one guard, because the
// solver reads supplies at quote time and assumes they still hold at apply
// time. Entry never blocks: a nested attempt is rejected outright.
type Guard struct {
	mu sync.Mutex
}

// Enter claims the scope or fails with ErrReentryForbidden.
func (g *Guard) Enter() error {
	if !g.mu.TryLock() {
		return ErrReentryForbidden
	}
	return nil
}

// Exit releases the scope.
func (g *Guard) Exit() {
	g.mu.Unlock()
}
