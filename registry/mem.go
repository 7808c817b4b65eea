// Copyright 2025 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package registry

import "github.com/google/uuid"

// Mem is an in-memory Registry with the same idempotence contract as SQL.
// It backs tests and the simulator's default, database-free mode.
type Mem struct {
	entries map[string]Entry
}

func NewMem() *Mem {
	return &Mem{entries: make(map[string]Entry)}
}

func (m *Mem) Resolve(symbol string) (string, bool, error) {
	entry, ok := m.entries[symbol]
	if !ok {
		return "", false, nil
	}
	return entry.ID, true, nil
}

func (m *Mem) Create(symbol string) (string, error) {
	if entry, ok := m.entries[symbol]; ok {
		return entry.ID, nil
	}
	entry, err := derive(symbol)
	if err != nil {
		return "", err
	}
	entry.ID = uuid.NewString()
	m.entries[symbol] = entry
	return entry.ID, nil
}

func (m *Mem) Lookup(symbol string) (Entry, bool, error) {
	entry, ok := m.entries[symbol]
	return entry, ok, nil
}
