// Copyright 2025 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

// Package registry maps canonical unit symbols to stable unit ids. Creation
// is idempotent: the canonical symbol is the unit's identity, so creating an
// existing symbol returns the existing id, never a duplicate.
package registry

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"unitforge/unit"
)

// Registry resolves and creates units by canonical symbol.
type Registry interface {
	Resolve(canonicalSymbol string) (id string, ok bool, err error)
	Create(canonicalSymbol string) (id string, err error)
}

// Entry is one registered unit.
type Entry struct {
	ID         string
	Symbol     string
	Reciprocal string
	Anchor     *unit.Address // set only for a single base-form anchored term
}

// SQL is the sqlite-backed registry.
type SQL struct {
	db *sql.DB
}

// Open opens (creating if needed) the registry database at path. The path
// ":memory:" yields an ephemeral registry.
func Open(path string) (*SQL, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry: %v", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS units (
		id TEXT PRIMARY KEY,
		symbol TEXT NOT NULL UNIQUE,
		reciprocal TEXT NOT NULL,
		anchor BLOB,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_units_reciprocal ON units(reciprocal);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %v", err)
	}

	return &SQL{db: db}, nil
}

// Close closes the underlying database.
func (r *SQL) Close() error {
	return r.db.Close()
}

// Resolve looks up the id for a canonical symbol.
func (r *SQL) Resolve(symbol string) (string, bool, error) {
	var id string
	err := r.db.QueryRow(`SELECT id FROM units WHERE symbol = ?`, symbol).Scan(&id)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

// Create registers a canonical symbol, returning the existing id when the
// symbol is already present. The symbol must be canonical: it is re-derived
// from its own parse and rejected if they differ.
func (r *SQL) Create(symbol string) (string, error) {
	entry, err := derive(symbol)
	if err != nil {
		return "", err
	}

	if id, ok, err := r.Resolve(symbol); err != nil || ok {
		return id, err
	}

	entry.ID = uuid.NewString()
	var anchor []byte
	if entry.Anchor != nil {
		anchor = entry.Anchor[:]
	}
	_, err = r.db.Exec(
		`INSERT INTO units (id, symbol, reciprocal, anchor) VALUES (?, ?, ?, ?)
		 ON CONFLICT(symbol) DO NOTHING`,
		entry.ID, entry.Symbol, entry.Reciprocal, anchor)
	if err != nil {
		return "", err
	}

	// a conflicting insert means the row existed; hand back its id
	id, _, err := r.Resolve(symbol)
	return id, err
}

// Lookup returns the full entry for a canonical symbol.
func (r *SQL) Lookup(symbol string) (Entry, bool, error) {
	var (
		entry  Entry
		anchor []byte
	)
	err := r.db.QueryRow(
		`SELECT id, symbol, reciprocal, anchor FROM units WHERE symbol = ?`,
		symbol).Scan(&entry.ID, &entry.Symbol, &entry.Reciprocal, &anchor)
	if err == sql.ErrNoRows {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	if len(anchor) == len(unit.Address{}) {
		addr := unit.Address(anchor)
		entry.Anchor = &addr
	}
	return entry, true, nil
}

// derive validates that symbol is canonical and computes its reciprocal
// symbol and anchor address.
func derive(symbol string) (Entry, error) {
	canon, seq, err := unit.Canonicalize(symbol)
	if err != nil {
		return Entry{}, err
	}
	if canon != symbol {
		return Entry{}, fmt.Errorf("symbol %q is not canonical (want %q)", symbol, canon)
	}

	entry := Entry{
		Symbol:     canon,
		Reciprocal: unit.Symbol(unit.ReciprocalSeq(seq)),
	}
	if len(seq) == 1 {
		if addr, ok := seq[0].AnchorAddress(); ok {
			entry.Anchor = &addr
		}
	}
	return entry, nil
}
