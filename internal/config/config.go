// Copyright 2025 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package config

import (
	"fmt"
	"math/big"
	"os"

	"gopkg.in/yaml.v3"

	"unitforge/ledger"
	"unitforge/unit"
)

// Config is the CLI configuration. Every field has a working default so the
// tool runs with no file at all.
type Config struct {
	RegistryPath string `yaml:"registry_path"` // sqlite path, ":memory:" for ephemeral
	Numeraire    string `yaml:"numeraire"`     // canonical symbol of the central unit
	SupplyCap    string `yaml:"supply_cap"`    // decimal; empty means the solver maximum
	Verbose      bool   `yaml:"verbose"`
}

func Default() Config {
	return Config{
		RegistryPath: ":memory:",
		Numeraire:    "1",
	}
}

// Load reads a yaml config over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %v", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %v", err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	canon, _, err := unit.Canonicalize(c.Numeraire)
	if err != nil {
		return fmt.Errorf("bad numeraire %q: %v", c.Numeraire, err)
	}
	if canon != c.Numeraire {
		return fmt.Errorf("numeraire %q is not canonical (want %q)", c.Numeraire, canon)
	}
	if _, err := c.Cap(); err != nil {
		return err
	}
	return nil
}

// Cap parses the supply cap; empty means the ledger default.
func (c Config) Cap() (*big.Int, error) {
	if c.SupplyCap == "" {
		return ledger.DefaultSupplyCap, nil
	}
	cap, ok := new(big.Int).SetString(c.SupplyCap, 10)
	if !ok || cap.Sign() < 0 {
		return nil, fmt.Errorf("bad supply cap %q", c.SupplyCap)
	}
	if cap.Cmp(ledger.DefaultSupplyCap) > 0 {
		return nil, fmt.Errorf("supply cap %s exceeds solver maximum", c.SupplyCap)
	}
	return cap, nil
}
