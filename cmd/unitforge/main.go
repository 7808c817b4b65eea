// Copyright 2025 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

// unitforge is an inspection and simulation front-end for the unit algebra
// and forge packages: canonicalize expressions, inspect wire encodings,
// quote invariant deltas, and run forges against an in-memory ledger.
package main

import (
	"fmt"
	"log/slog"
	"math/big"
	"os"

	"github.com/spf13/cobra"

	"unitforge/forge"
	"unitforge/internal/config"
	"unitforge/ledger"
	"unitforge/registry"
	"unitforge/unit"
)

var (
	configPath string
	verbose    bool

	cfg config.Config
)

func main() {
	root := &cobra.Command{
		Use:           "unitforge",
		Short:         "algebraic unit and liquidity engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			level := slog.LevelInfo
			if verbose || cfg.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "yaml config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(canonCmd(), recipCmd(), mulCmd(), sqrtCmd(), wireCmd(),
		invariantCmd(), quoteCmd(), forgeCmd(), registerCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v, exiting\n", err)
		os.Exit(1)
	}
}

func canonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "canon EXPR",
		Short: "canonicalize a unit expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			canon, _, err := unit.Canonicalize(args[0])
			if err != nil {
				return err
			}
			fmt.Println(canon)
			return nil
		},
	}
}

func recipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recip EXPR",
		Short: "reciprocal of a unit expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, seq, err := unit.Canonicalize(args[0])
			if err != nil {
				return err
			}
			fmt.Println(unit.Symbol(unit.ReciprocalSeq(seq)))
			return nil
		},
	}
}

func mulCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mul EXPR EXPR",
		Short: "product of two unit expressions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, a, err := unit.Canonicalize(args[0])
			if err != nil {
				return err
			}
			_, b, err := unit.Canonicalize(args[1])
			if err != nil {
				return err
			}
			prod, err := unit.Product(a, b)
			if err != nil {
				return err
			}
			fmt.Println(unit.Symbol(prod))
			return nil
		},
	}
}

func sqrtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sqrt EXPR",
		Short: "square root of a unit expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, seq, err := unit.Canonicalize(args[0])
			if err != nil {
				return err
			}
			root, err := unit.Sqrt(seq)
			if err != nil {
				return err
			}
			fmt.Println(unit.Symbol(root))
			return nil
		},
	}
}

func wireCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wire EXPR",
		Short: "packed wire words of each canonical term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, seq, err := unit.Canonicalize(args[0])
			if err != nil {
				return err
			}
			for _, term := range seq {
				w := term.EncodeWire()
				fmt.Printf("%-20s %x\n", term.Symbol(), w[:])
			}
			return nil
		},
	}
}

func invariantCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invariant U V",
		Short: "floor(sqrt(u*v)) of a pair's supplies",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := parseSupply(args[0])
			if err != nil {
				return err
			}
			v, err := parseSupply(args[1])
			if err != nil {
				return err
			}
			w, err := forge.Invariant(u, v)
			if err != nil {
				return err
			}
			fmt.Println(w)
			return nil
		},
	}
}

func quoteCmd() *cobra.Command {
	var (
		u, v, du, dv string
		anchored     bool
		combine      bool
	)
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "solve a forge quote without applying it",
		RunE: func(cmd *cobra.Command, args []string) error {
			uu, err := parseSupply(u)
			if err != nil {
				return err
			}
			vv, err := parseSupply(v)
			if err != nil {
				return err
			}
			duu, ok := new(big.Int).SetString(du, 10)
			if !ok {
				return fmt.Errorf("bad delta %q", du)
			}
			dvv, ok := new(big.Int).SetString(dv, 10)
			if !ok {
				return fmt.Errorf("bad delta %q", dv)
			}

			var q *forge.Quote
			if combine {
				q, err = forge.CombineQuote(uu, vv, duu, dvv)
			} else {
				q, err = forge.PairQuote(uu, vv, duu, dvv, anchored)
			}
			if err != nil {
				return err
			}
			fmt.Printf("w0=%s w1=%s dw=%s u1=%s v1=%s\n", q.W0, q.W1, q.DW, q.U1, q.V1)
			return nil
		},
	}
	cmd.Flags().StringVar(&u, "u", "0", "current unit supply")
	cmd.Flags().StringVar(&v, "v", "0", "current reciprocal supply")
	cmd.Flags().StringVar(&du, "du", "0", "proposed unit delta")
	cmd.Flags().StringVar(&dv, "dv", "0", "proposed reciprocal delta")
	cmd.Flags().BoolVar(&anchored, "anchored", false, "one leg custodies an external token")
	cmd.Flags().BoolVar(&combine, "combine", false, "cross-pair compound quote")
	return cmd
}

func forgeCmd() *cobra.Command {
	var seed string
	cmd := &cobra.Command{
		Use:   "forge EXPR DU DV",
		Short: "forge a unit/reciprocal pair against a fresh ledger",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			canon, seq, err := unit.Canonicalize(args[0])
			if err != nil {
				return err
			}
			du, ok := new(big.Int).SetString(args[1], 10)
			if !ok {
				return fmt.Errorf("bad delta %q", args[1])
			}
			dv, ok := new(big.Int).SetString(args[2], 10)
			if !ok {
				return fmt.Errorf("bad delta %q", args[2])
			}
			seedAmt, err := parseSupply(seed)
			if err != nil {
				return err
			}

			reg, closeReg, err := openRegistry()
			if err != nil {
				return err
			}
			defer closeReg()
			if _, err := reg.Create(canon); err != nil {
				return err
			}

			cap, err := cfg.Cap()
			if err != nil {
				return err
			}
			led := ledger.New(cap, slog.Default())
			if err := led.Mint(cfg.Numeraire, "caller", seedAmt); err != nil {
				return err
			}

			pair := forge.Pair{
				Unit:       canon,
				Reciprocal: unit.Symbol(unit.ReciprocalSeq(seq)),
			}
			if len(seq) == 1 {
				if addr, ok := seq[0].AnchorAddress(); ok {
					pair.Anchor = &addr
					// the fresh caller needs external tokens for the deposit
					if du.Sign() > 0 {
						if err := led.DepositCustody(addr, "caller", du); err != nil {
							return err
						}
					}
				}
			}

			forger := forge.NewForger(led, cfg.Numeraire, slog.Default())
			q, err := forger.Forge("caller", pair, du, dv)
			if err != nil {
				return err
			}
			fmt.Printf("forged %s: w0=%s w1=%s dw=%s\n", canon, q.W0, q.W1, q.DW)
			fmt.Printf("numeraire balance: %s\n", led.BalanceOf(cfg.Numeraire, "caller"))
			return nil
		},
	}
	cmd.Flags().StringVar(&seed, "seed", "1000000", "numeraire minted to the caller before forging")
	return cmd
}

func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register EXPR",
		Short: "register a unit and print its id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			canon, _, err := unit.Canonicalize(args[0])
			if err != nil {
				return err
			}
			reg, closeReg, err := openRegistry()
			if err != nil {
				return err
			}
			defer closeReg()

			id, err := reg.Create(canon)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", id, canon)
			return nil
		},
	}
}

func openRegistry() (registry.Registry, func(), error) {
	if cfg.RegistryPath == "" {
		return registry.NewMem(), func() {}, nil
	}
	r, err := registry.Open(cfg.RegistryPath)
	if err != nil {
		return nil, nil, err
	}
	return r, func() { r.Close() }, nil
}

func parseSupply(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("bad supply %q", s)
	}
	return v, nil
}
