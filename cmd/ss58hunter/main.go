package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ss58hunter/internal/config"
	"ss58hunter/internal/logger"
	"ss58hunter/internal/ui"
	"ss58hunter/pkg/generator"
	"ss58hunter/pkg/generator/cpu"
	"ss58hunter/pkg/generator/substrate"
	"ss58hunter/pkg/keysource"
	"ss58hunter/pkg/wallet"
)

const version = "1.0.0"

func main() {
	cfg := config.New()

	root := &cobra.Command{
		Use:     "ss58hunter <term>",
		Short:   "Vanity SS58 address generator for Substrate networks",
		Long:    "ss58hunter searches random sr25519 keypairs for SS58 addresses matching a pattern.\nPatterns use base58 characters plus ? as a single-character wildcard.",
		Version: version,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Term = args[0]
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cfg)
		},
		SilenceUsage: true,
	}

	flags := root.Flags()
	flags.StringVarP(&cfg.Network, "network", "n", cfg.Network, "network name (Polkadot, Kusama, Substrate, Autonomys)")
	flags.IntVar(&cfg.PrefixID, "prefix-id", cfg.PrefixID, "explicit SS58 network prefix (overrides --network)")
	flags.BoolVarP(&cfg.Suffix, "suffix", "s", false, "match at the end of the address")
	flags.BoolVarP(&cfg.Anywhere, "anywhere", "a", false, "match anywhere in the address")
	flags.IntVarP(&cfg.Within, "within", "w", 0, "window size for prefix/suffix matching (0 = default)")
	flags.BoolVarP(&cfg.CaseSensitive, "case-sensitive", "c", false, "match case exactly")
	flags.BoolVar(&cfg.HexMode, "hex", false, "generate raw hex seeds and export encrypted keystores")
	flags.IntVarP(&cfg.Count, "count", "k", cfg.Count, "number of matching wallets to find")
	flags.IntVarP(&cfg.Workers, "threads", "t", cfg.Workers, "worker goroutine count")
	flags.StringVarP(&cfg.OutputDir, "output-dir", "o", cfg.OutputDir, "directory for saved wallets (empty = print only)")
	flags.StringVar(&cfg.Password, "password", "", "keystore password for --hex (prompted when omitted)")
	flags.BoolVar(&cfg.ShowOdds, "odds", false, "print the odds estimate and exit without searching")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "log every found wallet with timestamps")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	log := logger.New()

	network, pattern, err := cfg.Resolve()
	if err != nil {
		return err
	}
	odds := substrate.Estimate(pattern)

	if cfg.ShowOdds {
		printOdds(pattern, odds)
		return nil
	}
	if math.IsInf(odds.ExpectedAttempts, 1) {
		return fmt.Errorf("pattern %q cannot fit in its window, no address can ever match", pattern.Term)
	}

	var source keysource.Source = keysource.MnemonicSource{}
	password := cfg.Password
	if cfg.HexMode {
		source = keysource.SeedSource{}
		if password == "" && cfg.OutputDir != "" {
			password, err = ui.PromptPassword()
			if err != nil {
				return err
			}
		}
	}

	ui.PrintSearchInfo(network, pattern, cfg.Workers, cfg.Count, odds)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	frame := 0
	engine := cpu.New(cfg.Workers)
	results, err := engine.Start(ctx, &generator.Config{
		Network: network,
		Pattern: pattern,
		Source:  source,
		Workers: cfg.Workers,
		Target:  cfg.Count,
		Progress: func(p generator.Progress) {
			ui.PrintProgress(p, frame)
			frame++
		},
		ReportInterval: time.Second,
	})
	if err != nil {
		return err
	}

	for result := range results {
		if err := wallet.Verify(result, network); err != nil {
			return err
		}
		path := ""
		if cfg.OutputDir != "" {
			if cfg.HexMode {
				path, err = wallet.ExportKeystore(cfg.OutputDir, result.Candidate.Secret, result.Address, password)
			} else {
				path, err = wallet.SaveMnemonic(cfg.OutputDir, result)
			}
			if err != nil {
				return err
			}
		}
		ui.PrintSuccess(result, path)
		if cfg.Verbose {
			log.Printf("found %s after %s attempts", result.Address, ui.FormatNumber(result.AttemptsForResult))
		}
	}

	if err := engine.Err(); err != nil && ctx.Err() == nil {
		return err
	}
	ui.PrintSummary(engine.Stats(), cfg.Count)
	if ctx.Err() != nil {
		fmt.Println("    interrupted")
	}
	return nil
}

func printOdds(pattern substrate.PatternSpec, odds substrate.Odds) {
	fmt.Printf("pattern:          %s (%s)\n", pattern.Term, pattern.Position)
	fmt.Printf("fixed characters: %d\n", odds.FixedChars)
	fmt.Printf("windows:          %d\n", odds.Windows)
	if math.IsInf(odds.ExpectedAttempts, 1) {
		fmt.Println("expected tries:   never (pattern cannot fit)")
		return
	}
	fmt.Printf("per address:      %.3g\n", odds.PerAddress)
	fmt.Printf("expected tries:   %s\n", ui.FormatNumber(uint64(odds.ExpectedAttempts)))
}
