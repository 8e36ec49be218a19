// Package config holds the validated run configuration. All parsing and
// mutual-exclusion checks happen here, before the search engine is invoked.
package config

import (
	"errors"
	"fmt"
	"runtime"

	"ss58hunter/pkg/generator/substrate"
)

// Errors
var (
	ErrNoTerm           = errors.New("a search term is required")
	ErrPositionConflict = errors.New("--suffix and --anywhere are mutually exclusive")
	ErrUnknownNetwork   = errors.New("unknown network name")
	ErrBadCount         = errors.New("count must be at least 1")
)

// Config is the raw flag surface of one invocation.
type Config struct {
	Term          string
	Network       string
	PrefixID      int // explicit SS58 prefix, used when >= 0
	Suffix        bool
	Anywhere      bool
	Within        int
	CaseSensitive bool
	HexMode       bool
	Count         int
	Workers       int
	OutputDir     string
	Password      string
	ShowOdds      bool
	Verbose       bool
}

// New returns a configuration with default values.
func New() *Config {
	return &Config{
		Network:   "Autonomys",
		PrefixID:  -1,
		Count:     1,
		Workers:   runtime.NumCPU(),
		OutputDir: "wallets",
	}
}

// Validate checks flag combinations that cannot be expressed per-flag.
func (c *Config) Validate() error {
	if c.Term == "" {
		return ErrNoTerm
	}
	if c.Suffix && c.Anywhere {
		return ErrPositionConflict
	}
	if c.Count < 1 {
		return ErrBadCount
	}
	return nil
}

// Position maps the flag pair onto the matcher's position mode.
func (c *Config) Position() substrate.Position {
	switch {
	case c.Anywhere:
		return substrate.Anywhere
	case c.Suffix:
		return substrate.Suffix
	default:
		return substrate.Prefix
	}
}

// Resolve turns the raw configuration into the validated specs the engine
// consumes. Configuration errors surface here, before any worker starts.
func (c *Config) Resolve() (substrate.NetworkSpec, substrate.PatternSpec, error) {
	var network substrate.NetworkSpec
	if c.PrefixID >= 0 {
		// Range-check before narrowing to uint16 so out-of-range values
		// fail instead of wrapping onto a real network's prefix.
		if c.PrefixID > substrate.MaxSS58Prefix {
			return substrate.NetworkSpec{}, substrate.PatternSpec{},
				fmt.Errorf("%w: %d", substrate.ErrInvalidNetwork, c.PrefixID)
		}
		if found, ok := substrate.FindNetworkByPrefix(uint16(c.PrefixID)); ok {
			network = found
		} else {
			custom, err := substrate.CustomNetwork(uint16(c.PrefixID))
			if err != nil {
				return substrate.NetworkSpec{}, substrate.PatternSpec{}, err
			}
			network = custom
		}
	} else {
		// -1 is the "not set" sentinel; any other negative is a typo.
		if c.PrefixID != -1 {
			return substrate.NetworkSpec{}, substrate.PatternSpec{},
				fmt.Errorf("%w: %d", substrate.ErrInvalidNetwork, c.PrefixID)
		}
		found, ok := substrate.FindNetwork(c.Network)
		if !ok {
			return substrate.NetworkSpec{}, substrate.PatternSpec{},
				fmt.Errorf("%w: %q", ErrUnknownNetwork, c.Network)
		}
		network = found
	}

	pattern := substrate.PatternSpec{
		Term:          c.Term,
		Position:      c.Position(),
		Within:        c.Within,
		CaseSensitive: c.CaseSensitive,
	}
	if err := pattern.Validate(); err != nil {
		return substrate.NetworkSpec{}, substrate.PatternSpec{}, err
	}
	return network, pattern, nil
}
