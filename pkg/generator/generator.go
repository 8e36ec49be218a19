// Package generator defines the contract for SS58 vanity address search
// backends. The types here are shared between the search engine, the CLI,
// and the wallet persistence layer.
package generator

import (
	"context"
	"time"

	"ss58hunter/pkg/generator/substrate"
	"ss58hunter/pkg/keysource"
)

// Config holds one validated search invocation. Network and Pattern are
// immutable; the engine never re-validates raw user input.
type Config struct {
	Network substrate.NetworkSpec
	Pattern substrate.PatternSpec
	Source  keysource.Source

	// Workers is the parallel worker count; 0 means the CPU core count.
	Workers int
	// Target is how many matches to find before stopping; 0 means 1.
	Target int

	// Progress, when set, receives periodic statistics snapshots.
	Progress ProgressFunc
	// ReportInterval is how often Progress fires; 0 means one second.
	ReportInterval time.Duration
}

// Result is one successfully found vanity keypair. Emitted at most Target
// times per run, in discovery order, and consumed exactly once.
type Result struct {
	Candidate keysource.Candidate
	Address   string

	// AttemptsAtDiscovery is the global attempt count when the match was
	// claimed, accurate to within one flush batch per worker.
	AttemptsAtDiscovery uint64
	// AttemptsForResult counts attempts since the previous find, the basis
	// of the per-wallet luck figure.
	AttemptsForResult uint64
	// Elapsed is wall-clock time from run start to discovery.
	Elapsed time.Duration
	// Luck is the expected/actual effort ratio in percent, fixed at
	// discovery time.
	Luck float64
}

// Stats holds real-time performance counters.
type Stats struct {
	Attempts    uint64
	Found       uint64
	Rate        float64 // attempts per second
	ElapsedSecs float64
}

// Progress is the periodic snapshot handed to the reporter callback.
type Progress struct {
	Attempts uint64
	Found    uint64
	Target   int
	Rate     float64
	Elapsed  time.Duration

	// ETA estimates time to the next match at the current rate. Overdue
	// flags that the expected attempt count has already been passed, in
	// which case ETA holds how far past it the run is.
	ETA     time.Duration
	Overdue bool
	HasETA  bool

	// Luck is only meaningful once a reasonable share of the expected
	// effort has been spent.
	Luck    float64
	HasLuck bool
}

// ProgressFunc receives reporter snapshots. It must not block for long and
// must never assume it will be called; reporting is best-effort only.
type ProgressFunc func(Progress)

// Generator is the contract for search backends.
type Generator interface {
	// Start begins the search and returns the result channel. The channel
	// is closed when the target is reached, the context is cancelled, or a
	// fatal error occurs; Err reports the latter.
	Start(ctx context.Context, config *Config) (<-chan Result, error)

	// Stats returns current counters; safe from any goroutine.
	Stats() Stats

	// Err returns the first fatal error of the run, if any, once the
	// result channel has closed.
	Err() error

	// Name identifies the backend implementation.
	Name() string
}
