package cpu

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"ss58hunter/pkg/generator"
	"ss58hunter/pkg/generator/substrate"
	"ss58hunter/pkg/keysource"
)

// countingSource produces deterministic sequential keys so tests do not
// depend on entropy or sr25519 derivation speed.
type countingSource struct {
	counter uint64
}

func (s *countingSource) Name() string { return "counting" }

func (s *countingSource) Generate() (keysource.Candidate, error) {
	n := atomic.AddUint64(&s.counter, 1)
	var c keysource.Candidate
	binary.BigEndian.PutUint64(c.PublicKey[24:], n)
	c.Secret = hex.EncodeToString(c.PublicKey[:])
	return c, nil
}

// failingSource simulates an entropy failure after a few candidates.
type failingSource struct {
	remaining int64
	err       error
}

func (s *failingSource) Name() string { return "failing" }

func (s *failingSource) Generate() (keysource.Candidate, error) {
	if atomic.AddInt64(&s.remaining, -1) < 0 {
		return keysource.Candidate{}, s.err
	}
	var c keysource.Candidate
	return c, nil
}

func matchAllConfig(source keysource.Source, target int) *generator.Config {
	network, _ := substrate.FindNetwork("Substrate")
	return &generator.Config{
		Network: network,
		Pattern: substrate.PatternSpec{Term: "?", Position: substrate.Anywhere},
		Source:  source,
		Workers: 4,
		Target:  target,
	}
}

func TestEngineFindsExactlyTarget(t *testing.T) {
	const target = 3
	engine := New(4)
	results, err := engine.Start(context.Background(), matchAllConfig(&countingSource{}, target))
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	var got []generator.Result
	for r := range results {
		got = append(got, r)
	}
	if len(got) != target {
		t.Fatalf("received %d results, want %d", len(got), target)
	}
	if err := engine.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}

	stats := engine.Stats()
	if stats.Found != target {
		t.Errorf("Stats().Found = %d, want %d", stats.Found, target)
	}
	if stats.Attempts < target {
		t.Errorf("Stats().Attempts = %d, want at least %d", stats.Attempts, target)
	}

	for i, r := range got {
		if r.Address == "" {
			t.Errorf("result %d has empty address", i)
		}
		if r.Candidate.Secret == "" {
			t.Errorf("result %d has empty secret", i)
		}
		if r.AttemptsForResult == 0 {
			t.Errorf("result %d has zero attempt count", i)
		}
	}
}

func TestEngineCancellation(t *testing.T) {
	network, _ := substrate.FindNetwork("Substrate")
	config := &generator.Config{
		Network: network,
		// Practically unreachable pattern so only cancellation can end the run.
		Pattern: substrate.PatternSpec{
			Term:          "QQQQQQQQQQQQ",
			Position:      substrate.Anywhere,
			CaseSensitive: true,
		},
		Source:  &countingSource{},
		Workers: 2,
	}

	ctx, cancel := context.WithCancel(context.Background())
	engine := New(2)
	results, err := engine.Start(ctx, config)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	time.AfterFunc(20*time.Millisecond, cancel)

	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-results:
			if !ok {
				if err := engine.Err(); err != nil {
					t.Errorf("Err() = %v, want nil on cancellation", err)
				}
				return
			}
			t.Fatal("unexpected result from unreachable pattern")
		case <-deadline:
			t.Fatal("result channel did not close after cancellation")
		}
	}
}

func TestEngineSourceErrorIsFatal(t *testing.T) {
	sentinel := errors.New("entropy pool exhausted")
	network, _ := substrate.FindNetwork("Substrate")
	config := &generator.Config{
		Network: network,
		Pattern: substrate.PatternSpec{
			Term:          "QQQQQQQQQQQQ",
			Position:      substrate.Anywhere,
			CaseSensitive: true,
		},
		Source:  &failingSource{remaining: 10, err: sentinel},
		Workers: 2,
	}

	engine := New(2)
	results, err := engine.Start(context.Background(), config)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	for range results {
		t.Fatal("unexpected result from failing source")
	}
	if err := engine.Err(); !errors.Is(err, sentinel) {
		t.Errorf("Err() = %v, want %v", err, sentinel)
	}
}

func TestEngineRejectsBadConfig(t *testing.T) {
	network, _ := substrate.FindNetwork("Substrate")

	engine := New(1)
	if _, err := engine.Start(context.Background(), &generator.Config{
		Network: network,
		Pattern: substrate.PatternSpec{Term: "?"},
	}); !errors.Is(err, errNilSource) {
		t.Errorf("nil source: Start() error = %v, want errNilSource", err)
	}

	engine = New(1)
	if _, err := engine.Start(context.Background(), &generator.Config{
		Network: network,
		Pattern: substrate.PatternSpec{Term: "0!"},
		Source:  &countingSource{},
	}); !errors.Is(err, substrate.ErrInvalidPattern) {
		t.Errorf("bad pattern: Start() error = %v, want ErrInvalidPattern", err)
	}
}

func TestEngineResultsAreDistinct(t *testing.T) {
	const target = 5
	engine := New(8)
	results, err := engine.Start(context.Background(), matchAllConfig(&countingSource{}, target))
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	seen := make(map[string]bool)
	for r := range results {
		if seen[r.Address] {
			t.Errorf("address %s emitted twice", r.Address)
		}
		seen[r.Address] = true
	}
	if len(seen) != target {
		t.Errorf("received %d distinct results, want %d", len(seen), target)
	}
}
