// Package cpu implements the goroutine-based search engine. A fixed pool of
// workers pulls candidates from the key source, encodes them as SS58, and
// tests them against the pattern; the only shared mutable state is a handful
// of atomic counters.
package cpu

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"ss58hunter/pkg/generator"
	"ss58hunter/pkg/generator/substrate"
)

// flushEvery bounds counter contention: each worker accumulates attempts
// locally and folds them into the shared counter in batches. The global
// count may therefore lag real progress by up to one batch per worker,
// which is fine for statistics and never used for correctness.
const flushEvery = 256

var errNilSource = errors.New("cpu: config has no candidate source")

// Engine is the CPU search coordinator. One Engine runs one search; the
// zero value is not usable, call New.
type Engine struct {
	workers int

	attempts  uint64 // atomic: total attempts, batched
	sinceLast uint64 // atomic: attempts since the previous find
	found     uint64 // atomic: match claims, may exceed target by races

	startTime time.Time
	target    uint64

	errOnce sync.Once
	runErr  error

	done      chan struct{}
	closeOnce sync.Once
}

// New creates an engine. Workers of 0 or less means the CPU core count.
func New(workers int) *Engine {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Engine{workers: workers}
}

// Name returns the implementation name.
func (e *Engine) Name() string { return "CPU" }

// Stats returns the current counters. Found is capped at the target so
// benign over-claims never show through.
func (e *Engine) Stats() generator.Stats {
	attempts := atomic.LoadUint64(&e.attempts)
	found := atomic.LoadUint64(&e.found)
	if e.target > 0 && found > e.target {
		found = e.target
	}
	elapsed := time.Since(e.startTime).Seconds()

	var rate float64
	if elapsed > 0 {
		rate = float64(attempts) / elapsed
	}
	return generator.Stats{
		Attempts:    attempts,
		Found:       found,
		Rate:        rate,
		ElapsedSecs: elapsed,
	}
}

// Err returns the first fatal error of the run, if any.
func (e *Engine) Err() error {
	<-e.done
	return e.runErr
}

// Start spawns the worker pool plus one reporter and returns the result
// channel. The channel is buffered to the target count so emitting a match
// never blocks a worker for long, and is closed once every worker has
// exited.
func (e *Engine) Start(ctx context.Context, config *generator.Config) (<-chan generator.Result, error) {
	if config.Source == nil {
		return nil, errNilSource
	}
	matcher, err := substrate.NewMatcher(config.Network, config.Pattern)
	if err != nil {
		return nil, err
	}

	target := config.Target
	if target <= 0 {
		target = 1
	}
	workers := e.workers
	if config.Workers > 0 {
		workers = config.Workers
	}

	e.target = uint64(target)
	e.startTime = time.Now()
	e.done = make(chan struct{})
	atomic.StoreUint64(&e.attempts, 0)
	atomic.StoreUint64(&e.sinceLast, 0)
	atomic.StoreUint64(&e.found, 0)

	odds := substrate.Estimate(config.Pattern)
	results := make(chan generator.Result, target)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go e.worker(ctx, config, matcher, odds, results, &wg)
	}

	if config.Progress != nil {
		go e.report(ctx, config, odds)
	}

	go func() {
		wg.Wait()
		e.stop()
		close(results)
	}()

	return results, nil
}

// worker is the hot loop: generate, encode, match, claim.
func (e *Engine) worker(ctx context.Context, config *generator.Config, matcher *substrate.Matcher, odds substrate.Odds, results chan<- generator.Result, wg *sync.WaitGroup) {
	defer wg.Done()

	var local uint64
	defer func() {
		if local > 0 {
			atomic.AddUint64(&e.attempts, local)
			atomic.AddUint64(&e.sinceLast, local)
		}
	}()

	for {
		// Cooperative cancellation: one check per iteration, a worker
		// mid-iteration always finishes it.
		select {
		case <-ctx.Done():
			return
		case <-e.done:
			return
		default:
		}
		if atomic.LoadUint64(&e.found) >= e.target {
			return
		}

		candidate, err := config.Source.Generate()
		if err != nil {
			e.fail(err)
			return
		}

		address, err := substrate.EncodeAddress(config.Network.SS58Prefix, candidate.PublicKey[:])
		if err != nil {
			e.fail(err)
			return
		}

		ok, err := matcher.Match(address)
		if err != nil {
			// Unknown leading substring means the codec and network spec
			// disagree; a logic defect, not bad luck.
			e.fail(err)
			return
		}

		local++
		if !ok {
			if local >= flushEvery {
				atomic.AddUint64(&e.attempts, local)
				atomic.AddUint64(&e.sinceLast, local)
				local = 0
			}
			continue
		}

		// Claim a result slot. The fetch-and-increment is the only
		// correctness-critical ordering in the engine: at most target
		// results are ever emitted.
		claimed := atomic.AddUint64(&e.found, 1) - 1
		if claimed >= e.target {
			// Another worker took the last slot while this candidate was
			// in flight. Expected race, discard silently.
			continue
		}

		forResult := atomic.SwapUint64(&e.sinceLast, 0) + local
		total := atomic.AddUint64(&e.attempts, local)
		local = 0

		results <- generator.Result{
			Candidate:           candidate,
			Address:             address,
			AttemptsAtDiscovery: total,
			AttemptsForResult:   forResult,
			Elapsed:             time.Since(e.startTime),
			Luck:                substrate.LuckFactor(odds.ExpectedAttempts, forResult),
		}

		if claimed+1 >= e.target {
			e.stop()
			return
		}
	}
}

// fail records the first fatal error and stops the run. Later errors are
// dropped so the caller reports the failure once.
func (e *Engine) fail(err error) {
	e.errOnce.Do(func() { e.runErr = err })
	e.stop()
}

func (e *Engine) stop() {
	e.closeOnce.Do(func() { close(e.done) })
}
