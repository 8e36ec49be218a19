package cpu

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"ss58hunter/pkg/generator"
	"ss58hunter/pkg/generator/substrate"
)

// report wakes on a fixed interval, snapshots the shared counters, and
// hands a derived Progress to the configured callback. It is read-only with
// respect to search state; losing it can never affect correctness.
func (e *Engine) report(ctx context.Context, config *generator.Config, odds substrate.Odds) {
	interval := config.ReportInterval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-e.done:
			return
		case <-ticker.C:
			config.Progress(e.snapshot(config.Target, odds))
		}
	}
}

// snapshot derives one Progress record from the current counters.
func (e *Engine) snapshot(target int, odds substrate.Odds) generator.Progress {
	stats := e.Stats()
	p := generator.Progress{
		Attempts: stats.Attempts,
		Found:    stats.Found,
		Target:   target,
		Rate:     stats.Rate,
		Elapsed:  time.Duration(stats.ElapsedSecs * float64(time.Second)),
	}

	expected := odds.ExpectedAttempts
	if math.IsInf(expected, 1) || stats.Rate <= 0 {
		return p
	}

	since := float64(atomic.LoadUint64(&e.sinceLast))
	p.HasETA = true
	if since > expected {
		// Past the expected effort for this wallet; report how far over.
		p.Overdue = true
		p.ETA = time.Duration((since - expected) / stats.Rate * float64(time.Second))
	} else {
		p.ETA = time.Duration((expected - since) / stats.Rate * float64(time.Second))
	}

	// Luck is noise early in a search; hold it back until a quarter of the
	// expected effort has been spent.
	if since > expected/4 {
		p.Luck = substrate.LuckFactor(expected, uint64(since))
		p.HasLuck = true
	}
	return p
}
