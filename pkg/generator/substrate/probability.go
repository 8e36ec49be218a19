package substrate

import "math"

// alphabetSize is the Base58 alphabet, assumed uniformly distributed across
// address-body positions. Real output is not perfectly uniform near the
// header boundary, so everything derived here is advisory and must never
// gate a match decision.
const alphabetSize = 58

// assumedBodyLength is the average address-body length after header
// stripping, used to count windows in anywhere mode.
const assumedBodyLength = 46

// Odds summarizes the closed-form difficulty estimate for a pattern.
type Odds struct {
	// FixedChars is the number of non-wildcard term characters.
	FixedChars int
	// Windows is how many body offsets the matcher will try per address.
	Windows int
	// PerWindow is the chance one window satisfies the term.
	PerWindow float64
	// PerAddress is the chance any window of one address satisfies it.
	PerAddress float64
	// ExpectedAttempts is 1/PerAddress; +Inf when the pattern cannot fit.
	ExpectedAttempts float64
}

// Estimate computes the expected search effort for a pattern. The window
// count mirrors the matcher's own offset ranges so the two stay consistent.
func Estimate(spec PatternSpec) Odds {
	odds := Odds{FixedChars: spec.FixedLength()}

	termLen := len(spec.Term)
	within := spec.EffectiveWithin()

	switch spec.Position {
	case Prefix, Suffix:
		if within < termLen {
			odds.ExpectedAttempts = math.Inf(1)
			return odds
		}
		odds.Windows = within - termLen + 1
	case Anywhere:
		if within > 0 && within < termLen {
			odds.ExpectedAttempts = math.Inf(1)
			return odds
		}
		if assumedBodyLength < termLen {
			odds.ExpectedAttempts = math.Inf(1)
			return odds
		}
		odds.Windows = assumedBodyLength - termLen + 1
	}

	odds.PerWindow = math.Pow(alphabetSize, -float64(odds.FixedChars))
	odds.PerAddress = 1 - math.Pow(1-odds.PerWindow, float64(odds.Windows))
	if odds.PerAddress > 1 {
		odds.PerAddress = 1
	}
	if odds.PerAddress <= 0 {
		odds.ExpectedAttempts = math.Inf(1)
		return odds
	}
	odds.ExpectedAttempts = 1 / odds.PerAddress
	return odds
}

// LuckFactor is the ratio of expected to actual effort at the moment of a
// match, as a percentage. Above 100 means the run was lucky. Recorded once
// per discovery; it does not change retroactively.
func LuckFactor(expectedAttempts float64, actualAttempts uint64) float64 {
	if actualAttempts == 0 || math.IsInf(expectedAttempts, 1) {
		return 0
	}
	return expectedAttempts / float64(actualAttempts) * 100
}
