package substrate

import (
	"errors"
	"fmt"
	"strings"
)

// base58Alphabet is the Bitcoin-style alphabet used by SS58 (no 0, O, I, l).
const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// Wildcard matches any single address character in a search term.
const Wildcard = '?'

// DefaultPrefixWithin is the window searched from the start of the address
// body when no explicit within bound is given in prefix mode.
const DefaultPrefixWithin = 5

// ErrInvalidPattern indicates a search term that can never be satisfied or
// contains characters Base58 can never produce.
var ErrInvalidPattern = errors.New("substrate: invalid search pattern")

// Position selects where in the address body a pattern must occur.
type Position int

const (
	// Prefix requires the term near the start of the body.
	Prefix Position = iota
	// Suffix requires the term near the end of the body.
	Suffix
	// Anywhere accepts the term at any body offset.
	Anywhere
)

func (p Position) String() string {
	switch p {
	case Prefix:
		return "prefix"
	case Suffix:
		return "suffix"
	case Anywhere:
		return "anywhere"
	default:
		return "unknown"
	}
}

// PatternSpec is a validated, immutable description of what to search for.
// Within of 0 means the mode default: DefaultPrefixWithin for Prefix, the
// term length (exact end anchor) for Suffix. Anywhere always scans the whole
// body; a Within there only matters as a feasibility gate when it is smaller
// than the term.
type PatternSpec struct {
	Term          string
	Position      Position
	Within        int
	CaseSensitive bool
}

// Validate rejects patterns that are empty, contain characters outside
// Base58 (wildcard aside), or carry a within bound too small for the term.
func (p PatternSpec) Validate() error {
	if p.Term == "" {
		return fmt.Errorf("%w: empty term", ErrInvalidPattern)
	}
	for _, c := range p.Term {
		if c == Wildcard {
			continue
		}
		if p.CaseSensitive {
			if !strings.ContainsRune(base58Alphabet, c) {
				return fmt.Errorf("%w: %q is not a Base58 character", ErrInvalidPattern, c)
			}
			continue
		}
		upper := strings.ContainsRune(base58Alphabet, toUpper(c))
		lower := strings.ContainsRune(base58Alphabet, toLower(c))
		if !upper && !lower {
			return fmt.Errorf("%w: %q is not a Base58 character in either case", ErrInvalidPattern, c)
		}
	}
	if p.Within > 0 && p.Within < len(p.Term) && p.Position != Anywhere {
		return fmt.Errorf("%w: within %d is smaller than the %d-character term",
			ErrInvalidPattern, p.Within, len(p.Term))
	}
	return nil
}

// EffectiveWithin resolves the mode default. 0 for Anywhere means the
// whole body.
func (p PatternSpec) EffectiveWithin() int {
	if p.Within > 0 {
		return p.Within
	}
	switch p.Position {
	case Prefix:
		return DefaultPrefixWithin
	case Suffix:
		return len(p.Term)
	default:
		return 0
	}
}

// FixedLength counts the non-wildcard characters of the term.
func (p PatternSpec) FixedLength() int {
	n := 0
	for _, c := range p.Term {
		if c != Wildcard {
			n++
		}
	}
	return n
}

// Matcher decides whether an address satisfies a PatternSpec relative to a
// NetworkSpec. The term is pre-processed once so the hot loop does no
// allocations.
type Matcher struct {
	network       NetworkSpec
	term          []byte
	position      Position
	within        int
	caseSensitive bool
}

// NewMatcher validates the pattern and builds a matcher for the network.
func NewMatcher(network NetworkSpec, spec PatternSpec) (*Matcher, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	term := spec.Term
	if !spec.CaseSensitive {
		term = strings.ToLower(term)
	}
	return &Matcher{
		network:       network,
		term:          []byte(term),
		position:      spec.Position,
		within:        spec.EffectiveWithin(),
		caseSensitive: spec.CaseSensitive,
	}, nil
}

// Match reports whether the address satisfies the pattern. The only error
// is ErrUnknownPrefix, which indicates a codec/network mismatch and must
// abort the run. A pattern that cannot fit its window is a plain false.
func (m *Matcher) Match(address string) (bool, error) {
	body, err := m.network.StripLeading(address)
	if err != nil {
		return false, err
	}

	n := len(body)
	p := len(m.term)
	if p > n {
		return false, nil
	}

	switch m.position {
	case Prefix:
		w := m.within
		if w > n {
			w = n
		}
		hi := w - p
		for off := 0; off <= hi; off++ {
			if m.termAt(body, off) {
				return true, nil
			}
		}
	case Suffix:
		w := m.within
		if w > n {
			w = n
		}
		lo := n - w
		// Rightmost feasible offset first; scan order only affects speed.
		for off := n - p; off >= lo; off-- {
			if m.termAt(body, off) {
				return true, nil
			}
		}
	case Anywhere:
		// A within bound smaller than the term can never be satisfied;
		// otherwise every body offset is scanned.
		if m.within > 0 && m.within < p {
			return false, nil
		}
		hi := n - p
		for off := 0; off <= hi; off++ {
			if m.termAt(body, off) {
				return true, nil
			}
		}
	}
	return false, nil
}

// termAt compares the term against body[off:] with wildcard and optional
// case folding. Callers guarantee off+len(term) <= len(body).
func (m *Matcher) termAt(body string, off int) bool {
	for i, tc := range m.term {
		bc := body[off+i]
		if tc == Wildcard {
			continue
		}
		if !m.caseSensitive {
			bc = lowerByte(bc)
		}
		if tc != bc {
			return false
		}
	}
	return true
}

func lowerByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func toLower(c rune) rune {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func toUpper(c rune) rune {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
