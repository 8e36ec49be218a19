package substrate

import (
	"errors"
	"testing"
)

// rawNetwork exposes the address unchanged so matcher tests can control the
// body text directly.
var rawNetwork = NetworkSpec{Name: "raw", LeadingSubstrings: []string{""}}

func mustMatcher(t *testing.T, spec PatternSpec) *Matcher {
	t.Helper()
	m, err := NewMatcher(rawNetwork, spec)
	if err != nil {
		t.Fatalf("NewMatcher(%+v) error = %v", spec, err)
	}
	return m
}

func TestMatcherSuffixWildcard(t *testing.T) {
	m := mustMatcher(t, PatternSpec{Term: "a?3", Position: Suffix})

	tests := []struct {
		body string
		want bool
	}{
		{"xxxxxxxxAi3", true},
		{"xxxxxxxxab3", true},
		{"xxxxxxxxAB3", true},
		{"xxxxxxxxab4", false},
		{"xxxxxxxa3xx", false},
	}
	for _, tt := range tests {
		got, err := m.Match(tt.body)
		if err != nil {
			t.Fatalf("Match(%q) error = %v", tt.body, err)
		}
		if got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.body, got, tt.want)
		}
	}
}

func TestMatcherSuffixWindow(t *testing.T) {
	// within 5 allows the term to end up to two characters from the end.
	m := mustMatcher(t, PatternSpec{Term: "abc", Position: Suffix, Within: 5})

	tests := []struct {
		body string
		want bool
	}{
		{"xxxxxxxxabc", true},
		{"xxxxxxxabcx", true},
		{"xxxxxxabcxx", true},
		{"xxxxxabcxxx", false},
	}
	for _, tt := range tests {
		got, err := m.Match(tt.body)
		if err != nil {
			t.Fatalf("Match(%q) error = %v", tt.body, err)
		}
		if got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.body, got, tt.want)
		}
	}
}

func TestMatcherPrefixWindow(t *testing.T) {
	// Default prefix window is 5: the term must start at offset 0, 1, or 2.
	m := mustMatcher(t, PatternSpec{Term: "xyz", Position: Prefix})

	tests := []struct {
		body string
		want bool
	}{
		{"xyzabcdef", true},
		{"axyzbcdef", true},
		{"abxyzcdef", true},
		{"abcxyzdef", false},
		{"abcdefxyz", false},
	}
	for _, tt := range tests {
		got, err := m.Match(tt.body)
		if err != nil {
			t.Fatalf("Match(%q) error = %v", tt.body, err)
		}
		if got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.body, got, tt.want)
		}
	}
}

func TestMatcherAnywhere(t *testing.T) {
	m := mustMatcher(t, PatternSpec{Term: "xyz", Position: Anywhere})

	for body, want := range map[string]bool{
		"abcdexyzfg": true,
		"xyzabcdefg": true,
		"abcdefgxyz": true,
		"abcdefghij": false,
	} {
		got, err := m.Match(body)
		if err != nil {
			t.Fatalf("Match(%q) error = %v", body, err)
		}
		if got != want {
			t.Errorf("Match(%q) = %v, want %v", body, got, want)
		}
	}
}

func TestMatcherAnywhereIgnoresWithinBound(t *testing.T) {
	// Anywhere scans the whole body; a within bound must not shrink the
	// scanned range as long as the term fits inside it.
	m := mustMatcher(t, PatternSpec{Term: "xyz", Position: Anywhere, Within: 10})

	got, err := m.Match("aaaaaaaaaaaaaaaaaaaaxyzaaa")
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if !got {
		t.Error("Match() = false for a hit past the within bound, want true")
	}

	// A bound smaller than the term is unsatisfiable, not an error.
	m = mustMatcher(t, PatternSpec{Term: "xyz", Position: Anywhere, Within: 2})
	got, err = m.Match("aaaxyzaaa")
	if err != nil || got {
		t.Errorf("Match(within < term) = %v, %v; want false, nil", got, err)
	}
}

func TestMatcherCaseSensitive(t *testing.T) {
	m := mustMatcher(t, PatternSpec{Term: "Ab", Position: Anywhere, CaseSensitive: true})

	got, err := m.Match("xxAbxx")
	if err != nil || !got {
		t.Errorf("Match(exact case) = %v, %v; want true", got, err)
	}
	got, err = m.Match("xxaBxx")
	if err != nil || got {
		t.Errorf("Match(flipped case) = %v, %v; want false", got, err)
	}
}

func TestMatcherTermLongerThanBody(t *testing.T) {
	m := mustMatcher(t, PatternSpec{Term: "abcdef", Position: Anywhere})
	got, err := m.Match("abc")
	if err != nil || got {
		t.Errorf("Match(short body) = %v, %v; want false, nil", got, err)
	}
}

func TestMatcherUnknownPrefix(t *testing.T) {
	network, _ := FindNetwork("Substrate")
	m, err := NewMatcher(network, PatternSpec{Term: "abc", Position: Anywhere})
	if err != nil {
		t.Fatalf("NewMatcher() error = %v", err)
	}
	if _, err := m.Match("XGrwvaEF"); !errors.Is(err, ErrUnknownPrefix) {
		t.Errorf("Match() error = %v, want ErrUnknownPrefix", err)
	}
}

func TestPatternSpecValidate(t *testing.T) {
	tests := []struct {
		name    string
		spec    PatternSpec
		wantErr bool
	}{
		{name: "ok", spec: PatternSpec{Term: "a?3", Position: Suffix}},
		{name: "empty term", spec: PatternSpec{Term: ""}, wantErr: true},
		{name: "zero is not base58", spec: PatternSpec{Term: "a0c"}, wantErr: true},
		{name: "capital L only valid as one case", spec: PatternSpec{Term: "L"}},
		{name: "lowercase l rejected case-sensitively", spec: PatternSpec{Term: "l", CaseSensitive: true}, wantErr: true},
		{name: "within smaller than term", spec: PatternSpec{Term: "abc", Position: Prefix, Within: 2}, wantErr: true},
		{name: "within equal to term", spec: PatternSpec{Term: "abc", Position: Prefix, Within: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidPattern) {
				t.Errorf("Validate() error = %v, want ErrInvalidPattern", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
		})
	}
}

func TestEffectiveWithin(t *testing.T) {
	if got := (PatternSpec{Term: "ab", Position: Prefix}).EffectiveWithin(); got != DefaultPrefixWithin {
		t.Errorf("prefix default = %d, want %d", got, DefaultPrefixWithin)
	}
	if got := (PatternSpec{Term: "abc", Position: Suffix}).EffectiveWithin(); got != 3 {
		t.Errorf("suffix default = %d, want 3", got)
	}
	if got := (PatternSpec{Term: "ab", Position: Prefix, Within: 8}).EffectiveWithin(); got != 8 {
		t.Errorf("explicit within = %d, want 8", got)
	}
}
