package substrate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPrefix indicates an address whose leading characters belong to
// none of the network's known leading substrings. It signals a codec/network
// mismatch, never bad luck, so callers must treat it as fatal.
var ErrUnknownPrefix = errors.New("substrate: address has unknown network prefix")

// NetworkSpec describes one Substrate-family network. Because the SS58
// header bytes interact with the leading bits of the public key under
// Base58, the textual form of an address can begin with more than one
// substring; the full set is kept for header stripping. Immutable after
// construction.
type NetworkSpec struct {
	Name              string
	SS58Prefix        uint16
	LeadingSubstrings []string
}

// Networks is the built-in registry. Leading substrings were observed from
// the live networks; custom prefixes derive theirs via sampling (see
// DeriveLeadingSubstrings).
var Networks = []NetworkSpec{
	{Name: "Polkadot", SS58Prefix: 0, LeadingSubstrings: []string{"1"}},
	{Name: "Kusama", SS58Prefix: 2, LeadingSubstrings: []string{"C", "D", "E", "F", "G", "H", "J"}},
	{Name: "Substrate", SS58Prefix: 42, LeadingSubstrings: []string{"5"}},
	{Name: "Autonomys", SS58Prefix: 6094, LeadingSubstrings: []string{"su"}},
}

// FindNetwork looks up a built-in network by name, case-insensitively.
func FindNetwork(name string) (NetworkSpec, bool) {
	for _, n := range Networks {
		if strings.EqualFold(n.Name, name) {
			return n, true
		}
	}
	return NetworkSpec{}, false
}

// FindNetworkByPrefix looks up a built-in network by its SS58 prefix.
func FindNetworkByPrefix(prefix uint16) (NetworkSpec, bool) {
	for _, n := range Networks {
		if n.SS58Prefix == prefix {
			return n, true
		}
	}
	return NetworkSpec{}, false
}

// CustomNetwork builds a NetworkSpec for a prefix outside the registry,
// deriving the leading-substring set by sampling the codec.
func CustomNetwork(prefix uint16) (NetworkSpec, error) {
	if prefix > MaxSS58Prefix {
		return NetworkSpec{}, fmt.Errorf("%w: %d", ErrInvalidNetwork, prefix)
	}
	leads, err := DeriveLeadingSubstrings(prefix)
	if err != nil {
		return NetworkSpec{}, err
	}
	return NetworkSpec{
		Name:              fmt.Sprintf("Custom (SS58 %d)", prefix),
		SS58Prefix:        prefix,
		LeadingSubstrings: leads,
	}, nil
}

// StripLeading removes the network's textual header from an address using
// longest-match-wins semantics and returns the remaining body. The header
// length is not assumed fixed.
func (n NetworkSpec) StripLeading(address string) (string, error) {
	best := -1
	for _, lead := range n.LeadingSubstrings {
		if len(lead) > best && strings.HasPrefix(address, lead) {
			best = len(lead)
		}
	}
	if best < 0 {
		return "", fmt.Errorf("%w: %q does not start with any of %v",
			ErrUnknownPrefix, address, n.LeadingSubstrings)
	}
	return address[best:], nil
}

// DeriveLeadingSubstrings samples the codec across the key space to find
// which leading characters addresses of the given prefix can carry. Equal
// header bytes pin the top bits of the encoded integer, so sampling keys
// from all-zero to all-0xff brackets the reachable range. If every sample
// shares a common textual prefix that prefix is returned alone; otherwise
// the distinct first characters seen are returned.
func DeriveLeadingSubstrings(prefix uint16) ([]string, error) {
	var key [PublicKeyLength]byte
	samples := make([]string, 0, 258)

	for i := 0; i < 256; i++ {
		key[0] = byte(i)
		for j := 1; j < PublicKeyLength; j++ {
			key[j] = byte(i * 7)
		}
		addr, err := EncodeAddress(prefix, key[:])
		if err != nil {
			return nil, err
		}
		samples = append(samples, addr)
	}
	for _, fill := range []byte{0x00, 0xff} {
		for j := range key {
			key[j] = fill
		}
		addr, err := EncodeAddress(prefix, key[:])
		if err != nil {
			return nil, err
		}
		samples = append(samples, addr)
	}

	common := samples[0]
	for _, s := range samples[1:] {
		common = commonPrefix(common, s)
		if common == "" {
			break
		}
	}
	if common != "" {
		return []string{common}, nil
	}

	seen := make(map[byte]bool)
	var leads []string
	for _, s := range samples {
		if !seen[s[0]] {
			seen[s[0]] = true
			leads = append(leads, s[:1])
		}
	}
	return leads, nil
}

func commonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
