// Package substrate implements SS58 address encoding and pattern matching
// for Substrate-family networks (Polkadot, Kusama, Autonomys, ...).
// Addresses are Base58-encoded and carry a network header plus a short
// blake2b checksum.
package substrate

import (
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

const (
	// PublicKeyLength is the account key size of the 32-byte account format.
	// Other payload lengths (multisig, EVM-mapped) are not supported.
	PublicKeyLength = 32

	// checksumLength is fixed for 32-byte account payloads.
	checksumLength = 2

	// MaxSS58Prefix is the largest network prefix the 14-bit header can carry.
	MaxSS58Prefix = 0x3fff
)

// ss58Prelude is the domain-separation tag hashed in front of every payload.
var ss58Prelude = []byte("SS58PRE")

var (
	ErrInvalidNetwork   = errors.New("substrate: ss58 prefix out of range")
	ErrInvalidKeyLength = errors.New("substrate: public key must be 32 bytes")
	ErrInvalidAddress   = errors.New("substrate: malformed ss58 address")
	ErrBadChecksum      = errors.New("substrate: ss58 checksum mismatch")
)

// EncodeAddress encodes a 32-byte public key as an SS58 address string for
// the given network prefix. The output is deterministic: header bytes,
// followed by the key, followed by the first two bytes of
// blake2b-512("SS58PRE" ++ header ++ key), all Base58-encoded.
func EncodeAddress(prefix uint16, pubKey []byte) (string, error) {
	if prefix > MaxSS58Prefix {
		return "", fmt.Errorf("%w: %d", ErrInvalidNetwork, prefix)
	}
	if len(pubKey) != PublicKeyLength {
		return "", fmt.Errorf("%w: got %d", ErrInvalidKeyLength, len(pubKey))
	}

	payload := make([]byte, 0, 2+PublicKeyLength+checksumLength)
	if prefix < 64 {
		payload = append(payload, byte(prefix))
	} else {
		// Two-byte header. The upper six bits of the low byte move into the
		// first byte (tagged 0b01______); the leftover two bits join the
		// high byte in the second.
		b0 := 0x40 | byte((prefix&0x00fc)>>2)
		b1 := byte(prefix>>8) | byte(prefix&0x0003)<<6
		payload = append(payload, b0, b1)
	}
	payload = append(payload, pubKey...)

	sum := ss58Checksum(payload)
	payload = append(payload, sum[:checksumLength]...)

	return base58.Encode(payload), nil
}

// DecodeAddress is the inverse of EncodeAddress. It recovers the network
// prefix and public key, verifying the checksum. Used for self-tests and
// wallet verification, not in the search hot loop.
func DecodeAddress(address string) (uint16, []byte, error) {
	raw, err := base58.Decode(address)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(raw) < 1+PublicKeyLength+checksumLength {
		return 0, nil, ErrInvalidAddress
	}

	var prefix uint16
	var headerLen int
	switch {
	case raw[0] < 64:
		prefix = uint16(raw[0])
		headerLen = 1
	case raw[0] < 128:
		if len(raw) < 2+PublicKeyLength+checksumLength {
			return 0, nil, ErrInvalidAddress
		}
		low := uint16(raw[0]&0x3f)<<2 | uint16(raw[1])>>6
		high := uint16(raw[1] & 0x3f)
		prefix = high<<8 | low
		headerLen = 2
	default:
		return 0, nil, ErrInvalidAddress
	}

	if len(raw) != headerLen+PublicKeyLength+checksumLength {
		return 0, nil, ErrInvalidAddress
	}

	body := raw[:headerLen+PublicKeyLength]
	sum := ss58Checksum(body)
	tail := raw[headerLen+PublicKeyLength:]
	if tail[0] != sum[0] || tail[1] != sum[1] {
		return 0, nil, ErrBadChecksum
	}

	pubKey := make([]byte, PublicKeyLength)
	copy(pubKey, raw[headerLen:headerLen+PublicKeyLength])
	return prefix, pubKey, nil
}

// ss58Checksum computes blake2b-512 over the prelude tag and payload.
func ss58Checksum(payload []byte) [64]byte {
	data := make([]byte, 0, len(ss58Prelude)+len(payload))
	data = append(data, ss58Prelude...)
	data = append(data, payload...)
	return blake2b.Sum512(data)
}
