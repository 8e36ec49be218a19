// Package keysource produces candidate keypairs for the vanity search.
// Two sources share one downstream pipeline: a mnemonic-backed source whose
// secret material is a recoverable BIP39 phrase, and a raw-seed source whose
// secret material is the hex seed itself. Both yield a 32-byte sr25519
// public key per call.
package keysource

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"fmt"

	"github.com/ChainSafe/go-schnorrkel"
	bip39 "github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/pbkdf2"
)

// miniSecretRounds is the PBKDF2 round count Substrate uses to turn BIP39
// entropy into a 32-byte mini secret.
const miniSecretRounds = 2048

// Candidate is one generated keypair. It is owned by the worker that
// generated it until handed to the result channel.
type Candidate struct {
	PublicKey [32]byte
	// Secret is the recoverable material: mnemonic phrase or hex seed.
	Secret string
	// FromMnemonic distinguishes the two source variants for persistence.
	FromMnemonic bool
}

// Source generates candidates. Generate is infallible in normal operation;
// an error means the entropy source itself failed and the run must abort.
type Source interface {
	Name() string
	Generate() (Candidate, error)
}

// MnemonicSource generates 12-word BIP39 mnemonics and derives sr25519
// keys the Substrate way (PBKDF2 over the raw entropy, not the phrase).
type MnemonicSource struct{}

func (MnemonicSource) Name() string { return "mnemonic" }

func (MnemonicSource) Generate() (Candidate, error) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return Candidate{}, fmt.Errorf("keysource: entropy failure: %w", err)
	}
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return Candidate{}, fmt.Errorf("keysource: mnemonic encoding: %w", err)
	}
	pub, err := PublicKeyFromSeed(MiniSecretFromEntropy(entropy, ""))
	if err != nil {
		return Candidate{}, err
	}
	return Candidate{PublicKey: pub, Secret: phrase, FromMnemonic: true}, nil
}

// SeedSource generates random 32-byte seeds from the OS entropy pool.
type SeedSource struct{}

func (SeedSource) Name() string { return "hex seed" }

func (SeedSource) Generate() (Candidate, error) {
	var seed [32]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return Candidate{}, fmt.Errorf("keysource: entropy failure: %w", err)
	}
	pub, err := PublicKeyFromSeed(seed)
	if err != nil {
		return Candidate{}, err
	}
	return Candidate{PublicKey: pub, Secret: hex.EncodeToString(seed[:])}, nil
}

// MiniSecretFromEntropy derives the 32-byte Substrate mini secret from raw
// BIP39 entropy: PBKDF2-HMAC-SHA512(entropy, "mnemonic"+password, 2048).
func MiniSecretFromEntropy(entropy []byte, password string) [32]byte {
	var out [32]byte
	key := pbkdf2.Key(entropy, []byte("mnemonic"+password), miniSecretRounds, 32, sha512.New)
	copy(out[:], key)
	return out
}

// MiniSecretFromMnemonic recovers the mini secret from a phrase. Used when
// verifying saved wallets.
func MiniSecretFromMnemonic(phrase, password string) ([32]byte, error) {
	entropy, err := bip39.EntropyFromMnemonic(phrase)
	if err != nil {
		return [32]byte{}, fmt.Errorf("keysource: invalid mnemonic: %w", err)
	}
	return MiniSecretFromEntropy(entropy, password), nil
}

// PublicKeyFromSeed expands a mini secret into its sr25519 public key.
func PublicKeyFromSeed(seed [32]byte) ([32]byte, error) {
	mini, err := schnorrkel.NewMiniSecretKeyFromRaw(seed)
	if err != nil {
		return [32]byte{}, fmt.Errorf("keysource: bad seed: %w", err)
	}
	return mini.Public().Encode(), nil
}

// ExpandedSecretFromSeed returns the 64-byte Ed25519-style expansion of a
// mini secret (clamped scalar plus signing nonce), the layout wallet
// keystores store inside PKCS8.
func ExpandedSecretFromSeed(seed [32]byte) [64]byte {
	h := sha512.Sum512(seed[:])
	h[0] &= 248
	h[31] &= 127
	h[31] |= 64
	return h
}
