// Package wallet persists found vanity keypairs: mnemonic results as plain
// text files, raw-seed results as password-encrypted JSON keystores in the
// version-3 format used by the Polkadot wallet ecosystem.
package wallet

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"ss58hunter/pkg/generator"
	"ss58hunter/pkg/generator/substrate"
	"ss58hunter/pkg/keysource"
)

var ErrVerifyFailed = errors.New("wallet: secret does not reproduce the address")

// SaveMnemonic writes a mnemonic-backed result as <address>.txt and returns
// the file path.
func SaveMnemonic(dir string, result generator.Result) (string, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("wallet: creating output dir: %w", err)
	}
	path := filepath.Join(dir, result.Address+".txt")
	content := fmt.Sprintf("Address: %s\nMnemonic: %s\n", result.Address, result.Candidate.Secret)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("wallet: writing mnemonic file: %w", err)
	}
	hideFile(path)
	return path, nil
}

// Verify re-derives the address from a result's secret material and checks
// it against the address that was reported found. Run before any file is
// written; a mismatch means a defect upstream, never user error.
func Verify(result generator.Result, network substrate.NetworkSpec) error {
	var seed [32]byte
	if result.Candidate.FromMnemonic {
		s, err := keysource.MiniSecretFromMnemonic(result.Candidate.Secret, "")
		if err != nil {
			return err
		}
		seed = s
	} else {
		raw, err := hex.DecodeString(result.Candidate.Secret)
		if err != nil {
			return fmt.Errorf("wallet: bad hex secret: %w", err)
		}
		if len(raw) != 32 {
			return fmt.Errorf("wallet: seed must be 32 bytes, got %d", len(raw))
		}
		copy(seed[:], raw)
	}

	pub, err := keysource.PublicKeyFromSeed(seed)
	if err != nil {
		return err
	}
	address, err := substrate.EncodeAddress(network.SS58Prefix, pub[:])
	if err != nil {
		return err
	}
	if address != result.Address {
		return fmt.Errorf("%w: derived %s, found %s", ErrVerifyFailed, address, result.Address)
	}
	return nil
}
