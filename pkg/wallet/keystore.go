package wallet

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"

	"ss58hunter/pkg/generator/substrate"
	"ss58hunter/pkg/keysource"
)

// Scrypt parameters for keystore encryption. N stays at 2^15 because older
// keyring versions whitelist exactly these values and reject anything newer.
const (
	scryptN     = 32768
	scryptR     = 8
	scryptP     = 1
	scryptDKLen = 64

	saltLength  = 32
	nonceLength = 24
)

// keystorePrefix is the SS58 prefix written into the keystore's address
// field; wallets re-encode to their own network on import.
const keystorePrefix = 42

// Keystore is the version-3 encrypted JSON envelope.
type Keystore struct {
	Encoded  string           `json:"encoded"`
	Encoding KeystoreEncoding `json:"encoding"`
	Address  string           `json:"address"`
	Meta     KeystoreMeta     `json:"meta"`
}

type KeystoreEncoding struct {
	Content []string `json:"content"`
	Type    []string `json:"type"`
	Version string   `json:"version"`
}

type KeystoreMeta struct {
	Name string `json:"name"`
}

// ExportKeystore encrypts a raw-seed wallet under the given password and
// writes it to dir as <address>.json. The encoded blob layout is
// salt ++ scrypt params (N, p, r little-endian) ++ nonce ++ ciphertext,
// where the ciphertext is the PKCS8-wrapped sr25519 key material sealed
// with XSalsa20-Poly1305.
func ExportKeystore(dir, seedHex, vanityAddress, password string) (string, error) {
	raw, err := hex.DecodeString(seedHex)
	if err != nil {
		return "", fmt.Errorf("wallet: invalid hex seed: %w", err)
	}
	if len(raw) != 32 {
		return "", fmt.Errorf("wallet: seed must be exactly 32 bytes, got %d", len(raw))
	}
	var seed [32]byte
	copy(seed[:], raw)

	secret := keysource.ExpandedSecretFromSeed(seed)
	public, err := keysource.PublicKeyFromSeed(seed)
	if err != nil {
		return "", err
	}
	address, err := substrate.EncodeAddress(keystorePrefix, public[:])
	if err != nil {
		return "", err
	}

	var salt [saltLength]byte
	var nonce [nonceLength]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return "", fmt.Errorf("wallet: entropy failure: %w", err)
	}
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("wallet: entropy failure: %w", err)
	}

	derived, err := scrypt.Key([]byte(password), salt[:], scryptN, scryptR, scryptP, scryptDKLen)
	if err != nil {
		return "", fmt.Errorf("wallet: scrypt: %w", err)
	}
	var boxKey [32]byte
	copy(boxKey[:], derived[:32])

	plaintext := encodePKCS8(secret, public)
	sealed := secretbox.Seal(nil, plaintext, &nonce, &boxKey)

	encoded := make([]byte, 0, saltLength+12+nonceLength+len(sealed))
	encoded = append(encoded, salt[:]...)
	encoded = append(encoded, encodeScryptParams()...)
	encoded = append(encoded, nonce[:]...)
	encoded = append(encoded, sealed...)

	ks := Keystore{
		Encoded: base64.StdEncoding.EncodeToString(encoded),
		Encoding: KeystoreEncoding{
			Content: []string{"pkcs8", "sr25519"},
			Type:    []string{"scrypt", "xsalsa20-poly1305"},
			Version: "3",
		},
		Address: address,
		Meta:    KeystoreMeta{Name: walletName(vanityAddress)},
	}

	blob, err := json.MarshalIndent(&ks, "", "  ")
	if err != nil {
		return "", fmt.Errorf("wallet: encoding keystore: %w", err)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("wallet: creating output dir: %w", err)
	}
	path := filepath.Join(dir, vanityAddress+".json")
	if err := os.WriteFile(path, blob, 0o600); err != nil {
		return "", fmt.Errorf("wallet: writing keystore: %w", err)
	}
	hideFile(path)
	return path, nil
}

// encodePKCS8 wraps the 64-byte expanded secret and 32-byte public key in
// the fixed ASN.1 skeleton Polkadot keystores expect.
func encodePKCS8(secret [64]byte, public [32]byte) []byte {
	out := make([]byte, 0, 117)
	out = append(out, 0x30, 0x53)                   // SEQUENCE, length 83
	out = append(out, 0x02, 0x01, 0x01)             // version 1
	out = append(out, 0x30, 0x05)                   // algorithm identifier
	out = append(out, 0x06, 0x03, 0x2b, 0x65, 0x70) // OID
	out = append(out, 0x04, 0x22)                   // private key wrapper
	out = append(out, 0x04, 0x20)                   // private key octets
	out = append(out, secret[:]...)
	out = append(out, 0xa1, 0x23)       // public key context tag + length
	out = append(out, 0x03, 0x21, 0x00) // BIT STRING header
	out = append(out, public[:]...)
	return out
}

// encodeScryptParams renders N, p, r as 12 little-endian bytes, the order
// the keystore blob stores them in.
func encodeScryptParams() []byte {
	params := make([]byte, 12)
	binary.LittleEndian.PutUint32(params[0:4], scryptN)
	binary.LittleEndian.PutUint32(params[4:8], scryptP)
	binary.LittleEndian.PutUint32(params[8:12], scryptR)
	return params
}

// walletName renders the display name: first six and last six characters of
// the vanity address.
func walletName(address string) string {
	if len(address) >= 12 {
		return fmt.Sprintf("⯈ %s…%s", address[:6], address[len(address)-6:])
	}
	return fmt.Sprintf("⯈ %s", address)
}
