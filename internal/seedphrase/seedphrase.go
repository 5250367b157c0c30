package seedphrase

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/hkdf"
)

const (
	hkdfInfoSigning = "aim/account/signing/v1"
	SigningSeedSize = 32
)

var (
	ErrInvalidMnemonic    = errors.New("invalid mnemonic")
	ErrMnemonicRequired   = errors.New("mnemonic is required")
	ErrInvalidEntropyBits = errors.New("invalid entropy size")
)

// New returns a fresh BIP-39 phrase. bits must be 128 (12 words) or 256 (24 words).
func New(bits int) (string, error) {
	if bits != 128 && bits != 256 {
		return "", fmt.Errorf("%w: %d", ErrInvalidEntropyBits, bits)
	}
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

func Normalize(mnemonic string) string {
	return strings.Join(strings.Fields(mnemonic), " ")
}

func Valid(mnemonic string) bool {
	return bip39.IsMnemonicValid(Normalize(mnemonic))
}

// SigningSeed turns a phrase into the 32-byte Ed25519 seed.
func SigningSeed(mnemonic, passphrase string) ([SigningSeedSize]byte, error) {
	var out [SigningSeedSize]byte
	mnemonic = Normalize(mnemonic)
	if mnemonic == "" {
		return out, ErrMnemonicRequired
	}
	if !bip39.IsMnemonicValid(mnemonic) {
		return out, ErrInvalidMnemonic
	}
	seedBytes := bip39.NewSeed(mnemonic, passphrase)
	defer zeroBytes(seedBytes)

	reader := hkdf.New(sha256.New, seedBytes, nil, []byte(hkdfInfoSigning))
	if _, err := io.ReadFull(reader, out[:]); err != nil {
		return out, err
	}
	return out, nil
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
