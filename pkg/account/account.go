// Package account provides the Ed25519 keypair identity used to sign
// transactions: a random or restored keypair exposing a base58 public key
// and the raw 64-byte secret key.
//
// An Account is immutable after construction and safe for concurrent use.
package account

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"aim-chat/account-sdk/internal/keypair"
	"aim-chat/account-sdk/internal/seedphrase"
)

const (
	SecretKeySize = keypair.SecretKeySize
	SeedSize      = keypair.SeedSize
)

var (
	ErrInvalidKeyLength  = errors.New("invalid secret key length")
	ErrInvalidSeedLength = errors.New("invalid seed length")
	ErrInvalidMnemonic   = seedphrase.ErrInvalidMnemonic
)

type Account struct {
	secretKey [SecretKeySize]byte
	publicKey PublicKey
}

// New generates a fresh random keypair.
func New() (*Account, error) {
	return newFromReader(rand.Reader)
}

func newFromReader(r io.Reader) (*Account, error) {
	pub, secret, err := keypair.Generate(r)
	if err != nil {
		return nil, err
	}
	return &Account{secretKey: secret, publicKey: PublicKey(pub)}, nil
}

// FromSecretKey restores an account from a 64-byte expanded secret key.
// The public key is re-derived from the first 32 bytes; the input is kept
// byte for byte and returned by SecretKey.
func FromSecretKey(b []byte) (*Account, error) {
	if len(b) != SecretKeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKeyLength, SecretKeySize, len(b))
	}
	a := &Account{}
	copy(a.secretKey[:], b)
	a.publicKey = PublicKey(keypair.DeriveFromSecretKey(a.secretKey))
	return a, nil
}

// FromSeed builds the account whose expanded secret key is derived from a 32-byte seed.
func FromSeed(seed []byte) (*Account, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSeedLength, SeedSize, len(seed))
	}
	var s [SeedSize]byte
	copy(s[:], seed)
	secret := keypair.ExpandSeed(s)
	return FromSecretKey(secret[:])
}

// FromMnemonic derives the account for a BIP-39 phrase and optional passphrase.
func FromMnemonic(mnemonic, passphrase string) (*Account, error) {
	seed, err := seedphrase.SigningSeed(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}
	return FromSeed(seed[:])
}

// NewMnemonic returns a fresh phrase with the given entropy (128 or 256 bits).
func NewMnemonic(bits int) (string, error) {
	return seedphrase.New(bits)
}

// PublicKey returns the public key as plain base58.
func (a *Account) PublicKey() string {
	return a.publicKey.String()
}

func (a *Account) PublicKeyBytes() PublicKey {
	return a.publicKey
}

// SecretKey returns a copy of the 64 bytes the account was built from.
func (a *Account) SecretKey() []byte {
	out := make([]byte, SecretKeySize)
	copy(out, a.secretKey[:])
	return out
}

func (a *Account) Sign(msg []byte) []byte {
	return keypair.Sign(a.secretKey, msg)
}

func (a *Account) String() string {
	return a.PublicKey()
}

// LogValue keeps the secret key out of structured logs.
func (a *Account) LogValue() slog.Value {
	return slog.GroupValue(slog.String("public_key", a.PublicKey()))
}
