// Package keypair is the Ed25519 capability used by account: random
// generation, derivation of the public key from an expanded secret key,
// and signing.
package keypair

import (
	"crypto/ed25519"
	"io"
)

const (
	PublicKeySize = ed25519.PublicKeySize
	SecretKeySize = ed25519.PrivateKeySize
	SeedSize      = ed25519.SeedSize
	SignatureSize = ed25519.SignatureSize
)

// Generate draws a fresh keypair from rand. Errors from rand are returned as is.
func Generate(rand io.Reader) (pub [PublicKeySize]byte, secret [SecretKeySize]byte, err error) {
	p, s, err := ed25519.GenerateKey(rand)
	if err != nil {
		return pub, secret, err
	}
	copy(pub[:], p)
	copy(secret[:], s)
	return pub, secret, nil
}

// ExpandSeed returns the 64-byte expanded secret key for seed.
func ExpandSeed(seed [SeedSize]byte) [SecretKeySize]byte {
	var out [SecretKeySize]byte
	copy(out[:], ed25519.NewKeyFromSeed(seed[:]))
	return out
}

// DeriveFromSecretKey recomputes the public key from the seed half of secret.
// The trailing 32 bytes are never trusted.
func DeriveFromSecretKey(secret [SecretKeySize]byte) [PublicKeySize]byte {
	var pub [PublicKeySize]byte
	priv := ed25519.NewKeyFromSeed(secret[:SeedSize])
	copy(pub[:], priv.Public().(ed25519.PublicKey))
	return pub
}

// Sign signs msg with the keypair expanded from the seed half of secret.
func Sign(secret [SecretKeySize]byte, msg []byte) []byte {
	return ed25519.Sign(ed25519.NewKeyFromSeed(secret[:SeedSize]), msg)
}

func Verify(pub [PublicKeySize]byte, msg, sig []byte) bool {
	if len(sig) != SignatureSize {
		return false
	}
	return ed25519.Verify(pub[:], msg, sig)
}
