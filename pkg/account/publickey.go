package account

import (
	"errors"
	"fmt"

	"aim-chat/account-sdk/internal/keypair"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58/base58"
)

const PublicKeySize = keypair.PublicKeySize

var ErrInvalidPublicKey = errors.New("invalid public key")

// PublicKey is a raw Ed25519 public key. Its text form is base58 without
// checksum or version byte.
type PublicKey [PublicKeySize]byte

func ParsePublicKey(s string) (PublicKey, error) {
	var pk PublicKey
	raw, err := base58.Decode(s)
	if err != nil {
		return pk, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	if len(raw) != PublicKeySize {
		return pk, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPublicKey, PublicKeySize, len(raw))
	}
	copy(pk[:], raw)
	return pk, nil
}

func (pk PublicKey) String() string {
	return base58.Encode(pk[:])
}

func (pk PublicKey) Bytes() []byte {
	return append([]byte(nil), pk[:]...)
}

func (pk PublicKey) Equals(other PublicKey) bool {
	return pk == other
}

func (pk PublicKey) Verify(msg, sig []byte) bool {
	return keypair.Verify(pk, msg, sig)
}

// IsOnCurve reports whether pk decodes to a valid edwards25519 point.
// Keys derived from a secret always are.
func (pk PublicKey) IsOnCurve() bool {
	_, err := new(edwards25519.Point).SetBytes(pk[:])
	return err == nil
}

func (pk PublicKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

func (pk *PublicKey) UnmarshalText(text []byte) error {
	parsed, err := ParsePublicKey(string(text))
	if err != nil {
		return err
	}
	*pk = parsed
	return nil
}
