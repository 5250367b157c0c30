// Package keygen drives account creation for the command line: it decodes
// user input, builds accounts, and records logs and metrics for each step.
package keygen

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"aim-chat/account-sdk/internal/platform/metrics"
	"aim-chat/account-sdk/pkg/account"

	"github.com/mr-tron/base58/base58"
)

var (
	ErrNoInput        = errors.New("one of secret key, seed or mnemonic is required")
	ErrAmbiguousInput = errors.New("only one of secret key, seed or mnemonic may be set")
	ErrUnknownFormat  = errors.New("unrecognized key encoding")
)

type Result struct {
	PublicKey string `json:"public_key"`
	SecretKey string `json:"secret_key,omitempty"`
	Mnemonic  string `json:"mnemonic,omitempty"`
	Source    string `json:"source"`
}

type RestoreInput struct {
	SecretKey  string
	Seed       string
	Mnemonic   string
	Passphrase string
}

type PublicKeyInfo struct {
	PublicKey string `json:"public_key"`
	Hex       string `json:"hex"`
	OnCurve   bool   `json:"on_curve"`
}

type Service struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewService(logger *slog.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger, metrics: m}
}

// Generate creates a fresh account. With mnemonicBits > 0 the account is
// derived from a new phrase. The phrase and the secret key are only
// returned when showSecret is set.
func (s *Service) Generate(mnemonicBits int, passphrase string, showSecret bool) (Result, error) {
	if mnemonicBits > 0 {
		phrase, err := account.NewMnemonic(mnemonicBits)
		if err != nil {
			s.fail(metrics.SourceMnemonic, err)
			return Result{}, err
		}
		acc, err := account.FromMnemonic(phrase, passphrase)
		if err != nil {
			s.fail(metrics.SourceMnemonic, err)
			return Result{}, err
		}
		res := s.done(acc, metrics.SourceMnemonic, showSecret)
		if showSecret {
			res.Mnemonic = phrase
		}
		return res, nil
	}

	acc, err := account.New()
	if err != nil {
		s.fail(metrics.SourceRandom, err)
		return Result{}, err
	}
	return s.done(acc, metrics.SourceRandom, showSecret), nil
}

func (s *Service) Restore(in RestoreInput, showSecret bool) (Result, error) {
	set := 0
	for _, v := range []string{in.SecretKey, in.Seed, in.Mnemonic} {
		if strings.TrimSpace(v) != "" {
			set++
		}
	}
	switch {
	case set == 0:
		s.fail(metrics.SourceUnknown, ErrNoInput)
		return Result{}, ErrNoInput
	case set > 1:
		s.fail(metrics.SourceUnknown, ErrAmbiguousInput)
		return Result{}, ErrAmbiguousInput
	}

	var (
		acc    *account.Account
		source string
		err    error
	)
	switch {
	case strings.TrimSpace(in.SecretKey) != "":
		source = metrics.SourceSecretKey
		var raw []byte
		raw, err = DecodeKeyBytes(in.SecretKey, account.SecretKeySize)
		if err == nil {
			acc, err = account.FromSecretKey(raw)
		}
	case strings.TrimSpace(in.Seed) != "":
		source = metrics.SourceSeed
		var raw []byte
		raw, err = DecodeKeyBytes(in.Seed, account.SeedSize)
		if err == nil {
			acc, err = account.FromSeed(raw)
		}
	default:
		source = metrics.SourceMnemonic
		acc, err = account.FromMnemonic(in.Mnemonic, in.Passphrase)
	}
	if err != nil {
		s.fail(source, err)
		return Result{}, err
	}
	return s.done(acc, source, showSecret), nil
}

func (s *Service) InspectPublicKey(raw string) (PublicKeyInfo, error) {
	pk, err := account.ParsePublicKey(strings.TrimSpace(raw))
	if err != nil {
		s.logger.Debug("public key rejected", "error", err)
		return PublicKeyInfo{}, err
	}
	return PublicKeyInfo{
		PublicKey: pk.String(),
		Hex:       hex.EncodeToString(pk[:]),
		OnCurve:   pk.IsOnCurve(),
	}, nil
}

func (s *Service) done(acc *account.Account, source string, showSecret bool) Result {
	s.metrics.Created(source)
	s.logger.Info("account ready", "source", source, "account", acc)
	res := Result{PublicKey: acc.PublicKey(), Source: source}
	if showSecret {
		res.SecretKey = base58.Encode(acc.SecretKey())
	}
	return res
}

func (s *Service) fail(source string, err error) {
	s.metrics.Failed(source, failureReason(err))
	s.logger.Warn("account creation failed", "source", source, "error", err)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, account.ErrInvalidKeyLength), errors.Is(err, account.ErrInvalidSeedLength):
		return "invalid_length"
	case errors.Is(err, account.ErrInvalidMnemonic):
		return "invalid_mnemonic"
	case errors.Is(err, ErrNoInput), errors.Is(err, ErrAmbiguousInput):
		return "invalid_input"
	case errors.Is(err, ErrUnknownFormat):
		return "invalid_encoding"
	default:
		return "internal"
	}
}

// DecodeKeyBytes accepts a JSON byte array, hex, or base58. Hex is only
// recognized at exactly 2*want digits. Lengths are otherwise left to the
// account constructors to reject.
func DecodeKeyBytes(raw string, want int) ([]byte, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "[") {
		var ints []int
		if err := json.Unmarshal([]byte(raw), &ints); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
		}
		out := make([]byte, len(ints))
		for i, v := range ints {
			if v < 0 || v > 255 {
				return nil, fmt.Errorf("%w: byte %d out of range", ErrUnknownFormat, i)
			}
			out[i] = byte(v)
		}
		return out, nil
	}
	hexRaw := strings.TrimPrefix(raw, "0x")
	if len(hexRaw) == want*2 {
		if out, err := hex.DecodeString(hexRaw); err == nil {
			return out, nil
		}
	}
	out, err := base58.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
	}
	return out, nil
}
