package privacylog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mr-tron/base58/base58"
)

const redactedValue = "[REDACTED]"

// Raw seeds and expanded secret keys are dropped no matter which key they
// are logged under, as are base58 strings that decode to a secret key.
const (
	seedLen      = 32
	secretKeyLen = 64

	minSecretKeyBase58Len = 64
	maxSecretKeyBase58Len = 88
)

var sensitiveKeyParts = []string{"secret", "seed", "mnemonic", "private", "passphrase", "password", "token", "auth"}

// SanitizingHandler redacts key material before records reach next.
type SanitizingHandler struct {
	next slog.Handler
}

func WrapHandler(next slog.Handler) slog.Handler {
	if next == nil {
		return nil
	}
	return &SanitizingHandler{next: next}
}

func (h *SanitizingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *SanitizingHandler) Handle(ctx context.Context, rec slog.Record) error {
	out := slog.NewRecord(rec.Time, rec.Level, rec.Message, rec.PC)
	rec.Attrs(func(attr slog.Attr) bool {
		out.AddAttrs(SanitizeAttr(attr))
		return true
	})
	return h.next.Handle(ctx, out)
}

func (h *SanitizingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &SanitizingHandler{next: h.next.WithAttrs(sanitizeAttrs(attrs))}
}

func (h *SanitizingHandler) WithGroup(name string) slog.Handler {
	return &SanitizingHandler{next: h.next.WithGroup(name)}
}

func SanitizeAttr(attr slog.Attr) slog.Attr {
	key := strings.TrimSpace(attr.Key)
	if isSensitiveKey(strings.ToLower(key)) {
		return slog.String(key, redactedValue)
	}
	value := attr.Value.Resolve()
	switch value.Kind() {
	case slog.KindGroup:
		return slog.Attr{Key: key, Value: slog.GroupValue(sanitizeAttrs(value.Group())...)}
	case slog.KindString:
		if looksLikeBase58SecretKey(value.String()) {
			return slog.String(key, redactedValue)
		}
	case slog.KindAny:
		if b, ok := value.Any().([]byte); ok && (len(b) == seedLen || len(b) == secretKeyLen) {
			return slog.String(key, redactedValue)
		}
	}
	return slog.Attr{Key: key, Value: value}
}

func sanitizeAttrs(attrs []slog.Attr) []slog.Attr {
	out := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, SanitizeAttr(attr))
	}
	return out
}

func looksLikeBase58SecretKey(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < minSecretKeyBase58Len || len(s) > maxSecretKeyBase58Len {
		return false
	}
	raw, err := base58.Decode(s)
	return err == nil && len(raw) == secretKeyLen
}

func isSensitiveKey(key string) bool {
	for _, part := range sensitiveKeyParts {
		if strings.Contains(key, part) {
			return true
		}
	}
	return false
}
