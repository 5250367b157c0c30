package privacylog

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/mr-tron/base58/base58"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}
	return payload
}

func TestSanitizingHandlerRedactsSensitiveKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(WrapHandler(slog.NewJSONHandler(&buf, nil)))
	logger.Info("test",
		"secret_key", "5Kd3...",
		"mnemonic", "abandon abandon",
		"Seed_Hex", "00ff",
		"public_key", "4zvwRjXUKGfvwnParsHAS3HuSVzV5cA4McphgmoCtajS",
	)

	payload := decodeLine(t, &buf)
	for _, key := range []string{"secret_key", "mnemonic", "Seed_Hex"} {
		if got, _ := payload[key].(string); got != redactedValue {
			t.Fatalf("expected %s redacted, got %q", key, got)
		}
	}
	if got, _ := payload["public_key"].(string); got != "4zvwRjXUKGfvwnParsHAS3HuSVzV5cA4McphgmoCtajS" {
		t.Fatalf("public_key should be logged as is, got %q", got)
	}
}

func TestSanitizingHandlerRedactsRawSecretKeyBytes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(WrapHandler(slog.NewJSONHandler(&buf, nil)))
	logger.Info("test",
		"blob", make([]byte, secretKeyLen),
		"value", make([]byte, seedLen),
		"short", []byte{1, 2, 3},
	)

	payload := decodeLine(t, &buf)
	if got, _ := payload["blob"].(string); got != redactedValue {
		t.Fatalf("expected 64-byte value redacted, got %v", payload["blob"])
	}
	if got, _ := payload["value"].(string); got != redactedValue {
		t.Fatalf("expected 32-byte value redacted, got %v", payload["value"])
	}
	if _, ok := payload["short"]; !ok {
		t.Fatal("short byte slices should pass through")
	}
}

func TestSanitizingHandlerRedactsInsideGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(WrapHandler(slog.NewJSONHandler(&buf, nil)))
	logger.With("request", "r1").Info("test", slog.Group("account", "public_key", "pk", "secret_key", "sk"))

	if strings.Contains(buf.String(), `"sk"`) {
		t.Fatalf("secret inside group leaked: %s", buf.String())
	}
	payload := decodeLine(t, &buf)
	group, ok := payload["account"].(map[string]any)
	if !ok {
		t.Fatalf("expected account group, got %T", payload["account"])
	}
	if got, _ := group["public_key"].(string); got != "pk" {
		t.Fatalf("unexpected public_key: %q", got)
	}
}

func TestSanitizingHandlerImplementsSlogHandlerContract(t *testing.T) {
	var buf bytes.Buffer
	h := WrapHandler(slog.NewJSONHandler(&buf, nil))
	if !h.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("expected handler enabled for info")
	}
	h = h.WithAttrs([]slog.Attr{slog.String("passphrase", "hunter2")}).WithGroup("g")
	rec := slog.NewRecord(time.Now().UTC(), slog.LevelInfo, "msg", 0)
	rec.AddAttrs(slog.String("seed", "00"))
	if err := h.Handle(context.Background(), rec); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if strings.Contains(buf.String(), "hunter2") || strings.Contains(buf.String(), `"seed":"00"`) {
		t.Fatalf("expected sensitive values redacted, got %s", buf.String())
	}
	if WrapHandler(nil) != nil {
		t.Fatal("wrapping nil should return nil")
	}
}

func TestSanitizingHandlerRedactsBase58SecretKeyUnderNeutralKey(t *testing.T) {
	secret := make([]byte, secretKeyLen)
	for i := range secret {
		secret[i] = byte(i + 1)
	}
	pub := make([]byte, seedLen)
	for i := range pub {
		pub[i] = byte(200 + i%50)
	}
	encodedSecret := base58.Encode(secret)
	encodedPub := base58.Encode(pub)

	var buf bytes.Buffer
	logger := slog.New(WrapHandler(slog.NewJSONHandler(&buf, nil)))
	logger.Info("test", "value", encodedSecret, "public_key", encodedPub)

	if strings.Contains(buf.String(), encodedSecret) {
		t.Fatalf("base58 secret key leaked: %s", buf.String())
	}
	payload := decodeLine(t, &buf)
	if got, _ := payload["public_key"].(string); got != encodedPub {
		t.Fatalf("base58 public key should pass through, got %q", got)
	}
}
