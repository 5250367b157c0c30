package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersBySource(t *testing.T) {
	m := New()
	m.Created(SourceRandom)
	m.Created(SourceRandom)
	m.Created(SourceMnemonic)
	m.Failed(SourceSecretKey, "invalid_length")

	if got := testutil.ToFloat64(m.created.WithLabelValues(SourceRandom)); got != 2 {
		t.Fatalf("unexpected random count: %v", got)
	}
	if got := testutil.ToFloat64(m.created.WithLabelValues(SourceMnemonic)); got != 1 {
		t.Fatalf("unexpected mnemonic count: %v", got)
	}
	if got := testutil.ToFloat64(m.failed.WithLabelValues(SourceSecretKey, "invalid_length")); got != 1 {
		t.Fatalf("unexpected failure count: %v", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.Created(SourceRandom)
	m.Failed(SourceSeed, "x")
	if m.Registry() != nil {
		t.Fatal("nil metrics should have no registry")
	}
	if err := m.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")); err == nil {
		t.Fatal("expected error writing nil metrics")
	}
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.Created(SourceSeed)
	path := filepath.Join(t.TempDir(), "account.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("write textfile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile failed: %v", err)
	}
	if !strings.Contains(string(data), `account_created_total{source="seed"} 1`) {
		t.Fatalf("unexpected textfile content:\n%s", data)
	}
}
