// Package metrics counts account creation for the keygen tooling.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "account"

const (
	SourceRandom    = "random"
	SourceSecretKey = "secret_key"
	SourceSeed      = "seed"
	SourceMnemonic  = "mnemonic"
	SourceUnknown   = "unknown"
)

type Metrics struct {
	registry *prometheus.Registry
	created  *prometheus.CounterVec
	failed   *prometheus.CounterVec
}

// New builds collectors on a private registry so tests and the CLI do not
// share the process-wide default.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "created_total",
			Help:      "Accounts created, by key source.",
		}, []string{"source"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "create_failures_total",
			Help:      "Failed account creations, by key source and reason.",
		}, []string{"source", "reason"}),
	}
	m.registry.MustRegister(m.created, m.failed)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) Created(source string) {
	if m == nil {
		return
	}
	m.created.WithLabelValues(source).Inc()
}

func (m *Metrics) Failed(source, reason string) {
	if m == nil {
		return
	}
	m.failed.WithLabelValues(source, reason).Inc()
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return errors.New("metrics are not initialized")
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
