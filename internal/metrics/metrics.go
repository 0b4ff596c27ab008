// Package metrics exposes Prometheus counters for the assistant's external
// calls and generated files.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "voicedesk"

type Metrics struct {
	registry *prometheus.Registry

	transcriptions *prometheus.CounterVec
	generations    *prometheus.CounterVec
	artifacts      *prometheus.CounterVec
	extractions    *prometheus.CounterVec
	sessions       prometheus.Gauge
}

// New registers all collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transcriptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcriptions_total",
			Help:      "Audio transcriptions by outcome.",
		}, []string{"status"}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Text generation calls by purpose and outcome.",
		}, []string{"kind", "status"}),
		artifacts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_total",
			Help:      "Generated files by type and outcome.",
		}, []string{"kind", "status"}),
		extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_extractions_total",
			Help:      "Uploaded document extractions by outcome; cache hits are counted separately.",
		}, []string{"status"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Sessions currently held in memory.",
		}),
	}

	m.registry.MustRegister(m.transcriptions, m.generations, m.artifacts, m.extractions, m.sessions)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveTranscription(err error) {
	m.transcriptions.WithLabelValues(status(err)).Inc()
}

func (m *Metrics) ObserveGeneration(kind string, err error) {
	m.generations.WithLabelValues(kind, status(err)).Inc()
}

func (m *Metrics) ObserveArtifact(kind string, err error) {
	m.artifacts.WithLabelValues(kind, status(err)).Inc()
}

func (m *Metrics) ObserveExtraction(err error) {
	m.extractions.WithLabelValues(status(err)).Inc()
}

func (m *Metrics) ObserveCacheHit() {
	m.extractions.WithLabelValues("cached").Inc()
}

func (m *Metrics) SetSessions(n int) {
	m.sessions.Set(float64(n))
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
