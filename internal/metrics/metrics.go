// Package metrics holds the Prometheus collectors of the converter and the
// small listener that exposes them next to a health check.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups every collector on its own registry, so several instances
// can coexist in tests. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	CatalogRequests prometheus.Counter
	Conversions     *prometheus.CounterVec
	UpstreamErrors  *prometheus.CounterVec
	CacheLookups    *prometheus.CounterVec
}

// Conversion outcomes recorded by the gateway.
const (
	OutcomeSuccess  = "success"
	OutcomeCached   = "cached"
	OutcomeRejected = "rejected"
	OutcomeUpstream = "upstream_error"
	OutcomeFailed   = "failed"
	OutcomeBusy     = "busy"
)

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		CatalogRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "betconverter_catalog_requests_total",
			Help: "catalog list requests served",
		}),
		Conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "betconverter_conversions_total",
			Help: "conversion requests handled by the gateway, by outcome",
		}, []string{"outcome"}),
		UpstreamErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "betconverter_upstream_errors_total",
			Help: "engine failures, by classified kind",
		}, []string{"kind"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "betconverter_cache_lookups_total",
			Help: "result cache lookups, by result",
		}, []string{"result"}),
	}

	m.Registry.MustRegister(
		m.CatalogRequests,
		m.Conversions,
		m.UpstreamErrors,
		m.CacheLookups,
	)

	return m
}

func (m *Metrics) IncCatalog() {
	if m == nil {
		return
	}
	m.CatalogRequests.Inc()
}

func (m *Metrics) IncConversion(outcome string) {
	if m == nil {
		return
	}
	m.Conversions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncUpstreamError(kind string) {
	if m == nil {
		return
	}
	m.UpstreamErrors.WithLabelValues(kind).Inc()
}

// IncCacheLookup records a cache hit or miss.
func (m *Metrics) IncCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}
