// Package metrics holds the Prometheus counters of the data core and the
// feed server. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Registry *prometheus.Registry

	Writes        *prometheus.CounterVec
	Emissions     *prometheus.CounterVec
	SearchQueries prometheus.Counter
	RPCs          *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Writes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "connect_store_writes_total",
				Help: "Committed store writes by table and operation",
			},
			[]string{"table", "op"},
		),
		Emissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "connect_live_emissions_total",
				Help: "Values loaded for live sequences by sequence name",
			},
			[]string{"sequence"},
		),
		SearchQueries: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "connect_search_queries_total",
				Help: "Search queries started",
			},
		),
		RPCs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "connect_feed_rpcs_total",
				Help: "Feed server calls by method and status code",
			},
			[]string{"method", "code"},
		),
	}

	m.Registry.MustRegister(m.Writes, m.Emissions, m.SearchQueries, m.RPCs)
	return m
}

func (m *Metrics) Write(table, op string) {
	if m == nil {
		return
	}
	m.Writes.WithLabelValues(table, op).Inc()
}

func (m *Metrics) Emission(sequence string) {
	if m == nil {
		return
	}
	m.Emissions.WithLabelValues(sequence).Inc()
}

func (m *Metrics) Search() {
	if m == nil {
		return
	}
	m.SearchQueries.Inc()
}

func (m *Metrics) RPC(method, code string) {
	if m == nil {
		return
	}
	m.RPCs.WithLabelValues(method, code).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
