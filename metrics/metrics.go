// Package metrics exports URC dispatch and connection counters to
// Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"i4.energy/across/cellular/cellular"
)

// NewRegistry creates a registry with the Go and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler serves the registry in the Prometheus text format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// ConnectionCounter reports how many sockets are connected.
type ConnectionCounter interface {
	ConnectedCount() (sockets, mqtt int)
}

// Observer records dispatcher outcomes. It implements cellular.Observer,
// cellular.SignalHandler and cellular.RegistrationHandler.
type Observer struct {
	reg       prometheus.Registerer
	urcTotal  *prometheus.CounterVec // labels: token, status
	unmatched prometheus.Counter
	rssi      prometheus.Gauge
	ber       prometheus.Gauge
	regStatus *prometheus.GaugeVec // labels: domain
}

// New registers the URC metrics on reg.
func New(reg prometheus.Registerer) *Observer {
	m := &Observer{
		reg: reg,
		urcTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cellular_urc_total",
			Help: "URC lines dispatched, by token and processing status.",
		}, []string{"token", "status"}),
		unmatched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cellular_urc_unmatched_total",
			Help: "URC lines with no registered handler.",
		}),
		rssi: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cellular_signal_rssi_dbm",
			Help: "Last reported RSSI.",
		}),
		ber: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cellular_signal_ber",
			Help: "Last reported bit error rate in hundredths of a percent.",
		}),
		regStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cellular_registration_status",
			Help: "Last reported network registration <stat> by domain.",
		}, []string{"domain"}),
	}
	reg.MustRegister(m.urcTotal, m.unmatched, m.rssi, m.ber, m.regStatus)
	return m
}

func (m *Observer) URCDispatched(token string, _ cellular.Kind, status cellular.PktStatus) {
	m.urcTotal.WithLabelValues(token, status.String()).Inc()
}

func (m *Observer) URCUnmatched(string) {
	m.unmatched.Inc()
}

// SignalChanged updates the signal gauges. Unreported values are skipped.
func (m *Observer) SignalChanged(info cellular.SignalInfo) {
	if info.RSSI != cellular.InvalidSignalValue {
		m.rssi.Set(float64(info.RSSI))
	}
	if info.BER != cellular.InvalidSignalValue {
		m.ber.Set(float64(info.BER))
	}
}

func (m *Observer) RegistrationChanged(r cellular.Registration) {
	m.regStatus.WithLabelValues(r.Domain.String()).Set(float64(r.Status))
}

// WatchConnections exports the connected socket counts of c, read at
// scrape time.
func (m *Observer) WatchConnections(c ConnectionCounter) {
	m.reg.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name:        "cellular_sockets_connected",
			Help:        "Connected sockets by type.",
			ConstLabels: prometheus.Labels{"type": "data"},
		}, func() float64 {
			sockets, _ := c.ConnectedCount()
			return float64(sockets)
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name:        "cellular_sockets_connected",
			Help:        "Connected sockets by type.",
			ConstLabels: prometheus.Labels{"type": "mqtt"},
		}, func() float64 {
			_, mqtt := c.ConnectedCount()
			return float64(mqtt)
		}),
	)
}

var (
	_ cellular.Observer      = (*Observer)(nil)
	_ cellular.SignalHandler = (*Observer)(nil)

	_ cellular.RegistrationHandler = (*Observer)(nil)
)
