package metrics_test

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"i4.energy/across/cellular/cellular"
	"i4.energy/across/cellular/metrics"
)

// value returns the sample of the named metric whose labels include want.
func value(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			labels := make(map[string]string)
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			for k, v := range want {
				if labels[k] != v {
					continue next
				}
			}
			if c := m.GetCounter(); c != nil {
				return c.GetValue()
			}
			return m.GetGauge().GetValue()
		}
	}
	t.Fatalf("metric %s%v not found", name, want)
	return 0
}

func TestDispatchCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	c := cellular.New(cellular.WithLogger(slog.New(slog.DiscardHandler)))
	d := cellular.NewDispatcher(c, cellular.WithObserver(m))
	_, err := c.CreateSocket(cellular.AccessBuffer, cellular.SocketCallbacks{})
	require.NoError(t, err)

	d.Dispatch("+QIOPEN: 0,0")
	d.Dispatch("+QIOPEN: 0,0")
	d.Dispatch("+QIOPEN: 9,0")
	d.Dispatch("+CTZV: 32")

	assert.Equal(t, 2.0, value(t, reg, "cellular_urc_total", map[string]string{"token": "QIOPEN", "status": "ok"}))
	assert.Equal(t, 1.0, value(t, reg, "cellular_urc_total", map[string]string{"token": "QIOPEN", "status": "failure"}))
	assert.Equal(t, 1.0, value(t, reg, "cellular_urc_unmatched_total", nil))
}

func TestConnectionGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	c := cellular.New(cellular.WithLogger(slog.New(slog.DiscardHandler)))
	m.WatchConnections(c)
	d := cellular.NewDispatcher(c)

	for range 2 {
		_, err := c.CreateSocket(cellular.AccessBuffer, cellular.SocketCallbacks{})
		require.NoError(t, err)
	}
	_, err := c.CreateMQTTSocket(cellular.NoTLS, cellular.MQTTCallbacks{})
	require.NoError(t, err)

	d.Dispatch("+QIOPEN: 0,0")
	d.Dispatch("+QIOPEN: 1,0")
	d.Dispatch("+QMTOPEN: 0,0")

	assert.Equal(t, 2.0, value(t, reg, "cellular_sockets_connected", map[string]string{"type": "data"}))
	assert.Equal(t, 0.0, value(t, reg, "cellular_sockets_connected", map[string]string{"type": "mqtt"}))

	d.Dispatch(`+QIURC: "closed",1`)
	assert.Equal(t, 1.0, value(t, reg, "cellular_sockets_connected", map[string]string{"type": "data"}))
}

func TestSignalGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.SignalChanged(cellular.SignalInfo{RSSI: -73, BER: 113})
	m.SignalChanged(cellular.SignalInfo{RSSI: cellular.InvalidSignalValue, BER: cellular.InvalidSignalValue})

	assert.Equal(t, -73.0, value(t, reg, "cellular_signal_rssi_dbm", nil))
	assert.Equal(t, 113.0, value(t, reg, "cellular_signal_ber", nil))
}

func TestRegistrationGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	c := cellular.New(cellular.WithLogger(slog.New(slog.DiscardHandler)), cellular.WithRegistrationHandler(m))
	d := cellular.NewDispatcher(c)

	d.Dispatch("+CREG: 2")
	d.Dispatch(`+CEREG: 5,"1A2B","01A2B3C4",8`)
	d.Dispatch("+CREG: 1")

	assert.Equal(t, 1.0, value(t, reg, "cellular_registration_status", map[string]string{"domain": "cs"}))
	assert.Equal(t, 5.0, value(t, reg, "cellular_registration_status", map[string]string{"domain": "eps"}))
}

func TestHandler(t *testing.T) {
	reg := metrics.NewRegistry()
	m := metrics.New(reg)
	m.URCUnmatched("CTZV")

	rec := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(string(body), "cellular_urc_unmatched_total 1"))
	assert.True(t, strings.Contains(string(body), "go_goroutines"))
}
