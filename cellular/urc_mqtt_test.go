package cellular_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"i4.energy/across/cellular/cellular"
)

func newMQTT(t *testing.T, c *cellular.Context) (*cellular.MQTTSocket, *mqttRecorder) {
	t.Helper()
	rec := &mqttRecorder{}
	m, err := c.CreateMQTTSocket(cellular.NoTLS, rec.callbacks())
	require.NoError(t, err)
	return m, rec
}

func TestMQTTOpen(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		state    cellular.MQTTState
		expected cellular.PktStatus
	}{
		{name: "Opened", line: "+QMTOPEN: 0,0", state: cellular.MQTTOpened, expected: cellular.StatusOK},
		{name: "Network failure", line: "+QMTOPEN: 0,3", state: cellular.MQTTAllocated, expected: cellular.StatusOK},
		{name: "Wrong parameter", line: "+QMTOPEN: 0,-1", state: cellular.MQTTAllocated, expected: cellular.StatusOK},
		{name: "Unreadable result keeps state", line: "+QMTOPEN: 0,x", state: cellular.MQTTOpening, expected: cellular.StatusFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, d := newTestContext(t)
			m, rec := newMQTT(t, c)
			require.NoError(t, m.Opening())

			status, _ := d.Dispatch(tt.line)
			assert.Equal(t, tt.expected, status)
			assert.Equal(t, tt.state, m.State())
			assert.Equal(t, []cellular.MQTTState{tt.state}, rec.opened)
		})
	}
}

func TestMQTTOpenUnknownSocket(t *testing.T) {
	c, d := newTestContext(t)
	_, rec := newMQTT(t, c)

	status, _ := d.Dispatch("+QMTOPEN: 1,0")
	assert.Equal(t, cellular.StatusFailure, status)
	status, _ = d.Dispatch("+QMTOPEN: 12,0")
	assert.Equal(t, cellular.StatusFailure, status)
	assert.Empty(t, rec.opened)
}

func TestMQTTConnect(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		state cellular.MQTTState
	}{
		{name: "Accepted", line: "+QMTCONN: 0,0,0", state: cellular.MQTTConnected},
		{name: "Retransmitting", line: "+QMTCONN: 0,1", state: cellular.MQTTConnecting},
		{name: "Failed", line: "+QMTCONN: 0,2", state: cellular.MQTTDisconnected},
		{name: "Unknown result", line: "+QMTCONN: 0,9", state: cellular.MQTTDisconnected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, d := newTestContext(t)
			m, rec := newMQTT(t, c)
			require.NoError(t, m.Opening())
			_, _ = d.Dispatch("+QMTOPEN: 0,0")
			require.NoError(t, m.Connecting())

			status, _ := d.Dispatch(tt.line)
			assert.Equal(t, cellular.StatusOK, status)
			assert.Equal(t, tt.state, m.State())
			assert.Equal(t, []cellular.MQTTState{tt.state}, rec.connected)
		})
	}
}

func TestMQTTApplicationTransitions(t *testing.T) {
	c, _ := newTestContext(t)
	m, _ := newMQTT(t, c)

	assert.Equal(t, cellular.MQTTAllocated, m.State())
	assert.Equal(t, cellular.NoTLS, m.SSLIndex())
	assert.Error(t, m.Connecting(), "connect requires an open network")
	require.NoError(t, m.Opening())
	assert.Equal(t, cellular.MQTTOpening, m.State())
	assert.Error(t, m.Opening())
}

func TestMQTTClose(t *testing.T) {
	c, d := newTestContext(t)
	m, rec := newMQTT(t, c)
	_, _ = d.Dispatch("+QMTOPEN: 0,0")
	require.Equal(t, cellular.MQTTOpened, m.State())

	status, _ := d.Dispatch("+QMTCLOSE: 0,-1")
	assert.Equal(t, cellular.StatusOK, status)
	assert.Equal(t, cellular.MQTTOpened, m.State(), "failed close keeps state")
	assert.Equal(t, 1, rec.closed)

	status, _ = d.Dispatch("+QMTCLOSE: 0,0")
	assert.Equal(t, cellular.StatusOK, status)
	assert.Equal(t, cellular.MQTTAllocated, m.State())
	assert.Equal(t, 2, rec.closed)

	status, _ = d.Dispatch("+QMTCLOSE: 3,0")
	assert.Equal(t, cellular.StatusFailure, status)
	assert.Equal(t, 2, rec.closed)
}

func TestMQTTDisconnect(t *testing.T) {
	c, d := newTestContext(t)
	m, rec := newMQTT(t, c)
	_, _ = d.Dispatch("+QMTOPEN: 0,0")
	_, _ = d.Dispatch("+QMTCONN: 0,0,0")
	require.Equal(t, cellular.MQTTConnected, m.State())

	status, _ := d.Dispatch("+QMTDISC: 0,-1")
	assert.Equal(t, cellular.StatusOK, status)
	assert.Equal(t, cellular.MQTTConnected, m.State())

	status, _ = d.Dispatch("+QMTDISC: 0,0")
	assert.Equal(t, cellular.StatusOK, status)
	assert.Equal(t, cellular.MQTTDisconnected, m.State())
	assert.Equal(t, 2, rec.disconnected)
}

func TestMQTTSessionEndUnreadableResult(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "Close without result", line: "+QMTCLOSE: 0"},
		{name: "Close with text result", line: "+QMTCLOSE: 0,abc"},
		{name: "Disconnect without result", line: "+QMTDISC: 0"},
		{name: "Disconnect with empty result", line: "+QMTDISC: 0,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, d := newTestContext(t)
			m, rec := newMQTT(t, c)
			_, _ = d.Dispatch("+QMTOPEN: 0,0")
			require.Equal(t, cellular.MQTTOpened, m.State())

			status, _ := d.Dispatch(tt.line)
			assert.Equal(t, cellular.StatusFailure, status)
			assert.Equal(t, cellular.MQTTOpened, m.State())
			assert.Zero(t, rec.closed)
			assert.Zero(t, rec.disconnected)
		})
	}
}

func TestMQTTOutgoingAck(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected ack
		status   cellular.PktStatus
	}{
		{name: "Publish success", line: "+QMTPUB: 1,5,0", expected: ack{cellular.MQTTPublish, cellular.OutgoingSuccess}},
		{name: "Publish retry", line: "+QMTPUB: 1,5,1,2", expected: ack{cellular.MQTTPublish, cellular.OutgoingRetry}},
		{name: "Publish failure", line: "+QMTPUB: 1,5,2", expected: ack{cellular.MQTTPublish, cellular.OutgoingFailure}},
		{name: "Out of set result clamps", line: "+QMTPUB: 1,5,65", expected: ack{cellular.MQTTPublish, cellular.OutgoingFailure}},
		{name: "Two field ack clamps", line: "+QMTPUB: 1,65", expected: ack{cellular.MQTTPublish, cellular.OutgoingFailure}},
		{name: "Subscribe", line: "+QMTSUB: 1,7,0,1", expected: ack{cellular.MQTTSubscribe, cellular.OutgoingSuccess}},
		{name: "Unsubscribe", line: "+QMTUNS: 1,8,0", expected: ack{cellular.MQTTUnsubscribe, cellular.OutgoingSuccess}},
		{name: "Unreadable message id", line: "+QMTUNS: 1,x,1", expected: ack{cellular.MQTTUnsubscribe, cellular.OutgoingRetry}},
		{
			name:     "Unreadable result",
			line:     "+QMTSUB: 1,7,x",
			expected: ack{cellular.MQTTSubscribe, cellular.OutgoingFailure},
			status:   cellular.StatusFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, d := newTestContext(t)
			_, _ = newMQTT(t, c)
			_, rec := newMQTT(t, c)

			status, _ := d.Dispatch(tt.line)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, []ack{tt.expected}, rec.acks)
		})
	}
}

func TestMQTTStateChange(t *testing.T) {
	c, d := newTestContext(t)
	m, rec := newMQTT(t, c)
	_, _ = d.Dispatch("+QMTOPEN: 0,0")
	_, _ = d.Dispatch("+QMTCONN: 0,0,0")

	status, _ := d.Dispatch("+QMTSTAT: 0,1")
	assert.Equal(t, cellular.StatusOK, status)
	assert.Equal(t, cellular.MQTTDisconnected, m.State())
	assert.Equal(t, []cellular.MQTTStateCode{cellular.MQTTPeerClosed}, rec.codes)

	status, _ = d.Dispatch("+QMTSTAT: 0,200")
	assert.Equal(t, cellular.StatusOK, status)
	assert.Equal(t, cellular.MQTTStateCode(200), rec.codes[1])

	status, _ = d.Dispatch("+QMTSTAT: 4,1")
	assert.Equal(t, cellular.StatusFailure, status)
	assert.Len(t, rec.codes, 2)
}

func TestMQTTReceive(t *testing.T) {
	c, d := newTestContext(t)
	_, rec := newMQTT(t, c)

	status, _ := d.Dispatch("+QMTRECV: 0,3")
	assert.Equal(t, cellular.StatusOK, status)
	assert.Equal(t, []uint8{3}, rec.buffers)

	status, _ = d.Dispatch("+QMTRECV: 0,256")
	assert.Equal(t, cellular.StatusFailure, status)
	assert.Len(t, rec.buffers, 1)
}

func TestMQTTMissingCallbacks(t *testing.T) {
	c, d := newTestContext(t)
	m, err := c.CreateMQTTSocket(2, cellular.MQTTCallbacks{})
	require.NoError(t, err)
	assert.Equal(t, int8(2), m.SSLIndex())

	for _, line := range []string{
		"+QMTOPEN: 0,0", "+QMTCONN: 0,0,0", "+QMTPUB: 0,1,0", "+QMTRECV: 0,1",
		"+QMTSTAT: 0,1", "+QMTDISC: 0,0", "+QMTCLOSE: 0,0",
	} {
		status, _ := d.Dispatch(line)
		assert.Equal(t, cellular.StatusOK, status, line)
	}
	assert.Equal(t, cellular.MQTTAllocated, m.State())
}
