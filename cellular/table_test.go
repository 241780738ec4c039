package cellular_test

import (
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"i4.energy/across/cellular/cellular"
)

func TestDefaultTableSorted(t *testing.T) {
	table := cellular.DefaultTable()
	require.Len(t, table, 21)

	for i := 1; i < len(table); i++ {
		assert.Negative(t, strings.Compare(table[i-1].Token, table[i].Token),
			"%q must sort before %q", table[i-1].Token, table[i].Token)
	}

	kinds := make(map[cellular.Kind]bool)
	for _, e := range table {
		assert.NotNil(t, e.Handle, e.Token)
		assert.False(t, kinds[e.Kind], "kind %s bound twice", e.Kind)
		kinds[e.Kind] = true
	}
}

func TestSplitURC(t *testing.T) {
	tests := []struct {
		line  string
		token string
		body  string
	}{
		{line: "+QIOPEN: 0,0", token: "QIOPEN", body: " 0,0"},
		{line: "+QIURC: \"closed\",1\r", token: "QIURC", body: " \"closed\",1"},
		{line: "RDY", token: "RDY", body: ""},
		{line: "NORMAL POWER DOWN", token: "NORMAL POWER DOWN", body: ""},
		{line: "+QMTSTAT:0,1", token: "QMTSTAT", body: "0,1"},
	}

	for _, tt := range tests {
		token, body := cellular.SplitURC(tt.line)
		assert.Equal(t, tt.token, token, tt.line)
		assert.Equal(t, tt.body, body, tt.line)
	}
}

type dispatch struct {
	token  string
	kind   cellular.Kind
	status cellular.PktStatus
}

type observer struct {
	dispatched []dispatch
	unmatched  []string
}

func (o *observer) URCDispatched(token string, kind cellular.Kind, status cellular.PktStatus) {
	o.dispatched = append(o.dispatched, dispatch{token: token, kind: kind, status: status})
}

func (o *observer) URCUnmatched(token string) {
	o.unmatched = append(o.unmatched, token)
}

func TestDispatchObserver(t *testing.T) {
	c := cellular.New(cellular.WithLogger(slog.New(slog.DiscardHandler)))
	obs := &observer{}
	d := cellular.NewDispatcher(c, cellular.WithObserver(obs))

	status, ok := d.Dispatch("+CSQ: 20,99")
	assert.False(t, ok)
	assert.Equal(t, cellular.StatusOK, status)
	assert.Equal(t, []string{"CSQ"}, obs.unmatched)

	status, ok = d.Dispatch("+QIOPEN: 4,0")
	assert.True(t, ok)
	assert.Equal(t, cellular.StatusFailure, status)
	require.Len(t, obs.dispatched, 1)
	assert.Equal(t, dispatch{token: "QIOPEN", kind: cellular.KindSocketOpen, status: cellular.StatusFailure}, obs.dispatched[0])
}

func TestDispatchCustomTable(t *testing.T) {
	var bodies []string
	table := []cellular.Entry{
		{Token: "QIND", Kind: cellular.KindIndication, Handle: func(_ *cellular.Context, body string) cellular.PktStatus {
			bodies = append(bodies, body)
			return cellular.StatusOK
		}},
	}
	d := cellular.NewDispatcher(cellular.New(cellular.WithLogger(slog.New(slog.DiscardHandler))), cellular.WithTable(table))

	_, ok := d.Dispatch("+QIND: \"csq\",20,99")
	assert.True(t, ok)
	_, ok = d.Dispatch("RDY")
	assert.False(t, ok)
	assert.Equal(t, []string{" \"csq\",20,99"}, bodies)
}

func TestHandlersRejectNilContext(t *testing.T) {
	for _, e := range cellular.DefaultTable() {
		t.Run(e.Token, func(t *testing.T) {
			assert.Equal(t, cellular.StatusBadParam, e.Handle(nil, " 0,0"))
		})
	}
}

func TestHandlersRejectEmptyBody(t *testing.T) {
	_, d := newTestContext(t)

	for _, line := range []string{"+QIOPEN:", "+QIURC:", "+QIND:", "+QMTOPEN:", "+QMTCONN:", "+QMTPUB:", "+QMTSTAT:", "+CREG:", "+CEREG:"} {
		status, ok := d.Dispatch(line)
		assert.True(t, ok, line)
		assert.Equal(t, cellular.StatusBadParam, status, line)
	}
}

func TestIndexedURCsRejectOutOfRange(t *testing.T) {
	formats := []string{
		"+QIOPEN: %d,0",
		"+QSSLOPEN: %d,0",
		`+QIURC: "recv",%d`,
		`+QIURC: "closed",%d`,
		`+QSSLURC: "recv",%d`,
		`+QSSLURC: "closed",%d`,
		"+QMTOPEN: %d,0",
		"+QMTCONN: %d,0,0",
		"+QMTCLOSE: %d,0",
		"+QMTDISC: %d,0",
		"+QMTPUB: %d,1,0",
		"+QMTSUB: %d,1,0",
		"+QMTUNS: %d,1,0",
		"+QMTSTAT: %d,1",
		"+QMTRECV: %d,1",
	}

	for _, format := range formats {
		for _, index := range []int{-1, cellular.MaxSockets} {
			line := fmt.Sprintf(format, index)
			t.Run(line, func(t *testing.T) {
				c, d := newTestContext(t)
				sockets := &socketRecorder{}
				_, err := c.CreateSocket(cellular.AccessBuffer, sockets.callbacks())
				require.NoError(t, err)
				sessions := &mqttRecorder{}
				_, err = c.CreateMQTTSocket(cellular.NoTLS, sessions.callbacks())
				require.NoError(t, err)
				before := c.Snapshot()

				status, ok := d.Dispatch(line)
				assert.True(t, ok)
				assert.Equal(t, cellular.StatusFailure, status)
				assert.Equal(t, before, c.Snapshot())
				assert.Equal(t, &socketRecorder{}, sockets)
				assert.Equal(t, &mqttRecorder{}, sessions)
			})
		}
	}
}
