package cellular_test

import (
	"log/slog"
	"testing"

	"i4.energy/across/cellular/cellular"
)

func newTestContext(t *testing.T, opts ...cellular.Option) (*cellular.Context, *cellular.Dispatcher) {
	t.Helper()
	opts = append([]cellular.Option{cellular.WithLogger(slog.New(slog.DiscardHandler))}, opts...)
	c := cellular.New(opts...)
	return c, cellular.NewDispatcher(c)
}

type socketRecorder struct {
	opened    []cellular.URCEvent
	states    []cellular.SocketState
	dataReady int
	closed    int
}

func (r *socketRecorder) callbacks() cellular.SocketCallbacks {
	return cellular.SocketCallbacks{
		Open: cellular.SocketOpenFunc(func(s *cellular.Socket, ev cellular.URCEvent) {
			r.opened = append(r.opened, ev)
			r.states = append(r.states, s.State())
		}),
		DataReady: cellular.SocketDataReadyFunc(func(*cellular.Socket) { r.dataReady++ }),
		Closed:    cellular.SocketClosedFunc(func(*cellular.Socket) { r.closed++ }),
	}
}

type ack struct {
	event  cellular.MQTTEvent
	result cellular.OutgoingResult
}

type mqttRecorder struct {
	opened       []cellular.MQTTState
	closed       int
	connected    []cellular.MQTTState
	disconnected int
	acks         []ack
	buffers      []uint8
	codes        []cellular.MQTTStateCode
}

func (r *mqttRecorder) callbacks() cellular.MQTTCallbacks {
	return cellular.MQTTCallbacks{
		Open:       cellular.MQTTOpenFunc(func(m *cellular.MQTTSocket) { r.opened = append(r.opened, m.State()) }),
		Close:      cellular.MQTTCloseFunc(func(*cellular.MQTTSocket) { r.closed++ }),
		Connect:    cellular.MQTTConnectFunc(func(m *cellular.MQTTSocket) { r.connected = append(r.connected, m.State()) }),
		Disconnect: cellular.MQTTDisconnectFunc(func(*cellular.MQTTSocket) { r.disconnected++ }),
		Outgoing: cellular.MQTTAckFunc(func(_ *cellular.MQTTSocket, ev cellular.MQTTEvent, result cellular.OutgoingResult) {
			r.acks = append(r.acks, ack{event: ev, result: result})
		}),
		Receive: cellular.MQTTReceiveFunc(func(_ *cellular.MQTTSocket, buffer uint8) { r.buffers = append(r.buffers, buffer) }),
		State:   cellular.MQTTStateFunc(func(_ *cellular.MQTTSocket, code cellular.MQTTStateCode) { r.codes = append(r.codes, code) }),
	}
}
