package cellular

import (
	"log/slog"

	"github.com/looplab/fsm"
)

// MQTTState is the session state of an MQTT socket.
type MQTTState int

const (
	MQTTAllocated MQTTState = iota
	MQTTOpening
	MQTTOpened
	MQTTConnecting
	MQTTConnected
	MQTTDisconnected
)

var mqttStateNames = []string{"allocated", "opening", "opened", "connecting", "connected", "disconnected"}

func (s MQTTState) String() string {
	if s < 0 || int(s) >= len(mqttStateNames) {
		return "unknown"
	}
	return mqttStateNames[s]
}

// MQTTEvent names the outgoing operation an acknowledgement refers to.
type MQTTEvent int

const (
	MQTTPublish MQTTEvent = iota
	MQTTSubscribe
	MQTTUnsubscribe
)

func (e MQTTEvent) String() string {
	switch e {
	case MQTTPublish:
		return "publish"
	case MQTTSubscribe:
		return "subscribe"
	case MQTTUnsubscribe:
		return "unsubscribe"
	default:
		return "unknown"
	}
}

// OutgoingResult is the modem's verdict on an outgoing MQTT packet.
type OutgoingResult int

const (
	OutgoingSuccess OutgoingResult = iota
	OutgoingRetry
	OutgoingFailure
)

func (r OutgoingResult) String() string {
	switch r {
	case OutgoingSuccess:
		return "success"
	case OutgoingRetry:
		return "retry"
	default:
		return "failure"
	}
}

// MQTTStateCode is the raw status reported by +QMTSTAT.
type MQTTStateCode uint8

const (
	MQTTPeerClosed MQTTStateCode = iota + 1
	MQTTPingReqFail
	MQTTConnectFail
	MQTTConnAckFail
	MQTTServerDisconnect
	MQTTMultipleSendFail
)

func (c MQTTStateCode) String() string {
	switch c {
	case MQTTPeerClosed:
		return "peer_closed"
	case MQTTPingReqFail:
		return "pingreq_fail"
	case MQTTConnectFail:
		return "connect_fail"
	case MQTTConnAckFail:
		return "connack_fail"
	case MQTTServerDisconnect:
		return "disconnect"
	case MQTTMultipleSendFail:
		return "multiple_send_fail"
	default:
		return "unknown"
	}
}

const (
	mqttEventOpen         = "open"
	mqttEventConnect      = "connect"
	mqttEventOpened       = "opened"
	mqttEventOpenFailed   = "open_failed"
	mqttEventClosed       = "closed"
	mqttEventConnected    = "connected"
	mqttEventConnectRetry = "connect_retry"
	mqttEventDisconnected = "disconnected"
)

// NoTLS marks an MQTT socket without an SSL context.
const NoTLS int8 = -1

// MQTTCallbacks are the per socket notification slots. Nil slots are
// skipped and the URC is still consumed.
type MQTTCallbacks struct {
	Open       MQTTOpenHandler
	Close      MQTTCloseHandler
	Connect    MQTTConnectHandler
	Disconnect MQTTDisconnectHandler
	Outgoing   MQTTAckHandler
	Receive    MQTTReceiveHandler
	State      MQTTStateHandler
}

// MQTTSocket is one MQTT client slot of the modem.
type MQTTSocket struct {
	index     int
	sslIndex  int8
	callbacks MQTTCallbacks
	machine   *fsm.FSM
}

func newMQTTSocket(index int, sslIndex int8, cb MQTTCallbacks, logger *slog.Logger) *MQTTSocket {
	events := forced(mqttStateNames, map[string]string{
		mqttEventOpened:       MQTTOpened.String(),
		mqttEventOpenFailed:   MQTTAllocated.String(),
		mqttEventClosed:       MQTTAllocated.String(),
		mqttEventConnected:    MQTTConnected.String(),
		mqttEventConnectRetry: MQTTConnecting.String(),
		mqttEventDisconnected: MQTTDisconnected.String(),
	})
	events = append(events,
		fsm.EventDesc{Name: mqttEventOpen, Src: []string{MQTTAllocated.String()}, Dst: MQTTOpening.String()},
		fsm.EventDesc{Name: mqttEventConnect, Src: []string{MQTTOpened.String()}, Dst: MQTTConnecting.String()},
	)

	return &MQTTSocket{
		index:     index,
		sslIndex:  sslIndex,
		callbacks: cb,
		machine:   newMachine(MQTTAllocated.String(), events, logger, "mqtt", index),
	}
}

func (m *MQTTSocket) Index() int { return m.index }

// SSLIndex returns the SSL context id, or NoTLS.
func (m *MQTTSocket) SSLIndex() int8 { return m.sslIndex }

// State returns the current session state.
func (m *MQTTSocket) State() MQTTState {
	current := m.machine.Current()
	for i, name := range mqttStateNames {
		if name == current {
			return MQTTState(i)
		}
	}
	return MQTTDisconnected
}

// Opening records that a network open command was issued.
func (m *MQTTSocket) Opening() error {
	return fire(m.machine, mqttEventOpen)
}

// Connecting records that a connect command was issued on an open network.
func (m *MQTTSocket) Connecting() error {
	return fire(m.machine, mqttEventConnect)
}

func (m *MQTTSocket) fire(event string) error {
	return fire(m.machine, event)
}
