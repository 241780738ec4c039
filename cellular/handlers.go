package cellular

// SocketOpenHandler is notified when the modem reports the outcome of a
// socket open.
type SocketOpenHandler interface {
	SocketOpen(s *Socket, ev URCEvent)
}

type SocketOpenFunc func(s *Socket, ev URCEvent)

func (f SocketOpenFunc) SocketOpen(s *Socket, ev URCEvent) { f(s, ev) }

// SocketDataReadyHandler is notified when payload is waiting in the modem
// buffer of a buffer mode socket.
type SocketDataReadyHandler interface {
	SocketDataReady(s *Socket)
}

type SocketDataReadyFunc func(s *Socket)

func (f SocketDataReadyFunc) SocketDataReady(s *Socket) { f(s) }

// SocketClosedHandler is notified when the remote end closes a socket.
type SocketClosedHandler interface {
	SocketClosed(s *Socket)
}

type SocketClosedFunc func(s *Socket)

func (f SocketClosedFunc) SocketClosed(s *Socket) { f(s) }

type MQTTOpenHandler interface {
	MQTTOpened(m *MQTTSocket)
}

type MQTTOpenFunc func(m *MQTTSocket)

func (f MQTTOpenFunc) MQTTOpened(m *MQTTSocket) { f(m) }

type MQTTCloseHandler interface {
	MQTTClosed(m *MQTTSocket)
}

type MQTTCloseFunc func(m *MQTTSocket)

func (f MQTTCloseFunc) MQTTClosed(m *MQTTSocket) { f(m) }

type MQTTConnectHandler interface {
	MQTTConnected(m *MQTTSocket)
}

type MQTTConnectFunc func(m *MQTTSocket)

func (f MQTTConnectFunc) MQTTConnected(m *MQTTSocket) { f(m) }

type MQTTDisconnectHandler interface {
	MQTTDisconnected(m *MQTTSocket)
}

type MQTTDisconnectFunc func(m *MQTTSocket)

func (f MQTTDisconnectFunc) MQTTDisconnected(m *MQTTSocket) { f(m) }

// MQTTAckHandler receives the result of publish, subscribe and unsubscribe
// requests.
type MQTTAckHandler interface {
	MQTTAck(m *MQTTSocket, ev MQTTEvent, result OutgoingResult)
}

type MQTTAckFunc func(m *MQTTSocket, ev MQTTEvent, result OutgoingResult)

func (f MQTTAckFunc) MQTTAck(m *MQTTSocket, ev MQTTEvent, result OutgoingResult) {
	f(m, ev, result)
}

// MQTTReceiveHandler is told which modem buffer holds an incoming message.
type MQTTReceiveHandler interface {
	MQTTReceived(m *MQTTSocket, bufferIndex uint8)
}

type MQTTReceiveFunc func(m *MQTTSocket, bufferIndex uint8)

func (f MQTTReceiveFunc) MQTTReceived(m *MQTTSocket, bufferIndex uint8) { f(m, bufferIndex) }

// MQTTStateHandler receives the raw +QMTSTAT status. The socket is already
// disconnected when it runs.
type MQTTStateHandler interface {
	MQTTStateChanged(m *MQTTSocket, code MQTTStateCode)
}

type MQTTStateFunc func(m *MQTTSocket, code MQTTStateCode)

func (f MQTTStateFunc) MQTTStateChanged(m *MQTTSocket, code MQTTStateCode) { f(m, code) }

// ModemEventHandler receives power and boot notifications.
type ModemEventHandler interface {
	ModemEvent(ev ModemEvent)
}

type ModemEventFunc func(ev ModemEvent)

func (f ModemEventFunc) ModemEvent(ev ModemEvent) { f(ev) }

// PDNEventHandler receives packet data context notifications.
type PDNEventHandler interface {
	PDNEvent(ev URCEvent, contextID uint8)
}

type PDNEventFunc func(ev URCEvent, contextID uint8)

func (f PDNEventFunc) PDNEvent(ev URCEvent, contextID uint8) { f(ev, contextID) }

// SignalHandler receives signal quality reports.
type SignalHandler interface {
	SignalChanged(info SignalInfo)
}

type SignalFunc func(info SignalInfo)

func (f SignalFunc) SignalChanged(info SignalInfo) { f(info) }

// SIMHandler receives SIM card insertion changes.
type SIMHandler interface {
	SIMStateChanged(state SIMState)
}

type SIMFunc func(state SIMState)

func (f SIMFunc) SIMStateChanged(state SIMState) { f(state) }

// RegistrationHandler receives every +CREG, +CGREG and +CEREG report.
type RegistrationHandler interface {
	RegistrationChanged(reg Registration)
}

type RegistrationFunc func(reg Registration)

func (f RegistrationFunc) RegistrationChanged(reg Registration) { f(reg) }

// DNSHandler receives the text of every "dnsgip" line while a query is in
// flight. userData is the value registered with the handler.
type DNSHandler interface {
	DNSResult(m *Module, result string, userData any)
}

type DNSFunc func(m *Module, result string, userData any)

func (f DNSFunc) DNSResult(m *Module, result string, userData any) { f(m, result, userData) }
