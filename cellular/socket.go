package cellular

import (
	"log/slog"

	"github.com/looplab/fsm"
)

// SocketState is the connection state of a data socket.
type SocketState int

const (
	SocketAllocated SocketState = iota
	SocketConnecting
	SocketConnected
	SocketDisconnected
)

var socketStateNames = []string{"allocated", "connecting", "connected", "disconnected"}

func (s SocketState) String() string {
	if s < 0 || int(s) >= len(socketStateNames) {
		return "unknown"
	}
	return socketStateNames[s]
}

// AccessMode selects how received payload reaches the application.
type AccessMode int

const (
	// AccessBuffer keeps payload in the modem until it is read explicitly.
	AccessBuffer AccessMode = iota
	AccessDirectPush
	AccessTransparent
)

func (m AccessMode) String() string {
	switch m {
	case AccessBuffer:
		return "buffer"
	case AccessDirectPush:
		return "direct_push"
	case AccessTransparent:
		return "transparent"
	default:
		return "unknown"
	}
}

const (
	socketEventConnect    = "connect"
	socketEventOpened     = "opened"
	socketEventOpenFailed = "open_failed"
	socketEventClosed     = "closed"
)

// SocketCallbacks are the per socket notification slots. Nil slots are
// skipped and the URC is still consumed.
type SocketCallbacks struct {
	Open      SocketOpenHandler
	DataReady SocketDataReadyHandler
	Closed    SocketClosedHandler
}

// Socket is one data connection slot of the modem.
type Socket struct {
	index     int
	mode      AccessMode
	callbacks SocketCallbacks
	machine   *fsm.FSM
}

func newSocket(index int, mode AccessMode, cb SocketCallbacks, logger *slog.Logger) *Socket {
	events := forced(socketStateNames, map[string]string{
		socketEventOpened:     SocketConnected.String(),
		socketEventOpenFailed: SocketDisconnected.String(),
		socketEventClosed:     SocketDisconnected.String(),
	})
	events = append(events, fsm.EventDesc{
		Name: socketEventConnect,
		Src:  []string{SocketAllocated.String()},
		Dst:  SocketConnecting.String(),
	})

	return &Socket{
		index:     index,
		mode:      mode,
		callbacks: cb,
		machine:   newMachine(SocketAllocated.String(), events, logger, "socket", index),
	}
}

func (s *Socket) Index() int { return s.index }

func (s *Socket) Mode() AccessMode { return s.mode }

// State returns the current connection state.
func (s *Socket) State() SocketState {
	current := s.machine.Current()
	for i, name := range socketStateNames {
		if name == current {
			return SocketState(i)
		}
	}
	return SocketDisconnected
}

// Connecting records that an open command was issued for the socket.
func (s *Socket) Connecting() error {
	return fire(s.machine, socketEventConnect)
}

func (s *Socket) fire(event string) error {
	return fire(s.machine, event)
}
