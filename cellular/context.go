// Package cellular tracks the data sockets, MQTT sessions and module state of
// a Quectel BG96 modem and updates them from unsolicited result codes.
package cellular

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Context is the connection wide state shared by every URC handler.
type Context struct {
	logger  *slog.Logger
	sockets *Pool[Socket]
	mqtt    *Pool[MQTTSocket]
	module  *Module

	modemHandler  ModemEventHandler
	pdnHandler    PDNEventHandler
	signalHandler SignalHandler
	simHandler    SIMHandler
	regHandler    RegistrationHandler

	pdnMu     sync.Mutex
	activePDN [PDNContextIDMax + 1]bool

	simState atomic.Int32

	regMu         sync.Mutex
	registrations [domainCount]Registration
}

type Option func(*Context)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) { c.logger = logger }
}

func WithModemEventHandler(h ModemEventHandler) Option {
	return func(c *Context) { c.modemHandler = h }
}

func WithPDNEventHandler(h PDNEventHandler) Option {
	return func(c *Context) { c.pdnHandler = h }
}

func WithSignalHandler(h SignalHandler) Option {
	return func(c *Context) { c.signalHandler = h }
}

func WithSIMHandler(h SIMHandler) Option {
	return func(c *Context) { c.simHandler = h }
}

func WithRegistrationHandler(h RegistrationHandler) Option {
	return func(c *Context) { c.regHandler = h }
}

// New creates a context with empty socket pools of MaxSockets slots each.
func New(opts ...Option) *Context {
	c := &Context{
		logger:  slog.Default(),
		sockets: NewPool[Socket](MaxSockets),
		mqtt:    NewPool[MQTTSocket](MaxSockets),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With("component", "cellular")
	c.module = newModule(c.logger)
	c.simState.Store(int32(SIMUnknown))
	for d := range domainCount {
		c.registrations[d] = Registration{Domain: d, Status: RegUnknown, AcT: NoAcT}
	}
	return c
}

func (c *Context) log() *slog.Logger {
	if c == nil || c.logger == nil {
		return slog.Default()
	}
	return c.logger
}

// Module returns the module wide state, or nil if it has not been set up.
func (c *Context) Module() *Module {
	return c.module
}

// CreateSocket allocates a data socket in the lowest free slot.
func (c *Context) CreateSocket(mode AccessMode, cb SocketCallbacks) (*Socket, error) {
	_, s, err := c.sockets.Alloc(func(index int) *Socket {
		return newSocket(index, mode, cb, c.logger)
	})
	if err != nil {
		return nil, fmt.Errorf("create socket: %w", err)
	}
	return s, nil
}

// Socket returns the data socket at index.
func (c *Context) Socket(index int) (*Socket, error) {
	return c.sockets.Get(index)
}

// DeleteSocket frees the data socket slot at index.
func (c *Context) DeleteSocket(index int) error {
	return c.sockets.Free(index)
}

// CreateMQTTSocket allocates an MQTT socket. sslIndex is NoTLS for a plain
// TCP session.
func (c *Context) CreateMQTTSocket(sslIndex int8, cb MQTTCallbacks) (*MQTTSocket, error) {
	_, m, err := c.mqtt.Alloc(func(index int) *MQTTSocket {
		return newMQTTSocket(index, sslIndex, cb, c.logger)
	})
	if err != nil {
		return nil, fmt.Errorf("create mqtt socket: %w", err)
	}
	return m, nil
}

// MQTTSocket returns the MQTT socket at index.
func (c *Context) MQTTSocket(index int) (*MQTTSocket, error) {
	return c.mqtt.Get(index)
}

// DeleteMQTTSocket frees the MQTT socket slot at index.
func (c *Context) DeleteMQTTSocket(index int) error {
	return c.mqtt.Free(index)
}

// ActivatePDN marks a packet data context as active.
func (c *Context) ActivatePDN(id int) error {
	if id < PDNContextIDMin || id > PDNContextIDMax {
		return fmt.Errorf("pdn %d: %w", id, ErrIndexOutOfRange)
	}
	c.pdnMu.Lock()
	c.activePDN[id] = true
	c.pdnMu.Unlock()
	return nil
}

// PDNActive reports whether id is in range and active.
func (c *Context) PDNActive(id int) bool {
	if id < PDNContextIDMin || id > PDNContextIDMax {
		return false
	}
	c.pdnMu.Lock()
	defer c.pdnMu.Unlock()
	return c.activePDN[id]
}

func (c *Context) deactivatePDN(id int) {
	c.pdnMu.Lock()
	c.activePDN[id] = false
	c.pdnMu.Unlock()
}

// SIMState returns the last card state reported by the modem.
func (c *Context) SIMState() SIMState {
	return SIMState(c.simState.Load())
}

// Registration returns the last report for domain. Before the first report
// the status is RegUnknown.
func (c *Context) Registration(domain RegDomain) (Registration, error) {
	if domain < 0 || domain >= domainCount {
		return Registration{}, fmt.Errorf("domain %d: %w", domain, ErrIndexOutOfRange)
	}
	c.regMu.Lock()
	defer c.regMu.Unlock()
	return c.registrations[domain], nil
}

func (c *Context) setRegistration(reg Registration) {
	c.regMu.Lock()
	c.registrations[reg.Domain] = reg
	c.regMu.Unlock()
}

// SocketInfo describes one allocated data socket.
type SocketInfo struct {
	Index int    `json:"index"`
	Mode  string `json:"mode"`
	State string `json:"state"`
}

// MQTTInfo describes one allocated MQTT socket.
type MQTTInfo struct {
	Index    int    `json:"index"`
	SSLIndex int8   `json:"ssl_index"`
	State    string `json:"state"`
}

// Snapshot is a point in time view of both pools.
type Snapshot struct {
	Sockets       []SocketInfo   `json:"sockets"`
	MQTT          []MQTTInfo     `json:"mqtt"`
	SIMState      string         `json:"sim_state"`
	Registrations []Registration `json:"registrations"`
}

// Snapshot captures the state of every allocated socket.
func (c *Context) Snapshot() Snapshot {
	snap := Snapshot{
		Sockets:  []SocketInfo{},
		MQTT:     []MQTTInfo{},
		SIMState: c.SIMState().String(),
	}
	c.regMu.Lock()
	snap.Registrations = append([]Registration(nil), c.registrations[:]...)
	c.regMu.Unlock()
	for _, s := range c.sockets.Snapshot() {
		snap.Sockets = append(snap.Sockets, SocketInfo{
			Index: s.Index(),
			Mode:  s.Mode().String(),
			State: s.State().String(),
		})
	}
	for _, m := range c.mqtt.Snapshot() {
		snap.MQTT = append(snap.MQTT, MQTTInfo{
			Index:    m.Index(),
			SSLIndex: m.SSLIndex(),
			State:    m.State().String(),
		})
	}
	return snap
}

// ConnectedCount returns how many data sockets and MQTT sessions are
// connected.
func (c *Context) ConnectedCount() (sockets, mqtt int) {
	for _, s := range c.sockets.Snapshot() {
		if s.State() == SocketConnected {
			sockets++
		}
	}
	for _, m := range c.mqtt.Snapshot() {
		if m.State() == MQTTConnected {
			mqtt++
		}
	}
	return sockets, mqtt
}
