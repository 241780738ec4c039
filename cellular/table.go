package cellular

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"
)

// Kind identifies the URC variant an entry handles.
type Kind int

const (
	KindPowerDown Kind = iota
	KindPSMPowerDown
	KindIndication
	KindSocketOpen
	KindSocketURC
	KindMQTTClose
	KindMQTTConnect
	KindMQTTDisconnect
	KindMQTTOpen
	KindMQTTPublish
	KindMQTTReceive
	KindMQTTState
	KindMQTTSubscribe
	KindMQTTUnsubscribe
	KindSIMStatus
	KindSSLOpen
	KindSSLURC
	KindReady
	KindNetworkReg
	KindGPRSReg
	KindEPSReg
)

var kindNames = [...]string{
	"power_down", "psm_power_down", "indication", "socket_open", "socket_urc",
	"mqtt_close", "mqtt_connect", "mqtt_disconnect", "mqtt_open", "mqtt_publish",
	"mqtt_receive", "mqtt_state", "mqtt_subscribe", "mqtt_unsubscribe",
	"sim_status", "ssl_open", "ssl_urc", "ready",
	"network_reg", "gprs_reg", "eps_reg",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// HandlerFunc processes the body of one URC line, the text after "TOKEN:".
type HandlerFunc func(c *Context, body string) PktStatus

// Entry binds a URC token to its handler.
type Entry struct {
	Token  string
	Kind   Kind
	Handle HandlerFunc
}

// DefaultTable returns the BG96 URC table sorted by token.
func DefaultTable() []Entry {
	return []Entry{
		{Token: "CEREG", Kind: KindEPSReg, Handle: urc("eps registration", registration(DomainEPS))},
		{Token: "CGREG", Kind: KindGPRSReg, Handle: urc("gprs registration", registration(DomainPS))},
		{Token: "CREG", Kind: KindNetworkReg, Handle: urc("network registration", registration(DomainCS))},
		{Token: "NORMAL POWER DOWN", Kind: KindPowerDown, Handle: urc("power down", parsePowerDown)},
		{Token: "PSM POWER DOWN", Kind: KindPSMPowerDown, Handle: urc("psm power down", parsePSMPowerDown)},
		{Token: "QIND", Kind: KindIndication, Handle: urc("indication", parseIndication)},
		{Token: "QIOPEN", Kind: KindSocketOpen, Handle: urc("socket open", parseSocketOpen)},
		{Token: "QIURC", Kind: KindSocketURC, Handle: urc("socket urc", parseSocketURC)},
		{Token: "QMTCLOSE", Kind: KindMQTTClose, Handle: urc("mqtt close", parseMQTTClose)},
		{Token: "QMTCONN", Kind: KindMQTTConnect, Handle: urc("mqtt connect", parseMQTTConnect)},
		{Token: "QMTDISC", Kind: KindMQTTDisconnect, Handle: urc("mqtt disconnect", parseMQTTDisconnect)},
		{Token: "QMTOPEN", Kind: KindMQTTOpen, Handle: urc("mqtt open", parseMQTTOpen)},
		{Token: "QMTPUB", Kind: KindMQTTPublish, Handle: urc("mqtt publish", outgoingAck(MQTTPublish))},
		{Token: "QMTRECV", Kind: KindMQTTReceive, Handle: urc("mqtt receive", parseMQTTReceive)},
		{Token: "QMTSTAT", Kind: KindMQTTState, Handle: urc("mqtt state", parseMQTTState)},
		{Token: "QMTSUB", Kind: KindMQTTSubscribe, Handle: urc("mqtt subscribe", outgoingAck(MQTTSubscribe))},
		{Token: "QMTUNS", Kind: KindMQTTUnsubscribe, Handle: urc("mqtt unsubscribe", outgoingAck(MQTTUnsubscribe))},
		{Token: "QSIMSTAT", Kind: KindSIMStatus, Handle: urc("sim status", parseSIMStatus)},
		{Token: "QSSLOPEN", Kind: KindSSLOpen, Handle: urc("ssl open", parseSocketOpen)},
		{Token: "QSSLURC", Kind: KindSSLURC, Handle: urc("ssl urc", parseSocketURC)},
		{Token: "RDY", Kind: KindReady, Handle: urc("ready", parseReady)},
	}
}

// urc adapts a parser to a HandlerFunc. The parser's error is reported
// through TranslateStatus.
func urc(name string, parse func(c *Context, body string) error) HandlerFunc {
	return func(c *Context, body string) PktStatus {
		if c == nil {
			slog.Default().Error("URC dropped, no context", "urc", name)
			return TranslateStatus(errNilContext)
		}
		status := TranslateStatus(parse(c, body))
		if status != StatusOK {
			c.log().Debug("URC parse failed", "urc", name, "body", body, "status", status)
		}
		return status
	}
}

// Observer is told the outcome of every dispatched line.
type Observer interface {
	URCDispatched(token string, kind Kind, status PktStatus)
	URCUnmatched(token string)
}

// Dispatcher routes URC lines to the table entry for their token.
type Dispatcher struct {
	ctx      *Context
	table    []Entry
	observer Observer
	logger   *slog.Logger
}

type DispatcherOption func(*Dispatcher)

// WithTable replaces the default table. t must be sorted by token.
func WithTable(t []Entry) DispatcherOption {
	return func(d *Dispatcher) { d.table = t }
}

func WithObserver(o Observer) DispatcherOption {
	return func(d *Dispatcher) { d.observer = o }
}

func NewDispatcher(c *Context, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		ctx:    c,
		table:  DefaultTable(),
		logger: c.log(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Lookup finds the entry for token.
func (d *Dispatcher) Lookup(token string) (Entry, bool) {
	i, found := slices.BinarySearchFunc(d.table, token, func(e Entry, t string) int {
		return cmp.Compare(e.Token, t)
	})
	if !found {
		return Entry{}, false
	}
	return d.table[i], true
}

// SplitURC separates a line into its token and body. The leading '+' is
// dropped and a line without ':' is all token.
func SplitURC(line string) (token, body string) {
	line = strings.TrimPrefix(strings.TrimSpace(line), "+")
	token, body, _ = strings.Cut(line, ":")
	return strings.TrimSpace(token), body
}

// Dispatch runs the handler for line. The second result is false when no
// entry matched and the line was ignored.
func (d *Dispatcher) Dispatch(line string) (PktStatus, bool) {
	token, body := SplitURC(line)

	entry, ok := d.Lookup(token)
	if !ok {
		d.logger.Debug("No URC handler", "token", token)
		if d.observer != nil {
			d.observer.URCUnmatched(token)
		}
		return StatusOK, false
	}

	status := entry.Handle(d.ctx, body)
	if d.observer != nil {
		d.observer.URCDispatched(entry.Token, entry.Kind, status)
	}
	return status, true
}

// HandleURC dispatches line and discards the outcome.
func (d *Dispatcher) HandleURC(line string) {
	d.Dispatch(line)
}
