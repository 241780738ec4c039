// Package bridge republishes decoded modem events to an MQTT broker.
package bridge

import (
	"encoding/json"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"i4.energy/across/cellular/cellular"
)

// Event types, also the last topic level.
const (
	TypeModem        = "modem"
	TypePDN          = "pdn"
	TypeSignal       = "signal"
	TypeSIM          = "sim"
	TypeRegistration = "registration"
)

// Client is the part of mqtt.Client the publisher needs.
type Client interface {
	Publish(topic string, qos byte, retained bool, payload any) mqtt.Token
}

// Event is the JSON payload of every published message.
type Event struct {
	Type  string    `json:"type"`
	Index *int      `json:"index,omitempty"`
	Value any       `json:"value,omitempty"`
	Time  time.Time `json:"time"`
}

// Publisher turns cellular callbacks into MQTT messages on
// <prefix>/<type>. Publishing never waits for the broker.
type Publisher struct {
	client     Client
	prefix     string
	qos        byte
	ackTimeout time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

type Option func(*Publisher)

// WithPrefix sets the topic prefix. Default "bg96".
func WithPrefix(prefix string) Option {
	return func(p *Publisher) { p.prefix = prefix }
}

func WithQoS(qos byte) Option {
	return func(p *Publisher) { p.qos = qos }
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) { p.logger = logger }
}

// WithAckTimeout bounds how long a failed publish is watched for logging.
func WithAckTimeout(d time.Duration) Option {
	return func(p *Publisher) { p.ackTimeout = d }
}

// WithClock replaces time.Now for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Publisher) { p.now = now }
}

func New(client Client, opts ...Option) *Publisher {
	p := &Publisher{
		client:     client,
		prefix:     "bg96",
		ackTimeout: 5 * time.Second,
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("component", "bridge")
	return p
}

func (p *Publisher) ModemEvent(ev cellular.ModemEvent) {
	p.publish(Event{Type: TypeModem, Value: ev.String()})
}

func (p *Publisher) PDNEvent(ev cellular.URCEvent, contextID uint8) {
	id := int(contextID)
	p.publish(Event{Type: TypePDN, Index: &id, Value: ev.String()})
}

func (p *Publisher) SignalChanged(info cellular.SignalInfo) {
	p.publish(Event{Type: TypeSignal, Value: info})
}

func (p *Publisher) SIMStateChanged(state cellular.SIMState) {
	p.publish(Event{Type: TypeSIM, Value: state.String()})
}

func (p *Publisher) RegistrationChanged(reg cellular.Registration) {
	p.publish(Event{Type: TypeRegistration, Value: reg})
}

func (p *Publisher) publish(ev Event) {
	ev.Time = p.now().UTC()
	payload, err := json.Marshal(ev)
	if err != nil {
		p.logger.Error("Failed to encode event", "type", ev.Type, "error", err)
		return
	}

	topic := p.prefix + "/" + ev.Type
	token := p.client.Publish(topic, p.qos, false, payload)
	if token == nil {
		return
	}
	go func() {
		if token.WaitTimeout(p.ackTimeout) && token.Error() != nil {
			p.logger.Warn("Publish failed", "topic", topic, "error", token.Error())
		}
	}()
}

var (
	_ cellular.ModemEventHandler   = (*Publisher)(nil)
	_ cellular.PDNEventHandler     = (*Publisher)(nil)
	_ cellular.SignalHandler       = (*Publisher)(nil)
	_ cellular.SIMHandler          = (*Publisher)(nil)
	_ cellular.RegistrationHandler = (*Publisher)(nil)
)
