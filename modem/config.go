package modem

import (
	"log/slog"
	"time"
)

// Config holds the settings used by New. Build one with NewConfigBuilder.
type Config struct {
	Dialer     Dialer
	Dispatcher URCDispatcher
	// Responses receives every line that is not a URC. Lines are dropped
	// when it is full or nil.
	Responses   chan<- string
	Logger      *slog.Logger
	ATTimeout   time.Duration
	InitTimeout time.Duration
	// SkipInit leaves the modem untouched on New. Used for replayed captures
	// and transports that are already configured.
	SkipInit bool
}

func (c *Config) validate() error {
	if c.Dialer == nil {
		return ErrNoDialer
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.ATTimeout == 0 {
		c.ATTimeout = 5 * time.Second
	}
	if c.InitTimeout == 0 {
		c.InitTimeout = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// ConfigBuilder assembles a Config step by step.
type ConfigBuilder struct {
	config Config
}

func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

func (b *ConfigBuilder) WithDialer(d Dialer) *ConfigBuilder {
	b.config.Dialer = d
	return b
}

func (b *ConfigBuilder) WithDispatcher(d URCDispatcher) *ConfigBuilder {
	b.config.Dispatcher = d
	return b
}

func (b *ConfigBuilder) WithResponses(ch chan<- string) *ConfigBuilder {
	b.config.Responses = ch
	return b
}

func (b *ConfigBuilder) WithLogger(l *slog.Logger) *ConfigBuilder {
	b.config.Logger = l
	return b
}

func (b *ConfigBuilder) WithATTimeout(d time.Duration) *ConfigBuilder {
	b.config.ATTimeout = d
	return b
}

func (b *ConfigBuilder) WithInitTimeout(d time.Duration) *ConfigBuilder {
	b.config.InitTimeout = d
	return b
}

func (b *ConfigBuilder) WithoutInit() *ConfigBuilder {
	b.config.SkipInit = true
	return b
}

// Build applies defaults and validates the result.
func (b *ConfigBuilder) Build() (Config, error) {
	c := b.config
	c.setDefaults()
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
