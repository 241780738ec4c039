package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// ClientConfig describes the broker connection.
type ClientConfig struct {
	// Broker is the broker URI (e.g. tcp://localhost:1883).
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	// ConnectTimeout bounds the first connection attempt.
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// Connect creates a paho client and waits for the first connection.
// The client reconnects on its own afterwards.
func Connect(ctx context.Context, config ClientConfig, logger *slog.Logger) (mqtt.Client, error) {
	if config.Broker == "" {
		return nil, ErrNoBroker
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "bridge", "broker", config.Broker)

	opts := mqtt.NewClientOptions()
	opts.AddBroker(config.Broker)
	opts.SetClientID(config.ClientID)
	if config.Username != "" {
		opts.SetUsername(config.Username)
		opts.SetPassword(config.Password)
	}
	if config.ConnectTimeout > 0 {
		opts.SetConnectTimeout(config.ConnectTimeout)
	}
	opts.SetOrderMatters(false)
	opts.SetAutoReconnect(true)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Warn("Broker connection lost", "error", err)
	})
	opts.SetOnConnectHandler(func(mqtt.Client) {
		logger.Info("Broker connected")
	})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	select {
	case <-token.Done():
	case <-ctx.Done():
		client.Disconnect(250)
		return nil, ctx.Err()
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotConnected, err)
	}
	return client, nil
}
