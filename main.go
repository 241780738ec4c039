package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"i4.energy/across/cellular/bridge"
	"i4.energy/across/cellular/cellular"
	"i4.energy/across/cellular/metrics"
	"i4.energy/across/cellular/modem"
)

var errLoopStopped = errors.New("modem loop stopped")

func main() {
	configFile := flag.String("config", os.Getenv("CONFIG_FILE"), "Path to a YAML configuration file")
	flag.String("serial-port", "/dev/ttyUSB2", "Serial port to connect to the modem")
	flag.Int("baud-rate", 115200, "Baud rate for serial communication")
	flag.String("bind-address", "0.0.0.0:8080", "Bind address for the HTTP server")
	flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.String("log-file", "", "Also write logs to this file, rotated")
	flag.Duration("at-timeout", 5*time.Second, "Timeout of each initialization command")
	flag.Bool("skip-init", false, "Do not send the initialization sequence")
	flag.String("mqtt-broker", "", "MQTT broker URI for the event bridge, empty disables it")
	flag.String("mqtt-prefix", "bg96", "Topic prefix of bridged events")
	flag.Parse()

	config, err := LoadConfig(WithDefaults(), WithFile(*configFile), WithEnv(), WithFlags(flag.CommandLine))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, logCloser := newLogger(config)
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config, logger); err != nil {
		logger.Error("Gateway failed", "error", err)
		logCloser.Close()
		os.Exit(1)
	}
}

// newCellular builds the URC context. Signal and registration reports go to
// the metrics observer and, when the bridge is enabled, to the publisher.
// The configured PDN contexts start out active.
func newCellular(config *Config, logger *slog.Logger, observer *metrics.Observer, publisher *bridge.Publisher) (*cellular.Context, error) {
	opts := []cellular.Option{cellular.WithLogger(logger)}
	signalHandlers := []cellular.SignalHandler{observer}
	regHandlers := []cellular.RegistrationHandler{observer}

	if publisher != nil {
		opts = append(opts,
			cellular.WithModemEventHandler(publisher),
			cellular.WithPDNEventHandler(publisher),
			cellular.WithSIMHandler(publisher),
		)
		signalHandlers = append(signalHandlers, publisher)
		regHandlers = append(regHandlers, publisher)
	}

	opts = append(opts,
		cellular.WithSignalHandler(cellular.SignalFunc(func(info cellular.SignalInfo) {
			for _, h := range signalHandlers {
				h.SignalChanged(info)
			}
		})),
		cellular.WithRegistrationHandler(cellular.RegistrationFunc(func(reg cellular.Registration) {
			for _, h := range regHandlers {
				h.RegistrationChanged(reg)
			}
		})),
	)

	cell := cellular.New(opts...)
	for _, id := range config.PDNContexts {
		if err := cell.ActivatePDN(id); err != nil {
			return nil, err
		}
	}
	return cell, nil
}

func run(ctx context.Context, config *Config, logger *slog.Logger) error {
	registry := metrics.NewRegistry()
	observer := metrics.New(registry)

	var publisher *bridge.Publisher
	if config.MQTT.Broker != "" {
		client, err := bridge.Connect(ctx, bridge.ClientConfig{
			Broker:         config.MQTT.Broker,
			ClientID:       config.MQTT.ClientID,
			Username:       config.MQTT.Username,
			Password:       config.MQTT.Password,
			ConnectTimeout: 10 * time.Second,
		}, logger)
		if err != nil {
			return err
		}
		defer client.Disconnect(500)

		publisher = bridge.New(client,
			bridge.WithPrefix(config.MQTT.Prefix),
			bridge.WithQoS(byte(config.MQTT.QoS)),
			bridge.WithLogger(logger),
		)
	}

	cell, err := newCellular(config, logger, observer, publisher)
	if err != nil {
		return err
	}
	observer.WatchConnections(cell)
	dispatcher := cellular.NewDispatcher(cell, cellular.WithObserver(observer))

	mode := modem.DefaultMode
	mode.BaudRate = config.BaudRate
	builder := modem.NewConfigBuilder().
		WithDialer(modem.SerialDialer{PortName: config.SerialPort, Mode: &mode}).
		WithDispatcher(dispatcher).
		WithLogger(logger).
		WithATTimeout(config.ATTimeout).
		WithInitTimeout(30 * time.Second)
	if config.SkipInit {
		builder = builder.WithoutInit()
	}
	modemConfig, err := builder.Build()
	if err != nil {
		return err
	}

	m, err := modem.New(ctx, modemConfig)
	if err != nil {
		return err
	}
	defer func() {
		logger.Info("Closing modem connection")
		if err := m.Close(); err != nil && !errors.Is(err, modem.ErrAlreadyClosed) {
			logger.Error("Failed to close modem", "error", err)
		}
	}()

	var loopDone atomic.Bool
	go func() {
		err := m.Loop(ctx)
		loopDone.Store(true)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Modem loop stopped", "error", err)
		}
	}()

	httpServer := &http.Server{
		Addr: config.BindAddress,
		Handler: &Server{
			Logger:   logger.With("component", "server"),
			Cellular: cell,
			Metrics:  metrics.Handler(registry),
			Health: func() error {
				if loopDone.Load() {
					return errLoopStopped
				}
				return nil
			},
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	logger.Info("BG96 gateway running", "serial_port", config.SerialPort, "bridge", config.MQTT.Broker != "")

	select {
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	case err := <-serverErr:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info("Closing HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to gracefully shutdown server", "error", err)
	}
	return nil
}
