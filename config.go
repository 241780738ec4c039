package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	// BindAddress is the address the status server listens on (e.g. "0.0.0.0:8080")
	BindAddress string `yaml:"bind_address" validate:"required,hostname_port"`
	// SerialPort is the path to the modem's serial port (e.g. "/dev/ttyUSB2")
	SerialPort string `yaml:"serial_port" validate:"required"`
	// BaudRate is the baud rate for serial communication with the modem (e.g. 115200)
	BaudRate int `yaml:"baud_rate" validate:"required,oneof=9600 19200 38400 57600 115200 230400 460800 921600"`
	// LogLevel sets the logging level (e.g. "debug", "info", "warn", "error")
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
	// ATTimeout bounds each initialization command
	ATTimeout time.Duration `yaml:"at_timeout" validate:"gte=0"`
	// SkipInit leaves the modem settings untouched at startup
	SkipInit bool `yaml:"skip_init"`
	// PDNContexts lists the packet data context ids activated on the modem
	PDNContexts []int `yaml:"pdn_contexts" validate:"unique,dive,min=1,max=16"`

	Log  LogFileConfig `yaml:"log_file"`
	MQTT MQTTConfig    `yaml:"mqtt"`
}

// LogFileConfig enables rotated file output next to stderr.
type LogFileConfig struct {
	// Filename is empty to log to stderr only
	Filename   string `yaml:"filename"`
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `yaml:"max_age_days" validate:"gte=0"`
	Compress   bool   `yaml:"compress"`
}

// MQTTConfig configures the event bridge. An empty Broker disables it.
type MQTTConfig struct {
	Broker   string `yaml:"broker" validate:"omitempty,url"`
	ClientID string `yaml:"client_id" validate:"required_with=Broker"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	// Prefix is the first topic level of every event
	Prefix string `yaml:"prefix" validate:"required_with=Broker"`
	QoS    int    `yaml:"qos" validate:"min=0,max=2"`
}

// ConfigOption is a function that modifies a Config
type ConfigOption func(*Config) error

// LoadConfig creates a new config by applying the given options in order
// and validates the result.
func LoadConfig(opts ...ConfigOption) (*Config, error) {
	config := &Config{}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the struct tags of the configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// WithDefaults applies default configuration values
func WithDefaults() ConfigOption {
	return func(c *Config) error {
		c.BindAddress = "0.0.0.0:8080"
		c.SerialPort = "/dev/ttyUSB2"
		c.BaudRate = 115200
		c.LogLevel = "info"
		c.ATTimeout = 5 * time.Second
		c.PDNContexts = []int{1}
		c.Log = LogFileConfig{MaxSizeMB: 20, MaxBackups: 5, MaxAgeDays: 14}
		c.MQTT = MQTTConfig{ClientID: "bg96-gw", Prefix: "bg96"}
		return nil
	}
}

// WithFile loads configuration from a YAML file. An empty path is a no-op.
func WithFile(path string) ConfigOption {
	return func(c *Config) error {
		if path == "" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse config file %s: %w", path, err)
		}
		return nil
	}
}

// WithEnv loads configuration from environment variables
func WithEnv() ConfigOption {
	return func(c *Config) error {
		if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
			c.BindAddress = addr
		}

		if serial := os.Getenv("SERIAL_PORT"); serial != "" {
			c.SerialPort = serial
		}

		if baud := os.Getenv("BAUD_RATE"); baud != "" {
			if b, err := strconv.Atoi(baud); err == nil {
				c.BaudRate = b
			}
		}

		if level := os.Getenv("LOG_LEVEL"); level != "" {
			c.LogLevel = level
		}

		if file := os.Getenv("LOG_FILE"); file != "" {
			c.Log.Filename = file
		}

		if broker := os.Getenv("MQTT_BROKER"); broker != "" {
			c.MQTT.Broker = broker
		}

		if user := os.Getenv("MQTT_USERNAME"); user != "" {
			c.MQTT.Username = user
		}

		if pass := os.Getenv("MQTT_PASSWORD"); pass != "" {
			c.MQTT.Password = pass
		}

		return nil
	}
}

// WithFlags loads configuration from command-line flags
func WithFlags(fSet *flag.FlagSet) ConfigOption {
	return func(c *Config) error {
		var err error
		fSet.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "bind-address":
				c.BindAddress = f.Value.String()
			case "serial-port":
				c.SerialPort = f.Value.String()
			case "baud-rate":
				if b, convErr := strconv.Atoi(f.Value.String()); convErr == nil {
					c.BaudRate = b
				}
			case "log-level":
				c.LogLevel = f.Value.String()
			case "log-file":
				c.Log.Filename = f.Value.String()
			case "at-timeout":
				d, parseErr := time.ParseDuration(f.Value.String())
				if parseErr != nil {
					err = fmt.Errorf("flag -at-timeout: %w", parseErr)
					return
				}
				c.ATTimeout = d
			case "skip-init":
				c.SkipInit = f.Value.String() == "true"
			case "mqtt-broker":
				c.MQTT.Broker = f.Value.String()
			case "mqtt-prefix":
				c.MQTT.Prefix = f.Value.String()
			}
		})
		return err
	}
}
