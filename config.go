package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the application configuration
type Config struct {
	// BindAddress is the address the server listens on (e.g. "0.0.0.0:8080"),
	// empty disables HTTP
	BindAddress string
	// SerialPort is the path to the modem's serial port (e.g. "/dev/ttyUSB0")
	SerialPort string
	// BaudRate is the baud rate for serial communication with the modem (e.g. 115200)
	BaudRate int
	// PowerLine is the serial control line wired to the modem enable pin
	// ("none", "dtr" or "rts")
	PowerLine string
	// LogLevel sets the logging level (e.g. "debug", "info", "warn", "error")
	LogLevel string
	// LogFile redirects logs to a rotated file instead of stderr
	LogFile string
	// HTTPToken, if set, is required as "Authorization: Bearer <token>"
	HTTPToken string

	// MQTTBroker is the broker URL (e.g. "tcp://localhost:1883"), empty disables MQTT
	MQTTBroker   string
	MQTTClientID string
	// MQTTTopic is the topic prefix; payloads are read from <topic>/send and
	// published on <topic>/recv
	MQTTTopic    string
	MQTTUsername string
	MQTTPassword string
	// ReceiveInterval is the pause between two receive polls of the bridge
	ReceiveInterval time.Duration

	// WifiMode is applied with AT+CWMODE at startup when non-zero
	WifiMode int
	// AutoJoin is applied with AT+CWAUTOCONN at startup when set (0 or 1)
	AutoJoin int
	// SSID and Password join an access point at startup when SSID is set
	SSID     string
	Password string
}

// ConfigOption is a function that modifies a Config
type ConfigOption func(*Config) error

// LoadConfig creates a new config by applying the given options in order
func LoadConfig(opts ...ConfigOption) (*Config, error) {
	config := &Config{}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// WithDefaults applies default configuration values
func WithDefaults() ConfigOption {
	return func(c *Config) error {
		c.BindAddress = "0.0.0.0:8080"
		c.SerialPort = "/dev/ttyUSB0"
		c.BaudRate = 115200
		c.PowerLine = "none"
		c.LogLevel = "info"
		c.MQTTClientID = "esp-gw-1"
		c.MQTTTopic = "esp"
		c.ReceiveInterval = time.Second
		c.AutoJoin = -1
		return nil
	}
}

type fileConfig struct {
	BindAddress     string `toml:"bind_address"`
	SerialPort      string `toml:"serial_port"`
	BaudRate        int    `toml:"baud_rate"`
	PowerLine       string `toml:"power_line"`
	LogLevel        string `toml:"log_level"`
	LogFile         string `toml:"log_file"`
	HTTPToken       string `toml:"http_token"`
	MQTTBroker      string `toml:"mqtt_broker"`
	MQTTClientID    string `toml:"mqtt_client_id"`
	MQTTTopic       string `toml:"mqtt_topic"`
	MQTTUsername    string `toml:"mqtt_username"`
	MQTTPassword    string `toml:"mqtt_password"`
	ReceiveInterval string `toml:"receive_interval"`
	WifiMode        int    `toml:"wifi_mode"`
	AutoJoin        int    `toml:"auto_join"`
	SSID            string `toml:"ssid"`
	Password        string `toml:"password"`
}

// WithFile loads configuration from a TOML file. Keys missing from the
// file leave the current values untouched; an empty path is a no-op.
func WithFile(path string) ConfigOption {
	return func(c *Config) error {
		if path == "" {
			return nil
		}

		var raw fileConfig
		meta, err := toml.DecodeFile(path, &raw)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("load config: unknown key %q", undecoded[0].String())
		}

		setString := func(key string, dst *string, v string) {
			if meta.IsDefined(key) {
				*dst = strings.TrimSpace(v)
			}
		}
		setString("bind_address", &c.BindAddress, raw.BindAddress)
		setString("serial_port", &c.SerialPort, raw.SerialPort)
		setString("power_line", &c.PowerLine, raw.PowerLine)
		setString("log_level", &c.LogLevel, raw.LogLevel)
		setString("log_file", &c.LogFile, raw.LogFile)
		setString("http_token", &c.HTTPToken, raw.HTTPToken)
		setString("mqtt_broker", &c.MQTTBroker, raw.MQTTBroker)
		setString("mqtt_client_id", &c.MQTTClientID, raw.MQTTClientID)
		setString("mqtt_topic", &c.MQTTTopic, raw.MQTTTopic)
		setString("mqtt_username", &c.MQTTUsername, raw.MQTTUsername)
		setString("ssid", &c.SSID, raw.SSID)

		// passwords may legitimately have surrounding spaces
		if meta.IsDefined("mqtt_password") {
			c.MQTTPassword = raw.MQTTPassword
		}
		if meta.IsDefined("password") {
			c.Password = raw.Password
		}

		if meta.IsDefined("baud_rate") {
			c.BaudRate = raw.BaudRate
		}
		if meta.IsDefined("wifi_mode") {
			c.WifiMode = raw.WifiMode
		}
		if meta.IsDefined("auto_join") {
			c.AutoJoin = raw.AutoJoin
		}
		if meta.IsDefined("receive_interval") {
			d, err := time.ParseDuration(strings.TrimSpace(raw.ReceiveInterval))
			if err != nil {
				return fmt.Errorf("parse receive_interval: %w", err)
			}
			c.ReceiveInterval = d
		}

		return nil
	}
}

// WithEnv loads configuration from environment variables
func WithEnv() ConfigOption {
	return func(c *Config) error {
		if addr, ok := os.LookupEnv("BIND_ADDRESS"); ok {
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

		if line := os.Getenv("POWER_LINE"); line != "" {
			c.PowerLine = line
		}

		if level := os.Getenv("LOG_LEVEL"); level != "" {
			c.LogLevel = level
		}

		if file := os.Getenv("LOG_FILE"); file != "" {
			c.LogFile = file
		}

		if token := os.Getenv("HTTP_TOKEN"); token != "" {
			c.HTTPToken = token
		}

		if broker := os.Getenv("MQTT_BROKER"); broker != "" {
			c.MQTTBroker = broker
		}

		if id := os.Getenv("MQTT_CLIENT_ID"); id != "" {
			c.MQTTClientID = id
		}

		if topic := os.Getenv("MQTT_TOPIC"); topic != "" {
			c.MQTTTopic = topic
		}

		if user := os.Getenv("MQTT_USERNAME"); user != "" {
			c.MQTTUsername = user
		}

		if pass := os.Getenv("MQTT_PASSWORD"); pass != "" {
			c.MQTTPassword = pass
		}

		if interval := os.Getenv("RECEIVE_INTERVAL"); interval != "" {
			if d, err := time.ParseDuration(interval); err == nil {
				c.ReceiveInterval = d
			}
		}

		if mode := os.Getenv("WIFI_MODE"); mode != "" {
			if m, err := strconv.Atoi(mode); err == nil {
				c.WifiMode = m
			}
		}

		if auto := os.Getenv("AUTO_JOIN"); auto != "" {
			if a, err := strconv.Atoi(auto); err == nil {
				c.AutoJoin = a
			}
		}

		if ssid := os.Getenv("WIFI_SSID"); ssid != "" {
			c.SSID = ssid
		}

		if pass := os.Getenv("WIFI_PASSWORD"); pass != "" {
			c.Password = pass
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
				if b, perr := strconv.Atoi(f.Value.String()); perr == nil {
					c.BaudRate = b
				}
			case "power-line":
				c.PowerLine = f.Value.String()
			case "log-level":
				c.LogLevel = f.Value.String()
			case "log-file":
				c.LogFile = f.Value.String()
			case "mqtt-broker":
				c.MQTTBroker = f.Value.String()
			case "mqtt-topic":
				c.MQTTTopic = f.Value.String()
			case "receive-interval":
				d, perr := time.ParseDuration(f.Value.String())
				if perr != nil {
					err = fmt.Errorf("parse receive-interval: %w", perr)
					return
				}
				c.ReceiveInterval = d
			case "wifi-mode":
				if m, perr := strconv.Atoi(f.Value.String()); perr == nil {
					c.WifiMode = m
				}
			case "ssid":
				c.SSID = f.Value.String()
			}
		})
		return err
	}
}

// Validate checks values that cannot be corrected later.
func (c *Config) Validate() error {
	if c.SerialPort == "" {
		return fmt.Errorf("serial port is required")
	}
	if c.BaudRate <= 0 {
		return fmt.Errorf("invalid baud rate %d", c.BaudRate)
	}
	if c.WifiMode < 0 || c.WifiMode > 3 {
		return fmt.Errorf("invalid wifi mode %d", c.WifiMode)
	}
	if c.AutoJoin > 1 {
		return fmt.Errorf("invalid auto join %d", c.AutoJoin)
	}
	if c.MQTTBroker != "" && c.ReceiveInterval <= 0 {
		return fmt.Errorf("receive interval must be positive")
	}
	return nil
}
