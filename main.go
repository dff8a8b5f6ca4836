package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
	"i4.energy/across/espgw/modem"
)

func main() {
	flag.String("config", "", "Path to a TOML configuration file")
	flag.String("serial-port", "/dev/ttyUSB0", "Serial port to connect to the modem")
	flag.Int("baud-rate", 115200, "Baud rate for serial communication")
	flag.String("power-line", "none", "Serial control line driving the modem enable pin (none, dtr, rts)")
	flag.String("bind-address", "0.0.0.0:8080", "Bind address for the HTTP server, empty disables HTTP")
	flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.String("log-file", "", "Write logs to this file, rotated")
	flag.String("mqtt-broker", "", "MQTT broker URL, empty disables MQTT")
	flag.String("mqtt-topic", "esp", "MQTT topic prefix")
	flag.Duration("receive-interval", time.Second, "Pause between receive polls of the MQTT bridge")
	flag.Int("wifi-mode", 0, "Wi-Fi mode set at startup (1 station, 2 soft AP, 3 both)")
	flag.String("ssid", "", "Access point joined at startup")
	flag.Parse()

	configPath := os.Getenv("CONFIG_FILE")
	if f := flag.Lookup("config"); f != nil && f.Value.String() != "" {
		configPath = f.Value.String()
	}

	config, err := LoadConfig(WithDefaults(), WithFile(configPath), WithEnv(), WithFlags(flag.CommandLine))
	if err == nil {
		err = config.Validate()
	}
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(config)

	line, err := modem.ParseControlLine(config.PowerLine)
	if err != nil {
		logger.Error("Invalid power line", "error", err)
		os.Exit(1)
	}

	modemConfig, err := modem.NewConfigBuilder().
		WithDialer(modem.SerialDialer{
			PortName:  config.SerialPort,
			BaudRate:  config.BaudRate,
			PowerLine: line,
		}).
		WithLogger(logger.With("component", "modem")).
		Build()
	if err != nil {
		logger.Error("Failed to create modem config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m, err := modem.New(ctx, modemConfig)
	if err != nil {
		logger.Error("Failed to create modem", "error", err)
		os.Exit(1)
	}

	logger.Info("Starting ESP gateway", "port", config.SerialPort, "http", config.BindAddress != "", "mqtt", config.MQTTBroker != "")

	if err := setupNetwork(ctx, m, config); err != nil {
		logger.Error("Failed to set up network", "error", err)
		m.Close()
		os.Exit(1)
	}

	var httpServer *http.Server
	if config.BindAddress != "" {
		httpServer = &http.Server{
			Addr: config.BindAddress,
			Handler: &Server{
				Logger: logger.With("component", "server"),
				Modem:  m,
				Token:  config.HTTPToken,
			},
		}

		// Start HTTP server in a goroutine
		go func() {
			logger.Info("Starting HTTP server", "address", httpServer.Addr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server failed", "error", err)
				os.Exit(1)
			}
		}()
	}

	if config.MQTTBroker != "" {
		bridge := &Bridge{
			Logger:   logger.With("component", "bridge"),
			Link:     m,
			Topic:    config.MQTTTopic,
			Interval: config.ReceiveInterval,
		}
		client := newMQTTClient(config, bridge, logger.With("component", "mqtt"))
		if token := client.Connect(); token.Wait() && token.Error() != nil {
			logger.Error("MQTT connect failed", "broker", config.MQTTBroker, "error", token.Error())
		}
		go bridge.Run(ctx, client)
		defer client.Disconnect(500)
	}

	// Wait for interrupt signal
	<-ctx.Done()
	logger.Info("Received shutdown signal")

	if httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		logger.Info("Closing HTTP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to gracefully shutdown server", "error", err)
		}
	}

	logger.Info("Closing modem connection")
	if err := m.Close(); err != nil {
		logger.Error("Failed to close modem", "error", err)
	}
}

func newLogger(config *Config) *slog.Logger {
	logLevel := slog.LevelInfo
	switch config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var out io.Writer = os.Stderr
	if config.LogFile != "" {
		out = &lumberjack.Logger{
			Filename:   config.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: logLevel}))
}

// Network is the part of the modem configured at startup.
type Network interface {
	SetMode(ctx context.Context, mode uint8) (bool, error)
	SetAutoJoin(ctx context.Context, mode uint8) (bool, error)
	JoinNetwork(ctx context.Context, ssid, password string) (bool, error)
}

// setupNetwork applies the Wi-Fi settings present in config. Settings
// that are not configured are skipped.
func setupNetwork(ctx context.Context, n Network, config *Config) error {
	if config.WifiMode > 0 {
		ok, err := n.SetMode(ctx, uint8(config.WifiMode))
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("wifi mode %d not acknowledged", config.WifiMode)
		}
	}
	if config.AutoJoin >= 0 {
		ok, err := n.SetAutoJoin(ctx, uint8(config.AutoJoin))
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("auto join %d not acknowledged", config.AutoJoin)
		}
	}
	if config.SSID != "" {
		ok, err := n.JoinNetwork(ctx, config.SSID, config.Password)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("joining %q not acknowledged", config.SSID)
		}
	}
	return nil
}
