package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"i4.energy/across/espgw/modem"
)

const publishTimeout = 5 * time.Second

// Link is the data path of the modem used by the bridge.
type Link interface {
	Send(ctx context.Context, payload string) (string, error)
	Receive(ctx context.Context) (string, error)
}

// Bridge moves payloads between MQTT and the modem connection. Messages on
// <Topic>/send are written with Send; the replies and everything picked up
// by the receive poller are published on <Topic>/recv.
type Bridge struct {
	Logger   *slog.Logger
	Link     Link
	Topic    string
	Interval time.Duration
}

func (b *Bridge) sendTopic() string { return b.Topic + "/send" }

func (b *Bridge) recvTopic() string { return b.Topic + "/recv" }

// Subscribe registers the send handler. It is used as the client's
// on-connect handler so the subscription survives reconnects.
func (b *Bridge) Subscribe(c mqtt.Client) {
	b.Logger.Info("MQTT connected, subscribing", "topic", b.sendTopic())
	token := c.Subscribe(b.sendTopic(), 0, b.handleSend)
	if token.Wait() && token.Error() != nil {
		b.Logger.Error("MQTT subscribe failed", "topic", b.sendTopic(), "error", token.Error())
	}
}

func (b *Bridge) handleSend(c mqtt.Client, msg mqtt.Message) {
	payload := string(msg.Payload())
	if payload == "" {
		b.Logger.Warn("Ignoring empty MQTT payload", "topic", msg.Topic())
		return
	}

	reply, err := b.Link.Send(context.Background(), payload)
	if errors.Is(err, modem.ErrNoResponse) && !errors.Is(err, modem.ErrFailure) {
		b.Logger.Debug("Payload sent, no reply", "length", len(payload))
		return
	}
	if err != nil {
		b.Logger.Error("Failed to send MQTT payload", "error", err, "length", len(payload))
		return
	}
	if err := b.publish(c, reply); err != nil {
		b.Logger.Error("Failed to publish reply", "error", err)
	}
}

func (b *Bridge) publish(c mqtt.Client, data string) error {
	token := c.Publish(b.recvTopic(), 0, false, data)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s: timed out", b.recvTopic())
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", b.recvTopic(), err)
	}
	return nil
}

// Run polls the modem for inbound data every Interval and publishes it
// until ctx is done or the modem is closed.
func (b *Bridge) Run(ctx context.Context, c mqtt.Client) {
	ticker := time.NewTicker(b.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		data, err := b.Link.Receive(ctx)
		switch {
		case err == nil:
			if err := b.publish(c, data); err != nil {
				b.Logger.Error("Failed to publish inbound data", "error", err)
			}
		case errors.Is(err, modem.ErrNoResponse):
			// idle
		case errors.Is(err, modem.ErrAlreadyClosed), ctx.Err() != nil:
			return
		default:
			b.Logger.Error("Receive failed", "error", err)
		}
	}
}

func newMQTTClient(config *Config, bridge *Bridge, logger *slog.Logger) mqtt.Client {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(config.MQTTBroker)
	opts.SetClientID(config.MQTTClientID)
	if config.MQTTUsername != "" {
		opts.SetUsername(config.MQTTUsername)
		opts.SetPassword(config.MQTTPassword)
	}
	opts.SetOrderMatters(false)
	opts.SetAutoReconnect(true)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Warn("MQTT connection lost", "error", err)
	})
	opts.SetOnConnectHandler(bridge.Subscribe)
	return mqtt.NewClient(opts)
}
