package modem

import (
	"log/slog"
	"time"

	"i4.energy/across/espgw/at"
)

// Timeouts holds the deadline of each command. Zero fields take the
// value from DefaultTimeouts.
type Timeouts struct {
	Probe     time.Duration
	Restart   time.Duration
	Setting   time.Duration // AT+CWMODE, AT+CIPMODE, AT+CWAUTOCONN
	Connect   time.Duration
	Join      time.Duration
	Status    time.Duration
	Prompt    time.Duration // wait for ">" after AT+CIPSEND
	SendReply time.Duration // quiet period collecting the reply to a payload
	Receive   time.Duration
}

// DefaultTimeouts returns the deadlines the ESP8266 AT firmware needs.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Probe:     1000 * time.Millisecond,
		Restart:   5000 * time.Millisecond,
		Setting:   3000 * time.Millisecond,
		Connect:   5000 * time.Millisecond,
		Join:      5000 * time.Millisecond,
		Status:    3000 * time.Millisecond,
		Prompt:    3000 * time.Millisecond,
		SendReply: 2000 * time.Millisecond,
		Receive:   1000 * time.Millisecond,
	}
}

func (t *Timeouts) setDefaults() {
	def := DefaultTimeouts()
	fill := func(v *time.Duration, d time.Duration) {
		if *v <= 0 {
			*v = d
		}
	}
	fill(&t.Probe, def.Probe)
	fill(&t.Restart, def.Restart)
	fill(&t.Setting, def.Setting)
	fill(&t.Connect, def.Connect)
	fill(&t.Join, def.Join)
	fill(&t.Status, def.Status)
	fill(&t.Prompt, def.Prompt)
	fill(&t.SendReply, def.SendReply)
	fill(&t.Receive, def.Receive)
}

// Config contains the settings used by New. Build one with NewConfigBuilder.
type Config struct {
	dialer     Dialer
	deadline   Deadline
	power      PowerLine
	logger     *slog.Logger
	timeouts   Timeouts
	bufferSize int
	initProbe  bool
}

func (c *Config) validate() error {
	if c.dialer == nil {
		return ErrNoDialer
	}
	if c.bufferSize < at.WindowSize {
		return ErrBufferTooSmall
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.deadline == nil {
		c.deadline = NewClockDeadline()
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.bufferSize == 0 {
		c.bufferSize = at.DefaultBufferSize
	}
	c.timeouts.setDefaults()
}

// ConfigBuilder assembles a Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder returns a builder with the init probe enabled.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{config: Config{initProbe: true}}
}

func (b *ConfigBuilder) WithDialer(d Dialer) *ConfigBuilder {
	b.config.dialer = d
	return b
}

// WithDeadline replaces the clock based deadline, mostly for tests.
func (b *ConfigBuilder) WithDeadline(d Deadline) *ConfigBuilder {
	b.config.deadline = d
	return b
}

// WithPowerLine sets the power control line. Without one, New falls back
// to the transport if it implements PowerSource.
func (b *ConfigBuilder) WithPowerLine(p PowerLine) *ConfigBuilder {
	b.config.power = p
	return b
}

func (b *ConfigBuilder) WithLogger(l *slog.Logger) *ConfigBuilder {
	b.config.logger = l
	return b
}

func (b *ConfigBuilder) WithTimeouts(t Timeouts) *ConfigBuilder {
	b.config.timeouts = t
	return b
}

// WithBufferSize sets the maximum size of a single response in bytes.
func (b *ConfigBuilder) WithBufferSize(n int) *ConfigBuilder {
	b.config.bufferSize = n
	return b
}

// WithInitProbe controls whether New sends AT and requires OK before
// returning.
func (b *ConfigBuilder) WithInitProbe(enabled bool) *ConfigBuilder {
	b.config.initProbe = enabled
	return b
}

// Build applies defaults and validates the configuration.
func (b *ConfigBuilder) Build() (Config, error) {
	c := b.config
	c.setDefaults()
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
