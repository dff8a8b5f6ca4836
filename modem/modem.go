package modem

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Modem represents an ESP8266 class Wi-Fi modem that communicates via AT
// commands over a byte transport.
//
// Every operation owns the transport and deadline until it returns. Calls
// from several goroutines are serialized; a second command is not written
// before the previous reply has been collected.
type Modem struct {
	// mu is held for the whole duration of every command
	mu sync.Mutex
	// transport provides the physical connection to the modem
	transport Transport
	// deadline bounds each response acquisition
	deadline Deadline
	// power switches the modem supply, nil when not wired
	power PowerLine
	// logger receives raw exchanges at debug level
	logger *slog.Logger
	// timeouts holds per-command deadlines
	timeouts Timeouts
	// bufferSize is the maximum size of one response
	bufferSize int
	// leftover is the line end still due from the previous reply
	leftover string
	// closed indicates if the modem has been shut down
	closed bool
}

// New creates a new Modem instance with the given configuration.
// It establishes the transport connection and, unless disabled in the
// Config, checks that the modem answers AT with OK.
//
// Returns an error if the transport connection or the probe fails.
func New(ctx context.Context, config Config) (*Modem, error) {
	if config.dialer == nil {
		return nil, ErrNoDialer
	}
	config.setDefaults()
	if err := config.validate(); err != nil {
		return nil, err
	}

	transport, err := config.dialer.Dial(ctx)
	if err != nil {
		return nil, err
	}
	if transport == nil {
		return nil, ErrNotInitialized
	}

	m := &Modem{
		transport:  transport,
		deadline:   config.deadline,
		power:      config.power,
		logger:     config.logger,
		timeouts:   config.timeouts,
		bufferSize: config.bufferSize,
	}
	if m.power == nil {
		if src, ok := transport.(PowerSource); ok {
			m.power = src.PowerLine()
		}
	}

	if config.initProbe {
		ok, err := m.Probe(ctx)
		if err == nil && !ok {
			err = fmt.Errorf("%w: unexpected reply to AT", ErrFailure)
		}
		if err != nil {
			transport.Close()
			return nil, fmt.Errorf("modem not responding: %w", err)
		}
	}

	return m, nil
}

// Close releases the transport. After calling Close(), the modem cannot be
// reused.
func (m *Modem) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrAlreadyClosed
	}
	m.closed = true

	if m.transport != nil {
		return m.transport.Close()
	}
	return nil
}

// PowerOn drives the power line high.
func (m *Modem) PowerOn() error {
	unlock, err := m.acquire()
	if err != nil {
		return err
	}
	defer unlock()

	if m.power == nil {
		return ErrNoPowerLine
	}
	m.logger.Info("Powering modem on")
	return m.power.SetHigh()
}

// PowerOff drives the power line low.
func (m *Modem) PowerOff() error {
	unlock, err := m.acquire()
	if err != nil {
		return err
	}
	defer unlock()

	if m.power == nil {
		return ErrNoPowerLine
	}
	m.logger.Info("Powering modem off")
	return m.power.SetLow()
}

// Exec writes cmd followed by CRLF and waits up to timeout for a reply
// ending in marker. An empty marker collects whatever arrives before the
// timeout. The returned text has the command echo removed.
func (m *Modem) Exec(ctx context.Context, cmd, marker string, timeout time.Duration) (string, error) {
	unlock, err := m.acquire()
	if err != nil {
		return "", err
	}
	defer unlock()

	return m.exec(ctx, cmd, marker, timeout)
}

// acquire takes exclusive ownership of the transport and deadline. The
// returned function releases it.
func (m *Modem) acquire() (func(), error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrAlreadyClosed
	}
	if m.transport == nil {
		m.mu.Unlock()
		return nil, ErrNotInitialized
	}
	return m.mu.Unlock, nil
}
