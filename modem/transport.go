package modem

//go:generate go tool mockgen -source=transport.go -destination=mock_transport.go -package=modem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.bug.st/serial"
)

// Transport represents an established, bidirectional byte stream to a modem.
//
// A Transport is assumed to be already connected and ready for use. Reads
// never block: TryReadByte reports ok == false when no byte is pending,
// which the response engine treats as a gap in the stream. Typical
// implementations include serial ports or in-memory fakes used for testing.
type Transport interface {
	io.WriteCloser
	// TryReadByte returns the next received byte if one is available.
	TryReadByte() (b byte, ok bool, err error)
}

// Dialer opens a Transport to a modem.
//
// Dialer abstracts how the modem connection is created (for example, via a
// serial port or a test double) and is intended to be used during modem
// construction only. Once a Transport is obtained, the Dialer is no longer
// needed.
type Dialer interface {
	// Dial is responsible for creating and returning a connected Transport. It may
	// perform blocking operations and should respect cancellation and deadlines
	// provided by the context. Dial returns an error if the transport cannot be
	// established.
	Dial(ctx context.Context) (Transport, error)
}

// DialerFunc adapts an ordinary function to the Dialer interface.
type DialerFunc func(ctx context.Context) (Transport, error)

func (f DialerFunc) Dial(ctx context.Context) (Transport, error) {
	return f(ctx)
}

// PowerLine is a two-state output that switches the modem supply or enable pin.
type PowerLine interface {
	SetHigh() error
	SetLow() error
}

// PowerSource is implemented by transports that can also drive the modem's
// power line. PowerLine returns nil when no line is wired.
type PowerSource interface {
	PowerLine() PowerLine
}

// ControlLine selects a serial modem-control output.
type ControlLine int

const (
	LineNone ControlLine = iota
	LineDTR
	LineRTS
)

func (l ControlLine) String() string {
	switch l {
	case LineDTR:
		return "dtr"
	case LineRTS:
		return "rts"
	default:
		return "none"
	}
}

// ParseControlLine converts "dtr", "rts" or "none" (or the empty string)
// into a ControlLine.
func ParseControlLine(s string) (ControlLine, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return LineNone, nil
	case "dtr":
		return LineDTR, nil
	case "rts":
		return LineRTS, nil
	default:
		return LineNone, fmt.Errorf("modem: unknown control line %q", s)
	}
}

// SerialDialer opens a modem over a serial port using go.bug.st/serial.
type SerialDialer struct {
	// PortName is the device path, e.g. "/dev/ttyUSB0".
	PortName string
	// BaudRate is used when Mode is nil. Defaults to 115200.
	BaudRate int
	// Mode overrides the full serial configuration.
	Mode *serial.Mode
	// PollInterval is the serial read timeout, which bounds how long one
	// TryReadByte call may wait for data. Defaults to 2ms.
	PollInterval time.Duration
	// PowerLine selects the control line wired to the modem's enable pin.
	PowerLine ControlLine
}

// Dial opens the serial port and returns it as a Transport.
func (d SerialDialer) Dial(ctx context.Context) (Transport, error) {
	if ctx == nil {
		return nil, errors.New("modem: context is nil")
	}
	if d.PortName == "" {
		return nil, errors.New("modem: serial port name is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mode := d.Mode
	if mode == nil {
		baud := d.BaudRate
		if baud <= 0 {
			baud = 115200
		}
		mode = &serial.Mode{
			BaudRate: baud,
			Parity:   serial.NoParity,
			DataBits: 8,
			StopBits: serial.OneStopBit,
		}
	}

	port, err := serial.Open(d.PortName, mode)
	if err != nil {
		return nil, fmt.Errorf("modem: open %s: %w", d.PortName, err)
	}

	poll := d.PollInterval
	if poll <= 0 {
		poll = 2 * time.Millisecond
	}
	if err := port.SetReadTimeout(poll); err != nil {
		port.Close()
		return nil, fmt.Errorf("modem: set read timeout: %w", err)
	}
	if err := port.ResetInputBuffer(); err != nil {
		port.Close()
		return nil, fmt.Errorf("modem: reset input buffer: %w", err)
	}

	return NewSerialTransport(port, d.PowerLine), nil
}

// SerialTransport adapts a serial.Port to the Transport interface.
// Bytes are read from the port in chunks and handed out one at a time,
// so bytes that arrived together are delivered without a gap.
type SerialTransport struct {
	port    serial.Port
	line    ControlLine
	buf     [64]byte
	pending []byte
}

// NewSerialTransport wraps an open port. line selects the control output
// used as power line, LineNone for none.
func NewSerialTransport(port serial.Port, line ControlLine) *SerialTransport {
	return &SerialTransport{port: port, line: line}
}

func (t *SerialTransport) TryReadByte() (byte, bool, error) {
	if len(t.pending) == 0 {
		n, err := t.port.Read(t.buf[:])
		if err != nil {
			return 0, false, err
		}
		if n == 0 {
			// read timeout
			return 0, false, nil
		}
		t.pending = t.buf[:n]
	}
	c := t.pending[0]
	t.pending = t.pending[1:]
	return c, true, nil
}

func (t *SerialTransport) Write(p []byte) (int, error) {
	return t.port.Write(p)
}

func (t *SerialTransport) Close() error {
	return t.port.Close()
}

// PowerLine returns the configured control line, or nil for LineNone.
func (t *SerialTransport) PowerLine() PowerLine {
	if t.line == LineNone {
		return nil
	}
	return serialLine{port: t.port, line: t.line}
}

type serialLine struct {
	port serial.Port
	line ControlLine
}

func (l serialLine) set(level bool) error {
	if l.line == LineRTS {
		return l.port.SetRTS(level)
	}
	return l.port.SetDTR(level)
}

func (l serialLine) SetHigh() error { return l.set(true) }

func (l serialLine) SetLow() error { return l.set(false) }
