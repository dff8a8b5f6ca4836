package modem

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"i4.energy/across/espgw/at"
)

// exec writes cmd and collects the reply. The caller must hold m.mu.
func (m *Modem) exec(ctx context.Context, cmd, marker string, timeout time.Duration) (string, error) {
	return m.execAs(ctx, cmd, cmd, marker, timeout)
}

// execAs is exec with label standing in for cmd in logs and errors.
func (m *Modem) execAs(ctx context.Context, label, cmd, marker string, timeout time.Duration) (string, error) {
	if err := m.write(label, cmd); err != nil {
		return "", err
	}
	raw, err := m.await(ctx, marker, timeout)
	if err != nil {
		m.logReply(ctx, label, "", err)
		return "", err
	}
	resp := at.StripEcho(raw)
	m.logReply(ctx, label, resp, nil)
	return resp, nil
}

// write sends line terminated by CRLF.
func (m *Modem) write(label, line string) error {
	m.logger.Debug("Writing to modem", "cmd", label)
	if _, err := m.transport.Write([]byte(line + at.CRLF)); err != nil {
		return fmt.Errorf("write command %q: %w", label, err)
	}
	return nil
}

// await reads the reply to the last written line until it is complete and
// returns it unprocessed.
//
// Bytes are drained from the transport as fast as they arrive. Only when a
// read finds no byte pending is the trailing window tested: first against
// marker, then against the failure tokens. After that the deadline is
// polled. With a marker, expiry is ErrNoResponse; without one, expiry
// completes the reply with whatever has been received.
//
// A reply that completed before its line end was read leaves that line
// end in the stream; it is skipped when it heads the next reply.
//
// The deadline is cancelled on every return path.
func (m *Modem) await(ctx context.Context, marker string, timeout time.Duration) (string, error) {
	if len(marker) > at.WindowSize {
		return "", fmt.Errorf("%w: %q", ErrMarkerTooLong, marker)
	}

	var (
		buf     = at.NewBuffer(m.bufferSize)
		window  at.Window
		started bool
		skip    = m.leftover
	)
	m.leftover = ""

	m.deadline.Start(timeout)
	defer m.deadline.Cancel()

	for {
		c, ok, err := m.transport.TryReadByte()
		if err != nil {
			return "", fmt.Errorf("read error: %w", err)
		}
		if ok {
			if !started && skip != "" {
				if c == skip[0] {
					skip = skip[1:]
					continue
				}
				skip = ""
			}
			if err := buf.WriteByte(c); err != nil {
				return "", fmt.Errorf("%w (%d bytes): %w", ErrCapacityExceeded, buf.Cap(), err)
			}
			window.Push(c)
			started = true
			continue
		}

		if started {
			if marker != "" && window.HasSuffix(marker) {
				if marker != at.Prompt {
					m.leftover = lineEndDue(&window)
				}
				return buf.String(), nil
			}
			if failed(&window) {
				m.leftover = lineEndDue(&window)
				return "", ErrFailure
			}
		}

		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("command cancelled: %w", err)
		}

		if m.deadline.Expired() {
			if marker != "" {
				return "", fmt.Errorf("%w: %q not seen within %s", ErrNoResponse, marker, timeout)
			}
			return buf.String(), nil
		}
	}
}

// lineEndDue returns the part of CRLF not yet received after the last
// line in w.
func lineEndDue(w *at.Window) string {
	tail := w.Trailing()
	if !strings.HasPrefix(at.CRLF, tail) {
		return ""
	}
	return at.CRLF[len(tail):]
}

func failed(w *at.Window) bool {
	for _, token := range at.FailureTokens {
		if w.HasSuffix(token) {
			return true
		}
	}
	return false
}

func (m *Modem) logReply(ctx context.Context, cmd, resp string, err error) {
	if err != nil {
		m.logger.Debug("Command failed", "cmd", cmd, "error", err)
		return
	}
	if !m.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	for _, line := range at.Lines(resp) {
		m.logger.Debug("Modem reply", "cmd", cmd, "type", at.Classify(line).String(), "line", line)
	}
}
