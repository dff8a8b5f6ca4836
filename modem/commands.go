package modem

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"i4.energy/across/espgw/at"
)

// Probe sends AT and reports whether the modem answered OK.
func (m *Modem) Probe(ctx context.Context) (bool, error) {
	resp, err := m.Exec(ctx, at.CmdAt, at.OK, m.timeouts.Probe)
	if err != nil {
		return false, fmt.Errorf("AT: %w", err)
	}
	return resp == at.OK, nil
}

// Restart resets the modem and waits for its boot banner to end with
// "ready". It reports whether the reset command itself was acknowledged.
func (m *Modem) Restart(ctx context.Context) (bool, error) {
	resp, err := m.Exec(ctx, at.CmdRestart, at.Ready, m.timeouts.Restart)
	if err != nil {
		return false, fmt.Errorf("%s: %w", at.CmdRestart, err)
	}
	return strings.HasPrefix(resp, at.OK), nil
}

// SetMode selects the Wi-Fi mode (1 station, 2 soft AP, 3 both).
func (m *Modem) SetMode(ctx context.Context, mode uint8) (bool, error) {
	return m.setting(ctx, fmt.Sprintf(at.CmdSetMode, mode))
}

// SetTransportMode selects normal (0) or pass-through (1) transfer mode.
func (m *Modem) SetTransportMode(ctx context.Context, mode uint8) (bool, error) {
	return m.setting(ctx, fmt.Sprintf(at.CmdSetCipMode, mode))
}

// SetAutoJoin enables (1) or disables (0) joining the saved access point
// on power up.
func (m *Modem) SetAutoJoin(ctx context.Context, mode uint8) (bool, error) {
	return m.setting(ctx, fmt.Sprintf(at.CmdAutoConnect, mode))
}

func (m *Modem) setting(ctx context.Context, cmd string) (bool, error) {
	resp, err := m.Exec(ctx, cmd, at.OK, m.timeouts.Setting)
	if err != nil {
		return false, fmt.Errorf("%s: %w", cmd, err)
	}
	return resp == at.OK, nil
}

// Connect opens a connection of the given type ("TCP", "UDP" or "SSL") to
// ip:port.
func (m *Modem) Connect(ctx context.Context, mode, ip string, port uint16) (bool, error) {
	cmd := fmt.Sprintf(at.CmdStart, mode, ip, port)
	resp, err := m.Exec(ctx, cmd, at.OK, m.timeouts.Connect)
	if err != nil {
		return false, fmt.Errorf("AT+CIPSTART: %w", err)
	}
	return strings.HasSuffix(resp, at.OK), nil
}

// JoinNetwork joins the access point ssid.
func (m *Modem) JoinNetwork(ctx context.Context, ssid, password string) (bool, error) {
	unlock, err := m.acquire()
	if err != nil {
		return false, err
	}
	defer unlock()

	// the command line carries the password, log and report it as AT+CWJAP
	cmd := fmt.Sprintf(at.CmdJoinAP, ssid, password)
	resp, err := m.execAs(ctx, "AT+CWJAP", cmd, at.OK, m.timeouts.Join)
	if err != nil {
		return false, fmt.Errorf("AT+CWJAP: %w", err)
	}
	return strings.HasSuffix(resp, at.OK), nil
}

// Status queries the connection state.
func (m *Modem) Status(ctx context.Context) (at.Status, error) {
	resp, err := m.Exec(ctx, at.CmdStatus, at.OK, m.timeouts.Status)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", at.CmdStatus, err)
	}
	status, err := at.ParseStatus(resp)
	if err != nil {
		return 0, fieldErr(at.CmdStatus, err)
	}
	return status, nil
}

// Send transmits payload on the open connection and returns the data the
// peer sent back within the reply window.
//
// The modem is first told the length of the data, payload plus CRLF, and
// must answer with the ">" prompt before the payload is written. A missing
// prompt, late or absent, is ErrFailure; a reply without inbound data is
// ErrNoResponse.
func (m *Modem) Send(ctx context.Context, payload string) (string, error) {
	unlock, err := m.acquire()
	if err != nil {
		return "", err
	}
	defer unlock()

	cmd := fmt.Sprintf(at.CmdSend, len(payload)+len(at.CRLF))
	resp, err := m.exec(ctx, cmd, at.Prompt, m.timeouts.Prompt)
	if errors.Is(err, ErrNoResponse) {
		return "", fmt.Errorf("AT+CIPSEND: %w: prompt not received: %w", ErrFailure, err)
	}
	if err != nil {
		return "", fmt.Errorf("AT+CIPSEND: %w", err)
	}
	if !strings.HasSuffix(resp, at.Prompt) {
		return "", fmt.Errorf("AT+CIPSEND: %w: did not receive prompt, got: %q", ErrFailure, resp)
	}

	resp, err = m.exec(ctx, payload, "", m.timeouts.SendReply)
	if err != nil {
		return "", fmt.Errorf("send payload: %w", err)
	}
	data, err := at.DataChunk(resp)
	if err != nil {
		return "", fieldErr("send payload", err)
	}
	return data, nil
}

// Receive waits for inbound data for the configured receive window.
// ErrNoResponse means nothing arrived.
func (m *Modem) Receive(ctx context.Context) (string, error) {
	unlock, err := m.acquire()
	if err != nil {
		return "", err
	}
	defer unlock()

	// nothing was written, so there is no echo to strip
	resp, err := m.await(ctx, "", m.timeouts.Receive)
	m.logReply(ctx, "receive", resp, err)
	if err != nil {
		return "", fmt.Errorf("receive: %w", err)
	}
	data, err := at.DataChunk(resp)
	if err != nil {
		return "", fieldErr("receive", err)
	}
	return data, nil
}

// fieldErr maps a missing field onto ErrNoResponse and keeps malformed
// fields as they are.
func fieldErr(op string, err error) error {
	if errors.Is(err, at.ErrFieldNotFound) {
		return fmt.Errorf("%s: %w: %w", op, ErrNoResponse, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
