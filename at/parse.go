package at

import (
	"strconv"
	"strings"
)

// Status is the connection state reported by AT+CIPSTATUS.
type Status int

const (
	WifiUninitialized Status = iota
	WifiDisconnected
	WifiConnected
	ServerConnected
	ServerDisconnected
	WifiConnectFailed
)

var statusNames = [...]string{
	WifiUninitialized:  "WifiUninitialized",
	WifiDisconnected:   "WifiDisconnected",
	WifiConnected:      "WifiConnected",
	ServerConnected:    "ServerConnected",
	ServerDisconnected: "ServerDisconnected",
	WifiConnectFailed:  "WifiConnectFailed",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}
	return statusNames[s]
}

// StripEcho removes the first line of a response, which is the modem's
// echo of the command, and trims the remainder. It returns an empty
// string when text has no line break.
func StripEcho(text string) string {
	i := strings.IndexByte(text, '\n')
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(text[i+1:])
}

// DataChunk returns the payload of the first inbound data line
// (+IPD<suffix>:<payload>) in text. The payload is everything after the
// first colon of that line. ErrFieldNotFound is returned when text has no
// such line.
func DataChunk(text string) (string, error) {
	for _, line := range Lines(text) {
		if !strings.HasPrefix(line, DataPrefix) {
			continue
		}
		if _, payload, ok := strings.Cut(line, ":"); ok {
			return payload, nil
		}
	}
	return "", ErrFieldNotFound
}

// ParseStatus extracts the connection status from the first STATUS:<n>
// line in text. n must be a single digit 0 to 5.
func ParseStatus(text string) (Status, error) {
	for _, line := range Lines(text) {
		if !strings.HasPrefix(line, StatusPrefix) {
			continue
		}
		raw := strings.TrimPrefix(line, StatusPrefix)
		if len(raw) != 1 || raw[0] < '0' || raw[0] > '0'+byte(WifiConnectFailed) {
			return 0, &FieldError{Field: "STATUS", Value: raw}
		}
		return Status(raw[0] - '0'), nil
	}
	return 0, ErrFieldNotFound
}
