package at

import (
	"bytes"
)

const (
	// DefaultBufferSize is the capacity of a response buffer when none is configured.
	DefaultBufferSize = 1024
	// WindowSize is the number of trailing bytes kept for marker matching.
	WindowSize = 8
)

// Buffer accumulates the bytes of one response up to a fixed capacity.
// The zero value has no capacity; use NewBuffer.
type Buffer struct {
	data []byte
}

// NewBuffer returns an empty Buffer that holds at most size bytes.
func NewBuffer(size int) *Buffer {
	if size < 0 {
		size = 0
	}
	return &Buffer{data: make([]byte, 0, size)}
}

// WriteByte appends c. It returns ErrBufferFull, leaving the contents
// unchanged, when the buffer is already at capacity.
func (b *Buffer) WriteByte(c byte) error {
	if len(b.data) == cap(b.data) {
		return ErrBufferFull
	}
	b.data = append(b.data, c)
	return nil
}

func (b *Buffer) Len() int { return len(b.data) }

func (b *Buffer) Cap() int { return cap(b.data) }

func (b *Buffer) String() string { return string(b.data) }

// Window holds the last WindowSize bytes received. Before WindowSize bytes
// have been pushed the leading positions are zero.
type Window struct {
	buf [WindowSize]byte
}

// Push shifts c into the window, discarding the oldest byte.
func (w *Window) Push(c byte) {
	copy(w.buf[:], w.buf[1:])
	w.buf[WindowSize-1] = c
}

// Bytes returns a copy of the window contents, oldest byte first.
func (w *Window) Bytes() []byte {
	out := make([]byte, WindowSize)
	copy(out, w.buf[:])
	return out
}

// HasSuffix reports whether the received bytes end with token. Trailing
// CR, LF and spaces are ignored so that a marker still matches once its
// line terminator has arrived.
func (w *Window) HasSuffix(token string) bool {
	if token == "" {
		return false
	}
	tail := bytes.TrimRight(w.buf[:], "\r\n ")
	return bytes.HasSuffix(tail, []byte(token))
}

// Trailing returns the CR, LF and space bytes at the end of the window.
func (w *Window) Trailing() string {
	tail := bytes.TrimRight(w.buf[:], "\r\n ")
	return string(w.buf[len(tail):])
}

// Reset clears the window.
func (w *Window) Reset() {
	w.buf = [WindowSize]byte{}
}
