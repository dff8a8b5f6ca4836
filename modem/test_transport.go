package modem

import (
	"io"
	"sync"
	"time"
)

// TestTransport is a test helper that simulates a non-blocking serial line.
//
// Data is organised in chunks. The bytes of one chunk are returned back to
// back, and exactly one empty read (a gap) is reported after each chunk, so
// a test controls where the response engine sees pauses in the stream.
// Delivering one byte per chunk models a slow trickle, one chunk per reply
// models a burst.
type TestTransport struct {
	mu      sync.Mutex
	pending [][]byte
	gap     bool
	replies [][]string
	writes  []string
	readErr error
	closed  bool
}

// NewTestTransport creates a new test transport for testing.
// Exported for use in tests.
func NewTestTransport() *TestTransport {
	return &TestTransport{}
}

// Feed makes chunks readable immediately, e.g. unsolicited inbound data.
func (t *TestTransport) Feed(chunks ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.feed(chunks)
}

// Reply queues the chunks the modem sends in answer to the next Write.
// Reply with no chunks leaves that Write unanswered.
func (t *TestTransport) Reply(chunks ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.replies = append(t.replies, chunks)
}

// FailReads makes every following TryReadByte return err.
func (t *TestTransport) FailReads(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.readErr = err
}

// Writes returns everything written so far, one entry per Write.
func (t *TestTransport) Writes() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.writes...)
}

// Unread returns the number of bytes not yet consumed.
func (t *TestTransport) Unread() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, c := range t.pending {
		n += len(c)
	}
	return n
}

func (t *TestTransport) feed(chunks []string) {
	for _, c := range chunks {
		if c != "" {
			t.pending = append(t.pending, []byte(c))
		}
	}
}

func (t *TestTransport) TryReadByte() (byte, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, false, io.EOF
	}
	if t.readErr != nil {
		return 0, false, t.readErr
	}
	if t.gap || len(t.pending) == 0 {
		t.gap = false
		return 0, false, nil
	}

	c := t.pending[0][0]
	t.pending[0] = t.pending[0][1:]
	if len(t.pending[0]) == 0 {
		t.pending = t.pending[1:]
		t.gap = true
	}
	return c, true, nil
}

func (t *TestTransport) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, io.ErrClosedPipe
	}
	t.writes = append(t.writes, string(p))
	if len(t.replies) > 0 {
		t.feed(t.replies[0])
		t.replies = t.replies[1:]
	}
	return len(p), nil
}

func (t *TestTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

// TestDeadline is a Deadline that expires after a fixed number of polls
// instead of wall-clock time.
type TestDeadline struct {
	// Polls is the number of Expired calls after Start that report the
	// deadline as pending.
	Polls int

	remaining int
	armed     bool
	starts    []time.Duration
	cancels   int
}

// NewTestDeadline returns a TestDeadline that expires on the 101st poll.
func NewTestDeadline() *TestDeadline {
	return &TestDeadline{Polls: 100}
}

func (d *TestDeadline) Start(timeout time.Duration) {
	d.starts = append(d.starts, timeout)
	d.remaining = d.Polls
	d.armed = true
}

func (d *TestDeadline) Expired() bool {
	if !d.armed {
		return false
	}
	if d.remaining <= 0 {
		return true
	}
	d.remaining--
	return false
}

func (d *TestDeadline) Cancel() {
	d.cancels++
	d.armed = false
}

// Starts returns the timeout of every Start call.
func (d *TestDeadline) Starts() []time.Duration {
	return append([]time.Duration(nil), d.starts...)
}

// Cancels returns how often Cancel was called.
func (d *TestDeadline) Cancels() int { return d.cancels }

// Armed reports whether the deadline was started and not cancelled since.
func (d *TestDeadline) Armed() bool { return d.armed }
