package modem

//go:generate go tool mockgen -source=deadline.go -destination=mock_deadline.go -package=modem

import "time"

// Deadline is a one-shot timer polled by the response engine.
//
// Start arms it for d, Expired reports without blocking whether d has
// elapsed since Start, and Cancel disarms it. A cancelled or never started
// Deadline is not expired.
type Deadline interface {
	Start(d time.Duration)
	Expired() bool
	Cancel()
}

// ClockDeadline implements Deadline on the monotonic clock.
type ClockDeadline struct {
	now   func() time.Time
	at    time.Time
	armed bool
}

// NewClockDeadline returns a disarmed ClockDeadline.
func NewClockDeadline() *ClockDeadline {
	return &ClockDeadline{now: time.Now}
}

func (d *ClockDeadline) Start(timeout time.Duration) {
	d.at = d.now().Add(timeout)
	d.armed = true
}

func (d *ClockDeadline) Expired() bool {
	return d.armed && !d.now().Before(d.at)
}

func (d *ClockDeadline) Cancel() {
	d.armed = false
}
