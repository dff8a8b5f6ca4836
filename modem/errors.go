package modem

import "errors"

var (
	// ErrNoDialer is returned when a Modem is constructed without a Dialer.
	//
	// This indicates a configuration error. A Dialer is required in order to
	// establish a connection to the modem.
	ErrNoDialer = errors.New("no dialer configured")

	// ErrNotInitialized is returned when an operation is attempted on a Modem
	// that has no transport.
	//
	// This can occur if the Dialer returned neither a transport nor an error,
	// or if the Modem was not created via New.
	ErrNotInitialized = errors.New("modem not initialized")

	// ErrAlreadyClosed is returned when Close is called on a Modem that has
	// already been closed, and by every operation issued after Close.
	ErrAlreadyClosed = errors.New("modem already closed")

	// ErrFailure is returned when the modem reports an error token, or when
	// a reply lacks a required structural marker such as the send prompt.
	ErrFailure = errors.New("modem reported failure")

	// ErrNoResponse is returned when the deadline elapses before the expected
	// marker arrives, or when a reply does not contain the expected field.
	//
	// Callers decide whether and how to retry.
	ErrNoResponse = errors.New("no response")

	// ErrCapacityExceeded is returned when a reply does not fit the response
	// buffer. The rest of the reply is left unread on the transport.
	ErrCapacityExceeded = errors.New("response exceeds buffer capacity")

	// ErrMarkerTooLong is returned when a termination marker is longer than
	// the trailing window and could therefore never match.
	ErrMarkerTooLong = errors.New("termination marker longer than window")

	// ErrBufferTooSmall is returned by Build when the configured buffer
	// cannot hold a full trailing window.
	ErrBufferTooSmall = errors.New("response buffer smaller than window")

	// ErrNoPowerLine is returned by PowerOn and PowerOff when neither the
	// Config nor the transport provides a power control line.
	ErrNoPowerLine = errors.New("no power line configured")
)
