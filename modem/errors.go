package modem

import "errors"

var (
	// ErrNoDialer is returned when a Modem is constructed without a Dialer.
	//
	// This indicates a configuration error. A Dialer is required in order to
	// establish a connection to the modem.
	ErrNoDialer = errors.New("no dialer configured")

	// ErrNotInitialized is returned when an operation is attempted on a Modem
	// that has no transport, for example because the Dialer returned none.
	ErrNotInitialized = errors.New("modem not initialized")

	// ErrAlreadyClosed is returned when Close is called on a Modem that has
	// already been closed.
	ErrAlreadyClosed = errors.New("modem already closed")

	// ErrLoopRunning is returned when Loop is called while another Loop is
	// still reading the transport.
	ErrLoopRunning = errors.New("loop already running")

	// ErrNoPortName is returned by SerialDialer when PortName is empty.
	ErrNoPortName = errors.New("modem: serial port name is required")

	// ErrNilContext is returned by SerialDialer when called with a nil
	// context.
	ErrNilContext = errors.New("modem: context is nil")
)
