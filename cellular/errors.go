package cellular

import (
	"errors"
	"fmt"

	"i4.energy/across/cellular/at"
)

var (
	// ErrIndexOutOfRange is returned when a socket, MQTT or PDN index parsed
	// from a URC falls outside its valid band.
	ErrIndexOutOfRange = errors.New("cellular: index out of range")

	// ErrNotFound is returned by pool lookups when the slot at a valid index
	// has not been allocated.
	ErrNotFound = errors.New("cellular: context not found")

	// ErrPoolFull is returned when every slot of a pool is in use.
	ErrPoolFull = errors.New("cellular: no free context")

	// ErrInvalidHandle is returned when the module context cannot be
	// resolved.
	ErrInvalidHandle = errors.New("cellular: invalid handle")

	// ErrInvalidData is returned for a well formed URC that is semantically
	// rejected, e.g. a DNS result nobody asked for.
	ErrInvalidData = errors.New("cellular: invalid data")

	// ErrInactivePDN is returned when a PDN deactivation names a context id
	// that is not currently active.
	ErrInactivePDN = errors.New("cellular: PDN context not active")

	// ErrDNSQueryFailed is returned by AwaitDNSResult when the modem reports
	// a failed lookup.
	ErrDNSQueryFailed = errors.New("cellular: DNS query failed")
)

// errNilContext marks a handler invoked without a connection context.
var errNilContext = fmt.Errorf("cellular: nil context: %w", at.ErrBadParameter)
