package bridge

import "errors"

var (
	ErrNoBroker     = errors.New("bridge: broker URI is required")
	ErrNotConnected  = errors.New("bridge: broker not connected")
)
