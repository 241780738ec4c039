package cellular

import (
	"errors"

	"i4.energy/across/cellular/at"
)

// PktStatus is the outcome of processing one URC line.
type PktStatus int

const (
	StatusOK PktStatus = iota
	StatusBadParam
	StatusInvalidHandle
	StatusInvalidData
	StatusFailure
)

func (s PktStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusBadParam:
		return "bad_param"
	case StatusInvalidHandle:
		return "invalid_handle"
	case StatusInvalidData:
		return "invalid_data"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// TranslateStatus maps a tokenizer or parser error onto the packet status
// taxonomy. Every URC handler reports its outcome through it.
func TranslateStatus(err error) PktStatus {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, at.ErrBadParameter):
		return StatusBadParam
	case errors.Is(err, ErrInvalidHandle):
		return StatusInvalidHandle
	case errors.Is(err, ErrInvalidData):
		return StatusInvalidData
	default:
		return StatusFailure
	}
}
