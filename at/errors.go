package at

import "errors"

var (
	// ErrBadParameter is returned when a tokenizer helper is handed an empty
	// or otherwise unusable input string.
	ErrBadParameter = errors.New("at: bad parameter")

	// ErrNoToken is returned by NextToken when the input has been consumed.
	ErrNoToken = errors.New("at: no more tokens")

	// ErrInvalidNumber is returned by StrToI when the token is not a complete
	// integer in the requested base, or does not fit in 32 bits.
	ErrInvalidNumber = errors.New("at: invalid number")
)
