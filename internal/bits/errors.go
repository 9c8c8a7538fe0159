package bits

import "errors"

var (
	ErrMalformedInput = errors.New("bits: malformed hex input")
	ErrCursorOverrun  = errors.New("bits: cursor overrun")
	ErrInvalidCount   = errors.New("bits: invalid bit count")
)
