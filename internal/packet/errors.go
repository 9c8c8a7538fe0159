package packet

import (
	"errors"

	"github.com/danmuck/packetctl/internal/bits"
)

var (
	ErrMalformedInput  = bits.ErrMalformedInput
	ErrCursorOverrun   = bits.ErrCursorOverrun
	ErrUnknownTypeID   = errors.New("packet: unknown type id")
	ErrLiteralOverflow = errors.New("packet: literal overflows 64 bits")
	ErrOperandCount    = errors.New("packet: invalid operand count")
	ErrInputTooLarge   = errors.New("packet: input too large")
	ErrDepthExceeded   = errors.New("packet: nesting depth exceeded")
	ErrFieldRange      = errors.New("packet: field out of range")
	ErrNilPacket       = errors.New("packet: nil packet")
)
