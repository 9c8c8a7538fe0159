package bits

import (
	"fmt"
	"strings"
)

// MaxReadBits is the widest value a single read can return.
const MaxReadBits = 64

// Bit is one binary digit of a Stream.
type Bit uint8

const (
	Low  Bit = 0
	High Bit = 1
)

func (b Bit) String() string {
	if b == High {
		return "1"
	}
	return "0"
}

// Stream is the immutable bit expansion of a hex transmission.
type Stream struct {
	bits []Bit
}

// FromHex expands every hex digit of input into four bits, most significant
// bit first.
func FromHex(input string) (Stream, error) {
	out := make([]Bit, 0, len(input)*4)
	for i := 0; i < len(input); i++ {
		nibble, ok := hexValue(input[i])
		if !ok {
			return Stream{}, fmt.Errorf("%w: %q at offset %d", ErrMalformedInput, input[i], i)
		}
		for shift := 3; shift >= 0; shift-- {
			out = append(out, Bit((nibble>>shift)&1))
		}
	}
	return Stream{bits: out}, nil
}

// FromBits builds a Stream from a copy of b.
func FromBits(b []Bit) Stream {
	buf := make([]Bit, len(b))
	copy(buf, b)
	return Stream{bits: buf}
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// Len returns the number of bits in the stream.
func (s Stream) Len() int {
	return len(s.bits)
}

// At returns the bit at offset i.
func (s Stream) At(i int) (Bit, error) {
	if i < 0 || i >= len(s.bits) {
		return Low, fmt.Errorf("%w: offset %d of %d", ErrCursorOverrun, i, len(s.bits))
	}
	return s.bits[i], nil
}

// Read interprets count bits starting at cursor as an unsigned integer with
// the first bit most significant. It returns the value and the advanced
// cursor.
func (s Stream) Read(cursor, count int) (uint64, int, error) {
	if count < 0 || count > MaxReadBits {
		return 0, cursor, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	if cursor < 0 || count > len(s.bits)-cursor {
		return 0, cursor, fmt.Errorf("%w: read %d bits at %d of %d", ErrCursorOverrun, count, cursor, len(s.bits))
	}
	var v uint64
	for _, b := range s.bits[cursor : cursor+count] {
		v = v<<1 | uint64(b)
	}
	return v, cursor + count, nil
}

// Remaining returns the bits left after cursor.
func (s Stream) Remaining(cursor int) int {
	if cursor < 0 {
		return len(s.bits)
	}
	if cursor >= len(s.bits) {
		return 0
	}
	return len(s.bits) - cursor
}

// String renders the stream as a string of '0' and '1'.
func (s Stream) String() string {
	var sb strings.Builder
	sb.Grow(len(s.bits))
	for _, b := range s.bits {
		if b == High {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
