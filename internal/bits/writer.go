package bits

import (
	"fmt"
	"strings"
)

const hexDigits = "0123456789ABCDEF"

// Writer accumulates bits MSB-first. The zero value is ready to use.
type Writer struct {
	bits []Bit
}

// WriteBits appends the low n bits of v, most significant first.
func (w *Writer) WriteBits(v uint64, n int) error {
	if n < 0 || n > MaxReadBits {
		return fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}
	if n < MaxReadBits && v>>uint(n) != 0 {
		return fmt.Errorf("%w: value %d does not fit in %d bits", ErrInvalidCount, v, n)
	}
	for shift := n - 1; shift >= 0; shift-- {
		w.bits = append(w.bits, Bit((v>>uint(shift))&1))
	}
	return nil
}

func (w *Writer) Len() int {
	return len(w.bits)
}

// Stream returns a snapshot of the bits written so far.
func (w *Writer) Stream() Stream {
	return FromBits(w.bits)
}

// Hex renders the written bits as upper-case hex, zero-padding the final
// nibble.
func (w *Writer) Hex() string {
	var sb strings.Builder
	sb.Grow((len(w.bits) + 3) / 4)
	for i := 0; i < len(w.bits); i += 4 {
		var nibble byte
		for j := 0; j < 4; j++ {
			nibble <<= 1
			if i+j < len(w.bits) {
				nibble |= byte(w.bits[i+j])
			}
		}
		sb.WriteByte(hexDigits[nibble])
	}
	return sb.String()
}
