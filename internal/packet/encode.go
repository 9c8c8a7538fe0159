package packet

import (
	"fmt"

	"github.com/danmuck/packetctl/internal/bits"
)

const (
	maxVersion     = 1<<VersionBits - 1
	maxTotalLength = 1<<TotalLengthBits - 1
	maxCount       = 1<<CountBits - 1
)

// Encode renders p as upper-case hex. Operators keep their recorded
// LengthType and literals use the fewest groups that hold their value.
func Encode(p Packet) (string, error) {
	var w bits.Writer
	if err := writePacket(&w, p); err != nil {
		return "", err
	}
	return w.Hex(), nil
}

func writePacket(w *bits.Writer, p Packet) error {
	if isNil(p) {
		return ErrNilPacket
	}
	switch v := p.(type) {
	case *Literal:
		if err := writeHeader(w, v.Version, TypeLiteral); err != nil {
			return err
		}
		return writeLiteral(w, v.Value)
	case *Operator:
		if _, err := KindFromTypeID(uint8(v.Kind)); err != nil {
			return err
		}
		if err := writeHeader(w, v.Version, uint8(v.Kind)); err != nil {
			return err
		}
		return writeOperands(w, v)
	default:
		return ErrNilPacket
	}
}

func writeHeader(w *bits.Writer, version, typeID uint8) error {
	if version > maxVersion {
		return fmt.Errorf("%w: version %d", ErrFieldRange, version)
	}
	if err := w.WriteBits(uint64(version), VersionBits); err != nil {
		return err
	}
	return w.WriteBits(uint64(typeID), TypeIDBits)
}

func writeLiteral(w *bits.Writer, value uint64) error {
	groups := 1
	for v := value >> NibbleBits; v != 0; v >>= NibbleBits {
		groups++
	}
	for i := groups - 1; i >= 0; i-- {
		more := uint64(0)
		if i > 0 {
			more = 1
		}
		nibble := (value >> uint(i*NibbleBits)) & 0xF
		if err := w.WriteBits(more<<NibbleBits|nibble, GroupBits); err != nil {
			return err
		}
	}
	return nil
}

func writeOperands(w *bits.Writer, op *Operator) error {
	if err := w.WriteBits(uint64(op.Length), LengthTypeBits); err != nil {
		return err
	}
	if op.Length == LengthCount {
		if len(op.Operands) > maxCount {
			return fmt.Errorf("%w: %d operands", ErrFieldRange, len(op.Operands))
		}
		if err := w.WriteBits(uint64(len(op.Operands)), CountBits); err != nil {
			return err
		}
		for _, sub := range op.Operands {
			if err := writePacket(w, sub); err != nil {
				return err
			}
		}
		return nil
	}

	var body bits.Writer
	for _, sub := range op.Operands {
		if err := writePacket(&body, sub); err != nil {
			return err
		}
	}
	if body.Len() > maxTotalLength {
		return fmt.Errorf("%w: %d operand bits", ErrFieldRange, body.Len())
	}
	if err := w.WriteBits(uint64(body.Len()), TotalLengthBits); err != nil {
		return err
	}
	s := body.Stream()
	for cursor := 0; cursor < s.Len(); {
		n := min(bits.MaxReadBits, s.Remaining(cursor))
		v, next, err := s.Read(cursor, n)
		if err != nil {
			return err
		}
		if err := w.WriteBits(v, n); err != nil {
			return err
		}
		cursor = next
	}
	return nil
}
