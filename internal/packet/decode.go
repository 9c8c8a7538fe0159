package packet

import (
	"fmt"

	"github.com/danmuck/packetctl/internal/bits"
	"github.com/rs/zerolog"
)

// Limits constrains decode memory and recursion. Zero fields are unlimited.
type Limits struct {
	MaxInputDigits int
	MaxDepth       int
}

func DefaultLimits() Limits {
	return Limits{
		MaxInputDigits: 64 * 1024,
		MaxDepth:       1024,
	}
}

// Decoder parses one top-level packet per call. It holds no parse state
// between calls.
type Decoder struct {
	limits Limits
	log    zerolog.Logger
}

type Option func(*Decoder)

func WithLimits(l Limits) Option {
	return func(d *Decoder) { d.limits = l }
}

func WithLogger(l zerolog.Logger) Option {
	return func(d *Decoder) { d.log = l }
}

func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		limits: DefaultLimits(),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode parses the single packet carried by a hex transmission using the
// default limits. Trailing padding bits are ignored.
func Decode(input string) (Packet, error) {
	return NewDecoder().Decode(input)
}

// Decode expands input and parses exactly one packet from its first bit.
func (d *Decoder) Decode(input string) (Packet, error) {
	if d.limits.MaxInputDigits > 0 && len(input) > d.limits.MaxInputDigits {
		return nil, fmt.Errorf("%w: %d digits, limit %d", ErrInputTooLarge, len(input), d.limits.MaxInputDigits)
	}
	stream, err := bits.FromHex(input)
	if err != nil {
		return nil, err
	}
	p, _, err := d.DecodeStream(stream)
	return p, err
}

// DecodeStream parses exactly one packet from the start of s and returns it
// with the number of bits it occupied.
func (d *Decoder) DecodeStream(s bits.Stream) (Packet, int, error) {
	p := &parser{r: bits.NewReader(s), limits: d.limits, log: d.log}
	root, err := p.packet(0)
	if err != nil {
		d.log.Debug().Err(err).Int("pos", p.r.Pos()).Msg("decode failed")
		return nil, 0, err
	}
	d.log.Debug().
		Int("bits", s.Len()).
		Int("consumed", p.r.Pos()).
		Int("packets", p.count).
		Msg("decoded transmission")
	return root, p.r.Pos(), nil
}

type parser struct {
	r      *bits.Reader
	limits Limits
	log    zerolog.Logger
	count  int
}

func (p *parser) packet(depth int) (Packet, error) {
	if p.limits.MaxDepth > 0 && depth > p.limits.MaxDepth {
		return nil, fmt.Errorf("%w: depth %d at bit %d", ErrDepthExceeded, depth, p.r.Pos())
	}
	start := p.r.Pos()
	version, err := p.r.ReadBits(VersionBits)
	if err != nil {
		return nil, fmt.Errorf("read version at bit %d: %w", start, err)
	}
	typeID, err := p.r.ReadBits(TypeIDBits)
	if err != nil {
		return nil, fmt.Errorf("read type id at bit %d: %w", start, err)
	}
	head := Header{Version: uint8(version), TypeID: uint8(typeID)}
	p.count++

	if head.TypeID == TypeLiteral {
		value, err := p.literal()
		if err != nil {
			return nil, fmt.Errorf("literal at bit %d: %w", start, err)
		}
		p.log.Trace().Int("at", start).Int("depth", depth).Uint8("version", head.Version).Uint64("value", value).Msg("literal")
		return &Literal{Header: head, Value: value}, nil
	}

	kind, err := KindFromTypeID(head.TypeID)
	if err != nil {
		return nil, fmt.Errorf("operator at bit %d: %w", start, err)
	}
	op := &Operator{Header: head, Kind: kind}
	if err := p.operands(op, depth); err != nil {
		return nil, fmt.Errorf("%s operator at bit %d: %w", kind, start, err)
	}
	p.log.Trace().Int("at", start).Int("depth", depth).Uint8("version", head.Version).
		Stringer("kind", kind).Stringer("length", op.Length).Int("operands", len(op.Operands)).Msg("operator")
	return op, nil
}

func (p *parser) literal() (uint64, error) {
	var value uint64
	for {
		more, err := p.r.ReadBit()
		if err != nil {
			return 0, err
		}
		nibble, err := p.r.ReadBits(NibbleBits)
		if err != nil {
			return 0, err
		}
		if value>>(64-NibbleBits) != 0 {
			return 0, ErrLiteralOverflow
		}
		value = value<<NibbleBits | nibble
		if more == bits.Low {
			return value, nil
		}
	}
}

func (p *parser) operands(op *Operator, depth int) error {
	lt, err := p.r.ReadBits(LengthTypeBits)
	if err != nil {
		return err
	}
	op.Length = LengthType(lt)

	if op.Length == LengthCount {
		count, err := p.r.ReadBits(CountBits)
		if err != nil {
			return err
		}
		op.Operands = make([]Packet, 0, count)
		for i := uint64(0); i < count; i++ {
			sub, err := p.packet(depth + 1)
			if err != nil {
				return err
			}
			op.Operands = append(op.Operands, sub)
		}
		return nil
	}

	total, err := p.r.ReadBits(TotalLengthBits)
	if err != nil {
		return err
	}
	end := p.r.Pos() + int(total)
	if int(total) > p.r.Remaining() {
		return fmt.Errorf("%w: operands end at bit %d beyond stream of %d", ErrCursorOverrun, end, p.r.Stream().Len())
	}
	for p.r.Pos() < end {
		sub, err := p.packet(depth + 1)
		if err != nil {
			return err
		}
		op.Operands = append(op.Operands, sub)
	}
	if p.r.Pos() != end {
		return fmt.Errorf("%w: operands ended at bit %d, declared boundary %d", ErrCursorOverrun, p.r.Pos(), end)
	}
	return nil
}
