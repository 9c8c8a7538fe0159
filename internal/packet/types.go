package packet

import "fmt"

// Field widths of the wire format, in bits.
const (
	VersionBits     = 3
	TypeIDBits      = 3
	LengthTypeBits  = 1
	TotalLengthBits = 15
	CountBits       = 11
	GroupBits       = 5
	NibbleBits      = 4

	// TypeLiteral is the type id that marks a literal packet.
	TypeLiteral uint8 = 4
)

// Header is the fixed prefix shared by every packet.
type Header struct {
	Version uint8
	TypeID  uint8
}

// Packet is either a *Literal or an *Operator.
type Packet interface {
	PacketHeader() Header
	sealed()
}

// Literal carries a single unsigned value.
type Literal struct {
	Header
	Value uint64
}

func (l *Literal) PacketHeader() Header { return l.Header }
func (*Literal) sealed()                {}

// Operator combines its operands according to Kind.
type Operator struct {
	Header
	Kind     OperatorKind
	Length   LengthType
	Operands []Packet
}

func (o *Operator) PacketHeader() Header { return o.Header }
func (*Operator) sealed()                {}

// isNil reports whether p is nil or a nil *Literal / *Operator.
func isNil(p Packet) bool {
	switch v := p.(type) {
	case nil:
		return true
	case *Literal:
		return v == nil
	case *Operator:
		return v == nil
	default:
		return false
	}
}

// NewLiteral builds a literal packet with the given version.
func NewLiteral(version uint8, value uint64) *Literal {
	return &Literal{Header: Header{Version: version, TypeID: TypeLiteral}, Value: value}
}

// NewOperator builds an operator packet whose type id matches kind.
func NewOperator(version uint8, kind OperatorKind, length LengthType, operands ...Packet) *Operator {
	return &Operator{
		Header:   Header{Version: version, TypeID: uint8(kind)},
		Kind:     kind,
		Length:   length,
		Operands: operands,
	}
}

// OperatorKind values equal their wire type ids.
type OperatorKind uint8

const (
	Sum         OperatorKind = 0
	Product     OperatorKind = 1
	Minimum     OperatorKind = 2
	Maximum     OperatorKind = 3
	GreaterThan OperatorKind = 5
	LessThan    OperatorKind = 6
	EqualTo     OperatorKind = 7
)

// KindFromTypeID maps a non-literal type id to its operator kind.
func KindFromTypeID(id uint8) (OperatorKind, error) {
	switch OperatorKind(id) {
	case Sum, Product, Minimum, Maximum, GreaterThan, LessThan, EqualTo:
		return OperatorKind(id), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownTypeID, id)
	}
}

func (k OperatorKind) String() string {
	switch k {
	case Sum:
		return "sum"
	case Product:
		return "product"
	case Minimum:
		return "min"
	case Maximum:
		return "max"
	case GreaterThan:
		return "gt"
	case LessThan:
		return "lt"
	case EqualTo:
		return "eq"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Comparison reports whether k is one of the binary comparison kinds.
func (k OperatorKind) Comparison() bool {
	return k == GreaterThan || k == LessThan || k == EqualTo
}

// LengthType selects how an operator's operand list is delimited on the wire.
type LengthType uint8

const (
	// LengthBits prefixes operands with a 15-bit total bit length.
	LengthBits LengthType = 0
	// LengthCount prefixes operands with an 11-bit packet count.
	LengthCount LengthType = 1
)

func (l LengthType) String() string {
	if l == LengthCount {
		return "count"
	}
	return "bits"
}
