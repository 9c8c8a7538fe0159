package packet

import (
	"fmt"
	"strconv"
	"strings"
)

// SumVersions adds the version of p and of every packet nested under it.
func SumVersions(p Packet) uint64 {
	var total uint64
	Walk(p, func(q Packet, _ int) bool {
		total += uint64(q.PacketHeader().Version)
		return true
	})
	return total
}

// Evaluate computes the expression encoded by p. Every operand is evaluated,
// in order, before its operator combines them. Sum and Product wrap at 64
// bits.
func Evaluate(p Packet) (uint64, error) {
	if isNil(p) {
		return 0, ErrNilPacket
	}
	switch v := p.(type) {
	case *Literal:
		return v.Value, nil
	case *Operator:
		return evaluateOperator(v)
	default:
		return 0, ErrNilPacket
	}
}

func evaluateOperator(op *Operator) (uint64, error) {
	values := make([]uint64, len(op.Operands))
	for i, sub := range op.Operands {
		v, err := Evaluate(sub)
		if err != nil {
			return 0, err
		}
		values[i] = v
	}

	switch op.Kind {
	case Sum:
		var total uint64
		for _, v := range values {
			total += v
		}
		return total, nil
	case Product:
		total := uint64(1)
		for _, v := range values {
			total *= v
		}
		return total, nil
	case Minimum, Maximum:
		if len(values) == 0 {
			return 0, fmt.Errorf("%w: %s with no operands", ErrOperandCount, op.Kind)
		}
		out := values[0]
		for _, v := range values[1:] {
			if (op.Kind == Minimum && v < out) || (op.Kind == Maximum && v > out) {
				out = v
			}
		}
		return out, nil
	case GreaterThan, LessThan, EqualTo:
		if len(values) != 2 {
			return 0, fmt.Errorf("%w: %s with %d operands", ErrOperandCount, op.Kind, len(values))
		}
		var holds bool
		switch op.Kind {
		case GreaterThan:
			holds = values[0] > values[1]
		case LessThan:
			holds = values[0] < values[1]
		default:
			holds = values[0] == values[1]
		}
		if holds {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownTypeID, uint8(op.Kind))
	}
}

// Walk visits p and its descendants in pre-order. Returning false from fn
// skips the children of the visited packet.
func Walk(p Packet, fn func(Packet, int) bool) {
	walk(p, 0, fn)
}

func walk(p Packet, depth int, fn func(Packet, int) bool) {
	if isNil(p) || !fn(p, depth) {
		return
	}
	if op, ok := p.(*Operator); ok {
		for _, sub := range op.Operands {
			walk(sub, depth+1, fn)
		}
	}
}

// Format renders p as an infix expression, e.g. "(1 + max(2, 3))".
func Format(p Packet) string {
	var sb strings.Builder
	format(&sb, p)
	return sb.String()
}

func format(sb *strings.Builder, p Packet) {
	if isNil(p) {
		sb.WriteString("<nil>")
		return
	}
	switch v := p.(type) {
	case *Literal:
		sb.WriteString(strconv.FormatUint(v.Value, 10))
	case *Operator:
		switch v.Kind {
		case Minimum, Maximum:
			sb.WriteString(v.Kind.String())
			sb.WriteByte('(')
			formatList(sb, v.Operands, ", ")
			sb.WriteByte(')')
		default:
			sb.WriteByte('(')
			formatList(sb, v.Operands, " "+infixSymbol(v.Kind)+" ")
			sb.WriteByte(')')
		}
	default:
		sb.WriteString("<nil>")
	}
}

func formatList(sb *strings.Builder, ps []Packet, sep string) {
	for i, sub := range ps {
		if i > 0 {
			sb.WriteString(sep)
		}
		format(sb, sub)
	}
}

func infixSymbol(k OperatorKind) string {
	switch k {
	case Sum:
		return "+"
	case Product:
		return "*"
	case GreaterThan:
		return ">"
	case LessThan:
		return "<"
	case EqualTo:
		return "=="
	default:
		return k.String()
	}
}
