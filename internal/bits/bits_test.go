package bits

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
)

func referenceExpansion(t *testing.T, input string) string {
	t.Helper()
	var sb strings.Builder
	for _, c := range input {
		v, err := strconv.ParseUint(string(c), 16, 8)
		if err != nil {
			t.Fatalf("reference parse %q: %v", c, err)
		}
		sb.WriteString(fmt.Sprintf("%04b", v))
	}
	return sb.String()
}

func TestFromHexRoundTripsAgainstReference(t *testing.T) {
	inputs := []string{
		"",
		"00",
		"FF",
		"D2FE28",
		"d2fe28",
		"38006F45291200",
		"0123456789abcdefABCDEF",
	}
	for _, in := range inputs {
		s, err := FromHex(in)
		if err != nil {
			t.Fatalf("from hex %q: %v", in, err)
		}
		if s.Len() != 4*len(in) {
			t.Fatalf("len %q: got %d want %d", in, s.Len(), 4*len(in))
		}
		if got, want := s.String(), referenceExpansion(t, in); got != want {
			t.Fatalf("expansion %q:\n got %s\nwant %s", in, got, want)
		}
	}
}

func TestFromHexMalformedInput(t *testing.T) {
	for _, in := range []string{"D2FG28", "x", "12 34", "12\n"} {
		_, err := FromHex(in)
		if !errors.Is(err, ErrMalformedInput) {
			t.Fatalf("%q: expected ErrMalformedInput, got %v", in, err)
		}
	}
}

func TestStreamReadAdvancesCursor(t *testing.T) {
	s, err := FromHex("D2FE28")
	if err != nil {
		t.Fatalf("from hex: %v", err)
	}
	version, cursor, err := s.Read(0, 3)
	if err != nil {
		t.Fatalf("read version: %v", err)
	}
	if version != 6 || cursor != 3 {
		t.Fatalf("unexpected version=%d cursor=%d", version, cursor)
	}
	typeID, cursor, err := s.Read(cursor, 3)
	if err != nil {
		t.Fatalf("read type id: %v", err)
	}
	if typeID != 4 || cursor != 6 {
		t.Fatalf("unexpected type id=%d cursor=%d", typeID, cursor)
	}
	if got := s.Remaining(cursor); got != 18 {
		t.Fatalf("unexpected remaining: %d", got)
	}
}

func TestStreamReadZeroBits(t *testing.T) {
	s, _ := FromHex("F")
	v, cursor, err := s.Read(4, 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if v != 0 || cursor != 4 {
		t.Fatalf("unexpected v=%d cursor=%d", v, cursor)
	}
}

func TestStreamReadFullWidth(t *testing.T) {
	s, _ := FromHex("FFFFFFFFFFFFFFFF")
	v, _, err := s.Read(0, 64)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if v != ^uint64(0) {
		t.Fatalf("unexpected value: %x", v)
	}
}

func TestStreamReadOverrun(t *testing.T) {
	s, _ := FromHex("AB")
	_, cursor, err := s.Read(5, 4)
	if !errors.Is(err, ErrCursorOverrun) {
		t.Fatalf("expected ErrCursorOverrun, got %v", err)
	}
	if cursor != 5 {
		t.Fatalf("cursor moved on failure: %d", cursor)
	}
	if _, _, err := s.Read(-1, 1); !errors.Is(err, ErrCursorOverrun) {
		t.Fatalf("expected ErrCursorOverrun for negative cursor, got %v", err)
	}
}

func TestStreamReadInvalidCount(t *testing.T) {
	s, _ := FromHex("FFFFFFFFFFFFFFFFFF")
	if _, _, err := s.Read(0, 65); !errors.Is(err, ErrInvalidCount) {
		t.Fatalf("expected ErrInvalidCount, got %v", err)
	}
	if _, _, err := s.Read(0, -1); !errors.Is(err, ErrInvalidCount) {
		t.Fatalf("expected ErrInvalidCount, got %v", err)
	}
}

func TestStreamRemainingNeverNegative(t *testing.T) {
	s, _ := FromHex("A")
	if got := s.Remaining(10); got != 0 {
		t.Fatalf("unexpected remaining: %d", got)
	}
	if got := s.Remaining(0); got != 4 {
		t.Fatalf("unexpected remaining: %d", got)
	}
}

func TestStreamAt(t *testing.T) {
	s, _ := FromHex("8")
	b, err := s.At(0)
	if err != nil || b != High {
		t.Fatalf("unexpected bit %v err %v", b, err)
	}
	if _, err := s.At(4); !errors.Is(err, ErrCursorOverrun) {
		t.Fatalf("expected ErrCursorOverrun, got %v", err)
	}
}
