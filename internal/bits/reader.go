package bits

// Reader owns the cursor of a single parse over a Stream.
// The cursor only moves forward, and a failed read leaves it untouched.
type Reader struct {
	stream Stream
	pos    int
}

// NewReader starts a parse at the first bit of s.
func NewReader(s Stream) *Reader {
	return &Reader{stream: s}
}

// ReadBits reads n bits and advances the cursor.
func (r *Reader) ReadBits(n int) (uint64, error) {
	v, next, err := r.stream.Read(r.pos, n)
	if err != nil {
		return 0, err
	}
	r.pos = next
	return v, nil
}

// ReadBit reads a single bit.
func (r *Reader) ReadBit() (Bit, error) {
	v, err := r.ReadBits(1)
	if err != nil {
		return Low, err
	}
	return Bit(v), nil
}

// Pos returns the cursor offset.
func (r *Reader) Pos() int {
	return r.pos
}

// Remaining returns the bits left after the cursor.
func (r *Reader) Remaining() int {
	return r.stream.Remaining(r.pos)
}

// Stream returns the underlying stream.
func (r *Reader) Stream() Stream {
	return r.stream
}
