package record

import (
	"encoding/binary"
	"errors"
	"math"
)

// Fixed offsets of the record header.
const (
	OwnerOffset       = 0
	InitializedOffset = 32
	PriceOffset       = 33
	URLOffset         = 41

	// HeaderSize is the number of bytes before the first variable field.
	HeaderSize = URLOffset
	// LengthPrefixSize is the width of every variable field's length prefix.
	LengthPrefixSize = 4
	// MinSize is the encoded size of a record whose variable fields are empty.
	MinSize = HeaderSize + 4*LengthPrefixSize
	// MaxFieldLen is the largest length a prefix can express.
	MaxFieldLen = math.MaxUint32
)

var (
	errOverrun  = errors.New("read past end of buffer")
	errOverflow = errors.New("write past end of buffer")
)

// reader is a bounds-checked cursor over an immutable buffer.
type reader struct {
	buf []byte
	off int
}

func (r *reader) remaining() int { return len(r.buf) - r.off }

func (r *reader) take(n int) ([]byte, error) {
	if n < 0 || n > r.remaining() {
		return nil, errOverrun
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) u8() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) u32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) u64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// prefixed reads a u32 length prefix and the bytes it announces. The
// returned slice is a copy, so decoded records never alias the input.
func (r *reader) prefixed() ([]byte, error) {
	n, err := r.u32()
	if err != nil {
		return nil, err
	}
	if uint64(n) > uint64(r.remaining()) {
		return nil, errOverrun
	}
	b, err := r.take(int(n))
	if err != nil || n == 0 {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// writer is a bounds-checked cursor over a preallocated buffer.
type writer struct {
	buf []byte
	off int
}

func (w *writer) put(b []byte) error {
	if len(b) > len(w.buf)-w.off {
		return errOverflow
	}
	w.off += copy(w.buf[w.off:], b)
	return nil
}

func (w *writer) u8(v byte) error {
	return w.put([]byte{v})
}

func (w *writer) u32(v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return w.put(b[:])
}

func (w *writer) u64(v uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return w.put(b[:])
}

func (w *writer) prefixed(b []byte) error {
	if uint64(len(b)) > MaxFieldLen {
		return errOverflow
	}
	if err := w.u32(uint32(len(b))); err != nil {
		return err
	}
	return w.put(b)
}
