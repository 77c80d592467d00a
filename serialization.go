package ordstat

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/exp/constraints"
)

// ErrEncoding is wrapped by every error FromBytes returns for malformed
// input.
var ErrEncoding = errors.New("invalid set encoding")

const smallEncoding int32 = 2

// AsBytes serializes an integer set.
//
// The layout is the encoding version and the universe length as
// big-endian int32s, then each universe value as a varint delta from its
// predecessor (the first one from zero), then one presence bit per
// universe value, lowest bit first.
func AsBytes[T constraints.Integer](s *Set[T]) ([]byte, error) {
	buffer := new(bytes.Buffer)

	if len(s.universe) > 1<<31-1 {
		return nil, fmt.Errorf("universe too large to encode: %d values", len(s.universe))
	}

	if err := binary.Write(buffer, binary.BigEndian, smallEncoding); err != nil {
		return nil, err
	}
	if err := binary.Write(buffer, binary.BigEndian, int32(len(s.universe))); err != nil {
		return nil, err
	}

	var prev uint64
	for _, x := range s.universe {
		// Deltas are taken modulo 2^64 so signed values and large
		// spans round-trip through the unsigned varint.
		encodeUint(buffer, uint64(x)-prev)
		prev = uint64(x)
	}

	bitmap := make([]byte, (len(s.universe)+7)/8)
	for i := range s.universe {
		if s.present.Get(i) != 0 {
			bitmap[i/8] |= 1 << (i % 8)
		}
	}
	buffer.Write(bitmap)

	return buffer.Bytes(), nil
}

// FromBytes reads a set previously serialized with AsBytes and must
// consume buf entirely. The options
// apply to the returned set as they would with New; Compressed has no
// effect since an encoded universe is always strictly ascending.
func FromBytes[T constraints.Integer](buf *bytes.Reader, options ...setOption) (*Set[T], error) {
	var encoding int32
	if err := binary.Read(buf, binary.BigEndian, &encoding); err != nil {
		return nil, fmt.Errorf("%w: reading version: %v", ErrEncoding, err)
	}

	if encoding != smallEncoding {
		return nil, fmt.Errorf("%w: unsupported encoding version %d", ErrEncoding, encoding)
	}

	var n int32
	if err := binary.Read(buf, binary.BigEndian, &n); err != nil {
		return nil, fmt.Errorf("%w: reading universe length: %v", ErrEncoding, err)
	}
	if n < 0 || int64(n) > int64(buf.Len()) {
		return nil, fmt.Errorf("%w: universe length %d with %d bytes left", ErrEncoding, n, buf.Len())
	}

	universe := make([]T, n)
	var prev uint64
	for i := range universe {
		delta, err := decodeUint(buf)
		if err != nil {
			return nil, fmt.Errorf("%w: universe value %d: %v", ErrEncoding, i, err)
		}
		prev += delta
		universe[i] = T(prev)
		if uint64(universe[i]) != prev {
			return nil, fmt.Errorf("%w: universe value %d overflows the element type", ErrEncoding, i)
		}
	}

	if !IsCompressed(universe) {
		return nil, fmt.Errorf("%w: universe is not strictly ascending", ErrEncoding)
	}

	bitmap := make([]byte, (int(n)+7)/8)
	if _, err := io.ReadFull(buf, bitmap); err != nil {
		return nil, fmt.Errorf("%w: reading presence bitmap: %v", ErrEncoding, err)
	}

	if tail := n % 8; tail != 0 && bitmap[len(bitmap)-1]>>tail != 0 {
		return nil, fmt.Errorf("%w: presence bits set past the universe", ErrEncoding)
	}
	if buf.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrEncoding, buf.Len())
	}

	s, err := New(universe, options...)
	if err != nil {
		return nil, err
	}
	for i, x := range universe {
		if bitmap[i/8]&(1<<(i%8)) != 0 {
			s.Insert(x)
		}
	}

	return s, nil
}

func encodeUint(buf *bytes.Buffer, n uint64) {
	for n > 0x7f {
		buf.WriteByte(byte(0x80 | (0x7f & n)))
		n >>= 7
	}
	buf.WriteByte(byte(n))
}

func decodeUint(buf *bytes.Reader) (uint64, error) {
	var z uint64
	var shift uint
	for {
		v, err := buf.ReadByte()
		if err != nil {
			return 0, err
		}
		if shift > 63 || (shift == 63 && v > 1) {
			return 0, fmt.Errorf("varint overflows 64 bits")
		}
		z |= uint64(v&0x7f) << shift
		if v&0x80 == 0 {
			return z, nil
		}
		shift += 7
	}
}
