package ordstat

import (
	"bytes"
	"errors"
	"math"
	"testing"

	rng "github.com/leesper/go_rng"
)

func TestEncodeDecode(t *testing.T) {
	testUints := []uint64{0, 10, 100, 1000, 10000, 65535, 2147483647, math.MaxUint64}
	buf := new(bytes.Buffer)

	for _, i := range testUints {
		encodeUint(buf, i)
	}

	readBuf := bytes.NewReader(buf.Bytes())
	for _, i := range testUints {
		j, err := decodeUint(readBuf)

		if err != nil || i != j {
			t.Errorf("Basic encode/decode failed. Got %d (%v), wanted %d", j, err, i)
		}
	}

	if _, err := decodeUint(bytes.NewReader([]byte{0x80})); err == nil {
		t.Errorf("Decoding a truncated varint should fail")
	}

	overflow := bytes.Repeat([]byte{0xff}, 10)
	overflow = append(overflow, 0x01)
	if _, err := decodeUint(bytes.NewReader(overflow)); err == nil {
		t.Errorf("Decoding a varint wider than 64 bits should fail")
	}
}

func TestSerialization(t *testing.T) {
	gen := rng.NewUniformGenerator(0xDEADBEEF)

	raw := make([]int64, 500)
	for i := range raw {
		raw[i] = gen.Int64()
		if gen.Int64n(2) == 0 {
			raw[i] = -raw[i]
		}
	}
	raw = append(raw, math.MinInt64, math.MaxInt64, 0, -1)

	s1, _ := New(raw, Compressed())
	for i, x := range s1.Universe() {
		if i%3 != 0 {
			s1.Insert(x)
		}
	}

	serialized, err := AsBytes(s1)
	if err != nil {
		t.Fatalf("AsBytes() failed: %s", err)
	}

	s2, err := FromBytes[int64](bytes.NewReader(serialized))
	if err != nil {
		t.Fatalf("FromBytes() failed: %s", err)
	}

	u1, u2 := s1.Universe(), s2.Universe()
	if len(u1) != len(u2) || s1.Len() != s2.Len() {
		t.Fatalf("Deserialized to something different. s1=%s s2=%s", s1, s2)
	}
	for i := range u1 {
		if u1[i] != u2[i] || s1.Contains(u1[i]) != s2.Contains(u2[i]) {
			t.Fatalf("Mismatch at position %d: %d (%v) != %d (%v)", i, u1[i], s1.Contains(u1[i]), u2[i], s2.Contains(u2[i]))
		}
	}
}

func TestSerializationSmallTypes(t *testing.T) {
	s1, _ := New([]int8{-128, -3, 0, 5, 127})
	s1.Insert(-128)
	s1.Insert(127)

	serialized, _ := AsBytes(s1)
	s2, err := FromBytes[int8](bytes.NewReader(serialized))
	if err != nil {
		t.Fatalf("FromBytes() failed: %s", err)
	}
	if !s2.Contains(-128) || !s2.Contains(127) || s2.Len() != 2 {
		t.Errorf("Deserialized to something different: %s", s2)
	}

	if _, err := FromBytes[uint8](bytes.NewReader(serialized)); !errors.Is(err, ErrEncoding) {
		t.Errorf("Decoding negative values into an unsigned type should fail. Got %v", err)
	}
}

func TestSerializationEmpty(t *testing.T) {
	s1, _ := New([]int{})

	serialized, err := AsBytes(s1)
	if err != nil {
		t.Fatalf("AsBytes() failed: %s", err)
	}
	s2, err := FromBytes[int](bytes.NewReader(serialized))
	if err != nil || s2.Len() != 0 || len(s2.Universe()) != 0 {
		t.Errorf("Empty set did not round-trip: %v (%v)", s2, err)
	}
}

func TestFromBytesErrors(t *testing.T) {
	s, _ := New([]int{1, 2, 3})
	s.Insert(2)
	valid, _ := AsBytes(s)

	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", nil},
		{"bad version", append([]byte{0, 0, 0, 9}, valid[4:]...)},
		{"truncated length", valid[:6]},
		{"negative length", append(append([]byte{}, valid[:4]...), 0xff, 0xff, 0xff, 0xff)},
		{"missing bitmap", valid[:len(valid)-1]},
		{"not ascending", append(append([]byte{}, valid[:8]...), 2, 0, 1, 0)},
		{"trailing bytes", append(append([]byte{}, valid...), 0)},
		{"bits past the universe", append(append([]byte{}, valid[:len(valid)-1]...), valid[len(valid)-1]|0x08)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromBytes[int](bytes.NewReader(tt.input)); !errors.Is(err, ErrEncoding) {
				t.Errorf("Expected ErrEncoding. Got %v", err)
			}
		})
	}
}
