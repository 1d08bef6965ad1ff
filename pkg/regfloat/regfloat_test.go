package regfloat

import (
	"math"
	"testing"

	"gotest.tools/v3/assert"
)

func TestDecode_KnownVector(t *testing.T) {
	assert.Equal(t, Decode(0x461C, 0x4000), float32(10000.0))
}

func TestEncode_KnownVector(t *testing.T) {
	hi, lo := Encode(10000.0)
	assert.Equal(t, hi, uint16(0x461C))
	assert.Equal(t, lo, uint16(0x4000))
}

func TestRoundTrip_BitPatterns(t *testing.T) {
	patterns := []uint32{
		0x00000000, // +0
		0x80000000, // -0
		0x00000001, // smallest subnormal
		0x807FFFFF, // largest negative subnormal
		0x7F800000, // +Inf
		0xFF800000, // -Inf
		0x7FC00000, // quiet NaN
		0x7FA00001, // signalling NaN with payload
		0xFFC12345, // negative NaN with payload
		0x41BC0000, // 23.5
		0x7F7FFFFF, // max finite
	}

	for _, bits := range patterns {
		v := math.Float32frombits(bits)
		hi, lo := Encode(v)
		got := math.Float32bits(Decode(hi, lo))
		if got != bits {
			t.Fatalf("round trip 0x%08X: got 0x%08X", bits, got)
		}
	}
}

func TestRoundTrip_Sweep(t *testing.T) {
	// Walk the bit space with a stride co-prime to 2^32.
	const stride = 0x9E3779B1
	bits := uint32(0)
	for i := 0; i < 1<<16; i++ {
		hi, lo := Encode(math.Float32frombits(bits))
		if got := math.Float32bits(Decode(hi, lo)); got != bits {
			t.Fatalf("round trip 0x%08X: got 0x%08X", bits, got)
		}
		bits += stride
	}
}

func TestDecodeWords_Length(t *testing.T) {
	_, err := DecodeWords([]uint16{0x461C})
	assert.ErrorContains(t, err, "want 2 words")

	v, err := DecodeWords(EncodeWords(-1999))
	assert.NilError(t, err)
	assert.Equal(t, v, float32(-1999))
}
