// Package regfloat converts IEEE-754 binary32 values to and from the pair of
// big-endian 16-bit holding registers the controller stores them in.
// No IO. No state.
package regfloat

import (
	"fmt"
	"math"
)

// Words is the number of holding registers one float occupies.
const Words = 2

// Decode reinterprets hi followed by lo as a binary32.
// Every bit pattern is a legal result, NaN and Inf included.
func Decode(hi, lo uint16) float32 {
	return math.Float32frombits(uint32(hi)<<16 | uint32(lo))
}

// Encode splits v into its high and low register words.
// Decode(Encode(v)) is bit-identical to v.
func Encode(v float32) (hi, lo uint16) {
	bits := math.Float32bits(v)
	return uint16(bits >> 16), uint16(bits)
}

// DecodeWords decodes a register pair as read from the device.
func DecodeWords(words []uint16) (float32, error) {
	if len(words) != Words {
		return 0, fmt.Errorf("regfloat: want %d words, got %d", Words, len(words))
	}
	return Decode(words[0], words[1]), nil
}

// EncodeWords returns v as a register pair ready to be written.
func EncodeWords(v float32) []uint16 {
	hi, lo := Encode(v)
	return []uint16{hi, lo}
}
