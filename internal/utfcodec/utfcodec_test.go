package utfcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeUTF8ASCII(t *testing.T) {
	r := DecodeUTF8([]byte("A"))
	assert.Equal(t, DecodeResult{CodeUnitsConsumed: 1, CodePoint: 'A'}, r)
}

func TestDecodeUTF8Multibyte(t *testing.T) {
	// "é" = U+00E9, encoded as 0xC3 0xA9
	r := DecodeUTF8([]byte{0xC3, 0xA9})
	assert.Equal(t, uint32(2), r.CodeUnitsConsumed)
	assert.Equal(t, rune(0xE9), r.CodePoint)
}

func TestDecodeUTF8TruncatedSequence(t *testing.T) {
	r := DecodeUTF8([]byte{0xE2, 0x82}) // truncated € (missing 3rd byte)
	assert.Zero(t, r.CodeUnitsConsumed)
}

func TestDecodeUTF8StrayContinuationByte(t *testing.T) {
	r := DecodeUTF8([]byte{0x80})
	assert.Zero(t, r.CodeUnitsConsumed)
}

func TestDecodeUTF16SurrogatePair(t *testing.T) {
	// U+1F600 (grinning face) encodes as high=0xD83D low=0xDE00
	r := DecodeUTF16([]uint16{0xD83D, 0xDE00})
	assert.Equal(t, uint32(2), r.CodeUnitsConsumed)
	assert.Equal(t, rune(0x1F600), r.CodePoint)
}

func TestDecodeUTF16UnpairedLowSurrogateErrors(t *testing.T) {
	r := DecodeUTF16([]uint16{0xDE00})
	assert.Zero(t, r.CodeUnitsConsumed)
}

func TestDecodeUTF16NonStrictPassesThroughUnpairedSurrogate(t *testing.T) {
	r := DecodeUTF16NonStrict([]uint16{0xDE00})
	assert.Equal(t, uint32(1), r.CodeUnitsConsumed)
	assert.Equal(t, rune(0xDE00), r.CodePoint)
}

func TestRoundTripUTF8ToUTF16(t *testing.T) {
	input := []byte("Hello, 世界!")
	u16 := ConvertToUTF16(input)
	back := ConvertToUTF8(u16)
	assert.Equal(t, input, back)
}

func TestCheckValidUTF8(t *testing.T) {
	assert.True(t, CheckValidUTF8([]byte("Hello, 世界!")))
	assert.False(t, CheckValidUTF8([]byte{0xFF, 0xFE}))
}

func TestTrimAllUTF(t *testing.T) {
	assert.Equal(t, []byte("hello"), TrimAllUTF([]byte("  \t hello \r\n")))
	assert.Equal(t, []byte{}, TrimAllUTF([]byte("   ")))
	assert.Equal(t, []byte("mid dle"), TrimAllUTF([]byte("mid dle")))
}

func TestEncodeUTF32ToUTF8RoundTrip(t *testing.T) {
	for _, r := range []rune{'A', 0xE9, 0x4e16, 0x1F600} {
		e := EncodeUTF32ToUTF8(r)
		d := DecodeUTF8(e.Bytes[:e.NumberOfCodeUnits])
		assert.Equal(t, r, d.CodePoint)
	}
}
