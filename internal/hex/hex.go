// Package hex converts single bytes to and from pairs of ASCII hex
// characters, the same narrow operation quicker_sfv's
// string_conversion helper provides for digest string formatting.
package hex

import (
	"fmt"

	"github.com/standardbeagle/quickersfv/internal/errors"
)

// Nibbles is the hex representation of one byte's two 4-bit halves.
type Nibbles struct {
	Higher byte
	Lower  byte
}

func hexCharToNibble(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	default:
		return 0, errors.New(errors.ParserError, "hexCharToNibble", fmt.Errorf("invalid hex digit %q", c))
	}
}

func nibbleToHexChar(b byte) byte {
	if b < 10 {
		return b + '0'
	}
	return b - 10 + 'a'
}

// StrToByte converts a pair of ASCII hex characters to a byte.
func StrToByte(higher, lower byte) (byte, error) {
	h, err := hexCharToNibble(higher)
	if err != nil {
		return 0, err
	}
	l, err := hexCharToNibble(lower)
	if err != nil {
		return 0, err
	}
	return (h << 4) | l, nil
}

// ByteToStr converts a byte to its two ASCII hex characters.
func ByteToStr(b byte) Nibbles {
	return Nibbles{
		Higher: nibbleToHexChar((b & 0xf0) >> 4),
		Lower:  nibbleToHexChar(b & 0x0f),
	}
}

// Encode renders b as two lowercase hex characters and appends them to dst.
func Encode(dst []byte, b byte) []byte {
	n := ByteToStr(b)
	return append(dst, n.Higher, n.Lower)
}
