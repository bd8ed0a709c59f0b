// Package crc32 implements the CRC-32/ISO-HDLC checksum (the
// classic zlib/PNG/gzip CRC-32) behind quicker_sfv's tiered Hasher
// interface: a scalar table path and two CPU-gated accelerated paths
// that consume 8 and 16 bytes per loop iteration respectively.
package crc32

import (
	"fmt"

	"github.com/standardbeagle/quickersfv/internal/errors"
	"github.com/standardbeagle/quickersfv/internal/hash/digest"
	hexconv "github.com/standardbeagle/quickersfv/internal/hex"
)

// Options configures which acceleration tiers a Hasher is permitted
// to use; actual use is further gated by what the running CPU
// supports.
type Options struct {
	UseSSE42  bool
	UseAVX512 bool
}

// Hasher computes a running CRC-32/ISO-HDLC checksum.
type Hasher struct {
	state     uint32
	useAVX512 bool
	useSSE42  bool
}

// initState is CRC-32/ISO-HDLC's seed value; the algorithm also XORs
// the running state with this same value once more at the end
// (Finalize) to produce the output digest.
const initState = 0xFFFFFFFF

// New creates a Hasher honoring opt, downgrading to whatever tiers
// the current CPU actually supports.
func New(opt Options) *Hasher {
	return &Hasher{
		state:     initState,
		useAVX512: opt.UseAVX512 && supportsAVX512(),
		useSSE42:  opt.UseSSE42 && supportsSSE42(),
	}
}

func (h *Hasher) AddData(data []byte) error {
	switch {
	case h.useAVX512:
		h.state = crcSliced(table16, h.state, data)
	case h.useSSE42:
		h.state = crcSliced(table8, h.state, data)
	default:
		h.state = crcScalar(h.state, data)
	}
	return nil
}

func (h *Hasher) Finalize() (digest.Digest, error) {
	return Digest{data: h.state ^ initState}, nil
}

func (h *Hasher) Reset() {
	h.state = initState
}

// Digest is a CRC-32/ISO-HDLC checksum value.
type Digest struct {
	data uint32
}

// FromRaw wraps a raw CRC-32 value.
func FromRaw(d uint32) Digest {
	return Digest{data: d}
}

// FromString parses an 8-character hex CRC-32, as found in .sfv
// files, into a Digest.
func FromString(s string) (Digest, error) {
	if len(s) != 8 {
		return Digest{}, errors.New(errors.ParserError, "crc32.FromString", fmt.Errorf("expected 8 hex characters, got %d", len(s)))
	}
	b := []byte(s)
	conv := func(hi, lo byte) (uint32, error) {
		v, err := hexconv.StrToByte(hi, lo)
		return uint32(v), err
	}
	b0, err := conv(b[0], b[1])
	if err != nil {
		return Digest{}, errors.New(errors.ParserError, "crc32.FromString", err)
	}
	b1, err := conv(b[2], b[3])
	if err != nil {
		return Digest{}, errors.New(errors.ParserError, "crc32.FromString", err)
	}
	b2, err := conv(b[4], b[5])
	if err != nil {
		return Digest{}, errors.New(errors.ParserError, "crc32.FromString", err)
	}
	b3, err := conv(b[6], b[7])
	if err != nil {
		return Digest{}, errors.New(errors.ParserError, "crc32.FromString", err)
	}
	return Digest{data: (b0 << 24) | (b1 << 16) | (b2 << 8) | b3}, nil
}

// String renders the digest as 8 hex characters, reading the raw
// little-endian uint32 byte-by-byte from most- to least-significant
// byte, matching the original CrcDigest::toString().
func (d Digest) String() string {
	raw := [4]byte{
		byte(d.data),
		byte(d.data >> 8),
		byte(d.data >> 16),
		byte(d.data >> 24),
	}
	out := make([]byte, 0, 8)
	for i := len(raw) - 1; i >= 0; i-- {
		out = hexconv.Encode(out, raw[i])
	}
	return string(out)
}

func (d Digest) Equal(other digest.Digest) bool {
	o, ok := other.(Digest)
	return ok && o.data == d.data
}
