// Package md5 implements the MD5 checksum behind quicker_sfv's
// tiered Hasher interface, delegating the actual computation to the
// standard library the way the original delegates to OpenSSL.
package md5

import (
	"crypto/md5"
	"fmt"
	"hash"

	"github.com/standardbeagle/quickersfv/internal/errors"
	"github.com/standardbeagle/quickersfv/internal/hash/digest"
	hexconv "github.com/standardbeagle/quickersfv/internal/hex"
)

// Hasher computes a running MD5 checksum.
type Hasher struct {
	h hash.Hash
}

// New creates an MD5 Hasher. MD5 has no CPU-dispatched acceleration
// tiers, so unlike crc32.New it takes no options.
func New() *Hasher {
	return &Hasher{h: md5.New()}
}

func (h *Hasher) AddData(data []byte) error {
	if _, err := h.h.Write(data); err != nil {
		return errors.New(errors.HasherFailure, "md5.AddData", err)
	}
	return nil
}

func (h *Hasher) Finalize() (digest.Digest, error) {
	var d Digest
	h.h.Sum(d.data[:0])
	return d, nil
}

func (h *Hasher) Reset() {
	h.h.Reset()
}

// Digest is an MD5 checksum value.
type Digest struct {
	data [16]byte
}

// FromString parses a 32-character hex MD5 sum.
func FromString(s string) (Digest, error) {
	if len(s) != 32 {
		return Digest{}, errors.New(errors.ParserError, "md5.FromString", fmt.Errorf("expected 32 hex characters, got %d", len(s)))
	}
	var d Digest
	b := []byte(s)
	for i := range d.data {
		v, err := hexconv.StrToByte(b[i*2], b[i*2+1])
		if err != nil {
			return Digest{}, errors.New(errors.ParserError, "md5.FromString", err)
		}
		d.data[i] = v
	}
	return d, nil
}

func (d Digest) String() string {
	out := make([]byte, 0, 32)
	for _, b := range d.data {
		out = hexconv.Encode(out, b)
	}
	return string(out)
}

func (d Digest) Equal(other digest.Digest) bool {
	o, ok := other.(Digest)
	return ok && o.data == d.data
}
