package pluginabi

import (
	"strconv"
	"testing"
	"unsafe"

	gopointer "github.com/mattn/go-pointer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/quickersfv/internal/checksumfile"
	"github.com/standardbeagle/quickersfv/internal/fileio"
	"github.com/standardbeagle/quickersfv/internal/provider"
)

// fakeDigestCallbacks builds a DigestCallbacks set backed by a plain
// int, standing in for what a Go-implemented plugin would do on its
// own side of the boundary: register the value with go-pointer and
// hand back the resulting handle.
func fakeDigestCallbacks() DigestCallbacks {
	return DigestCallbacks{
		Clone: func(u unsafe.Pointer) unsafe.Pointer {
			return gopointer.Save(gopointer.Restore(u).(int))
		},
		Free: func(u unsafe.Pointer) { gopointer.Unref(u) },
		ToStr: func(u unsafe.Pointer) string {
			return strconv.Itoa(gopointer.Restore(u).(int))
		},
		Compare: func(a, b unsafe.Pointer) int8 {
			if gopointer.Restore(a).(int) == gopointer.Restore(b).(int) {
				return 0
			}
			return 1
		},
	}
}

func TestDigestStringAndEqual(t *testing.T) {
	cb := fakeDigestCallbacks()
	a := NewDigest(7, cb)
	b := NewDigest(7, cb)
	c := NewDigest(8, cb)

	assert.Equal(t, "7", a.String())
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestDigestEqualRejectsMismatchedVtables(t *testing.T) {
	a := NewDigest(7, fakeDigestCallbacks())

	// A second callback set whose compare is a different function,
	// even with identical behavior, stands in for a distinct plugin:
	// its digests never compare equal to the first set's.
	otherCb := fakeDigestCallbacks()
	otherCb.Compare = func(x, y unsafe.Pointer) int8 {
		if gopointer.Restore(x).(int) == gopointer.Restore(y).(int) {
			return 0
		}
		return 1
	}
	b := NewDigest(7, otherCb)

	assert.False(t, a.Equal(b))
}

func TestDigestFreeIsIdempotent(t *testing.T) {
	calls := 0
	cb := fakeDigestCallbacks()
	cb.Free = func(unsafe.Pointer) { calls++ }
	d := NewDigest(1, cb)

	d.Release()
	d.Release()
	d.Release()

	assert.Equal(t, 1, calls)
}

func TestDigestCloneIsIndependent(t *testing.T) {
	cb := fakeDigestCallbacks()
	d := NewDigest(5, cb)
	clone := d.Clone()

	assert.Equal(t, d.String(), clone.String())
	assert.True(t, d.Equal(clone))
}

// fakeProviderVtbl builds a ProviderVtbl implementing a trivial
// "name=digest" line format, enough to exercise the Adapter's
// callback bridging without a real compiled plugin module.
func fakeProviderVtbl() *ProviderVtbl {
	cb := fakeDigestCallbacks()
	return &ProviderVtbl{
		Capabilities:    func() (Capability, Result) { return CapabilityFull, ResultOK },
		FileExtension:   func() (string, Result) { return "*.fake", ResultOK },
		FileDescription: func() (string, Result) { return "Fake Format", ResultOK },
		CreateHasher: func(HasherOptions) (*HasherVtbl, Result) {
			var sum int
			return &HasherVtbl{
				AddData: func(b []byte) Result {
					for _, c := range b {
						sum += int(c)
					}
					return ResultOK
				},
				Finalize: func() (*Digest, Result) { return NewDigest(sum, cb), ResultOK },
				Reset:    func() Result { sum = 0; return ResultOK },
			}, ResultOK
		},
		DigestFromString: func(s string) (*Digest, Result) {
			n, err := strconv.Atoi(s)
			if err != nil {
				return nil, ResultFailed
			}
			return NewDigest(n, cb), ResultOK
		},
		ReadFromFile: func(rcb ReadCallbacks) Result {
			for {
				line, cr := rcb.ReadLineText()
				if cr == CallbackResultFailed {
					return ResultFailed
				}
				if cr == CallbackResultOk {
					return ResultOK
				}
				idx := -1
				for i, r := range line {
					if r == '=' {
						idx = i
						break
					}
				}
				if idx < 0 {
					return ResultFailed
				}
				if rcb.NewEntry(line[:idx], line[idx+1:]) != CallbackResultOk {
					return ResultFailed
				}
			}
		},
		WriteNewFile: func(wcb WriteCallbacks) Result {
			for {
				name, digestStr, ok := wcb.NextEntry()
				if !ok {
					return ResultOK
				}
				if wcb.Write([]byte(name+"="+digestStr+"\n")) != CallbackResultOk {
					return ResultFailed
				}
			}
		},
	}
}

type memInput struct {
	data []byte
	pos  int
}

func (m *memInput) Read(buf []byte) (int, bool, error) {
	if m.pos >= len(m.data) {
		return 0, true, nil
	}
	n := copy(buf, m.data[m.pos:])
	m.pos += n
	return n, m.pos >= len(m.data), nil
}
func (m *memInput) Seek(offset int64, start fileio.SeekStart) (int64, error) {
	m.pos = int(offset)
	return int64(m.pos), nil
}
func (m *memInput) Tell() (int64, error)      { return int64(m.pos), nil }
func (m *memInput) CurrentFile() string       { return "mem.fake" }
func (m *memInput) Open(string) error         { return nil }
func (m *memInput) FileSize() (uint64, error) { return uint64(len(m.data)), nil }

type memOutput struct{ buf []byte }

func (o *memOutput) Write(b []byte) error {
	o.buf = append(o.buf, b...)
	return nil
}

func TestAdapterReadFromFileBridgesCallbacks(t *testing.T) {
	a, err := NewAdapter(&LoadedPlugin{Path: "fake", Vtbl: fakeProviderVtbl()})
	require.NoError(t, err)

	assert.Equal(t, "*.fake", a.FileExtensions())
	assert.Equal(t, "Fake Format", a.FileDescription())

	in := &memInput{data: []byte("alpha=3\nbeta=5\n")}
	f, err := a.ReadFromFile(in)
	require.NoError(t, err)
	entries := f.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "alpha", entries[0].Path)
	assert.Equal(t, "3", entries[0].Digest.String())
	assert.Equal(t, "beta", entries[1].Path)
}

func TestAdapterWriteNewFileBridgesCallbacks(t *testing.T) {
	a, err := NewAdapter(&LoadedPlugin{Path: "fake", Vtbl: fakeProviderVtbl()})
	require.NoError(t, err)

	var f checksumfile.ChecksumFile
	d, _ := a.DigestFromString("9")
	require.NoError(t, f.AddEntry("gamma", d))

	out := &memOutput{}
	require.NoError(t, a.WriteNewFile(out, &f))
	assert.Equal(t, "gamma=9\n", string(out.buf))
}

func TestAdapterHasherAddDataAndFinalize(t *testing.T) {
	a, err := NewAdapter(&LoadedPlugin{Path: "fake", Vtbl: fakeProviderVtbl()})
	require.NoError(t, err)

	h, err := a.CreateHasher(provider.HasherOptions{})
	require.NoError(t, err)
	require.NoError(t, h.AddData([]byte{1, 2, 3}))
	d, err := h.Finalize()
	require.NoError(t, err)
	assert.Equal(t, "6", d.String())
}
