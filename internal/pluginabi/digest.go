package pluginabi

import (
	"reflect"
	"sync"
	"unsafe"

	gopointer "github.com/mattn/go-pointer"

	"github.com/standardbeagle/quickersfv/internal/hash/digest"
)

// DigestCallbacks is the four function pointers a plugin hands back
// alongside a digest's opaque user_data, per spec.md §6 ("the plugin
// allocates a user_data blob and hands the host four function
// pointers: clone, free, to_string, compare"). They operate on
// unsafe.Pointer rather than a Go value because that's the actual
// shape of the C ABI's void* user_data.
type DigestCallbacks struct {
	Clone   func(userData unsafe.Pointer) unsafe.Pointer
	Free    func(userData unsafe.Pointer)
	ToStr   func(userData unsafe.Pointer) string
	Compare func(a, b unsafe.Pointer) int8
}

// Digest is the host-side wrapper around a plugin-owned digest. It
// implements digest.Digest so plugin-backed providers slot into the
// same ChecksumFile entries as the built-in CRC-32/MD5 digests.
//
// Free must be called exactly once per live Digest (spec.md §6); once
// is enforced here with sync.Once rather than trusting every call
// site to track it, so a double-release from, say, a cancel path
// racing a normal completion can't reach the plugin twice.
type Digest struct {
	handle    unsafe.Pointer
	callbacks DigestCallbacks
	freeOnce  sync.Once
}

// NewDigest pairs a Go value with a plugin's callback set, producing
// a host-side Digest. Go forbids converting an arbitrary value to
// unsafe.Pointer directly, so the value is registered in go-pointer's
// handle table instead — the same trick a Go-implemented plugin would
// use on its own side to hand the host a void*-shaped user_data.
func NewDigest(value any, cb DigestCallbacks) *Digest {
	return &Digest{handle: gopointer.Save(value), callbacks: cb}
}

// String delegates to the plugin's to_string callback.
func (d *Digest) String() string {
	return d.callbacks.ToStr(d.handle)
}

// Equal compares two digests only when they were produced by
// callbacks from the same plugin vtable (spec.md §6: "the host must
// only pass compare two digests with matching type tags"). Comparing
// a plugin digest to any other kind of digest.Digest — a different
// plugin, or a built-in CRC-32/MD5 digest — returns false rather than
// calling into a foreign compare function with data it doesn't own.
func (d *Digest) Equal(other digest.Digest) bool {
	o, ok := other.(*Digest)
	if !ok {
		return false
	}
	if !sameCompareFn(d.callbacks.Compare, o.callbacks.Compare) {
		return false
	}
	return d.callbacks.Compare(d.handle, o.handle) == 0
}

// Clone produces an independent copy backed by the plugin's clone
// callback, for callers that need to retain a digest past the
// original's Release.
func (d *Digest) Clone() *Digest {
	return &Digest{handle: d.callbacks.Clone(d.handle), callbacks: d.callbacks}
}

// Release calls the plugin's free callback exactly once.
func (d *Digest) Release() {
	d.freeOnce.Do(func() {
		d.callbacks.Free(d.handle)
	})
}

// sameCompareFn reports whether two compare callbacks are the exact
// same function, the Go analogue of the original's "same
// function-pointer set" type-tag check: Go func values aren't
// comparable with ==, so identity is established via the underlying
// code pointer instead.
func sameCompareFn(a, b func(x, y unsafe.Pointer) int8) bool {
	if a == nil || b == nil {
		return false
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
