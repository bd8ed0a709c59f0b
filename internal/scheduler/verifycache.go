package scheduler

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// VerifyCache remembers the last verified outcome of a file keyed by
// its path, size, and modification time, so a repeat verify of an
// unchanged tree can report Ok without re-reading the file's bytes.
// This is supplemental to spec.md's verify path, which always
// re-hashes: the cache is opt-in (VerifyOp.Cache is nil by default)
// and only ever short-circuits a lookup to the same Ok result a full
// hash would have produced, never substituting for the digest a
// caller actually asked to see computed.
//
// Mirrors the teacher's FileContentStore.FastHash pre-check pattern:
// a cheap hash of cheap-to-obtain metadata gates an expensive
// authoritative computation.
type VerifyCache struct {
	mu      sync.Mutex
	entries map[uint64]CompletionStatus
}

// NewVerifyCache creates an empty VerifyCache.
func NewVerifyCache() *VerifyCache {
	return &VerifyCache{entries: make(map[uint64]CompletionStatus)}
}

// Lookup reports the cached status for (path, size, modUnixNano), if
// any.
func (c *VerifyCache) Lookup(path string, size uint64, modUnixNano int64) (CompletionStatus, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	status, ok := c.entries[verifyCacheKey(path, size, modUnixNano)]
	return status, ok
}

// Store records the verified status for (path, size, modUnixNano).
// Only StatusOk is worth recording: a Bad or Missing result must
// always be re-checked, since fixing the file changes its mtime and
// invalidates the key anyway.
func (c *VerifyCache) Store(path string, size uint64, modUnixNano int64, status CompletionStatus) {
	if status != StatusOk {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[verifyCacheKey(path, size, modUnixNano)] = status
}

func verifyCacheKey(path string, size uint64, modUnixNano int64) uint64 {
	h := xxhash.New()
	h.WriteString(path)
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], size)
	binary.LittleEndian.PutUint64(buf[8:], uint64(modUnixNano))
	h.Write(buf[:])
	return h.Sum64()
}
