package checksumfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/quickersfv/internal/hash/crc32"
)

func addN(t *testing.T, f *ChecksumFile, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, f.AddEntry(p, crc32.FromRaw(0)))
	}
}

func paths(f *ChecksumFile) []string {
	var out []string
	for _, e := range f.Entries() {
		out = append(out, e.Path)
	}
	return out
}

func TestAddEntryAppendsInOrder(t *testing.T) {
	var f ChecksumFile
	addN(t, &f, "c.bin", "a.bin", "b.bin")
	assert.Equal(t, []string{"c.bin", "a.bin", "b.bin"}, paths(&f))
}

func TestSortEntriesAscendingDescending(t *testing.T) {
	var f ChecksumFile
	addN(t, &f, "c.bin", "a.bin", "b.bin")

	f.SortEntries(Ascending)
	assert.Equal(t, []string{"a.bin", "b.bin", "c.bin"}, paths(&f))

	f.SortEntries(Descending)
	assert.Equal(t, []string{"c.bin", "b.bin", "a.bin"}, paths(&f))
}

func TestSortEntriesOriginalRestoresInsertionOrder(t *testing.T) {
	var f ChecksumFile
	addN(t, &f, "c.bin", "a.bin", "b.bin")

	f.SortEntries(Ascending)
	f.SortEntries(Original)
	assert.Equal(t, []string{"c.bin", "a.bin", "b.bin"}, paths(&f))
}

func TestClearRemovesAllEntries(t *testing.T) {
	var f ChecksumFile
	addN(t, &f, "a.bin")
	f.Clear()
	assert.Empty(t, f.Entries())
}

func TestAddEntryRejectsBeyondCapacity(t *testing.T) {
	original := maxEntries
	maxEntries = 2
	defer func() { maxEntries = original }()

	var f ChecksumFile
	addN(t, &f, "a.bin", "b.bin")
	err := f.AddEntry("one-too-many.bin", crc32.FromRaw(0))
	assert.Error(t, err)
}
