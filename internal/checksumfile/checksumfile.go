// Package checksumfile holds the in-memory representation of a
// parsed or to-be-written checksum file: an ordered list of (path,
// digest) entries, mirroring quicker_sfv::ChecksumFile.
package checksumfile

import (
	"fmt"
	"sort"

	"github.com/standardbeagle/quickersfv/internal/errors"
	"github.com/standardbeagle/quickersfv/internal/hash/digest"
)

// maxEntries is the original implementation's addEntry() limit.
var maxEntries = 4294967295

// Entry is a single file-path/digest pair.
type Entry struct {
	Path   string
	Digest digest.Digest

	insertionIndex int
}

// ChecksumFile is an ordered collection of Entry values, as parsed
// from or destined for a .sfv/.md5-style file.
type ChecksumFile struct {
	entries []Entry
}

// Entries returns all entries in their current order.
func (f *ChecksumFile) Entries() []Entry {
	return f.entries
}

// AddEntry appends a new entry. At most 2^32-1 entries are permitted.
func (f *ChecksumFile) AddEntry(path string, d digest.Digest) error {
	if len(f.entries) >= maxEntries {
		return errors.New(errors.Failed, "checksumfile.AddEntry", fmt.Errorf("checksum file already holds the maximum of %d entries", maxEntries))
	}
	f.entries = append(f.entries, Entry{Path: path, Digest: d, insertionIndex: len(f.entries)})
	return nil
}

// SortMode selects the ordering SortEntries produces.
type SortMode int

const (
	// Original restores the order entries were appended in.
	Original SortMode = iota
	// Ascending sorts entries lexicographically by path.
	Ascending
	// Descending sorts entries in reverse lexicographic path order.
	Descending
)

// SortEntries reorders entries in place according to mode.
func (f *ChecksumFile) SortEntries(mode SortMode) {
	switch mode {
	case Ascending:
		sort.SliceStable(f.entries, func(i, j int) bool {
			return f.entries[i].Path < f.entries[j].Path
		})
	case Descending:
		sort.SliceStable(f.entries, func(i, j int) bool {
			return f.entries[i].Path > f.entries[j].Path
		})
	default:
		sort.SliceStable(f.entries, func(i, j int) bool {
			return f.entries[i].insertionIndex < f.entries[j].insertionIndex
		})
	}
}

// Clear removes all entries.
func (f *ChecksumFile) Clear() {
	f.entries = nil
}
