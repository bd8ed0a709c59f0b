package sfv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/quickersfv/internal/checksumfile"
	"github.com/standardbeagle/quickersfv/internal/fileio"
	"github.com/standardbeagle/quickersfv/internal/hash/crc32"
)

type memInput struct {
	data []byte
	pos  int
}

func newMemInput(s string) fileio.FileInput { return &memInput{data: []byte(s)} }

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
func (m *memInput) CurrentFile() string       { return "mem.sfv" }
func (m *memInput) Open(string) error         { return nil }
func (m *memInput) FileSize() (uint64, error) { return uint64(len(m.data)), nil }

type memOutput struct{ buf []byte }

func (o *memOutput) Write(b []byte) error {
	o.buf = append(o.buf, b...)
	return nil
}

func TestReadFromFileParsesEntriesSkipsCommentsAndBlanks(t *testing.T) {
	content := "; header comment\n\nsubdir/file one.bin 1c291ca3\nfile2.bin d202ef8d\n"
	f, err := New().ReadFromFile(newMemInput(content))
	require.NoError(t, err)
	entries := f.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "subdir/file one.bin", entries[0].Path)
	assert.Equal(t, "1c291ca3", entries[0].Digest.String())
	assert.Equal(t, "file2.bin", entries[1].Path)
}

func TestReadFromFileRejectsMalformedLine(t *testing.T) {
	_, err := New().ReadFromFile(newMemInput("short\n"))
	assert.Error(t, err)
}

func TestWriteNewFileRoundTrip(t *testing.T) {
	var f checksumfile.ChecksumFile
	require.NoError(t, f.AddEntry("a.bin", crc32.FromRaw(0x1C291CA3)))

	out := &memOutput{}
	require.NoError(t, New().WriteNewFile(out, &f))
	assert.Equal(t, "a.bin 1c291ca3\n", string(out.buf))

	parsed, err := New().ReadFromFile(newMemInput(string(out.buf)))
	require.NoError(t, err)
	assert.Equal(t, "a.bin", parsed.Entries()[0].Path)
}

func TestFileExtensionsAndCapabilities(t *testing.T) {
	p := New()
	assert.Equal(t, "*.sfv", p.FileExtensions())
	assert.Equal(t, 0, int(p.Capabilities()))
}
