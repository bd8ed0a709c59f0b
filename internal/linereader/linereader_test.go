package linereader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/quickersfv/internal/fileio"
)

// memInput is a fileio.FileInput backed by an in-memory byte slice,
// used so line reader tests never touch disk.
type memInput struct {
	data []byte
	pos  int
}

func newMemInput(s string) fileio.FileInput {
	return &memInput{data: []byte(s)}
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
func (m *memInput) CurrentFile() string       { return "mem" }
func (m *memInput) Open(newFile string) error { return nil }
func (m *memInput) FileSize() (uint64, error) { return uint64(len(m.data)), nil }

func readAllLines(t *testing.T, content string) []string {
	t.Helper()
	lr := New(newMemInput(content))
	var lines []string
	for {
		line, ok, err := lr.ReadLine()
		require.NoError(t, err)
		if !ok {
			break
		}
		lines = append(lines, string(line))
	}
	assert.True(t, lr.Done())
	return lines
}

func TestReadLineSimple(t *testing.T) {
	lines := readAllLines(t, "one\ntwo\nthree\n")
	assert.Equal(t, []string{"one", "two", "three"}, lines)
}

func TestReadLineCRLF(t *testing.T) {
	lines := readAllLines(t, "one\r\ntwo\r\n")
	assert.Equal(t, []string{"one", "two"}, lines)
}

func TestReadLineNoTrailingNewline(t *testing.T) {
	lines := readAllLines(t, "one\ntwo")
	assert.Equal(t, []string{"one", "two"}, lines)
}

func TestReadLineSpanningBufferBoundary(t *testing.T) {
	// 65,535 'A's fill all but the last byte of the first 64 KiB
	// buffer and the CR takes that last byte; the LF and the next line
	// land in the second buffer, exercising the front/back
	// span-crossing path.
	content := strings.Repeat("A", 65535) + "\r\nBBB\n"
	lines := readAllLines(t, content)
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Repeat("A", 65535), lines[0])
	assert.Equal(t, "BBB", lines[1])
}

func TestReadLineInvalidUTF8Errors(t *testing.T) {
	lr := New(newMemInput("ok\n\xff\xfe\n"))
	_, ok, err := lr.ReadLine()
	require.NoError(t, err)
	require.True(t, ok)

	_, _, err = lr.ReadLine()
	require.Error(t, err)
}

func TestReadLineUnterminatedLongLineErrors(t *testing.T) {
	// No newline anywhere in a file larger than two buffers: parser error.
	content := strings.Repeat("A", 3*ReadBufferSize)
	lr := New(newMemInput(content))
	_, _, err := lr.ReadLine()
	require.Error(t, err)
}

func TestReadLineEmptyFile(t *testing.T) {
	lines := readAllLines(t, "")
	assert.Empty(t, lines)
}
