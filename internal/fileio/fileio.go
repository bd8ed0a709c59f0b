// Package fileio is the scheduler's sole facility for filesystem
// access, kept as a narrow interface so the hashing and parsing code
// above it never touches *os.File directly (and so tests can swap in
// an in-memory implementation without touching disk).
package fileio

import (
	"io"
	"os"
	"path/filepath"

	"github.com/standardbeagle/quickersfv/internal/errors"
)

// SeekStart mirrors FileInput::SeekStart from the original
// implementation.
type SeekStart int

const (
	SeekCurrent SeekStart = iota
	SeekFileStart
	SeekFileEnd
)

// FileInput is the read side of the file I/O boundary. Read reports
// end-of-file through the eof return value rather than through
// io.EOF-as-error, so callers (LineReader, the hasher read-ahead
// loop) can distinguish "fewer bytes than requested, more to come on
// the next call" is never returned by this interface: once eof is
// true, every subsequent Read also returns eof=true.
type FileInput interface {
	// Read fills buf as far as data allows. eof is true when the file
	// has no more data past what was returned in n.
	Read(buf []byte) (n int, eof bool, err error)
	Seek(offset int64, start SeekStart) (int64, error)
	Tell() (int64, error)
	CurrentFile() string
	// Open switches this FileInput to a new file, resolved relative
	// to the directory of the originally opened file.
	Open(newFile string) error
	FileSize() (uint64, error)
}

// FileOutput is the write side of the file I/O boundary.
type FileOutput interface {
	Write(b []byte) error
}

// osFileInput backs FileInput with an *os.File.
type osFileInput struct {
	f    *os.File
	dir  string
	name string
}

// OpenInput opens path for reading.
func OpenInput(path string) (FileInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(errors.FileIO, "open", err).WithFile(path)
	}
	return &osFileInput{f: f, dir: filepath.Dir(path), name: filepath.Base(path)}, nil
}

func (in *osFileInput) Read(buf []byte) (int, bool, error) {
	n, err := io.ReadFull(in.f, buf)
	if err == nil {
		return n, false, nil
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return n, true, nil
	}
	return n, false, errors.New(errors.FileIO, "read", err).WithFile(in.name)
}

func (in *osFileInput) Seek(offset int64, start SeekStart) (int64, error) {
	var whence int
	switch start {
	case SeekCurrent:
		whence = io.SeekCurrent
	case SeekFileStart:
		whence = io.SeekStart
	case SeekFileEnd:
		whence = io.SeekEnd
	}
	pos, err := in.f.Seek(offset, whence)
	if err != nil {
		return 0, errors.New(errors.FileIO, "seek", err).WithFile(in.name)
	}
	return pos, nil
}

func (in *osFileInput) Tell() (int64, error) {
	return in.Seek(0, SeekCurrent)
}

func (in *osFileInput) CurrentFile() string {
	return in.name
}

func (in *osFileInput) Open(newFile string) error {
	path := filepath.Join(in.dir, newFile)
	f, err := os.Open(path)
	if err != nil {
		return errors.New(errors.FileIO, "open", err).WithFile(path)
	}
	in.f.Close()
	in.f = f
	in.name = filepath.Base(path)
	return nil
}

func (in *osFileInput) FileSize() (uint64, error) {
	st, err := in.f.Stat()
	if err != nil {
		return 0, errors.New(errors.FileIO, "stat", err).WithFile(in.name)
	}
	return uint64(st.Size()), nil
}

// Close releases the underlying OS handle.
func Close(in FileInput) error {
	if c, ok := in.(*osFileInput); ok {
		return c.f.Close()
	}
	return nil
}

// osFileOutput backs FileOutput with an *os.File.
type osFileOutput struct {
	f    *os.File
	name string
}

// CreateOutput creates (or truncates) path for writing.
func CreateOutput(path string) (FileOutput, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.New(errors.FileIO, "create", err).WithFile(path)
	}
	return &osFileOutput{f: f, name: path}, nil
}

func (out *osFileOutput) Write(b []byte) error {
	if _, err := out.f.Write(b); err != nil {
		return errors.New(errors.FileIO, "write", err).WithFile(out.name)
	}
	return nil
}

// CloseOutput releases the underlying OS handle.
func CloseOutput(out FileOutput) error {
	if c, ok := out.(*osFileOutput); ok {
		return c.f.Close()
	}
	return nil
}
