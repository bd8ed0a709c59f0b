// Package linereader splits a text file into UTF-8-validated lines
// using a double-buffered 64 KiB read-ahead window, mirroring
// quicker_sfv::LineReader from the original implementation so its
// buffer-swap and span-crossing behavior carries over exactly.
package linereader

import (
	"bytes"
	"fmt"

	"github.com/standardbeagle/quickersfv/internal/errors"
	"github.com/standardbeagle/quickersfv/internal/fileio"
	"github.com/standardbeagle/quickersfv/internal/utfcodec"
)

// ReadBufferSize is the size of each of the two read-ahead buffers.
// A single line longer than ReadBufferSize bytes cannot be parsed.
const ReadBufferSize = 64 << 10

// LineReader extracts CRLF/LF-separated, UTF-8-validated lines from a
// FileInput.
type LineReader struct {
	in           fileio.FileInput
	front, back  []byte
	bufferOffset int
	fileOffset   int64
	eof          bool
}

// New wraps in for line-by-line reading.
func New(in fileio.FileInput) *LineReader {
	return &LineReader{
		in:    in,
		front: make([]byte, ReadBufferSize),
		back:  make([]byte, ReadBufferSize),
	}
}

func (r *LineReader) readMore() error {
	r.bufferOffset -= ReadBufferSize
	r.front, r.back = r.back, r.front
	r.back = r.back[:ReadBufferSize]

	n, eof, err := r.in.Read(r.back)
	if err != nil {
		return err
	}
	if eof && n == 0 {
		r.eof = true
		r.back = r.back[:0]
		return nil
	}
	r.fileOffset += int64(n)
	if eof {
		r.back = r.back[:n]
		r.eof = true
	}
	return nil
}

// ReadLine returns the next line (without its line terminator), or
// ok=false if the file has been fully consumed.
func (r *LineReader) ReadLine() (line []byte, ok bool, err error) {
	if r.Done() {
		return nil, false, nil
	}
	if r.fileOffset == 0 {
		r.bufferOffset += ReadBufferSize
		if err := r.readMore(); err != nil {
			return nil, false, err
		}
		if !r.eof {
			r.bufferOffset += ReadBufferSize
			if err := r.readMore(); err != nil {
				return nil, false, err
			}
		} else {
			r.front, r.back = r.back, r.front
			r.back = r.back[:0]
		}
		if r.Done() {
			return nil, false, nil
		}
	}

	if idx := bytes.IndexByte(r.front[r.bufferOffset:], '\n'); idx >= 0 {
		lineEnd := r.bufferOffset + idx
		lineRange := r.front[r.bufferOffset:lineEnd]
		r.bufferOffset = lineEnd + 1
		return finishLine(lineRange)
	}

	// The line spans the front/back boundary.
	idxBack := bytes.IndexByte(r.back, '\n')
	if idxBack < 0 && !r.eof {
		return nil, false, errors.New(errors.ParserError, "readLine",
			fmt.Errorf("line exceeds %d byte buffer", ReadBufferSize))
	}
	backEnd := len(r.back)
	if idxBack >= 0 {
		backEnd = idxBack
	}

	frontRemainder := r.front[r.bufferOffset:]
	if len(frontRemainder)+backEnd > ReadBufferSize {
		return nil, false, errors.New(errors.ParserError, "readLine",
			fmt.Errorf("line exceeds %d byte buffer", ReadBufferSize))
	}
	buf := make([]byte, 0, len(frontRemainder)+backEnd)
	buf = append(buf, frontRemainder...)
	buf = append(buf, r.back[:backEnd]...)
	r.bufferOffset += len(buf) + 1

	if !r.eof {
		if err := r.readMore(); err != nil {
			return nil, false, err
		}
	} else if len(r.back) > 0 {
		r.front, r.back = r.back, r.front
		r.back = r.back[:0]
		r.bufferOffset -= ReadBufferSize
	}
	return finishLine(buf)
}

func finishLine(line []byte) ([]byte, bool, error) {
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	if !utfcodec.CheckValidUTF8(line) {
		return nil, false, errors.New(errors.ParserError, "readLine", fmt.Errorf("invalid utf-8 in line"))
	}
	return line, true, nil
}

// Done reports whether the file has been fully consumed; once true,
// every subsequent ReadLine call returns ok=false.
func (r *LineReader) Done() bool {
	return r.eof && len(r.back) == 0 && r.bufferOffset >= len(r.front)
}
