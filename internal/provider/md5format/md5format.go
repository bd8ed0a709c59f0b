// Package md5format implements the ChecksumProvider for .md5 files,
// the format written by the md5sum command line tool: a 32-character
// hex digest, a space, an asterisk, then the relative path.
package md5format

import (
	"fmt"
	"strings"

	"github.com/standardbeagle/quickersfv/internal/checksumfile"
	"github.com/standardbeagle/quickersfv/internal/errors"
	"github.com/standardbeagle/quickersfv/internal/fileio"
	"github.com/standardbeagle/quickersfv/internal/hash/digest"
	"github.com/standardbeagle/quickersfv/internal/hash/md5"
	"github.com/standardbeagle/quickersfv/internal/linereader"
	"github.com/standardbeagle/quickersfv/internal/provider"
	"github.com/standardbeagle/quickersfv/internal/utfcodec"
)

// Provider implements provider.ChecksumProvider for the .md5 format.
type Provider struct{}

// New creates an md5format Provider.
func New() *Provider {
	return &Provider{}
}

func (Provider) Capabilities() provider.Capability { return provider.Full }
func (Provider) FileExtensions() string            { return "*.md5" }
func (Provider) FileDescription() string           { return "MD5" }

func (Provider) CreateHasher(provider.HasherOptions) (provider.Hasher, error) {
	return md5.New(), nil
}

func (Provider) DigestFromString(s string) (digest.Digest, error) {
	return md5.FromString(s)
}

// ReadFromFile parses an md5sum-style file: blank lines and lines
// starting with ';' are skipped; every other line has the form
// "<32 hex chars> *<path>".
func (Provider) ReadFromFile(in fileio.FileInput) (*checksumfile.ChecksumFile, error) {
	reader := linereader.New(in)
	var f checksumfile.ChecksumFile
	for {
		line, ok, err := reader.ReadLine()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if len(line) == 0 {
			continue
		}
		if line[0] == ';' {
			continue
		}
		lineStr := string(line)
		separatorIdx := strings.IndexByte(lineStr, '*')
		if separatorIdx < 0 {
			return nil, errors.New(errors.ParserError, "md5format.ReadFromFile", fmt.Errorf("missing '*' separator in %q", lineStr))
		}
		if separatorIdx == 0 || lineStr[separatorIdx-1] != ' ' {
			return nil, errors.New(errors.ParserError, "md5format.ReadFromFile", fmt.Errorf("malformed separator in %q", lineStr))
		}
		path := string(utfcodec.TrimAllUTF([]byte(lineStr[separatorIdx+1:])))
		if strings.ContainsRune(path, '*') {
			return nil, errors.New(errors.ParserError, "md5format.ReadFromFile", fmt.Errorf("path contains '*' in %q", lineStr))
		}
		digestStr := string(utfcodec.TrimAllUTF([]byte(lineStr[:separatorIdx-1])))
		d, err := md5.FromString(digestStr)
		if err != nil {
			return nil, err
		}
		if err := f.AddEntry(path, d); err != nil {
			return nil, err
		}
	}
	return &f, nil
}

// WriteNewFile serializes f as "<MD5HEX> *<path>\n" per entry.
func (Provider) WriteNewFile(out fileio.FileOutput, f *checksumfile.ChecksumFile) error {
	for _, e := range f.Entries() {
		line := e.Digest.String() + " *" + e.Path + "\n"
		if err := out.Write([]byte(line)); err != nil {
			return err
		}
	}
	return nil
}
