// Package sfv implements the ChecksumProvider for .sfv files: one
// line per entry, a relative path followed by its CRC-32 checksum.
package sfv

import (
	"fmt"
	"strings"

	"github.com/standardbeagle/quickersfv/internal/checksumfile"
	"github.com/standardbeagle/quickersfv/internal/errors"
	"github.com/standardbeagle/quickersfv/internal/fileio"
	"github.com/standardbeagle/quickersfv/internal/hash/crc32"
	"github.com/standardbeagle/quickersfv/internal/hash/digest"
	"github.com/standardbeagle/quickersfv/internal/linereader"
	"github.com/standardbeagle/quickersfv/internal/provider"
	"github.com/standardbeagle/quickersfv/internal/utfcodec"
)

// Provider implements provider.ChecksumProvider for the .sfv format.
type Provider struct{}

// New creates an sfv Provider.
func New() *Provider {
	return &Provider{}
}

func (Provider) Capabilities() provider.Capability { return provider.Full }
func (Provider) FileExtensions() string            { return "*.sfv" }
func (Provider) FileDescription() string           { return "Sfv File" }

func (Provider) CreateHasher(opt provider.HasherOptions) (provider.Hasher, error) {
	return crc32.New(crc32.Options{UseSSE42: opt.UseSSE42, UseAVX512: opt.UseAVX512}), nil
}

func (Provider) DigestFromString(s string) (digest.Digest, error) {
	return crc32.FromString(s)
}

// ReadFromFile parses a .sfv file: blank lines and lines starting
// with ';' are skipped; every other line must end in a space
// followed by an 8-character CRC-32 hex value, everything before that
// (trimmed) being the entry's path.
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
		trimmed := string(utfcodec.TrimAllUTF(line))
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ";") {
			continue
		}
		if len(trimmed) < 10 {
			return nil, errors.New(errors.ParserError, "sfv.ReadFromFile", fmt.Errorf("line too short: %q", trimmed))
		}
		separatorIdx := len(trimmed) - 8
		if trimmed[separatorIdx-1] != ' ' {
			return nil, errors.New(errors.ParserError, "sfv.ReadFromFile", fmt.Errorf("missing separator before checksum in %q", trimmed))
		}
		path := string(utfcodec.TrimAllUTF([]byte(trimmed[:separatorIdx-1])))
		if path == "" {
			return nil, errors.New(errors.ParserError, "sfv.ReadFromFile", fmt.Errorf("empty path in %q", trimmed))
		}
		d, err := crc32.FromString(trimmed[separatorIdx:])
		if err != nil {
			return nil, err
		}
		if err := f.AddEntry(path, d); err != nil {
			return nil, err
		}
	}
	return &f, nil
}

// WriteNewFile serializes f as "<path> <CRC32HEX>\n" per entry.
func (Provider) WriteNewFile(out fileio.FileOutput, f *checksumfile.ChecksumFile) error {
	for _, e := range f.Entries() {
		line := e.Path + " " + e.Digest.String() + "\n"
		if err := out.Write([]byte(line)); err != nil {
			return err
		}
	}
	return nil
}
