// Package provider defines the ChecksumProvider boundary between a
// checksum file format (SFV, MD5SUMS, or a plugin-supplied format)
// and the scheduler that drives it, plus a registry that resolves a
// candidate file path to the provider that understands it.
package provider

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/quickersfv/internal/checksumfile"
	"github.com/standardbeagle/quickersfv/internal/errors"
	"github.com/standardbeagle/quickersfv/internal/fileio"
	"github.com/standardbeagle/quickersfv/internal/hash/digest"
)

// Capability describes what a ChecksumProvider can be used for.
type Capability int

const (
	// Full supports both reading and writing checksum files.
	Full Capability = iota
	// VerifyOnly supports reading but WriteNewFile always fails.
	VerifyOnly
)

// HasherOptions configures the acceleration tiers a created Hasher is
// permitted to use, mirroring quicker_sfv::HasherOptions.
type HasherOptions struct {
	UseSSE42  bool
	UseAVX512 bool
}

// Hasher is the common shape of every checksum algorithm's streaming
// implementation.
type Hasher interface {
	AddData(data []byte) error
	Finalize() (digest.Digest, error)
	Reset()
}

// ChecksumProvider understands one checksum file format end to end:
// creating a matching Hasher, parsing digest strings, and
// reading/writing whole checksum files.
type ChecksumProvider interface {
	Capabilities() Capability
	// FileExtensions is a semicolon-separated list of "*.ext" glob
	// patterns this provider's format is associated with.
	FileExtensions() string
	FileDescription() string
	CreateHasher(opt HasherOptions) (Hasher, error)
	DigestFromString(s string) (digest.Digest, error)
	ReadFromFile(in fileio.FileInput) (*checksumfile.ChecksumFile, error)
	WriteNewFile(out fileio.FileOutput, f *checksumfile.ChecksumFile) error
}

// Registry resolves a candidate file path to the ChecksumProvider
// registered for a matching extension pattern.
type Registry struct {
	providers []ChecksumProvider
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds p to the registry.
func (r *Registry) Register(p ChecksumProvider) {
	r.providers = append(r.providers, p)
}

// All returns every registered provider, in registration order.
func (r *Registry) All() []ChecksumProvider {
	return r.providers
}

// ForPath returns the first registered provider whose FileExtensions
// glob patterns match path's base name, or nil if none match.
func (r *Registry) ForPath(path string) ChecksumProvider {
	base := strings.ToLower(filepath.Base(path))
	for _, p := range r.providers {
		for _, pattern := range strings.Split(p.FileExtensions(), ";") {
			pattern = strings.ToLower(strings.TrimSpace(pattern))
			if pattern == "" {
				continue
			}
			if ok, _ := doublestar.Match(pattern, base); ok {
				return p
			}
		}
	}
	return nil
}

// ErrUnsupportedWrite is returned by VerifyOnly providers'
// WriteNewFile.
func ErrUnsupportedWrite(op string) error {
	return errors.New(errors.Failed, op, fmt.Errorf("provider does not support writing checksum files"))
}
