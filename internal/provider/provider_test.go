package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/quickersfv/internal/checksumfile"
	"github.com/standardbeagle/quickersfv/internal/fileio"
	"github.com/standardbeagle/quickersfv/internal/hash/digest"
)

type stubProvider struct{ exts string }

func (s stubProvider) Capabilities() Capability { return Full }
func (s stubProvider) FileExtensions() string   { return s.exts }
func (stubProvider) FileDescription() string    { return "stub" }
func (stubProvider) CreateHasher(HasherOptions) (Hasher, error) {
	return nil, nil
}
func (stubProvider) DigestFromString(string) (digest.Digest, error) { return nil, nil }
func (stubProvider) ReadFromFile(fileio.FileInput) (*checksumfile.ChecksumFile, error) {
	return nil, nil
}
func (stubProvider) WriteNewFile(fileio.FileOutput, *checksumfile.ChecksumFile) error { return nil }

func TestRegistryForPathMatchesExtension(t *testing.T) {
	r := NewRegistry()
	sfvP := stubProvider{exts: "*.sfv"}
	md5P := stubProvider{exts: "*.md5"}
	r.Register(sfvP)
	r.Register(md5P)

	assert.Equal(t, sfvP, r.ForPath("archive.SFV"))
	assert.Equal(t, md5P, r.ForPath("checksums.md5"))
	assert.Nil(t, r.ForPath("readme.txt"))
}

func TestRegistryForPathHandlesSemicolonList(t *testing.T) {
	r := NewRegistry()
	p := stubProvider{exts: "*.foo;*.bar"}
	r.Register(p)

	assert.Equal(t, p, r.ForPath("data.bar"))
}

func TestRegistryAllReturnsRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	p1 := stubProvider{exts: "*.a"}
	p2 := stubProvider{exts: "*.b"}
	r.Register(p1)
	r.Register(p2)
	assert.Equal(t, []ChecksumProvider{p1, p2}, r.All())
}
