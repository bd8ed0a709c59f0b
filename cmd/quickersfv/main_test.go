package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/quickersfv/internal/provider"
	"github.com/standardbeagle/quickersfv/internal/provider/md5format"
	"github.com/standardbeagle/quickersfv/internal/provider/sfv"
	"github.com/standardbeagle/quickersfv/internal/scheduler"
)

func testRegistry() *provider.Registry {
	reg := provider.NewRegistry()
	reg.Register(sfv.New())
	reg.Register(md5format.New())
	return reg
}

func TestResolveProviderByPathExtension(t *testing.T) {
	reg := testRegistry()

	p, err := resolveProvider(reg, "checksums.sfv", "")
	require.NoError(t, err)
	assert.Equal(t, "Sfv File", p.FileDescription())

	p, err = resolveProvider(reg, "checksums.md5", "")
	require.NoError(t, err)
	assert.Equal(t, "MD5", p.FileDescription())
}

func TestResolveProviderByExplicitFormat(t *testing.T) {
	reg := testRegistry()

	p, err := resolveProvider(reg, "out.unusual", "md5")
	require.NoError(t, err)
	assert.Equal(t, "MD5", p.FileDescription())

	p, err = resolveProvider(reg, "out.unusual", ".sfv")
	require.NoError(t, err)
	assert.Equal(t, "Sfv File", p.FileDescription())
}

func TestResolveProviderReturnsErrorWhenNothingMatches(t *testing.T) {
	reg := testRegistry()

	_, err := resolveProvider(reg, "checksums.xyz", "")
	assert.Error(t, err)

	_, err = resolveProvider(reg, "out.xyz", "xyz")
	assert.Error(t, err)
}

func TestCapabilityLabel(t *testing.T) {
	assert.Equal(t, "verify+create", capabilityLabel(provider.Full))
	assert.Equal(t, "verify-only", capabilityLabel(provider.VerifyOnly))
}

func TestSummarizeReturnsErrorOnBadOrMissing(t *testing.T) {
	assert.NoError(t, summarize(scheduler.Result{Total: 2, Ok: 2}))
	assert.Error(t, summarize(scheduler.Result{Total: 2, Ok: 1, Bad: 1}))
	assert.Error(t, summarize(scheduler.Result{Total: 2, Ok: 1, Missing: 1}))
	assert.Error(t, summarize(scheduler.Result{Total: 1, WasCanceled: true}))
}
