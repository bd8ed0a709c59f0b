package pluginabi

import (
	"github.com/standardbeagle/quickersfv/internal/checksumfile"
	"github.com/standardbeagle/quickersfv/internal/fileio"
	"github.com/standardbeagle/quickersfv/internal/hash/digest"
	"github.com/standardbeagle/quickersfv/internal/linereader"
	"github.com/standardbeagle/quickersfv/internal/provider"
)

// Adapter wraps a LoadedPlugin's vtable as a provider.ChecksumProvider,
// so a plugin-backed format slots into the same registry (and the
// same scheduler code path) as the built-in SFV/MD5 providers.
//
// Capability, extension, and description are read once at
// construction and cached: ChecksumProvider objects are immutable
// after registration (spec.md §5), so there is no need to cross the
// plugin boundary again for values that can never change.
type Adapter struct {
	plugin      *LoadedPlugin
	capability  Capability
	extensions  string
	description string
}

// NewAdapter queries a loaded plugin's static metadata and wraps it.
func NewAdapter(p *LoadedPlugin) (*Adapter, error) {
	capability, res := p.Vtbl.Capabilities()
	if err := errFromResult("get_capabilities", res); err != nil {
		return nil, err
	}
	ext, res := p.Vtbl.FileExtension()
	if err := errFromResult("file_extension", res); err != nil {
		return nil, err
	}
	desc, res := p.Vtbl.FileDescription()
	if err := errFromResult("file_description", res); err != nil {
		return nil, err
	}
	return &Adapter{plugin: p, capability: capability, extensions: ext, description: desc}, nil
}

func (a *Adapter) Capabilities() provider.Capability {
	if a.capability == CapabilityVerifyOnly {
		return provider.VerifyOnly
	}
	return provider.Full
}

func (a *Adapter) FileExtensions() string  { return a.extensions }
func (a *Adapter) FileDescription() string { return a.description }

func (a *Adapter) CreateHasher(opts provider.HasherOptions) (provider.Hasher, error) {
	h, res := a.plugin.Vtbl.CreateHasher(HasherOptions{UseSSE42: opts.UseSSE42, UseAVX512: opts.UseAVX512})
	if err := errFromResult("create_hasher", res); err != nil {
		return nil, err
	}
	return &pluginHasher{vtbl: h}, nil
}

func (a *Adapter) DigestFromString(s string) (digest.Digest, error) {
	d, res := a.plugin.Vtbl.DigestFromString(s)
	if err := errFromResult("digest_from_string", res); err != nil {
		return nil, err
	}
	return d, nil
}

// ReadFromFile drives the plugin's parser with callbacks bridged onto
// in, accumulating the entries it reports via new_entry_callback into
// a ChecksumFile.
func (a *Adapter) ReadFromFile(in fileio.FileInput) (*checksumfile.ChecksumFile, error) {
	reader := linereader.New(in)
	var result checksumfile.ChecksumFile
	var entryErr error

	cb := ReadCallbacks{
		ReadBinary: func(buf []byte) (int, CallbackResult) {
			n, eof, err := in.Read(buf)
			if err != nil {
				return n, CallbackResultFailed
			}
			if eof {
				return n, CallbackResultOk
			}
			return n, CallbackResultMoreData
		},
		SeekBinary: func(offset int64, start fileio.SeekStart) CallbackResult {
			if _, err := in.Seek(offset, start); err != nil {
				return CallbackResultFailed
			}
			return CallbackResultOk
		},
		TellBinary: func() (int64, CallbackResult) {
			pos, err := in.Tell()
			if err != nil {
				return 0, CallbackResultFailed
			}
			return pos, CallbackResultOk
		},
		ReadLineText: func() (string, CallbackResult) {
			line, ok, err := reader.ReadLine()
			if err != nil {
				entryErr = err
				return "", CallbackResultFailed
			}
			if !ok {
				return "", CallbackResultOk
			}
			return string(line), CallbackResultMoreData
		},
		NewEntry: func(filename, digestString string) CallbackResult {
			d, res := a.plugin.Vtbl.DigestFromString(digestString)
			if err := errFromResult("digest_from_string", res); err != nil {
				entryErr = err
				return CallbackResultFailed
			}
			if err := result.AddEntry(filename, d); err != nil {
				entryErr = err
				return CallbackResultFailed
			}
			return CallbackResultOk
		},
	}

	res := a.plugin.Vtbl.ReadFromFile(cb)
	if entryErr != nil {
		return nil, entryErr
	}
	if err := errFromResult("read_from_file", res); err != nil {
		return nil, err
	}
	return &result, nil
}

// WriteNewFile drives the plugin's serializer, handing it entries one
// at a time through next_entry and routing its byte writes to out.
func (a *Adapter) WriteNewFile(out fileio.FileOutput, f *checksumfile.ChecksumFile) error {
	entries := f.Entries()
	idx := 0

	cb := WriteCallbacks{
		Write: func(data []byte) CallbackResult {
			if err := out.Write(data); err != nil {
				return CallbackResultFailed
			}
			return CallbackResultOk
		},
		NextEntry: func() (string, string, bool) {
			if idx >= len(entries) {
				return "", "", false
			}
			e := entries[idx]
			idx++
			return e.Path, e.Digest.String(), true
		},
	}

	return errFromResult("write_new_file", a.plugin.Vtbl.WriteNewFile(cb))
}

// pluginHasher adapts a HasherVtbl to provider.Hasher.
type pluginHasher struct {
	vtbl *HasherVtbl
}

func (h *pluginHasher) AddData(b []byte) error {
	return errFromResult("add_data", h.vtbl.AddData(b))
}

func (h *pluginHasher) Finalize() (digest.Digest, error) {
	d, res := h.vtbl.Finalize()
	if err := errFromResult("finalize", res); err != nil {
		return nil, err
	}
	return d, nil
}

func (h *pluginHasher) Reset() {
	h.vtbl.Reset()
}
