package pluginabi

import "github.com/standardbeagle/quickersfv/internal/fileio"

// HasherVtbl mirrors IQuickerSFV_Hasher_Vtbl.
type HasherVtbl struct {
	AddData  func(data []byte) Result
	Finalize func() (*Digest, Result)
	Reset    func() Result
}

// ReadCallbacks are the host-supplied callbacks a plugin drives while
// parsing a checksum file, mirroring the read_file_binary/
// seek_file_binary/tell_file_binary/read_line_text/new_entry_callback
// parameters of IQuickerSFV_ChecksumProvider_Vtbl::ReadFromFile.
type ReadCallbacks struct {
	ReadBinary   func(buf []byte) (n int, cr CallbackResult)
	SeekBinary   func(offset int64, start fileio.SeekStart) CallbackResult
	TellBinary   func() (pos int64, cr CallbackResult)
	ReadLineText func() (line string, cr CallbackResult)
	NewEntry     func(filename, digestString string) CallbackResult
}

// WriteCallbacks are the host-supplied callbacks a plugin drives
// while serializing a checksum file, mirroring the Write/next_entry
// parameters of IQuickerSFV_ChecksumProvider_Vtbl::WriteNewFile.
type WriteCallbacks struct {
	Write     func(data []byte) CallbackResult
	NextEntry func() (filename, digestString string, ok bool)
}

// ProviderVtbl mirrors IQuickerSFV_ChecksumProvider_Vtbl. A plugin's
// exported factory returns one of these; the host never calls a
// plugin through anything else.
type ProviderVtbl struct {
	Capabilities     func() (Capability, Result)
	FileExtension    func() (string, Result)
	FileDescription  func() (string, Result)
	CreateHasher     func(opts HasherOptions) (*HasherVtbl, Result)
	DigestFromString func(s string) (*Digest, Result)
	ReadFromFile     func(cb ReadCallbacks) Result
	WriteNewFile     func(cb WriteCallbacks) Result
}
