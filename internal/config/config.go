// Package config loads QuickerSFV's persisted, core-owned settings
// from a ".quickersfv.kdl" document: hasher acceleration overrides,
// I/O buffer sizing, and plugin discovery paths. Window geometry and
// other UI-only state are out of scope (see SPEC_FULL.md §2.3).
package config

// DefaultBufferSize is the default for IOOptions.BufferSize, equal to
// the original implementation's HASH_FILE_BUFFER_SIZE.
const DefaultBufferSize = 4 << 20

// Config is QuickerSFV's resolved configuration.
type Config struct {
	Hasher    HasherOptions
	IO        IOOptions
	Providers ProvidersOptions
}

// HasherOptions controls which CRC-32 acceleration tier the hasher
// package is allowed to select. A false value here only disables that
// tier; the hasher still falls back to a slower tier the CPU supports.
type HasherOptions struct {
	UseAVX512 bool
	UseSSE42  bool
}

// IOOptions holds the configured file I/O buffering.
type IOOptions struct {
	// BufferSize is the configured size, in bytes, of each half of the
	// double-buffered read-ahead window. The scheduler does not read
	// it: its hashing loop always uses its own fixed 4 MiB buffers.
	BufferSize int64
}

// ProvidersOptions holds the configured locations of third-party
// checksum provider plugins.
type ProvidersOptions struct {
	// PluginDir is the configured plugin directory. It is loaded and
	// resolved but not used for discovery: no directory is scanned
	// for plugin shared objects.
	PluginDir string
	// RegistryPath, if set, points at a TOML manifest
	// (internal/pluginregistry) listing the plugins to load; it is the
	// only way plugins are loaded.
	RegistryPath string
}

// Default returns the configuration used when no ".quickersfv.kdl" is
// found.
func Default() *Config {
	return &Config{
		Hasher: HasherOptions{
			UseAVX512: true,
			UseSSE42:  true,
		},
		IO: IOOptions{
			BufferSize: DefaultBufferSize,
		},
	}
}

// Load resolves configuration for the given working directory: it
// looks for ".quickersfv.kdl" there and falls back to Default() if
// none exists.
func Load(dir string) (*Config, error) {
	cfg, err := LoadKDL(dir)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return Default(), nil
	}
	return cfg, nil
}
