// Package pluginregistry loads a TOML manifest describing third-party
// checksum provider plugins, so the host can discover and load them
// (via internal/pluginabi) without scanning a directory and guessing
// at each shared object's capabilities.
package pluginregistry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/standardbeagle/quickersfv/internal/errors"
	"github.com/standardbeagle/quickersfv/internal/pluginabi"
	"github.com/standardbeagle/quickersfv/internal/provider"
)

// Entry describes one registered plugin.
type Entry struct {
	// Path is the plugin module's location on disk, resolved relative
	// to the manifest file's own directory if not absolute.
	Path string `toml:"path"`
	// Extensions is a semicolon-separated glob list, the same shape
	// internal/provider.ChecksumProvider.FileExtensions returns
	// (e.g. "*.par2;*.par").
	Extensions string `toml:"extensions"`
	Description string `toml:"description"`
}

// Manifest is the parsed form of a plugin registry TOML document.
type Manifest struct {
	Plugins []Entry `toml:"plugins"`
}

// Load reads and parses the TOML manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.FileIO, "read", err).WithFile(path)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.New(errors.ParserError, "parse", err).WithFile(path)
	}

	for i, e := range m.Plugins {
		if e.Path == "" {
			return nil, errors.New(errors.ParserError, "parse",
				fmt.Errorf("plugin entry %d is missing a path", i)).WithFile(path)
		}
		if e.Extensions == "" {
			return nil, errors.New(errors.ParserError, "parse",
				fmt.Errorf("plugin entry %d (%s) is missing extensions", i, e.Path)).WithFile(path)
		}
	}

	return &m, nil
}

// RegisterAll loads the manifest at manifestPath, loads every listed
// plugin through host, and registers each as a provider.ChecksumProvider
// in reg. Entry paths are resolved relative to the manifest's own
// directory when not absolute, so a manifest can travel with its
// plugins without hardcoding an installation prefix.
//
// This is the only plugin discovery path: when
// internal/config.ProvidersOptions.RegistryPath is set, the host loads
// the plugins this explicit list names; PluginDir is never scanned.
func RegisterAll(host *pluginabi.Host, reg *provider.Registry, manifestPath string) error {
	m, err := Load(manifestPath)
	if err != nil {
		return err
	}

	baseDir := filepath.Dir(manifestPath)
	for _, e := range m.Plugins {
		path := e.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}

		loaded, err := host.Load(path)
		if err != nil {
			return err
		}
		adapter, err := pluginabi.NewAdapter(loaded)
		if err != nil {
			return err
		}
		reg.Register(adapter)
	}
	return nil
}
