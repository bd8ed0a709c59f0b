package pluginabi

import (
	"fmt"
	"plugin"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/standardbeagle/quickersfv/internal/errors"
)

// loadPluginSymbol is the exported factory function name every
// QuickerSFV plugin module must provide, the Go-plugin analogue of
// the original's QuickerSFV_LoadPlugin C entry point.
const loadPluginSymbol = "QuickerSFVLoadPlugin"

// LoadedPlugin is a plugin module that has been opened and whose
// vtable has been retrieved.
type LoadedPlugin struct {
	Path string
	Vtbl *ProviderVtbl
}

// Host loads and caches plugin modules by path. Concurrent loads of
// the same path through one Host are de-duplicated, so two goroutines
// racing to open the same plugin share one *LoadedPlugin instead of
// opening the shared object twice.
type Host struct {
	mu     sync.Mutex
	loaded map[string]*LoadedPlugin
	group  singleflight.Group
}

// NewHost creates an empty Host.
func NewHost() *Host {
	return &Host{loaded: make(map[string]*LoadedPlugin)}
}

// Load opens the plugin module at path (if not already loaded),
// retrieves its vtable factory, and caches the result.
func (h *Host) Load(path string) (*LoadedPlugin, error) {
	v, err, _ := h.group.Do(path, func() (any, error) {
		h.mu.Lock()
		if p, ok := h.loaded[path]; ok {
			h.mu.Unlock()
			return p, nil
		}
		h.mu.Unlock()

		p, err := plugin.Open(path)
		if err != nil {
			return nil, errors.New(errors.PluginError, "load", err).WithFile(path)
		}
		sym, err := p.Lookup(loadPluginSymbol)
		if err != nil {
			return nil, errors.New(errors.PluginError, "lookup", err).WithFile(path)
		}
		factory, ok := sym.(func() *ProviderVtbl)
		if !ok {
			return nil, errors.New(errors.PluginError, "lookup",
				fmt.Errorf("%s has an unexpected signature", loadPluginSymbol)).WithFile(path)
		}
		vtbl := factory()
		if vtbl == nil {
			return nil, errors.New(errors.PluginError, "lookup",
				fmt.Errorf("%s returned a nil vtable", loadPluginSymbol)).WithFile(path)
		}

		loaded := &LoadedPlugin{Path: path, Vtbl: vtbl}
		h.mu.Lock()
		h.loaded[path] = loaded
		h.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*LoadedPlugin), nil
}
